package emu

import (
	"testing"
	"time"
)

// assembleROM packs opcodes big-endian, the way they sit in memory.
func assembleROM(opcodes ...uint16) []byte {
	rom := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

// newTestMachine creates a machine with a manual clock, a fixed random
// source and the given quirks, running the given program.
func newTestMachine(t *testing.T, quirks Quirks, opcodes ...uint16) (*Machine, *ManualClock) {
	t.Helper()
	clock := NewManualClock(time.Unix(0, 0))
	cfg := DefaultConfig()
	cfg.Quirks = quirks
	cfg.Clock = clock
	cfg.Random = func() uint8 { return 0xA5 }

	m, err := NewMachine(assembleROM(opcodes...), cfg)
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}
	return m, clock
}

// stepN runs n steps, failing the test on the first error.
func stepN(t *testing.T, m *Machine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := m.Step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
}
