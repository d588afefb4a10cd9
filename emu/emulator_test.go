package emu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
)

// createTestEmulator builds an emulator around the given program.
func createTestEmulator(t *testing.T, opcodes ...uint16) *Emulator {
	t.Helper()
	e, err := NewEmulatorWithConfig(assembleROM(opcodes...), RegionNTSC, DefaultConfig(), log.NewTestLogger(t))
	if err != nil {
		t.Fatalf("NewEmulatorWithConfig failed: %v", err)
	}
	return &e
}

// TestEmulator_RunFrameCycles verifies one frame runs CyclesPerFrame steps
func TestEmulator_RunFrameCycles(t *testing.T) {
	e := createTestEmulator(t, 0x7001, 0x1200)

	e.RunFrame()

	// 11 steps alternate add and jump, starting with add.
	if got := e.Machine().Register(0); got != 6 {
		t.Errorf("V0 after one frame: expected 6, got %d", got)
	}

	e.SetCyclesPerFrame(4)
	e.RunFrame()
	if got := e.Machine().Register(0); got != 8 {
		t.Errorf("V0 after second frame: expected 8, got %d", got)
	}
}

// TestEmulator_FrameClockDrivesTimers verifies timers decay once per frame
func TestEmulator_FrameClockDrivesTimers(t *testing.T) {
	e := createTestEmulator(t, 0x6005, 0xF015, 0x1204)

	e.RunFrame()
	if got := e.Machine().DelayTimer(); got != 5 {
		t.Fatalf("delay after first frame: expected 5, got %d", got)
	}

	e.RunFrame()
	e.RunFrame()
	if got := e.Machine().DelayTimer(); got != 3 {
		t.Errorf("delay after three frames: expected 3, got %d", got)
	}
}

// TestEmulator_HaltOnError verifies a failed step stops execution
func TestEmulator_HaltOnError(t *testing.T) {
	e := createTestEmulator(t, 0x00EE)

	e.RunFrame()
	if !e.Halted() {
		t.Fatal("emulator should halt after stack underflow")
	}
	if !errors.Is(e.Err(), ErrStackUnderflow) {
		t.Errorf("Err: expected ErrStackUnderflow, got %v", e.Err())
	}
	if e.Machine().PC() != ProgramStart+2 {
		t.Errorf("PC: expected 0x202, got 0x%03X", e.Machine().PC())
	}

	e.Reset()
	if e.Halted() || e.Err() != nil {
		t.Error("Reset should clear the halt")
	}
}

// TestEmulator_HaltOnErrorDisabled verifies execution continues past a
// failed instruction when halting is off
func TestEmulator_HaltOnErrorDisabled(t *testing.T) {
	e := createTestEmulator(t, 0x00EE, 0x6005, 0x1204)
	e.SetOption("halt_on_error", "false")

	e.RunFrame()
	if e.Halted() {
		t.Error("emulator should not halt")
	}
	if !errors.Is(e.Err(), ErrStackUnderflow) {
		t.Errorf("Err: expected ErrStackUnderflow, got %v", e.Err())
	}

	e.RunFrame()
	if got := e.Machine().Register(0); got != 5 {
		t.Errorf("V0 after skipping the failed return: expected 5, got %d", got)
	}
}

// TestEmulator_SetInput_Bitmask verifies button bits map to hex keys
func TestEmulator_SetInput_Bitmask(t *testing.T) {
	e := createTestEmulator(t)

	e.SetInput(0, KeyBit(0x5)|KeyBit(0xF))
	m := e.Machine()
	for key := 0; key < KeyCount; key++ {
		want := key == 0x5 || key == 0xF
		if m.Key(key) != want {
			t.Errorf("key %X: expected %v, got %v", key, want, m.Key(key))
		}
	}

	e.SetInput(0, 0)
	if m.Key(0x5) {
		t.Error("key 5 should be released")
	}
}

// TestEmulator_SetInput_DPadIgnored verifies the frontend d-pad bits do not
// press keypad keys
func TestEmulator_SetInput_DPadIgnored(t *testing.T) {
	e := createTestEmulator(t)

	e.SetInput(0, 1<<emucore.ButtonUp|1<<emucore.ButtonDown|1<<emucore.ButtonLeft|1<<emucore.ButtonRight)
	for key := 0; key < KeyCount; key++ {
		if e.Machine().Key(key) {
			t.Errorf("key %X should not be pressed by the d-pad", key)
		}
	}

	if KeyBit(0) != 1<<4 || KeyBit(0xF) != 1<<19 {
		t.Errorf("KeyBit: expected bits 4 and 19, got %#x and %#x", KeyBit(0), KeyBit(0xF))
	}
}

// TestEmulator_SetInput_Player2 verifies only player 0 has a keypad
func TestEmulator_SetInput_Player2(t *testing.T) {
	e := createTestEmulator(t)

	e.SetInput(1, 0xFFFFFFFF)
	for key := 0; key < KeyCount; key++ {
		if e.Machine().Key(key) {
			t.Fatalf("key %X should not be pressed by player 2", key)
		}
	}
}

// TestEmulator_Options verifies core option handling
func TestEmulator_Options(t *testing.T) {
	e := createTestEmulator(t)

	tests := []struct {
		value string
		want  int
	}{
		{"20", 20},
		{"abc", 20},
		{"0", 1},
		{"5000", MaxCyclesPerFrame},
	}
	for _, tt := range tests {
		e.SetOption("cycles_per_frame", tt.value)
		if e.CyclesPerFrame() != tt.want {
			t.Errorf("cycles_per_frame=%q: expected %d, got %d", tt.value, tt.want, e.CyclesPerFrame())
		}
	}

	e.SetOption("quirk_jump", "true")
	e.SetOption("quirk_shift", "false")
	e.SetOption("quirk_logic_vf", "true")
	q := e.Machine().Quirks()
	if !q.JumpUsesVX || q.ShiftUsesVY || !q.LogicResetsVF {
		t.Errorf("quirks after options: %+v", q)
	}

	e.SetOption("unknown", "true")
	if e.Machine().Quirks() != q {
		t.Error("unknown option should not change quirks")
	}
}

// TestEmulator_Render verifies the RGBA framebuffer follows the display
func TestEmulator_Render(t *testing.T) {
	e := createTestEmulator(t, 0x6000, 0xF029, 0xD005, 0x1206)

	if e.GetFramebufferStride() != ScreenWidth*4 {
		t.Errorf("stride: expected %d, got %d", ScreenWidth*4, e.GetFramebufferStride())
	}
	if e.GetActiveHeight() != MaxScreenHeight {
		t.Errorf("active height: expected %d, got %d", MaxScreenHeight, e.GetActiveHeight())
	}

	e.RunFrame()
	fb := e.GetFramebuffer()
	if len(fb) != ScreenWidth*MaxScreenHeight*4 {
		t.Fatalf("framebuffer size: expected %d, got %d", ScreenWidth*MaxScreenHeight*4, len(fb))
	}

	pixel := func(x, y int) [4]byte {
		off := (y*ScreenWidth + x) * 4
		return [4]byte{fb[off], fb[off+1], fb[off+2], fb[off+3]}
	}
	if pixel(0, 0) != pixelOn {
		t.Errorf("pixel (0,0): expected on, got %v", pixel(0, 0))
	}
	if pixel(1, 1) != pixelOff {
		t.Errorf("pixel (1,1): expected off, got %v", pixel(1, 1))
	}
}

// TestEmulator_AudioSampleCount verifies one frame of stereo silence
func TestEmulator_AudioSampleCount(t *testing.T) {
	e := createTestEmulator(t)
	if got := len(e.GetAudioSamples()); got != 1600 {
		t.Errorf("NTSC samples: expected 1600, got %d", got)
	}

	e.SetRegion(RegionPAL)
	if got := len(e.GetAudioSamples()); got != 1920 {
		t.Errorf("PAL samples: expected 1920, got %d", got)
	}
	if e.GetTiming().FPS != 50 {
		t.Errorf("PAL FPS: expected 50, got %d", e.GetTiming().FPS)
	}
	if e.GetRegion() != RegionPAL {
		t.Errorf("region: expected PAL, got %v", e.GetRegion())
	}
}

// TestEmulator_SoundActive verifies the buzzer state follows the sound timer
func TestEmulator_SoundActive(t *testing.T) {
	e := createTestEmulator(t, 0x6002, 0xF018, 0x1204)

	e.RunFrame()
	if !e.SoundActive() {
		t.Error("sound should be active after FX18")
	}
	e.RunFrame()
	e.RunFrame()
	if e.SoundActive() {
		t.Error("sound should stop after two timer periods")
	}
}

// =============================================================================
// MemoryInspector Tests
// =============================================================================

// TestEmulator_ReadMemory tests flat address memory reading
func TestEmulator_ReadMemory(t *testing.T) {
	e := createTestEmulator(t, 0xDEAD)

	buf := make([]byte, 4)
	n := e.ReadMemory(ProgramStart, buf)
	if n != 4 {
		t.Errorf("ReadMemory: expected 4 bytes read, got %d", n)
	}
	if buf[0] != 0xDE || buf[1] != 0xAD {
		t.Errorf("ReadMemory: expected [0xDE, 0xAD, ...], got [0x%02X, 0x%02X, ...]",
			buf[0], buf[1])
	}

	n = e.ReadMemory(MemorySize-2, buf)
	if n != 2 {
		t.Errorf("ReadMemory at end: expected 2 bytes, got %d", n)
	}

	n = e.ReadMemory(MemorySize, buf)
	if n != 0 {
		t.Errorf("ReadMemory past boundary: expected 0 bytes, got %d", n)
	}
}

// =============================================================================
// MemoryMapper Tests
// =============================================================================

// TestEmulator_MemoryMap tests memory region listing
func TestEmulator_MemoryMap(t *testing.T) {
	e := createTestEmulator(t)

	regions := e.MemoryMap()
	if len(regions) != 1 {
		t.Fatalf("MemoryMap: expected 1 region, got %d", len(regions))
	}
	if regions[0].Type != emucore.MemorySystemRAM || regions[0].Size != MemorySize {
		t.Errorf("System RAM: expected size 0x%X, got type %d size 0x%X", MemorySize, regions[0].Type, regions[0].Size)
	}
}

// TestEmulator_ReadWriteRegion tests region read/write round-trip
func TestEmulator_ReadWriteRegion(t *testing.T) {
	e := createTestEmulator(t)

	data := make([]byte, MemorySize)
	data[0x300] = 0xBE
	data[0x301] = 0xEF
	e.WriteRegion(emucore.MemorySystemRAM, data)

	result := e.ReadRegion(emucore.MemorySystemRAM)
	if result[0x300] != 0xBE || result[0x301] != 0xEF {
		t.Errorf("ReadRegion: expected [0xBE, 0xEF], got [0x%02X, 0x%02X]",
			result[0x300], result[0x301])
	}

	if e.ReadRegion(emucore.MemorySystemRAM+1) != nil {
		t.Error("unknown region should return nil")
	}
}
