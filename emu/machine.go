package emu

import (
	"fmt"
	"time"
)

// Machine register file sizes.
const (
	RegisterCount = 16
	StackDepth    = 16
	KeyCount      = 16
)

// Machine is a CHIP-8 interpreter. It is a pure state machine advanced one
// instruction at a time by Step; it never blocks and is not safe for
// concurrent use.
type Machine struct {
	pc     uint16
	index  uint16
	v      [RegisterCount]uint8
	sp     int
	stack  [StackDepth]uint16
	memory [MemorySize]uint8

	delayTimer    uint8
	soundTimer    uint8
	lastTimerTick time.Time

	keys    [KeyCount]bool
	waiting bool // FX0A is polling for a key

	fb     *Framebuffer
	quirks Quirks
	clock  Clock
	random func() uint8
	font   []byte
	rom    []byte // kept for Reset
}

// NewMachine creates a machine with the font loaded at FontAddress and rom
// copied to ProgramStart.
func NewMachine(rom []byte, cfg Config) (*Machine, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	m := &Machine{
		fb:     NewFramebuffer(cfg.Width, cfg.Height),
		quirks: cfg.Quirks,
		clock:  cfg.Clock,
		random: cfg.Random,
		font:   make([]byte, len(cfg.Font)),
		rom:    make([]byte, len(rom)),
	}
	copy(m.font, cfg.Font)
	copy(m.rom, rom)
	m.Reset()

	return m, nil
}

// Reset returns the machine to its power-on state with the ROM reloaded.
// Quirks, clock and display size are kept.
func (m *Machine) Reset() {
	m.pc = ProgramStart
	m.index = 0
	m.v = [RegisterCount]uint8{}
	m.sp = 0
	m.stack = [StackDepth]uint16{}
	m.memory = [MemorySize]uint8{}
	copy(m.memory[FontAddress:], m.font)
	copy(m.memory[ProgramStart:], m.rom)
	m.delayTimer = 0
	m.soundTimer = 0
	m.lastTimerTick = m.clock.Now()
	m.keys = [KeyCount]bool{}
	m.waiting = false
	m.fb.Clear()
}

// Step runs the timer phase and then fetches, decodes and executes one
// instruction. On error the instruction has no effect other than moving the
// program counter past it, so a caller may ignore the error and keep going.
// A fetch that fails leaves the program counter where it was.
func (m *Machine) Step() error {
	m.tickTimers()

	start := m.pc
	opcode, err := m.fetch()
	if err != nil {
		return &StepError{PC: start, Err: err}
	}

	if err := m.execute(Decode(opcode)); err != nil {
		return &StepError{PC: start, Opcode: opcode, Err: err}
	}
	return nil
}

// tickTimers decrements the delay and sound timers once for every whole
// TimerPeriod elapsed since the last tick.
func (m *Machine) tickTimers() {
	elapsed := m.clock.Now().Sub(m.lastTimerTick)
	if elapsed < TimerPeriod {
		return
	}

	ticks := elapsed / TimerPeriod
	m.lastTimerTick = m.lastTimerTick.Add(ticks * TimerPeriod)
	m.delayTimer = decay(m.delayTimer, ticks)
	m.soundTimer = decay(m.soundTimer, ticks)
}

func decay(timer uint8, ticks time.Duration) uint8 {
	if ticks >= time.Duration(timer) {
		return 0
	}
	return timer - uint8(ticks)
}

// fetch reads the big-endian word at pc and advances pc past it.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+1 >= MemorySize {
		return 0, ErrAddressOutOfRange
	}
	opcode := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += 2
	return opcode, nil
}

// SetKey records the state of hex key 0-F. Out of range keys are ignored.
func (m *Machine) SetKey(key int, pressed bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	m.keys[key] = pressed
}

// Key reports whether hex key 0-F is held.
func (m *Machine) Key(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// Framebuffer returns the machine's display.
func (m *Machine) Framebuffer() *Framebuffer { return m.fb }

// Quirks returns the active instruction quirks.
func (m *Machine) Quirks() Quirks { return m.quirks }

// SetQuirks changes the instruction quirks; takes effect on the next step.
func (m *Machine) SetQuirks(q Quirks) { m.quirks = q }

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// Index returns the I register.
func (m *Machine) Index() uint16 { return m.index }

// Register returns V0-VF. Only the low nibble of i is used.
func (m *Machine) Register(i int) uint8 { return m.v[i&0x0F] }

// Registers returns a copy of V0-VF.
func (m *Machine) Registers() [RegisterCount]uint8 { return m.v }

// StackDepth returns the number of return addresses on the stack.
func (m *Machine) StackDepth() int { return m.sp }

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() uint8 { return m.delayTimer }

// SoundTimer returns the sound timer.
func (m *Machine) SoundTimer() uint8 { return m.soundTimer }

// SoundActive reports whether the buzzer should be sounding.
func (m *Machine) SoundActive() bool { return m.soundTimer > 0 }

// WaitingForKey reports whether FX0A is polling for a key press.
func (m *Machine) WaitingForKey() bool { return m.waiting }

// ReadMemory returns the byte at addr, masked to the 12-bit address space.
func (m *Machine) ReadMemory(addr uint16) uint8 {
	return m.memory[addr&AddressMask]
}

// WriteMemory stores val at addr, masked to the 12-bit address space.
func (m *Machine) WriteMemory(addr uint16, val uint8) {
	m.memory[addr&AddressMask] = val
}

// Memory returns a copy of the full address space.
func (m *Machine) Memory() []byte {
	out := make([]byte, MemorySize)
	copy(out, m.memory[:])
	return out
}

// LoadMemory overwrites memory from address 0 with data.
func (m *Machine) LoadMemory(data []byte) {
	copy(m.memory[:], data)
}
