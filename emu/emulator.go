package emu

import (
	"errors"
	"strconv"
	"time"

	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/chipegg/disasm"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

const (
	ScreenWidth     = DefaultWidth
	MaxScreenHeight = DefaultHeight
	sampleRate      = 48000

	// DefaultCyclesPerFrame gives roughly 700 instructions per second at 60 fps.
	DefaultCyclesPerFrame = 11
	MaxCyclesPerFrame     = 1000

	// KeyButtonBase is the input bitmask bit of hex key 0. Bits 0-3 are the
	// frontend d-pad.
	KeyButtonBase = 4
)

// KeyBit returns the input bitmask bit for hex key 0-F.
func KeyBit(key int) uint32 {
	return 1 << (KeyButtonBase + key)
}

// Display colours (RGBA).
var (
	pixelOn  = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	pixelOff = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// Emulator drives a Machine one frame at a time for eblitui frontends.
// Timers follow a frame clock, so emulated time advances by exactly one
// frame period per RunFrame regardless of host speed.
type Emulator struct {
	machine *Machine
	clock   *ManualClock
	logger  *log.Logger

	region         Region
	timing         RegionTiming
	cyclesPerFrame int

	haltOnError bool
	halted      bool
	err         error

	framebuffer []byte  // RGBA, width*height*4
	audioBuffer []int16 // one frame of stereo silence
}

// NewEmulator creates an emulator with the default configuration.
func NewEmulator(rom []byte, region Region) (Emulator, error) {
	return NewEmulatorWithConfig(rom, region, DefaultConfig(), nil)
}

// NewEmulatorWithConfig creates an emulator using cfg for the machine. The
// clock in cfg is replaced by the emulator's frame clock. A nil logger uses
// the default logger configuration.
func NewEmulatorWithConfig(rom []byte, region Region, cfg Config, logger *log.Logger) (Emulator, error) {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	clock := NewManualClock(time.Time{})
	cfg.Clock = clock

	machine, err := NewMachine(rom, cfg)
	if err != nil {
		return Emulator{}, err
	}

	fb := machine.Framebuffer()
	e := Emulator{
		machine:        machine,
		clock:          clock,
		logger:         logger,
		cyclesPerFrame: DefaultCyclesPerFrame,
		haltOnError:    true,
		framebuffer:    make([]byte, fb.Width()*fb.Height()*4),
	}
	e.SetRegion(region)
	e.render()

	return e, nil
}

// Machine returns the underlying interpreter.
func (e *Emulator) Machine() *Machine {
	return e.machine
}

// Err returns the last step error, or nil.
func (e *Emulator) Err() error {
	return e.err
}

// Halted reports whether execution stopped after a step error.
func (e *Emulator) Halted() bool {
	return e.halted
}

// Reset restarts the program and clears any halt.
func (e *Emulator) Reset() {
	e.machine.Reset()
	e.halted = false
	e.err = nil
}

// RunFrame advances emulated time by one frame and executes the frame's
// share of instructions.
func (e *Emulator) RunFrame() {
	e.clock.Advance(e.timing.FrameDuration())

	if !e.halted {
		for i := 0; i < e.cyclesPerFrame; i++ {
			if err := e.machine.Step(); err != nil {
				e.stepFailed(err)
				break
			}
		}
	}

	if e.machine.Framebuffer().ConsumeChanged() {
		e.render()
	}
}

// stepFailed records a step error. Only the first error since the last
// reset is logged.
func (e *Emulator) stepFailed(err error) {
	var stepErr *StepError
	if e.err == nil && errors.As(err, &stepErr) {
		e.logger.Error("Step failed",
			log.Err(stepErr.Err),
			log.Hex("pc", stepErr.PC),
			log.Hex("opcode", stepErr.Opcode),
			log.String("instruction", disasm.Format(stepErr.Opcode)))
	}

	e.err = err
	if e.haltOnError {
		e.halted = true
	}
}

// render converts the framebuffer cells to RGBA.
func (e *Emulator) render() {
	fb := e.machine.Framebuffer()
	width, height := fb.Width(), fb.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colour := pixelOff
			if fb.Pixel(x, y) != 0 {
				colour = pixelOn
			}
			copy(e.framebuffer[(y*width+x)*4:], colour[:])
		}
	}
}

// SetInput maps bit KeyButtonBase+k of buttons to hex key k. The d-pad bits
// are ignored and only player 0 has a keypad.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}
	for key := 0; key < KeyCount; key++ {
		e.machine.SetKey(key, buttons&KeyBit(key) != 0)
	}
}

// GetFramebuffer returns raw RGBA pixel data for current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.framebuffer
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return e.machine.Framebuffer().Width() * 4
}

// GetActiveHeight returns the display height.
func (e *Emulator) GetActiveHeight() int {
	return e.machine.Framebuffer().Height()
}

// GetAudioSamples returns one frame of silent 16-bit stereo PCM. Use
// SoundActive to drive a host-side buzzer.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// SoundActive reports whether the sound timer is running.
func (e *Emulator) SoundActive() bool {
	return e.machine.SoundActive()
}

// GetRegion returns the emulator's region setting
func (e *Emulator) GetRegion() Region {
	return e.region
}

// SetRegion changes the frame rate RunFrame is expected to be called at.
func (e *Emulator) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
	e.audioBuffer = make([]int16, sampleRate/e.timing.FPS*2)
}

// GetTiming returns the frame rate for the current region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS: e.timing.FPS,
	}
}

// CyclesPerFrame returns the number of instructions executed per frame.
func (e *Emulator) CyclesPerFrame() int {
	return e.cyclesPerFrame
}

// SetCyclesPerFrame sets the number of instructions executed per frame,
// clamped to 1..1000.
func (e *Emulator) SetCyclesPerFrame(n int) {
	e.cyclesPerFrame = min(max(n, 1), MaxCyclesPerFrame)
}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	enabled := value == "true"
	quirks := e.machine.Quirks()

	switch key {
	case "cycles_per_frame":
		n, err := strconv.Atoi(value)
		if err != nil {
			e.logger.Warn("Ignoring invalid option", log.String("key", key), log.String("value", value))
			return
		}
		e.SetCyclesPerFrame(n)
	case "halt_on_error":
		e.haltOnError = enabled
		if !enabled {
			e.halted = false
		}
	case "quirk_shift":
		quirks.ShiftUsesVY = enabled
	case "quirk_jump":
		quirks.JumpUsesVX = enabled
	case "quirk_load_store":
		quirks.LoadStoreAll = enabled
	case "quirk_load_store_increment":
		quirks.LoadStoreIncrementsI = enabled
	case "quirk_index_overflow":
		quirks.IndexOverflowFlag = enabled
	case "quirk_logic_vf":
		quirks.LogicResetsVF = enabled
	}

	e.machine.SetQuirks(quirks)
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// =============================================================================
// MemoryInspector interface
// =============================================================================

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read. The flat space is the 4KB CHIP-8 address space.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		if cur >= MemorySize {
			return count
		}
		buf[i] = e.machine.ReadMemory(uint16(cur))
		count++
	}
	return count
}

// =============================================================================
// MemoryMapper interface
// =============================================================================

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: MemorySize},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	if regionType != emucore.MemorySystemRAM {
		return nil
	}
	return e.machine.Memory()
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	if regionType == emucore.MemorySystemRAM {
		e.machine.LoadMemory(data)
	}
}
