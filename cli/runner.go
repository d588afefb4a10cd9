//go:build !libretro

// Package cli provides a command-line runner for the emulator.
// It handles input polling and runs the emulator in a window without the full UI.
package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
	ebitenbridge "github.com/user-none/chipegg/bridge/ebiten"
	"github.com/user-none/chipegg/emu"
)

// keymap is the conventional QWERTY layout of the COSMAC VIP hex keypad:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keymap = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1,
	0x2: ebiten.Key2,
	0x3: ebiten.Key3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.Key4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Runner wraps an emulator for command-line mode.
// It handles input polling (emulator doesn't poll input itself).
// This follows the libretro pattern where the frontend is responsible
// for polling input and passing it to the emulator via SetInput().
type Runner struct {
	emulator *ebitenbridge.Emulator
	logger   *log.Logger
	buzzing  bool
}

// NewRunner creates a new Runner wrapping the given emulator.
func NewRunner(e *ebitenbridge.Emulator, logger *log.Logger) *Runner {
	return &Runner{
		emulator: e,
		logger:   logger,
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		r.logger.Info("Resetting")
		r.emulator.Reset()
	}

	if !ebiten.IsFocused() {
		return nil
	}

	r.emulator.SetInput(0, pollKeys())
	r.emulator.RunFrame()

	// No audio output; the buzzer state is only logged on change.
	if active := r.emulator.SoundActive(); active != r.buzzing {
		r.buzzing = active
		r.logger.Debug("Buzzer", log.String("state", buzzerState(active)))
	}

	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.emulator.DrawToScreen(screen)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.emulator.Layout(outsideWidth, outsideHeight)
}

// pollKeys returns the keypad state in the emulator's input bitmask layout.
func pollKeys() uint32 {
	var buttons uint32
	for key, k := range keymap {
		if ebiten.IsKeyPressed(k) {
			buttons |= emu.KeyBit(key)
		}
	}
	return buttons
}

func buzzerState(active bool) string {
	if active {
		return "on"
	}
	return "off"
}
