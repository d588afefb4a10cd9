//go:build !libretro && !ios

// Package ebiten provides an Ebiten-specific wrapper for the emulator.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/chipegg/emu"
)

// Emulator wraps emu.Emulator with Ebiten rendering
type Emulator struct {
	*emu.Emulator

	offscreen *ebiten.Image           // Offscreen buffer at native resolution
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// NewEmulator creates a new emulator instance with Ebiten rendering.
func NewEmulator(rom []byte, region emu.Region, cfg emu.Config, logger *log.Logger) (*Emulator, error) {
	base, err := emu.NewEmulatorWithConfig(rom, region, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Emulator{Emulator: &base}, nil
}

// DrawToScreen renders the display scaled to fit the screen, centered,
// with nearest-neighbour filtering so pixels stay square.
func (e *Emulator) DrawToScreen(screen *ebiten.Image) {
	src := e.GetFramebufferImage()
	if src == nil {
		return
	}

	nativeW := float64(src.Bounds().Dx())
	nativeH := float64(src.Bounds().Dy())
	screenW, screenH := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	scale := min(screenW/nativeW, screenH/nativeH)
	offsetX := (screenW - nativeW*scale) / 2
	offsetY := (screenH - nativeH*scale) / 2

	e.drawOpts = ebiten.DrawImageOptions{}
	e.drawOpts.GeoM.Scale(scale, scale)
	e.drawOpts.GeoM.Translate(offsetX, offsetY)
	e.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(src, &e.drawOpts)
}

func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Return window size so we control scaling in Draw()
	return outsideWidth, outsideHeight
}

// GetFramebufferImage returns the display as an ebiten.Image at native
// resolution, or nil if the RGBA buffer is short.
func (e *Emulator) GetFramebufferImage() *ebiten.Image {
	width := e.GetFramebufferStride() / 4
	height := e.GetActiveHeight()

	if e.offscreen == nil || e.offscreen.Bounds().Dx() != width || e.offscreen.Bounds().Dy() != height {
		e.offscreen = ebiten.NewImage(width, height)
	}

	fb := e.GetFramebuffer()
	requiredLen := width * 4 * height
	if len(fb) < requiredLen {
		return nil
	}
	e.offscreen.WritePixels(fb[:requiredLen])
	return e.offscreen
}
