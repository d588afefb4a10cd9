package emu

import (
	"fmt"
	"math/rand/v2"
)

// Default display dimensions.
const (
	DefaultWidth  = 64
	DefaultHeight = 32
)

// Quirks selects between historically divergent behaviours of ambiguous
// instructions. Both choices of every flag match some real interpreter.
type Quirks struct {
	// ShiftUsesVY copies VY into VX before 8XY6/8XYE shift it (COSMAC VIP).
	// When false VX is shifted in place (CHIP-48).
	ShiftUsesVY bool

	// JumpUsesVX makes BXNN jump to XNN+VX instead of BNNN jumping to NNN+V0.
	JumpUsesVX bool

	// LoadStoreAll makes FX55/FX65 transfer all 16 registers regardless of X.
	// When false only V0 through VX are transferred.
	LoadStoreAll bool

	// LoadStoreIncrementsI leaves I pointing past the last register
	// transferred by FX55/FX65.
	LoadStoreIncrementsI bool

	// IndexOverflowFlag sets VF when FX1E carries I past $FFF. VF is left
	// alone when there is no carry (Amiga interpreter).
	IndexOverflowFlag bool

	// LogicResetsVF clears VF after 8XY1/8XY2/8XY3.
	LogicResetsVF bool
}

// LegacyQuirks returns the behaviour this interpreter defaults to.
func LegacyQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:       true,
		LoadStoreAll:      true,
		IndexOverflowFlag: true,
	}
}

// ModernQuirks returns the CHIP-48/SUPER-CHIP flavoured behaviour most
// modern ROMs expect.
func ModernQuirks() Quirks {
	return Quirks{
		JumpUsesVX: true,
	}
}

// Config holds construction-time machine settings. Zero fields are replaced
// by defaults in NewMachine.
type Config struct {
	Width  int
	Height int
	Quirks Quirks

	// Clock drives the 60 Hz timers. Defaults to the wall clock.
	Clock Clock

	// Random supplies bytes for CXNN. Defaults to math/rand.
	Random func() uint8

	// Font is copied to FontAddress. Must be GlyphCount*GlyphSize bytes.
	Font []byte
}

// DefaultConfig returns a 64x32 machine with legacy quirks.
func DefaultConfig() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Quirks: LegacyQuirks(),
		Clock:  SystemClock(),
		Random: randomByte,
		Font:   DefaultFont[:],
	}
}

func randomByte() uint8 {
	return uint8(rand.Uint32())
}

// withDefaults fills unset fields and validates the rest.
func (c Config) withDefaults() (Config, error) {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Width < 0 || c.Height < 0 || c.Width > 256 || c.Height > 256 {
		return c, fmt.Errorf("%w: display %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Clock == nil {
		c.Clock = SystemClock()
	}
	if c.Random == nil {
		c.Random = randomByte
	}
	if c.Font == nil {
		c.Font = DefaultFont[:]
	}
	if len(c.Font) != GlyphCount*GlyphSize {
		return c, fmt.Errorf("%w: font is %d bytes, want %d", ErrInvalidConfig, len(c.Font), GlyphCount*GlyphSize)
	}
	return c, nil
}
