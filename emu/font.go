package emu

// Memory layout
const (
	MemorySize   = 0x1000 // 4KB address space
	AddressMask  = 0x0FFF // 12-bit addresses
	FontAddress  = 0x050  // First glyph of the built-in font
	ProgramStart = 0x200  // Conventional ROM load address
	MaxROMSize   = MemorySize - ProgramStart
	GlyphSize    = 5 // Bytes per font glyph
	GlyphCount   = 16
)

// DefaultFont holds the 16 hexadecimal glyphs (0-F), 5 rows each,
// loaded at FontAddress when the machine is created.
var DefaultFont = [GlyphCount * GlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the memory address of the font glyph for a hex digit.
// Only the low nibble of digit is used.
func GlyphAddress(digit uint8) uint16 {
	return FontAddress + uint16(digit&0x0F)*GlyphSize
}
