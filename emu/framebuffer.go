package emu

// Framebuffer is the monochrome display: a width x height grid of cells
// holding 0 or 1, drawn to only by XOR sprite blits.
type Framebuffer struct {
	width   int
	height  int
	cells   []uint8 // row-major
	changed bool
}

// Snapshot is a point-in-time copy of the framebuffer cells.
type Snapshot struct {
	Width  int
	Height int
	Cells  []uint8 // row-major, len Width*Height
}

// At returns the cell at (x, y).
func (s Snapshot) At(x, y int) uint8 {
	return s.Cells[y*s.Width+x]
}

// NewFramebuffer creates a blank framebuffer. It starts out marked changed
// so the first observation paints the blank screen.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:   width,
		height:  height,
		cells:   make([]uint8, width*height),
		changed: true,
	}
}

// Width returns the display width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the display height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Pixel returns the cell at (x, y), or 0 outside the grid.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return f.cells[y*f.width+x]
}

// Clear turns every cell off.
func (f *Framebuffer) Clear() {
	clear(f.cells)
	f.changed = true
}

// Draw XORs sprite onto the grid with its top-left corner at (x, y).
// Each sprite byte is one row of 8 pixels, most significant bit leftmost.
// The origin wraps around the display but the sprite itself is clipped at
// the right and bottom edges. Reports whether any lit cell was turned off.
func (f *Framebuffer) Draw(sprite []byte, x, y uint8) bool {
	ox := int(x) % f.width
	oy := int(y) % f.height
	collision := false

	for row, bits := range sprite {
		py := oy + row
		if py >= f.height {
			break
		}
		line := f.cells[py*f.width : (py+1)*f.width]
		for col := 0; col < 8; col++ {
			px := ox + col
			if px >= f.width {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			if line[px] == 1 {
				collision = true
			}
			line[px] ^= 1
			f.changed = true
		}
	}

	return collision
}

// Snapshot returns a copy of the current cells.
func (f *Framebuffer) Snapshot() Snapshot {
	cells := make([]uint8, len(f.cells))
	copy(cells, f.cells)
	return Snapshot{Width: f.width, Height: f.height, Cells: cells}
}

// ConsumeChanged reports whether the display changed since the last call
// and clears the flag.
func (f *Framebuffer) ConsumeChanged() bool {
	changed := f.changed
	f.changed = false
	return changed
}
