// Package compositor owns the pair of screen buffers and turns widget
// render output into minimal patch sets for the terminal driver.
package compositor

import "github.com/NeoGalaxy/terminity/internal/core"

// ScreenBuffer is a fixed-size grid of cells matching the terminal
// size. Storage is a flat slice indexed row-major.
type ScreenBuffer struct {
	cells  []core.Cell
	width  int
	height int
}

// NewScreenBuffer creates a buffer of the given dimensions filled with
// blank cells. Non-positive dimensions yield an empty buffer.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &ScreenBuffer{
		cells:  make([]core.Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width in cells.
func (b *ScreenBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in cells.
func (b *ScreenBuffer) Height() int {
	return b.height
}

// InBounds reports whether (x, y) lies within the buffer.
func (b *ScreenBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *ScreenBuffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at (x, y), or the blank cell out of bounds.
func (b *ScreenBuffer) Get(x, y int) core.Cell {
	if !b.InBounds(x, y) {
		return core.BlankCell
	}
	return b.cells[b.index(x, y)]
}

// Set places a cell at (x, y). Out-of-bounds writes are silently
// dropped; games never receive buffer access, so strays can only come
// from already-clipped host code.
func (b *ScreenBuffer) Set(x, y int, c core.Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// Clear fills the buffer with blank cells.
func (b *ScreenBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = core.BlankCell
	}
}

// Apply replays a patch set onto the buffer. Used by the driver-less
// tests to verify the compositor's round-trip law.
func (b *ScreenBuffer) Apply(patch []core.CellUpdate) {
	for _, u := range patch {
		b.Set(u.X, u.Y, u.Cell)
	}
}

// Equal reports whether two buffers have identical dimensions and
// cells.
func (b *ScreenBuffer) Equal(other *ScreenBuffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the buffer.
func (b *ScreenBuffer) Clone() *ScreenBuffer {
	c := &ScreenBuffer{
		cells:  make([]core.Cell, len(b.cells)),
		width:  b.width,
		height: b.height,
	}
	copy(c.cells, b.cells)
	return c
}
