// Package core provides the fundamental types shared by the terminity
// runtime: screen cells, rectangles, events, and the error taxonomy.
// It contains no external dependencies so that game logic built on it
// stays pure and testable.
package core

// Color is a foreground or background color for a screen cell.
// Uses a small named palette mapped to terminal colors by the driver.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// Attr is a bitmask of style attributes applied to a cell.
type Attr uint8

// Style attributes. AttrNone is the zero value.
const (
	AttrNone Attr = 0

	AttrBold Attr = 1 << iota
	AttrUnderline
	AttrReverse
	AttrDim
	AttrBlink
)

// Cell is one terminal character position: a glyph plus colors and
// attributes. Cells are immutable values; writers replace whole cells.
type Cell struct {
	Rune  rune
	Fg    Color
	Bg    Color
	Attrs Attr
}

// BlankCell is the cell every buffer position holds before anything
// renders into it: a space with default colors.
var BlankCell = Cell{Rune: ' '}

// CellUpdate places a cell at an absolute buffer position. A slice of
// updates is the patch format exchanged between games, the compositor,
// and the driver.
type CellUpdate struct {
	X, Y int
	Cell Cell
}
