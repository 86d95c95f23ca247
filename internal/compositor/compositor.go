package compositor

import "github.com/NeoGalaxy/terminity/internal/core"

// Widget is a rectangular render owner. Render returns cell updates in
// coordinates local to the widget's rectangle; the compositor
// translates them and clips anything that strays outside it.
type Widget interface {
	ID() string
	Rect() core.Rect
	Render() []core.CellUpdate
}

// Compositor diffs successive frames. It holds the previous and
// current screen buffers; both always match the last observed terminal
// size. Buffers are never handed out, so no widget can scribble over
// another's region.
type Compositor struct {
	prev *ScreenBuffer
	cur  *ScreenBuffer

	// full forces the next patch to cover every cell, set after a
	// resize so the driver repaints the whole terminal.
	full bool
}

// New creates a compositor for the given terminal size.
func New(width, height int) *Compositor {
	return &Compositor{
		prev: NewScreenBuffer(width, height),
		cur:  NewScreenBuffer(width, height),
		full: true,
	}
}

// Size returns the current buffer dimensions.
func (c *Compositor) Size() (width, height int) {
	return c.cur.Width(), c.cur.Height()
}

// Resize reallocates both buffers to the new terminal size. The next
// Compose emits a full-buffer patch.
func (c *Compositor) Resize(width, height int) {
	if width == c.cur.Width() && height == c.cur.Height() {
		return
	}
	c.prev = NewScreenBuffer(width, height)
	c.cur = NewScreenBuffer(width, height)
	c.full = true
}

// Compose renders the widget collection into the current buffer and
// returns the patch set: every cell whose value differs from the
// previous frame, or every cell after a resize. Replaying the patch
// onto the previous buffer reconstructs the current one exactly.
func (c *Compositor) Compose(widgets []Widget) []core.CellUpdate {
	c.cur.Clear()

	bounds := core.NewRect(0, 0, c.cur.Width(), c.cur.Height())
	for _, w := range widgets {
		clip := w.Rect().Intersect(bounds)
		if clip.Empty() {
			continue
		}
		origin := w.Rect()
		for _, u := range w.Render() {
			x, y := origin.X+u.X, origin.Y+u.Y
			if !clip.Contains(x, y) {
				continue
			}
			c.cur.Set(x, y, u.Cell)
		}
	}

	patch := c.diff()

	// The current frame becomes the previous one; the old previous
	// buffer is recycled as the next frame's scratch.
	c.prev, c.cur = c.cur, c.prev
	c.full = false

	return patch
}

// diff walks both buffers in row-major order and collects the changed
// cells. Positions are pairwise distinct, so replaying the patch is
// idempotent and order-independent.
func (c *Compositor) diff() []core.CellUpdate {
	var patch []core.CellUpdate
	w := c.cur.Width()
	for i, cell := range c.cur.cells {
		if !c.full && cell == c.prev.cells[i] {
			continue
		}
		patch = append(patch, core.CellUpdate{X: i % w, Y: i / w, Cell: cell})
	}
	return patch
}
