package host

import "github.com/NeoGalaxy/terminity/internal/core"

// Widget ids used by the host's layout tree.
const (
	widgetChrome = "chrome"
	widgetGame   = "game"
)

// chromeRows is the height of the reserved chrome region: a status
// row plus a separator line above the game area.
const chromeRows = 2

// staticWidget is a dumb carrier handed to the compositor: updates are
// computed up front so that game failures are already contained by the
// time composition starts.
type staticWidget struct {
	id      string
	rect    core.Rect
	updates []core.CellUpdate
}

func (w staticWidget) ID() string                { return w.id }
func (w staticWidget) Rect() core.Rect           { return w.rect }
func (w staticWidget) Render() []core.CellUpdate { return w.updates }

// textUpdates converts a string into cell updates starting at (x, y),
// clipped to the given width.
func textUpdates(x, y, maxW int, s string, fg core.Color, attrs core.Attr) []core.CellUpdate {
	var updates []core.CellUpdate
	for i, r := range []rune(s) {
		if x+i >= maxW {
			break
		}
		updates = append(updates, core.CellUpdate{
			X: x + i, Y: y,
			Cell: core.Cell{Rune: r, Fg: fg, Attrs: attrs},
		})
	}
	return updates
}

// renderChrome produces the status row and separator for the chrome
// region: game title and lifecycle state on the left, the layout
// notice (if any) on the right.
func renderChrome(rect core.Rect, title, state, notice string) []core.CellUpdate {
	if rect.Empty() {
		return nil
	}

	var updates []core.CellUpdate

	label := " " + title
	updates = append(updates, textUpdates(0, 0, rect.W, label, core.ColorWhite, core.AttrBold)...)
	updates = append(updates, textUpdates(len([]rune(label))+1, 0, rect.W, "["+state+"]", core.ColorGray, core.AttrNone)...)

	if notice != "" {
		start := rect.W - len([]rune(notice)) - 1
		if start < 0 {
			start = 0
		}
		updates = append(updates, textUpdates(start, 0, rect.W, notice, core.ColorYellow, core.AttrBold)...)
	}

	if rect.H > 1 {
		for x := 0; x < rect.W; x++ {
			updates = append(updates, core.CellUpdate{
				X: x, Y: 1,
				Cell: core.Cell{Rune: '─', Fg: core.ColorGray},
			})
		}
	}
	return updates
}
