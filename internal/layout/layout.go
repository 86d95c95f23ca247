// Package layout partitions the terminal area into non-overlapping
// rectangular regions. The host builds a small tree (chrome above the
// game's content region); a game declaring nested regions extends the
// same tree one level down. Layout is recomputed on every resize and
// at game activation.
package layout

import (
	"fmt"

	"github.com/NeoGalaxy/terminity/internal/core"
)

// Node is one node of the layout tree: either a leaf owning a widget
// id, or a split dividing its area between two children.
type Node struct {
	// Leaf fields.
	id         string
	minW, minH int

	// Split fields. rows selects stacked (true) vs side-by-side
	// division; fixed is the cell count reserved for the first child.
	rows          bool
	fixed         int
	first, second *Node
}

// Leaf creates a region owned by the widget with the given id. minW
// and minH declare the smallest size the widget can be rendered in
// without clipping; zero means no minimum.
func Leaf(id string, minW, minH int) *Node {
	return &Node{id: id, minW: minW, minH: minH}
}

// SplitRows stacks two children, reserving a fixed number of rows for
// the top one.
func SplitRows(topRows int, top, bottom *Node) *Node {
	return &Node{rows: true, fixed: topRows, first: top, second: bottom}
}

// SplitCols places two children side by side, reserving a fixed number
// of columns for the left one.
func SplitCols(leftCols int, left, right *Node) *Node {
	return &Node{rows: false, fixed: leftCols, first: left, second: right}
}

// Tree computes widget rectangles for a terminal size.
type Tree struct {
	root *Node
}

// New creates a layout tree with the given root node.
func New(root *Node) *Tree {
	return &Tree{root: root}
}

// Compute assigns a rectangle to every leaf for the given terminal
// size. Rectangles are pairwise disjoint and stay within the terminal
// bounds. When the terminal is smaller than a leaf's declared minimum,
// the leaf is clipped rather than rejected and the first such
// violation is reported as a *core.LayoutError; the mapping is still
// valid and the caller is expected to keep rendering.
func (t *Tree) Compute(width, height int) (map[string]core.Rect, error) {
	if t.root == nil {
		return nil, fmt.Errorf("layout: empty tree")
	}
	bounds := core.NewRect(0, 0, max(width, 0), max(height, 0))
	rects := make(map[string]core.Rect)

	var layoutErr error
	var walk func(n *Node, area core.Rect) error
	walk = func(n *Node, area core.Rect) error {
		if n.first == nil && n.second == nil {
			if _, dup := rects[n.id]; dup {
				return fmt.Errorf("layout: duplicate widget id %q", n.id)
			}
			if layoutErr == nil && (area.W < n.minW || area.H < n.minH) {
				layoutErr = &core.LayoutError{
					WidgetID: n.id,
					MinW:     n.minW, MinH: n.minH,
					W: area.W, H: area.H,
				}
			}
			rects[n.id] = area
			return nil
		}

		firstArea, secondArea := area, area
		if n.rows {
			h := core.Clamp(n.fixed, 0, area.H)
			firstArea.H = h
			secondArea.Y += h
			secondArea.H = area.H - h
		} else {
			w := core.Clamp(n.fixed, 0, area.W)
			firstArea.W = w
			secondArea.X += w
			secondArea.W = area.W - w
		}
		if err := walk(n.first, firstArea); err != nil {
			return err
		}
		return walk(n.second, secondArea)
	}

	if err := walk(t.root, bounds); err != nil {
		return nil, err
	}
	return rects, layoutErr
}
