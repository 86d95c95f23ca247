package host

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/NeoGalaxy/terminity/internal/compositor"
	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/game"
	"github.com/NeoGalaxy/terminity/internal/layout"
)

// Bindings are the global host key bindings, checked before any key
// reaches the focused game.
type Bindings struct {
	Quit  core.KeyEvent
	Pause core.KeyEvent
}

// DefaultBindings reserves Ctrl+C for quit and Esc for pause.
func DefaultBindings() Bindings {
	return Bindings{
		Quit:  core.KeyEvent{Key: core.KeyCtrlC},
		Pause: core.KeyEvent{Key: core.KeyEsc},
	}
}

// Dispatcher classifies driver events and routes them: resizes to the
// compositor and layout tree first, keys to the global bindings and
// then the focused game, ticks straight to the frame render. Exactly
// one widget has focus at a time: the active game's root widget.
type Dispatcher struct {
	comp     *compositor.Compositor
	mgr      *Manager
	logger   *log.Logger
	bindings Bindings

	tree  *layout.Tree
	rects map[string]core.Rect

	// notice is shown in the chrome while layout is degraded.
	notice string

	quitRequested bool
	pendingSwitch string
}

// NewDispatcher creates a dispatcher over the compositor and lifecycle
// manager and computes the initial layout.
func NewDispatcher(comp *compositor.Compositor, mgr *Manager, bindings Bindings, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	d := &Dispatcher{
		comp:     comp,
		mgr:      mgr,
		logger:   logger,
		bindings: bindings,
	}
	d.Rebuild()
	return d
}

// Rebuild reconstructs the layout tree around the active game's
// declared minimum size and recomputes it. Called at game activation
// and after a switch.
func (d *Dispatcher) Rebuild() {
	minW, minH := d.mgr.MinSize()
	d.tree = layout.New(layout.SplitRows(chromeRows,
		layout.Leaf(widgetChrome, 0, chromeRows),
		layout.Leaf(widgetGame, minW, minH),
	))
	d.recompute()
}

// recompute reassigns widget rectangles for the compositor's current
// size, degrading to clipped rendering below declared minimums.
func (d *Dispatcher) recompute() {
	w, h := d.comp.Size()
	rects, err := d.tree.Compute(w, h)
	d.rects = rects

	var layoutErr *core.LayoutError
	switch {
	case errors.As(err, &layoutErr):
		if d.notice == "" {
			d.logger.Warn("layout degraded", "widget", layoutErr.WidgetID,
				"minW", layoutErr.MinW, "minH", layoutErr.MinH, "cols", w, "rows", h)
		}
		d.notice = "terminal too small"
	case err != nil:
		// Tree construction bugs only; keep the last good mapping.
		d.logger.Error("layout failed", "error", err)
	default:
		d.notice = ""
	}
}

// Dispatch routes one event and reports whether a frame should be
// rendered. A resize is fully applied (buffers reallocated, layout
// recomputed) before this returns, so later events always observe the
// new geometry.
func (d *Dispatcher) Dispatch(ev core.Event) bool {
	switch ev := ev.(type) {
	case core.ResizeEvent:
		d.comp.Resize(ev.Width, ev.Height)
		d.recompute()
		return true

	case core.KeyEvent:
		return d.dispatchKey(ev)

	case core.TickEvent:
		// Ticks carry no payload and games cannot intercept them; they
		// exist to drive the per-frame render.
		return true
	}
	return false
}

func (d *Dispatcher) dispatchKey(ev core.KeyEvent) bool {
	// Global host bindings come first and are never forwarded.
	switch ev {
	case d.bindings.Quit:
		d.quitRequested = true
		return false
	case d.bindings.Pause:
		d.togglePause()
		return true
	}

	// While paused, the game is not stepped and receives nothing.
	if d.mgr.ActiveState() == StatePaused {
		return false
	}

	action, err := d.mgr.HandleInput(ev)
	if err != nil {
		// The offending game is already terminated; render one more
		// frame so the chrome reflects it.
		return true
	}

	switch action.Kind {
	case game.ActionQuit:
		d.quitRequested = true
	case game.ActionSwitch:
		// Validate the target before anything is torn down: a bad
		// switch target keeps the current game alive.
		if _, serr := d.mgr.Select(action.Game); serr != nil {
			d.logger.Warn("switch to unknown game ignored", "target", action.Game)
		} else {
			d.pendingSwitch = action.Game
		}
	}
	return true
}

func (d *Dispatcher) togglePause() {
	var err error
	switch d.mgr.ActiveState() {
	case StateRunning:
		err = d.mgr.Pause()
	case StatePaused:
		err = d.mgr.Resume()
	default:
		return
	}
	if err != nil {
		d.logger.Warn("pause toggle rejected", "error", err)
	}
}

// QuitRequested reports whether a global quit was dispatched.
func (d *Dispatcher) QuitRequested() bool {
	return d.quitRequested
}

// TakePendingSwitch returns and clears the pending switch target.
func (d *Dispatcher) TakePendingSwitch() string {
	target := d.pendingSwitch
	d.pendingSwitch = ""
	return target
}

// Notice returns the current layout degradation notice, or "".
func (d *Dispatcher) Notice() string {
	return d.notice
}

// Rect returns the rectangle assigned to a widget id.
func (d *Dispatcher) Rect(id string) core.Rect {
	return d.rects[id]
}
