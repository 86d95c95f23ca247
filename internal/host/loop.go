package host

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/NeoGalaxy/terminity/internal/compositor"
	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/driver"
	"github.com/NeoGalaxy/terminity/internal/game"
)

// Options tune a session.
type Options struct {
	TickRate int   // Frames per second; <= 0 selects the default
	Seed     int64 // RNG seed handed to games; 0 means time-based
	Bindings Bindings
}

// DefaultTickRate bounds render latency on an idle terminal.
const DefaultTickRate = 30

// Loop is the single cooperative event loop. It exclusively owns the
// screen buffers and the layout tree; games only ever receive their
// own rectangle and return cell updates, so exactly one logical task
// progresses at a time and nothing races on shared state.
type Loop struct {
	drv    driver.Driver
	mgr    *Manager
	logger *log.Logger
	opts   Options

	comp *compositor.Compositor
	disp *Dispatcher
}

// NewLoop creates an event loop over a driver and lifecycle manager.
func NewLoop(drv driver.Driver, mgr *Manager, opts Options, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Bindings == (Bindings{}) {
		opts.Bindings = DefaultBindings()
	}
	return &Loop{
		drv:    drv,
		mgr:    mgr,
		logger: logger,
		opts:   opts,
	}
}

// Run hosts the named game until a global quit is dispatched or no
// active game remains. The driver's raw mode is restored on every exit
// path. ConfigError and DriverError are returned for the CLI to map to
// exit codes; game failures are contained and end the session
// gracefully.
func (l *Loop) Run(first string) error {
	// Validate the selection before touching the terminal: an unknown
	// name must run nothing else.
	handle, err := l.mgr.Select(first)
	if err != nil {
		return err
	}

	if err := l.drv.Init(); err != nil {
		return err
	}
	defer l.drv.Fini()

	cols, rows := l.drv.Size()
	l.comp = compositor.New(cols, rows)
	l.disp = NewDispatcher(l.comp, l.mgr, l.opts.Bindings, l.logger)

	l.activate(handle)
	l.renderFrame()

	interval := time.Second / time.Duration(l.opts.TickRate)
	for !l.disp.QuitRequested() && l.mgr.HasActive() {
		ev := l.drv.ReadEvent(interval)
		render := l.disp.Dispatch(ev)

		if target := l.disp.TakePendingSwitch(); target != "" {
			l.switchTo(target)
			render = true
		}
		if render {
			l.renderFrame()
		}
	}

	l.mgr.Terminate()
	return nil
}

// activate constructs and starts a selected game and rebuilds the
// layout around its declared minimum size. Activation failures are
// GameErrors: already contained and logged, the loop simply winds
// down.
func (l *Loop) activate(h Handle) {
	gameRect := l.disp.Rect(widgetGame)
	cfg := game.Config{
		Cols:     gameRect.W,
		Rows:     gameRect.H,
		TickRate: l.opts.TickRate,
		Seed:     l.opts.Seed,
	}
	if err := l.mgr.Activate(h, cfg); err != nil {
		return
	}
	l.disp.Rebuild()
}

// switchTo terminates the current game and activates another, as
// requested by the departing game's input handler.
func (l *Loop) switchTo(target string) {
	handle, err := l.mgr.Select(target)
	if err != nil {
		// Dispatcher validated the target; a vanished name means the
		// registry was cleared under us, which ends the session.
		l.logger.Error("switch target vanished", "target", target)
		return
	}
	l.mgr.Terminate()
	l.activate(handle)
}

// renderFrame asks every widget for its updates, composes the frame,
// and sends the patch set to the driver.
func (l *Loop) renderFrame() {
	var widgets []compositor.Widget

	chromeRect := l.disp.Rect(widgetChrome)
	widgets = append(widgets, staticWidget{
		id:   widgetChrome,
		rect: chromeRect,
		updates: renderChrome(chromeRect,
			l.mgr.ActiveTitle(), l.mgr.ActiveState().String(), l.disp.Notice()),
	})

	gameRect := l.disp.Rect(widgetGame)
	if !gameRect.Empty() {
		// Games render in local coordinates against a normalized rect;
		// failures here terminate the game and the frame goes out
		// without it.
		local := core.NewRect(0, 0, gameRect.W, gameRect.H)
		updates, err := l.mgr.RenderActive(local)
		if err == nil && updates != nil {
			widgets = append(widgets, staticWidget{id: widgetGame, rect: gameRect, updates: updates})
		}
	}

	patch := l.comp.Compose(widgets)
	if len(patch) == 0 {
		return
	}
	if err := l.drv.WritePatch(patch); err != nil {
		l.logger.Error("patch write failed", "error", err)
	}
}
