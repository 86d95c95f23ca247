package host

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/game"
)

// Store persists scores and save slots across sessions. The lifecycle
// manager treats persistence as best-effort: a nil Store or a failing
// write never interferes with running games.
type Store interface {
	SaveScore(gameID string, score int) (int64, error)
	LoadSave(gameID string) ([]byte, error)
	WriteSave(gameID string, data []byte) error
	ClearSave(gameID string) error
}

// Handle identifies a selected game before it is constructed.
type Handle struct {
	name string
}

// Name returns the registry name the handle was selected under.
func (h Handle) Name() string {
	return h.name
}

// activeGame is the registry's single active slot. After termination
// the game reference is dropped so nothing keeps it alive.
type activeGame struct {
	name  string
	title string
	g     game.Game
	state State

	// lastFrame is replayed while paused so a game that advances its
	// animation in Render stays frozen on screen.
	lastFrame []core.CellUpdate
}

// Manager drives games through the lifecycle state machine and
// isolates their failures from the host. The host owns the active game
// exclusively; no other component retains it after termination.
type Manager struct {
	registry *game.Registry
	store    Store
	logger   *log.Logger
	active   *activeGame
}

// NewManager creates a lifecycle manager over the given registry.
// store may be nil to run without persistence.
func NewManager(registry *game.Registry, store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// Select looks up a game name in the registry. It constructs nothing;
// an unknown name yields a *core.ConfigError.
func (m *Manager) Select(name string) (Handle, error) {
	if !m.registry.Exists(name) {
		return Handle{}, &core.ConfigError{Name: name}
	}
	return Handle{name: name}, nil
}

// Activate constructs the selected game, runs its initialization, and
// moves it to Running. Only one game can be active per session. Any
// failure during initialization is contained: the game is torn down,
// marked failed, and the error returned as a *core.GameError.
func (m *Manager) Activate(h Handle, cfg game.Config) error {
	if m.HasActive() {
		return fmt.Errorf("game %q is still active", m.active.name)
	}

	g, err := m.registry.Create(h.name)
	if err != nil {
		return err
	}

	m.active = &activeGame{
		name:  h.name,
		title: m.registry.Title(h.name),
		g:     g,
		state: StateRegistered,
	}
	m.transition(StateInitializing)

	if err := m.guard("init", func() error { return g.Init(cfg) }); err != nil {
		m.fail(err)
		return err
	}
	m.restoreSave(g)

	m.transition(StateRunning)
	m.logger.Info("game activated", "game", h.name, "cols", cfg.Cols, "rows", cfg.Rows)
	return nil
}

// Pause moves the running game to Paused, preserving its state.
func (m *Manager) Pause() error {
	return m.move(StatePaused)
}

// Resume moves a paused game back to Running. Resuming a terminated
// game fails with a *TransitionError rather than silently succeeding.
func (m *Manager) Resume() error {
	return m.move(StateRunning)
}

func (m *Manager) move(to State) error {
	if m.active == nil {
		return &TransitionError{From: StateTerminated, To: to}
	}
	if !m.active.state.CanTransition(to) {
		return &TransitionError{From: m.active.state, To: to}
	}
	m.active.state = to
	return nil
}

// Terminate releases the active game: snapshot and score are persisted
// best-effort, Teardown runs exactly once, and the active slot drops
// its reference. Safe to call with no active game.
func (m *Manager) Terminate() {
	if m.active == nil || m.active.g == nil {
		return
	}
	m.release(StateTerminated)
}

// release persists, tears down, and drops the game, ending in the
// given terminal state.
func (m *Manager) release(final State) {
	g := m.active.g
	name := m.active.name

	// Persist before teardown; both are best-effort, and a game that
	// panics while reporting its score or snapshot stops here too.
	if m.store != nil {
		if scorer, ok := g.(game.Scorer); ok && final == StateTerminated {
			var score int
			if err := m.guard("score", func() error { score = scorer.Score(); return nil }); err != nil {
				m.logger.Warn("could not read score", "game", name, "error", err)
			} else if score > 0 {
				if _, err := m.store.SaveScore(name, score); err != nil {
					m.logger.Warn("could not save score", "game", name, "error", err)
				}
			}
		}
		if saver, ok := g.(game.Saver); ok {
			m.persistSave(name, saver)
		}
	}

	// Teardown is guaranteed to run, even after a prior failure, and
	// its own panics stop at this boundary.
	if err := m.guard("teardown", func() error { g.Teardown(); return nil }); err != nil {
		m.logger.Error("teardown failed", "game", name, "error", err)
	}

	m.active.g = nil
	m.active.state = final
	m.logger.Info("game released", "game", name, "state", final)
}

// fail handles a GameError raised by any game step: log it, release
// the game, and leave the host running.
func (m *Manager) fail(err error) {
	var gerr *core.GameError
	if errors.As(err, &gerr) {
		m.logger.Error("game failure contained", "game", gerr.Game, "stage", gerr.Stage, "error", gerr.Err)
	} else {
		m.logger.Error("game failure contained", "game", m.active.name, "error", err)
	}
	m.release(StateError)
}

// transition applies a known-legal edge.
func (m *Manager) transition(to State) {
	m.active.state = to
}

// HasActive reports whether a game is in a non-terminal state.
func (m *Manager) HasActive() bool {
	return m.active != nil && !m.active.state.Terminal()
}

// ActiveState returns the current lifecycle state, or StateTerminated
// when nothing was ever activated.
func (m *Manager) ActiveState() State {
	if m.active == nil {
		return StateTerminated
	}
	return m.active.state
}

// ActiveName returns the active game's registry name, or "".
func (m *Manager) ActiveName() string {
	if m.active == nil {
		return ""
	}
	return m.active.name
}

// ActiveTitle returns the active game's display title, or "".
func (m *Manager) ActiveTitle() string {
	if m.active == nil {
		return ""
	}
	return m.active.title
}

// MinSize returns the active game's declared minimum content size.
func (m *Manager) MinSize() (cols, rows int) {
	if m.active == nil || m.active.g == nil {
		return 1, 1
	}
	if sizer, ok := m.active.g.(game.Sizer); ok {
		return sizer.MinSize()
	}
	return 1, 1
}

// RenderActive runs the active game's render step for its content
// rectangle. While paused the previous frame is replayed instead of
// calling the game, freezing time-driven games. A failure inside the
// game terminates it and is returned as a *core.GameError; the host
// keeps running.
func (m *Manager) RenderActive(rect core.Rect) ([]core.CellUpdate, error) {
	if !m.HasActive() || m.active.state == StateInitializing {
		return nil, nil
	}
	if m.active.state == StatePaused {
		return m.active.lastFrame, nil
	}
	var updates []core.CellUpdate
	err := m.guard("render", func() error {
		updates = m.active.g.Render(rect)
		return nil
	})
	if err != nil {
		m.fail(err)
		return nil, err
	}
	m.active.lastFrame = updates
	return updates, nil
}

// HandleInput routes a key event to the running game. Paused and
// terminated games receive nothing. Failures are contained the same
// way render failures are.
func (m *Manager) HandleInput(ev core.KeyEvent) (game.Action, error) {
	if !m.HasActive() || m.active.state != StateRunning {
		return game.Continue, nil
	}
	action := game.Continue
	err := m.guard("input", func() error {
		action = m.active.g.HandleInput(ev)
		return nil
	})
	if err != nil {
		m.fail(err)
		return game.Continue, err
	}
	return action, nil
}

// guard runs one game step, converting an error or panic into a
// *core.GameError attributed to the active game.
func (m *Manager) guard(stage string, fn func() error) error {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err != nil {
		return &core.GameError{Game: m.active.name, Stage: stage, Err: err}
	}
	return nil
}

// restoreSave replays a persisted snapshot into a freshly initialized
// game. A corrupt snapshot is dropped rather than failing activation.
func (m *Manager) restoreSave(g game.Game) {
	saver, ok := g.(game.Saver)
	if !ok || m.store == nil {
		return
	}
	data, err := m.store.LoadSave(m.active.name)
	if err != nil {
		m.logger.Warn("could not load save", "game", m.active.name, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := m.guard("init", func() error { return saver.Restore(data) }); err != nil {
		m.logger.Warn("dropping unreadable save", "game", m.active.name, "error", err)
		if cerr := m.store.ClearSave(m.active.name); cerr != nil {
			m.logger.Warn("could not clear save", "game", m.active.name, "error", cerr)
		}
	}
}

// persistSave writes or clears the game's save slot.
func (m *Manager) persistSave(name string, saver game.Saver) {
	var data []byte
	err := m.guard("save", func() error {
		var serr error
		data, serr = saver.Save()
		return serr
	})
	if err != nil {
		m.logger.Warn("could not snapshot game", "game", name, "error", err)
		return
	}
	if len(data) == 0 {
		if err := m.store.ClearSave(name); err != nil {
			m.logger.Warn("could not clear save", "game", name, "error", err)
		}
		return
	}
	if err := m.store.WriteSave(name, data); err != nil {
		m.logger.Warn("could not write save", "game", name, "error", err)
	}
}
