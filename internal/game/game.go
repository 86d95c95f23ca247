// Package game defines the contract between the terminity host and the
// games it runs, plus the registry the host selects games from. Games
// contain pure logic: they receive a rectangle and events, and return
// cell updates confined to that rectangle. The host owns everything
// else (raw terminal, buffers, layout, timing).
package game

import "github.com/NeoGalaxy/terminity/internal/core"

// Config is passed to a game at initialization.
type Config struct {
	Cols     int   // Content area width in cells
	Rows     int   // Content area height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay
}

// ActionKind is what a game asks the host to do after handling input.
type ActionKind int

const (
	// ActionContinue keeps the current game running.
	ActionContinue ActionKind = iota
	// ActionQuit ends the session.
	ActionQuit
	// ActionSwitch terminates the current game and activates another.
	ActionSwitch
)

// Action is the result of a game's input handling step.
type Action struct {
	Kind ActionKind
	Game string // Target game name, set only for ActionSwitch
}

// Continue is the no-op action.
var Continue = Action{Kind: ActionContinue}

// Quit asks the host to end the session.
var Quit = Action{Kind: ActionQuit}

// SwitchTo asks the host to terminate this game and activate another.
func SwitchTo(name string) Action {
	return Action{Kind: ActionSwitch, Game: name}
}

// Game is the capability set every hosted game implements. The host
// calls Init once, then interleaves HandleInput and Render, and finally
// calls Teardown exactly once, even after a prior failure.
type Game interface {
	// Init prepares the game for the given content area. A non-nil
	// error aborts activation.
	Init(cfg Config) error

	// Render returns the cell updates for the current frame. Updates
	// are expressed in coordinates local to rect's origin and must stay
	// within rect's width and height; the host clips strays.
	Render(rect core.Rect) []core.CellUpdate

	// HandleInput reacts to a key event routed to this game.
	HandleInput(ev core.KeyEvent) Action

	// Teardown releases the game's resources.
	Teardown()
}

// Sizer is implemented by games that declare a minimum playable size.
// Below it the host clips rendering and shows a notice instead of
// failing.
type Sizer interface {
	MinSize() (cols, rows int)
}

// Scorer is implemented by games that produce a score worth recording.
type Scorer interface {
	Score() int
}

// Saver is implemented by games whose state survives across sessions.
// The host persists the snapshot on termination and replays it through
// Restore right after the next activation's Init. Save returning nil
// data clears the stored slot.
type Saver interface {
	Save() ([]byte, error)
	Restore(data []byte) error
}
