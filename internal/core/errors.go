package core

import "fmt"

// ConfigError reports a game name that is not present in the registry.
// It is fatal to the process (exit code 1 in the CLI).
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown game %q", e.Name)
}

// DriverError reports a failure of the terminal driver, such as being
// unable to enter raw mode. It is fatal to the process (exit code 2).
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("terminal driver: %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}

// LayoutError reports that the terminal is smaller than the minimum
// size a widget declared. It is non-fatal: rendering degrades to
// clipping and the session continues with a user-visible notice.
type LayoutError struct {
	WidgetID   string
	MinW, MinH int
	W, H       int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("widget %q needs at least %dx%d, terminal is %dx%d",
		e.WidgetID, e.MinW, e.MinH, e.W, e.H)
}

// GameError reports a failure raised inside a game's init, render, or
// input step. The lifecycle manager recovers it at the game boundary,
// terminates the offending game, and keeps the host running.
type GameError struct {
	Game  string
	Stage string // "init", "render", or "input"
	Err   error
}

func (e *GameError) Error() string {
	return fmt.Sprintf("game %q failed during %s: %v", e.Game, e.Stage, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}
