// Package driver binds the terminity runtime to a terminal. The
// production implementation sits on tcell; the host only ever sees the
// Driver interface, which keeps the event loop testable with a fake.
package driver

import (
	"time"

	"github.com/NeoGalaxy/terminity/internal/core"
)

// Driver is the external terminal boundary: raw-mode control, a
// blocking event read with timeout, a size query, and patch output.
type Driver interface {
	// Init puts the terminal into raw mode on the alternate screen.
	// Failures are reported as *core.DriverError and are fatal.
	Init() error

	// Fini restores the terminal. Paired with a successful Init and
	// safe to call more than once; the host defers it on every exit
	// path.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (cols, rows int)

	// ReadEvent blocks for the next terminal event. When the timeout
	// elapses with no input it returns a TickEvent, bounding render
	// latency even on an idle terminal.
	ReadEvent(timeout time.Duration) core.Event

	// WritePatch applies a compositor patch set to the terminal and
	// flushes it.
	WritePatch(patch []core.CellUpdate) error
}
