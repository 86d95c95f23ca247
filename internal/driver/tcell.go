package driver

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/NeoGalaxy/terminity/internal/core"
)

// TCell drives a real terminal through a tcell screen.
type TCell struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	inited bool
}

// New creates a driver for the process's controlling terminal.
func New() (*TCell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, &core.DriverError{Op: "open terminal", Err: err}
	}
	return NewFromScreen(screen), nil
}

// NewFromScreen wraps an existing tcell screen. Used by the SSH server
// (screen bound to a session PTY) and by tests (simulation screen).
func NewFromScreen(screen tcell.Screen) *TCell {
	return &TCell{
		screen: screen,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}
}

// Init enters raw mode and starts the event poll goroutine.
func (d *TCell) Init() error {
	if err := d.screen.Init(); err != nil {
		return &core.DriverError{Op: "enter raw mode", Err: err}
	}
	d.inited = true
	d.screen.SetStyle(tcell.StyleDefault)

	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				return
			}
			select {
			case d.events <- ev:
			case <-d.quit:
				return
			}
		}
	}()

	return nil
}

// Fini restores the terminal. Safe to call repeatedly and after a
// failed Init.
func (d *TCell) Fini() {
	if !d.inited {
		return
	}
	d.inited = false
	close(d.quit)
	d.screen.Fini()
}

// Size returns the terminal dimensions.
func (d *TCell) Size() (cols, rows int) {
	return d.screen.Size()
}

// ReadEvent blocks until a key or resize arrives or the timeout
// elapses, in which case it reports a tick. Events the runtime does
// not model (mouse, paste) are skipped without consuming the timeout
// budget twice.
func (d *TCell) ReadEvent(timeout time.Duration) core.Event {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev := <-d.events:
			if converted, ok := convertEvent(ev); ok {
				return converted
			}
		case <-timer.C:
			return core.TickEvent{}
		}
	}
}

// WritePatch applies the patch set and flushes the screen.
func (d *TCell) WritePatch(patch []core.CellUpdate) error {
	for _, u := range patch {
		d.screen.SetContent(u.X, u.Y, u.Cell.Rune, nil, cellStyle(u.Cell))
	}
	d.screen.Show()
	return nil
}

func convertEvent(ev tcell.Event) (core.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return convertKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return core.ResizeEvent{Width: w, Height: h}, true
	}
	return nil, false
}

var keyTable = map[tcell.Key]core.Key{
	tcell.KeyEnter:      core.KeyEnter,
	tcell.KeyEscape:     core.KeyEsc,
	tcell.KeyBackspace:  core.KeyBackspace,
	tcell.KeyBackspace2: core.KeyBackspace,
	tcell.KeyTab:        core.KeyTab,
	tcell.KeyDelete:     core.KeyDelete,
	tcell.KeyUp:         core.KeyUp,
	tcell.KeyDown:       core.KeyDown,
	tcell.KeyLeft:       core.KeyLeft,
	tcell.KeyRight:      core.KeyRight,
	tcell.KeyPgUp:       core.KeyPageUp,
	tcell.KeyPgDn:       core.KeyPageDown,
	tcell.KeyCtrlC:      core.KeyCtrlC,
}

func convertKey(ev *tcell.EventKey) (core.Event, bool) {
	if ev.Key() == tcell.KeyRune {
		return core.KeyEvent{Key: core.KeyRune, Rune: ev.Rune()}, true
	}
	if k, ok := keyTable[ev.Key()]; ok {
		return core.KeyEvent{Key: k}, true
	}
	// Control keys outside the table are dropped; aliasing them to a
	// mapped key would collide with the session bindings.
	return nil, false
}

// ANSI palette indexes for the core color set.
var colorTable = map[core.Color]tcell.Color{
	core.ColorBlack:         tcell.PaletteColor(0),
	core.ColorRed:           tcell.PaletteColor(1),
	core.ColorGreen:         tcell.PaletteColor(2),
	core.ColorYellow:        tcell.PaletteColor(3),
	core.ColorBlue:          tcell.PaletteColor(4),
	core.ColorMagenta:       tcell.PaletteColor(5),
	core.ColorCyan:          tcell.PaletteColor(6),
	core.ColorWhite:         tcell.PaletteColor(7),
	core.ColorBrightRed:     tcell.PaletteColor(9),
	core.ColorBrightGreen:   tcell.PaletteColor(10),
	core.ColorBrightYellow:  tcell.PaletteColor(11),
	core.ColorBrightBlue:    tcell.PaletteColor(12),
	core.ColorBrightMagenta: tcell.PaletteColor(13),
	core.ColorBrightCyan:    tcell.PaletteColor(14),
	core.ColorBrightWhite:   tcell.PaletteColor(15),
	core.ColorGray:          tcell.PaletteColor(245),
}

func cellStyle(c core.Cell) tcell.Style {
	style := tcell.StyleDefault
	if fg, ok := colorTable[c.Fg]; ok {
		style = style.Foreground(fg)
	}
	if bg, ok := colorTable[c.Bg]; ok {
		style = style.Background(bg)
	}
	if c.Attrs&core.AttrBold != 0 {
		style = style.Bold(true)
	}
	if c.Attrs&core.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if c.Attrs&core.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if c.Attrs&core.AttrDim != 0 {
		style = style.Dim(true)
	}
	if c.Attrs&core.AttrBlink != 0 {
		style = style.Blink(true)
	}
	return style
}
