package core

// Event is a terminal event delivered by the driver: a key press, a
// resize, or a tick. The set is sealed; the dispatcher switches on the
// concrete type.
type Event interface {
	isEvent()
}

// Key identifies a non-printable key, or KeyRune for printable input.
type Key int

// Recognized keys.
const (
	KeyRune Key = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyCtrlC
)

// KeyEvent is a single key press. Rune is meaningful only when Key is
// KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// ResizeEvent reports the new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

// TickEvent drives one render pass. It carries no payload and games
// never see it.
type TickEvent struct{}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (TickEvent) isEvent()   {}
