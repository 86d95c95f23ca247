package sshd

import (
	"sync"

	"github.com/charmbracelet/ssh"
	"github.com/gdamore/tcell/v2"
)

// sessionTty adapts an SSH session to the terminal handle tcell
// expects: reads and writes go over the session channel, and window
// change messages surface as resize notifications.
type sessionTty struct {
	ssh.Session

	mu      sync.Mutex
	width   int
	height  int
	notify  func()
	windows <-chan ssh.Window
	done    chan struct{}
}

func newSessionTty(sess ssh.Session, pty ssh.Pty, windows <-chan ssh.Window) *sessionTty {
	return &sessionTty{
		Session: sess,
		width:   pty.Window.Width,
		height:  pty.Window.Height,
		windows: windows,
		done:    make(chan struct{}),
	}
}

// Start begins forwarding window change messages. The remote side
// already has the terminal in raw mode, so there is no mode to switch.
func (t *sessionTty) Start() error {
	go func() {
		for {
			select {
			case w, ok := <-t.windows:
				if !ok {
					return
				}
				t.mu.Lock()
				t.width, t.height = w.Width, w.Height
				notify := t.notify
				t.mu.Unlock()
				if notify != nil {
					notify()
				}
			case <-t.done:
				return
			}
		}
	}()
	return nil
}

func (t *sessionTty) Stop() error {
	return nil
}

func (t *sessionTty) Drain() error {
	return nil
}

func (t *sessionTty) Close() error {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
	return t.Session.Close()
}

func (t *sessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.notify = cb
	t.mu.Unlock()
}

func (t *sessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.width, Height: t.height}, nil
}
