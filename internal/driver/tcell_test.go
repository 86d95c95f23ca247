package driver

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/NeoGalaxy/terminity/internal/core"
)

func newSimDriver(t *testing.T) (*TCell, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	d := NewFromScreen(sim)
	if err := d.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(d.Fini)
	return d, sim
}

func TestReadEventKey(t *testing.T) {
	d, sim := newSimDriver(t)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	ev := d.ReadEvent(time.Second)
	key, ok := ev.(core.KeyEvent)
	if !ok {
		t.Fatalf("ReadEvent() = %T, expected core.KeyEvent", ev)
	}
	if key.Key != core.KeyRune || key.Rune != 'x' {
		t.Errorf("KeyEvent = %+v, expected rune 'x'", key)
	}
}

func TestReadEventSpecialKeys(t *testing.T) {
	d, sim := newSimDriver(t)

	tests := []struct {
		in   tcell.Key
		want core.Key
	}{
		{tcell.KeyEnter, core.KeyEnter},
		{tcell.KeyEscape, core.KeyEsc},
		{tcell.KeyUp, core.KeyUp},
		{tcell.KeyCtrlC, core.KeyCtrlC},
	}
	for _, tc := range tests {
		sim.InjectKey(tc.in, 0, tcell.ModNone)
		ev := d.ReadEvent(time.Second)
		key, ok := ev.(core.KeyEvent)
		if !ok {
			t.Fatalf("ReadEvent() = %T, expected core.KeyEvent", ev)
		}
		if key.Key != tc.want {
			t.Errorf("key %v converted to %v, expected %v", tc.in, key.Key, tc.want)
		}
	}
}

func TestReadEventDropsUnmappedKeys(t *testing.T) {
	d, sim := newSimDriver(t)

	// Keys the runtime does not model must vanish instead of surfacing
	// as some mapped key and triggering its binding.
	sim.InjectKey(tcell.KeyF1, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlZ, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'y', tcell.ModNone)

	ev := d.ReadEvent(time.Second)
	key, ok := ev.(core.KeyEvent)
	if !ok {
		t.Fatalf("ReadEvent() = %T, expected core.KeyEvent", ev)
	}
	if key.Key != core.KeyRune || key.Rune != 'y' {
		t.Errorf("KeyEvent = %+v, expected rune 'y'", key)
	}
}

func TestReadEventTimeoutTicks(t *testing.T) {
	d, _ := newSimDriver(t)

	ev := d.ReadEvent(5 * time.Millisecond)
	if _, ok := ev.(core.TickEvent); !ok {
		t.Errorf("ReadEvent() on idle terminal = %T, expected core.TickEvent", ev)
	}
}

func TestWritePatch(t *testing.T) {
	d, sim := newSimDriver(t)

	patch := []core.CellUpdate{
		{X: 0, Y: 0, Cell: core.Cell{Rune: 'a', Fg: core.ColorGreen}},
		{X: 2, Y: 1, Cell: core.Cell{Rune: 'b', Attrs: core.AttrBold}},
	}
	if err := d.WritePatch(patch); err != nil {
		t.Fatalf("WritePatch() failed: %v", err)
	}

	cells, w, _ := sim.GetContents()
	if got := cells[0].Runes[0]; got != 'a' {
		t.Errorf("cell (0,0) = %q, expected 'a'", got)
	}
	if got := cells[1*w+2].Runes[0]; got != 'b' {
		t.Errorf("cell (2,1) = %q, expected 'b'", got)
	}
}
