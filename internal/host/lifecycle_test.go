package host

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/game"
)

// testGame is a configurable game double.
type testGame struct {
	initErr     error
	panicRender bool
	panicInput  bool
	panicScore  bool
	panicSave   bool

	initCalls     int
	teardownCalls int
	lastKey       rune
	score         int
	saved         []byte
	restored      []byte
}

func (g *testGame) Init(game.Config) error {
	g.initCalls++
	return g.initErr
}

func (g *testGame) Render(rect core.Rect) []core.CellUpdate {
	if g.panicRender {
		panic("render exploded")
	}
	if g.lastKey == 0 {
		return nil
	}
	return []core.CellUpdate{{X: 0, Y: 0, Cell: core.Cell{Rune: g.lastKey}}}
}

func (g *testGame) HandleInput(ev core.KeyEvent) game.Action {
	if g.panicInput {
		panic("input exploded")
	}
	g.lastKey = ev.Rune
	return game.Continue
}

func (g *testGame) Teardown() {
	g.teardownCalls++
}

func (g *testGame) Score() int {
	if g.panicScore {
		panic("score exploded")
	}
	return g.score
}

func (g *testGame) Save() ([]byte, error) {
	if g.panicSave {
		panic("save exploded")
	}
	return g.saved, nil
}

func (g *testGame) Restore(data []byte) error { g.restored = data; return nil }

// memStore is an in-memory Store.
type memStore struct {
	scores map[string][]int
	saves  map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{scores: make(map[string][]int), saves: make(map[string][]byte)}
}

func (s *memStore) SaveScore(gameID string, score int) (int64, error) {
	s.scores[gameID] = append(s.scores[gameID], score)
	return int64(len(s.scores[gameID])), nil
}

func (s *memStore) LoadSave(gameID string) ([]byte, error)      { return s.saves[gameID], nil }
func (s *memStore) WriteSave(gameID string, data []byte) error  { s.saves[gameID] = data; return nil }
func (s *memStore) ClearSave(gameID string) error               { delete(s.saves, gameID); return nil }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestManager(t *testing.T, g *testGame, store Store) *Manager {
	t.Helper()
	reg := game.NewRegistry()
	if err := reg.Register("test", "Test Game", func() game.Game { return g }); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	return NewManager(reg, store, quietLogger())
}

func activate(t *testing.T, m *Manager) Handle {
	t.Helper()
	h, err := m.Select("test")
	if err != nil {
		t.Fatalf("Select() failed: %v", err)
	}
	if err := m.Activate(h, game.Config{Cols: 20, Rows: 10, TickRate: 30, Seed: 1}); err != nil {
		t.Fatalf("Activate() failed: %v", err)
	}
	return h
}

func TestManagerActivateRuns(t *testing.T) {
	g := &testGame{}
	m := newTestManager(t, g, nil)

	activate(t, m)

	if !m.HasActive() {
		t.Fatal("manager should have an active game")
	}
	if m.ActiveState() != StateRunning {
		t.Errorf("ActiveState() = %s, expected running", m.ActiveState())
	}
	if g.initCalls != 1 {
		t.Errorf("Init called %d times, expected 1", g.initCalls)
	}
}

func TestManagerSelectUnknown(t *testing.T) {
	m := newTestManager(t, &testGame{}, nil)

	_, err := m.Select("missing")
	var cfgErr *core.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Select() error = %v, expected *core.ConfigError", err)
	}
	if m.HasActive() {
		t.Error("failed selection must construct no game")
	}
}

func TestManagerSingleActiveGame(t *testing.T) {
	m := newTestManager(t, &testGame{}, nil)
	h := activate(t, m)

	if err := m.Activate(h, game.Config{}); err == nil {
		t.Error("Activate() with a game already active should fail")
	}
}

func TestManagerPauseResume(t *testing.T) {
	g := &testGame{}
	m := newTestManager(t, g, nil)
	activate(t, m)

	if err := m.Pause(); err != nil {
		t.Fatalf("Pause() failed: %v", err)
	}
	if m.ActiveState() != StatePaused {
		t.Errorf("state after Pause = %s", m.ActiveState())
	}

	// A paused game keeps its state in memory.
	if _, err := m.HandleInput(core.KeyEvent{Key: core.KeyRune, Rune: 'x'}); err != nil {
		t.Fatalf("HandleInput() while paused failed: %v", err)
	}
	if g.lastKey != 0 {
		t.Error("paused game must not receive input")
	}

	if err := m.Resume(); err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	if m.ActiveState() != StateRunning {
		t.Errorf("state after Resume = %s", m.ActiveState())
	}
}

func TestManagerResumeTerminated(t *testing.T) {
	g := &testGame{}
	m := newTestManager(t, g, nil)
	activate(t, m)
	m.Terminate()

	if g.teardownCalls != 1 {
		t.Fatalf("Teardown called %d times, expected exactly 1", g.teardownCalls)
	}

	err := m.Resume()
	var trErr *TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("Resume() on terminated game = %v, expected *TransitionError", err)
	}

	// Terminate is idempotent and never tears down twice.
	m.Terminate()
	if g.teardownCalls != 1 {
		t.Errorf("Teardown called %d times after double Terminate, expected 1", g.teardownCalls)
	}
}

func TestManagerContainsRenderPanic(t *testing.T) {
	g := &testGame{panicRender: true}
	m := newTestManager(t, g, nil)
	activate(t, m)

	_, err := m.RenderActive(core.NewRect(0, 0, 20, 10))
	var gameErr *core.GameError
	if !errors.As(err, &gameErr) {
		t.Fatalf("RenderActive() = %v, expected *core.GameError", err)
	}
	if gameErr.Stage != "render" {
		t.Errorf("GameError.Stage = %q, expected %q", gameErr.Stage, "render")
	}

	// The game is gone, teardown ran anyway, the host is fine.
	if m.HasActive() {
		t.Error("failed game should be released")
	}
	if g.teardownCalls != 1 {
		t.Errorf("Teardown called %d times after failure, expected 1", g.teardownCalls)
	}
}

func TestManagerContainsInputPanic(t *testing.T) {
	g := &testGame{panicInput: true}
	m := newTestManager(t, g, nil)
	activate(t, m)

	_, err := m.HandleInput(core.KeyEvent{Key: core.KeyRune, Rune: 'a'})
	var gameErr *core.GameError
	if !errors.As(err, &gameErr) {
		t.Fatalf("HandleInput() = %v, expected *core.GameError", err)
	}
	if m.HasActive() {
		t.Error("failed game should be released")
	}
}

func TestManagerContainsInitFailure(t *testing.T) {
	g := &testGame{initErr: fmt.Errorf("no assets")}
	m := newTestManager(t, g, nil)

	h, err := m.Select("test")
	if err != nil {
		t.Fatalf("Select() failed: %v", err)
	}
	err = m.Activate(h, game.Config{})

	var gameErr *core.GameError
	if !errors.As(err, &gameErr) {
		t.Fatalf("Activate() = %v, expected *core.GameError", err)
	}
	if gameErr.Stage != "init" {
		t.Errorf("GameError.Stage = %q, expected %q", gameErr.Stage, "init")
	}
	if g.teardownCalls != 1 {
		t.Errorf("Teardown called %d times after init failure, expected 1", g.teardownCalls)
	}
	if m.HasActive() {
		t.Error("failed activation should leave no active game")
	}
}

func TestManagerScorePersistence(t *testing.T) {
	g := &testGame{score: 42}
	store := newMemStore()
	m := newTestManager(t, g, store)
	activate(t, m)
	m.Terminate()

	if got := store.scores["test"]; len(got) != 1 || got[0] != 42 {
		t.Errorf("stored scores = %v, expected [42]", got)
	}
}

func TestManagerContainsReleasePanics(t *testing.T) {
	// A game that fails during play and then panics again while its
	// snapshot is persisted must not unwind past the manager.
	g := &testGame{panicRender: true, panicSave: true}
	store := newMemStore()
	m := newTestManager(t, g, store)
	activate(t, m)

	_, err := m.RenderActive(core.NewRect(0, 0, 20, 10))
	var gameErr *core.GameError
	if !errors.As(err, &gameErr) {
		t.Fatalf("RenderActive() = %v, expected *core.GameError", err)
	}
	if m.HasActive() {
		t.Error("failed game should be released")
	}
	if g.teardownCalls != 1 {
		t.Errorf("Teardown called %d times, expected 1", g.teardownCalls)
	}
	if _, ok := store.saves["test"]; ok {
		t.Error("a panicking Save must not write a slot")
	}
}

func TestManagerContainsScorePanic(t *testing.T) {
	g := &testGame{panicScore: true, saved: []byte("snapshot")}
	store := newMemStore()
	m := newTestManager(t, g, store)
	activate(t, m)
	m.Terminate()

	if got := store.scores["test"]; len(got) != 0 {
		t.Errorf("stored scores = %v, expected none", got)
	}
	// The score panic must not block the rest of the release path.
	if string(store.saves["test"]) != "snapshot" {
		t.Errorf("save slot = %q, expected %q", store.saves["test"], "snapshot")
	}
	if g.teardownCalls != 1 {
		t.Errorf("Teardown called %d times, expected 1", g.teardownCalls)
	}
}

func TestManagerSaveRoundTrip(t *testing.T) {
	store := newMemStore()

	first := &testGame{saved: []byte("snapshot")}
	m := newTestManager(t, first, store)
	activate(t, m)
	m.Terminate()

	if string(store.saves["test"]) != "snapshot" {
		t.Fatalf("save slot = %q, expected %q", store.saves["test"], "snapshot")
	}

	// A fresh instance of the same game gets the snapshot back.
	second := &testGame{}
	m2 := newTestManager(t, second, store)
	activate(t, m2)

	if string(second.restored) != "snapshot" {
		t.Errorf("restored = %q, expected %q", second.restored, "snapshot")
	}

	// Saving nil clears the slot.
	m2.Terminate()
	if _, ok := store.saves["test"]; ok {
		t.Error("nil snapshot should clear the save slot")
	}
}
