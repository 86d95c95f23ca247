package snake

import (
	"testing"

	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/game"
)

var (
	_ game.Game   = (*Game)(nil)
	_ game.Sizer  = (*Game)(nil)
	_ game.Scorer = (*Game)(nil)
	_ game.Saver  = (*Game)(nil)
)

// fastConfig gives one snake move per render.
func fastConfig() game.Config {
	return game.Config{Cols: 20, Rows: 10, TickRate: 8, Seed: 42}
}

func newTestGame(t *testing.T, cfg game.Config) *Game {
	t.Helper()
	g := New()
	if err := g.Init(cfg); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return g
}

func render(g *Game) []core.CellUpdate {
	return g.Render(core.NewRect(0, 0, g.cols, g.rows))
}

func TestInitRejectsTinyBoard(t *testing.T) {
	g := New()
	if err := g.Init(game.Config{Cols: 4, Rows: 3, TickRate: 30, Seed: 1}); err == nil {
		t.Error("Init() should reject a board below the minimum size")
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs stay identical.
	cfg := fastConfig()
	g1 := newTestGame(t, cfg)
	g2 := newTestGame(t, cfg)

	for i := 0; i < 100; i++ {
		if i == 5 {
			g1.HandleInput(core.KeyEvent{Key: core.KeyDown})
			g2.HandleInput(core.KeyEvent{Key: core.KeyDown})
		}
		if i == 8 {
			g1.HandleInput(core.KeyEvent{Key: core.KeyLeft})
			g2.HandleInput(core.KeyEvent{Key: core.KeyLeft})
		}
		render(g1)
		render(g2)
	}

	if g1.score != g2.score {
		t.Errorf("Score mismatch: %d vs %d", g1.score, g2.score)
	}
	if len(g1.snake) != len(g2.snake) || g1.snake[0] != g2.snake[0] {
		t.Errorf("Snake mismatch: %v vs %v", g1.snake, g2.snake)
	}
	if g1.food != g2.food {
		t.Errorf("Food mismatch: %v vs %v", g1.food, g2.food)
	}
	if g1.gameOver != g2.gameOver {
		t.Errorf("GameOver mismatch: %v vs %v", g1.gameOver, g2.gameOver)
	}
}

func TestMovesOncePerCadence(t *testing.T) {
	g := newTestGame(t, fastConfig())
	head := g.snake[0]

	render(g)
	if got := g.snake[0]; got.X != head.X+1 || got.Y != head.Y {
		t.Errorf("head = %v after one render, expected %v moved right", got, head)
	}
}

func TestSlowCadenceHoldsBetweenMoves(t *testing.T) {
	cfg := fastConfig()
	cfg.TickRate = 32 // moveEvery = 4
	g := newTestGame(t, cfg)
	head := g.snake[0]

	for i := 0; i < 3; i++ {
		render(g)
	}
	if g.snake[0] != head {
		t.Errorf("snake moved after 3 of 4 renders")
	}
	render(g)
	if g.snake[0] == head {
		t.Error("snake did not move on the 4th render")
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, fastConfig())

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	g.HandleInput(core.KeyEvent{Key: core.KeyLeft})
	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	g.HandleInput(core.KeyEvent{Key: core.KeyDown})
	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
}

func TestWASDSteering(t *testing.T) {
	g := newTestGame(t, fastConfig())
	g.HandleInput(core.KeyEvent{Key: core.KeyRune, Rune: 's'})
	if g.nextDir != DirDown {
		t.Errorf("Expected 's' to steer down, nextDir = %v", g.nextDir)
	}
}

func TestEatingGrowsAndScores(t *testing.T) {
	g := newTestGame(t, fastConfig())

	// Plant food directly ahead of the head.
	head := g.snake[0]
	g.food = Point{X: head.X + 1, Y: head.Y}
	startLen := len(g.snake)

	render(g)

	if g.score != 1 {
		t.Errorf("score = %d after eating, expected 1", g.score)
	}
	if g.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", g.Score())
	}
	if len(g.snake) != startLen+1 {
		t.Errorf("snake length = %d, expected %d", len(g.snake), startLen+1)
	}
	if g.food == (Point{X: head.X + 1, Y: head.Y}) {
		t.Error("food was not respawned after being eaten")
	}
}

func TestWallCollisionEndsRun(t *testing.T) {
	g := newTestGame(t, fastConfig())

	// Head starts in the interior moving right; the wall is at most
	// cols renders away.
	for i := 0; i < g.cols && !g.gameOver; i++ {
		render(g)
	}
	if !g.gameOver {
		t.Fatal("snake should have hit the right wall")
	}

	// The run is frozen until restarted.
	head := g.snake[0]
	render(g)
	if g.snake[0] != head {
		t.Error("snake moved after game over")
	}

	g.HandleInput(core.KeyEvent{Key: core.KeyRune, Rune: 'r'})
	if g.gameOver {
		t.Error("'r' should restart a finished run")
	}
	if g.score != 0 {
		t.Errorf("score = %d after restart, expected 0", g.score)
	}
}

func TestQuitKey(t *testing.T) {
	g := newTestGame(t, fastConfig())
	if action := g.HandleInput(core.KeyEvent{Key: core.KeyRune, Rune: 'q'}); action != game.Quit {
		t.Errorf("'q' returned %+v, expected Quit", action)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newTestGame(t, fastConfig())

	for i := 0; i < 100; i++ {
		g.spawnFood()
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if !g.inBoard(g.food) {
			t.Errorf("Food spawned outside the board at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestRenderStaysInRect(t *testing.T) {
	g := newTestGame(t, fastConfig())
	g.gameOver = true // Include the banner in the frame

	for _, u := range render(g) {
		if u.X < 0 || u.X >= g.cols || u.Y < 0 || u.Y >= g.rows {
			t.Errorf("update at (%d,%d) outside %dx%d", u.X, u.Y, g.cols, g.rows)
		}
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	g := newTestGame(t, fastConfig())
	for i := 0; i < 3; i++ {
		render(g)
	}
	g.score = 7

	data, err := g.Save()
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if data == nil {
		t.Fatal("Save() of a live run returned nil")
	}

	fresh := newTestGame(t, fastConfig())
	if err := fresh.Restore(data); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if fresh.score != 7 {
		t.Errorf("restored score = %d, expected 7", fresh.score)
	}
	if len(fresh.snake) != len(g.snake) || fresh.snake[0] != g.snake[0] {
		t.Errorf("restored snake %v, expected %v", fresh.snake, g.snake)
	}
	if fresh.direction != g.direction {
		t.Errorf("restored direction %v, expected %v", fresh.direction, g.direction)
	}
}

func TestSaveClearsAfterGameOver(t *testing.T) {
	g := newTestGame(t, fastConfig())
	g.gameOver = true

	data, err := g.Save()
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if data != nil {
		t.Error("Save() after game over should return nil to clear the slot")
	}
}

func TestRestoreRejectsBadSnapshots(t *testing.T) {
	g := newTestGame(t, fastConfig())

	if err := g.Restore([]byte("{")); err == nil {
		t.Error("Restore() should reject malformed JSON")
	}
	if err := g.Restore([]byte(`{"snake":[]}`)); err == nil {
		t.Error("Restore() should reject an empty snake")
	}
	if err := g.Restore([]byte(`{"snake":[{"X":500,"Y":500}]}`)); err == nil {
		t.Error("Restore() should reject segments outside the board")
	}
}

func TestResizeOutsideBoardEndsRun(t *testing.T) {
	g := newTestGame(t, game.Config{Cols: 40, Rows: 20, TickRate: 8, Seed: 42})

	// Shrink the board to exclude the head.
	g.Render(core.NewRect(0, 0, 12, 6))
	if !g.gameOver {
		t.Error("head outside the shrunk board should end the run")
	}
}
