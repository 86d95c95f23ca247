// Package snake implements the classic snake game on the terminity
// game contract. Time progression is driven by the host's render
// cadence; input only steers.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/game"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a 2D coordinate on the board.
type Point struct {
	X, Y int
}

const hudRows = 1

// Game implements the snake game.
type Game struct {
	rng       *rand.Rand
	cols      int
	rows      int
	tickRate  int
	moveEvery int // Renders between snake moves
	moveTick  int

	// Snake state, head at index 0
	snake     []Point
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growing   bool      // If true, don't remove tail on next move

	food     Point
	score    int
	gameOver bool
}

// New creates a snake game.
func New() *Game {
	return &Game{}
}

// Init sets up the board for the given content area.
func (g *Game) Init(cfg game.Config) error {
	if cfg.Cols < minCols || cfg.Rows < minRows {
		return fmt.Errorf("snake: %dx%d is below the minimum %dx%d",
			cfg.Cols, cfg.Rows, minCols, minRows)
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.cols = cfg.Cols
	g.rows = cfg.Rows
	g.tickRate = cfg.TickRate
	// Roughly 8 moves per second regardless of the host's tick rate.
	g.moveEvery = max(1, cfg.TickRate/8)
	g.restart()
	return nil
}

// restart resets the board keeping dimensions and RNG.
func (g *Game) restart() {
	g.score = 0
	g.gameOver = false
	g.moveTick = 0
	g.initSnake()
	g.spawnFood()
}

// initSnake places a 3-segment snake left of center, heading right.
func (g *Game) initSnake() {
	startX := g.cols / 3
	startY := hudRows + (g.rows-hudRows)/2
	g.snake = []Point{
		{X: startX + 2, Y: startY}, // Head
		{X: startX + 1, Y: startY},
		{X: startX, Y: startY},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false
}

// spawnFood places food at a random empty interior cell.
func (g *Game) spawnFood() {
	var emptyCells []Point
	for y := hudRows + 1; y < g.rows-1; y++ {
		for x := 1; x < g.cols-1; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		// Board is full; nothing left to eat.
		g.food = Point{X: -1, Y: -1}
		return
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// HandleInput steers the snake. Direction changes are buffered so two
// quick presses within one move cannot reverse the snake into itself.
func (g *Game) HandleInput(ev core.KeyEvent) game.Action {
	switch ev.Key {
	case core.KeyUp:
		g.steer(DirUp)
	case core.KeyDown:
		g.steer(DirDown)
	case core.KeyLeft:
		g.steer(DirLeft)
	case core.KeyRight:
		g.steer(DirRight)
	case core.KeyRune:
		switch ev.Rune {
		case 'w':
			g.steer(DirUp)
		case 's':
			g.steer(DirDown)
		case 'a':
			g.steer(DirLeft)
		case 'd':
			g.steer(DirRight)
		case 'r':
			if g.gameOver {
				g.restart()
			}
		case 'q':
			return game.Quit
		}
	}
	return game.Continue
}

func (g *Game) steer(dir Direction) {
	if !isOpposite(dir, g.direction) {
		g.nextDir = dir
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// Render advances the simulation one frame and draws the board. The
// host calls it once per tick, so it doubles as the time step.
func (g *Game) Render(rect core.Rect) []core.CellUpdate {
	g.adoptSize(rect)

	if !g.gameOver {
		g.moveTick++
		if g.moveTick >= g.moveEvery {
			g.moveTick = 0
			g.moveSnake()
		}
	}

	return g.draw()
}

// adoptSize follows the content rect after a resize. A head left
// outside the new board counts as a wall hit.
func (g *Game) adoptSize(rect core.Rect) {
	if rect.W == g.cols && rect.H == g.rows {
		return
	}
	g.cols = rect.W
	g.rows = rect.H
	if len(g.snake) > 0 && !g.inBoard(g.snake[0]) {
		g.gameOver = true
	}
	if !g.inBoard(g.food) {
		g.spawnFood()
	}
}

// inBoard reports whether a point is inside the walls.
func (g *Game) inBoard(p Point) bool {
	return p.X > 0 && p.X < g.cols-1 && p.Y > hudRows && p.Y < g.rows-1
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir

	head := g.snake[0]
	var newHead Point
	switch g.direction {
	case DirUp:
		newHead = Point{X: head.X, Y: head.Y - 1}
	case DirDown:
		newHead = Point{X: head.X, Y: head.Y + 1}
	case DirLeft:
		newHead = Point{X: head.X - 1, Y: head.Y}
	case DirRight:
		newHead = Point{X: head.X + 1, Y: head.Y}
	}

	// Wall collision
	if !g.inBoard(newHead) {
		g.gameOver = true
		return
	}

	// Self collision, excluding the tail when it is about to move away
	checkLen := len(g.snake)
	if !g.growing && checkLen > 0 {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score++
		g.growing = true
		g.spawnFood()
	}

	if g.growing {
		g.growing = false
	} else if len(g.snake) > 1 {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

// draw emits the frame: HUD, walls, food, snake, and the game-over
// banner.
func (g *Game) draw() []core.CellUpdate {
	var updates []core.CellUpdate

	hud := fmt.Sprintf(" Score: %d", g.score)
	for i, ch := range hud {
		if i >= g.cols {
			break
		}
		updates = append(updates, core.CellUpdate{
			X:    i,
			Y:    0,
			Cell: core.Cell{Rune: ch, Fg: core.ColorWhite, Attrs: core.AttrBold},
		})
	}

	wall := core.Cell{Rune: '#', Fg: core.ColorGray}
	for x := 0; x < g.cols; x++ {
		updates = append(updates,
			core.CellUpdate{X: x, Y: hudRows, Cell: wall},
			core.CellUpdate{X: x, Y: g.rows - 1, Cell: wall})
	}
	for y := hudRows; y < g.rows; y++ {
		updates = append(updates,
			core.CellUpdate{X: 0, Y: y, Cell: wall},
			core.CellUpdate{X: g.cols - 1, Y: y, Cell: wall})
	}

	if g.inBoard(g.food) {
		updates = append(updates, core.CellUpdate{
			X: g.food.X, Y: g.food.Y,
			Cell: core.Cell{Rune: '*', Fg: core.ColorRed},
		})
	}

	for i, seg := range g.snake {
		ch := 'o'
		if i == 0 {
			ch = 'O'
		}
		updates = append(updates, core.CellUpdate{
			X: seg.X, Y: seg.Y,
			Cell: core.Cell{Rune: ch, Fg: core.ColorGreen},
		})
	}

	if g.gameOver {
		updates = append(updates, banner(g.cols, g.rows, "GAME OVER - press r")...)
	}

	return updates
}

// banner emits a centered reverse-video message.
func banner(cols, rows int, msg string) []core.CellUpdate {
	if len(msg) > cols {
		msg = msg[:cols]
	}
	x := (cols - len(msg)) / 2
	y := rows / 2
	updates := make([]core.CellUpdate, 0, len(msg))
	for i, ch := range msg {
		updates = append(updates, core.CellUpdate{
			X: x + i, Y: y,
			Cell: core.Cell{Rune: ch, Fg: core.ColorWhite, Attrs: core.AttrReverse},
		})
	}
	return updates
}

// Teardown releases nothing; the game holds no external resources.
func (g *Game) Teardown() {}

const (
	minCols = 12
	minRows = 6
)

// MinSize declares the smallest playable board.
func (g *Game) MinSize() (int, int) {
	return minCols, minRows
}

// Score reports the food eaten this run.
func (g *Game) Score() int {
	return g.score
}
