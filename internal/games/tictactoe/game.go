// Package tictactoe implements hot-seat tic-tac-toe: two players share
// the keyboard, X goes first. Rendering is purely input-driven, so the
// game is a natural counterpart to time-driven ones like snake.
package tictactoe

import (
	"fmt"

	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/game"
)

// mark is a cell owner: 0 empty, 'X', or 'O'.
type mark = rune

const (
	empty mark = 0
	draw  mark = 'D'
)

// Game implements tic-tac-toe.
type Game struct {
	board   [3][3]mark
	curX    int
	curY    int
	turn    mark
	winner  mark // empty while the round runs, 'X'/'O'/draw after
	message string
	wins    int // Rounds won by either player this session
}

// New creates a tic-tac-toe game.
func New() *Game {
	return &Game{}
}

// Init resets the board. The content area is validated against the
// fixed board footprint.
func (g *Game) Init(cfg game.Config) error {
	if cfg.Cols < minCols || cfg.Rows < minRows {
		return fmt.Errorf("tictactoe: %dx%d is below the minimum %dx%d",
			cfg.Cols, cfg.Rows, minCols, minRows)
	}
	g.restart()
	g.wins = 0
	return nil
}

// restart begins a new round, keeping the session win count.
func (g *Game) restart() {
	g.board = [3][3]mark{}
	g.curX, g.curY = 1, 1
	g.turn = 'X'
	g.winner = empty
	g.message = ""
}

// HandleInput moves the cursor and places marks.
func (g *Game) HandleInput(ev core.KeyEvent) game.Action {
	switch ev.Key {
	case core.KeyLeft:
		if g.curX > 0 {
			g.curX--
		}
	case core.KeyRight:
		if g.curX < 2 {
			g.curX++
		}
	case core.KeyUp:
		if g.curY > 0 {
			g.curY--
		}
	case core.KeyDown:
		if g.curY < 2 {
			g.curY++
		}
	case core.KeyEnter:
		g.place()
	case core.KeyRune:
		switch ev.Rune {
		case ' ':
			g.place()
		case 'r':
			if g.winner != empty {
				g.restart()
			}
		case 'q':
			return game.Quit
		}
	}
	return game.Continue
}

// place puts the current player's mark on the selected cell.
func (g *Game) place() {
	if g.winner != empty {
		return
	}
	if g.board[g.curY][g.curX] != empty {
		g.message = "That cell is taken."
		return
	}
	g.board[g.curY][g.curX] = g.turn
	g.message = ""

	switch {
	case g.lineThrough(g.curX, g.curY):
		g.winner = g.turn
		g.wins++
		g.message = fmt.Sprintf("%c wins! Press r for a rematch.", g.turn)
	case g.full():
		g.winner = draw
		g.message = "Draw. Press r for a rematch."
	default:
		if g.turn == 'X' {
			g.turn = 'O'
		} else {
			g.turn = 'X'
		}
	}
}

// lineThrough reports whether the last move at (x, y) completed a row,
// column, or diagonal.
func (g *Game) lineThrough(x, y int) bool {
	m := g.board[y][x]
	if g.board[y][0] == m && g.board[y][1] == m && g.board[y][2] == m {
		return true
	}
	if g.board[0][x] == m && g.board[1][x] == m && g.board[2][x] == m {
		return true
	}
	if x == y && g.board[0][0] == m && g.board[1][1] == m && g.board[2][2] == m {
		return true
	}
	if x+y == 2 && g.board[0][2] == m && g.board[1][1] == m && g.board[2][0] == m {
		return true
	}
	return false
}

// full reports whether every cell is taken.
func (g *Game) full() bool {
	for _, row := range g.board {
		for _, m := range row {
			if m == empty {
				return false
			}
		}
	}
	return true
}

// Board footprint: 13 columns by 7 rows, plus status and message rows.
const (
	boardW  = 13
	boardH  = 7
	minCols = boardW + 2
	minRows = boardH + 2
)

// Render draws the status row, the board, and the message row. The
// board never changes between inputs, so redraws diff to nothing.
func (g *Game) Render(rect core.Rect) []core.CellUpdate {
	var updates []core.CellUpdate

	status := fmt.Sprintf(" Turn: %c", g.turn)
	if g.winner != empty {
		status = " Round over"
	}
	updates = append(updates, text(1, 0, status, core.AttrBold)...)

	ox := (rect.W - boardW) / 2
	oy := 1
	for row := 0; row < boardH; row++ {
		for col := 0; col < boardW; col++ {
			updates = append(updates, core.CellUpdate{
				X:    ox + col,
				Y:    oy + row,
				Cell: g.boardCell(col, row),
			})
		}
	}

	updates = append(updates, text(1, oy+boardH, g.message, core.AttrNone)...)
	return updates
}

// boardCell maps board-local text coordinates to a cell. The grid is
// ASCII: every odd column/row pair holds a mark, the rest is frame.
func (g *Game) boardCell(col, row int) core.Cell {
	onColLine := col%4 == 0
	onRowLine := row%2 == 0
	switch {
	case onColLine && onRowLine:
		return core.Cell{Rune: '+', Fg: core.ColorGray}
	case onColLine:
		return core.Cell{Rune: '|', Fg: core.ColorGray}
	case onRowLine:
		return core.Cell{Rune: '-', Fg: core.ColorGray}
	}

	x := col / 4
	y := row / 2
	if col%4 != 2 {
		return g.cellBackground(x, y, ' ')
	}
	m := g.board[y][x]
	if m == empty {
		m = ' '
	}
	return g.cellBackground(x, y, m)
}

// cellBackground highlights the cursor's cell.
func (g *Game) cellBackground(x, y int, ch rune) core.Cell {
	cell := core.Cell{Rune: ch, Fg: core.ColorWhite}
	if x == g.curX && y == g.curY && g.winner == empty {
		cell.Attrs = core.AttrReverse
	}
	return cell
}

// text lays a string out horizontally.
func text(x, y int, s string, attrs core.Attr) []core.CellUpdate {
	updates := make([]core.CellUpdate, 0, len(s))
	for i, ch := range s {
		updates = append(updates, core.CellUpdate{
			X:    x + i,
			Y:    y,
			Cell: core.Cell{Rune: ch, Fg: core.ColorWhite, Attrs: attrs},
		})
	}
	return updates
}

// Teardown releases nothing.
func (g *Game) Teardown() {}

// MinSize declares the fixed board footprint.
func (g *Game) MinSize() (int, int) {
	return minCols, minRows
}

// Score reports rounds decided this session.
func (g *Game) Score() int {
	return g.wins
}
