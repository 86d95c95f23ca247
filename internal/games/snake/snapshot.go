package snake

import (
	"encoding/json"
	"fmt"
)

// snapshot is the persisted form of a run in progress.
type snapshot struct {
	Score     int       `json:"score"`
	Snake     []Point   `json:"snake"`
	Direction Direction `json:"direction"`
	Food      Point     `json:"food"`
}

// Save snapshots the current run. A finished run returns nil so the
// host clears the save slot instead of resurrecting a dead snake.
func (g *Game) Save() ([]byte, error) {
	if g.gameOver || len(g.snake) == 0 {
		return nil, nil
	}
	return json.Marshal(snapshot{
		Score:     g.score,
		Snake:     g.snake,
		Direction: g.direction,
		Food:      g.food,
	})
}

// Restore resumes a persisted run. Snapshots that no longer fit the
// board are rejected, which makes the host drop them.
func (g *Game) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("snake: corrupt snapshot: %w", err)
	}
	if len(snap.Snake) == 0 {
		return fmt.Errorf("snake: snapshot has no snake")
	}
	for _, seg := range snap.Snake {
		if !g.inBoard(seg) {
			return fmt.Errorf("snake: snapshot segment (%d,%d) outside the board", seg.X, seg.Y)
		}
	}

	g.score = snap.Score
	g.snake = snap.Snake
	g.direction = snap.Direction
	g.nextDir = snap.Direction
	g.growing = false
	if g.inBoard(snap.Food) && !g.isSnakeAt(snap.Food) {
		g.food = snap.Food
	} else {
		g.spawnFood()
	}
	return nil
}
