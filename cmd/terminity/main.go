// terminity hosts terminal games: it owns the raw terminal, screen
// composition, layout, and the event loop, while games supply pure
// logic behind a small contract.
//
// Usage:
//
//	terminity run <game>       - Run a game
//	terminity list             - List available games
//	terminity scores <game>    - Show high scores for a game
//	terminity serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Use a specific config file
//	--fps <rate>     - Override tick rate
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Override database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NeoGalaxy/terminity/internal/game"
	"github.com/NeoGalaxy/terminity/internal/games/snake"
	"github.com/NeoGalaxy/terminity/internal/games/tictactoe"
)

var (
	// Global flags
	flagConfig string
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "terminity",
	Short: "Terminity - a terminal game environment",
	Long: `Terminity is a terminal-based game environment: a host runtime that
owns the screen and input, and a set of games running inside it.

Available commands:
  run      - Run a specific game
  list     - Show all available games
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  terminity list
  terminity run snake
  terminity run snake --fps 60 --seed 7
  terminity scores snake
  terminity serve --ssh :2222 --game snake`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: ~/.terminity/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path override")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// buildRegistry populates the registry from the fixed list of bundled
// games. It is called once per process and cleared at exit.
func buildRegistry() *game.Registry {
	reg := game.NewRegistry()
	mustRegister(reg, "snake", "Snake", func() game.Game { return snake.New() })
	mustRegister(reg, "tictactoe", "Tic-Tac-Toe", func() game.Game { return tictactoe.New() })
	return reg
}

func mustRegister(reg *game.Registry, name, title string, factory func() game.Game) {
	if err := reg.Register(name, title, factory); err != nil {
		panic(err)
	}
}
