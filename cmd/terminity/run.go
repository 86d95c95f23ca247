package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NeoGalaxy/terminity/internal/config"
	"github.com/NeoGalaxy/terminity/internal/core"
	"github.com/NeoGalaxy/terminity/internal/driver"
	"github.com/NeoGalaxy/terminity/internal/host"
	"github.com/NeoGalaxy/terminity/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Run a game",
	Long: `Run the named game in the current terminal.

Host controls (games never see these):
  Ctrl+C   - Quit
  Esc      - Pause/resume

Exit codes:
  0 - session ended normally
  1 - unknown game
  2 - terminal driver failure

Examples:
  terminity run snake
  terminity run tictactoe
  terminity run snake --fps 60 --seed 7`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: terminity needs a terminal on stdout")
		os.Exit(2)
	}

	logger := openLogger(cfg.Log)

	reg := buildRegistry()
	defer reg.Clear()

	// An unknown game must run nothing, so check before the terminal
	// or the database are touched.
	if !reg.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'terminity list' to see available games.")
		os.Exit(1)
	}

	var store host.Store
	if s, err := storage.Open(cfg.Database.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
	} else {
		defer s.Close()
		store = s
	}

	drv, err := driver.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	mgr := host.NewManager(reg, store, logger)
	loop := host.NewLoop(drv, mgr, host.Options{
		TickRate: cfg.TickRate,
		Seed:     flagSeed,
		Bindings: bindings(cfg),
	}, logger)

	if err := loop.Run(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps session errors to the documented exit codes.
func exitCode(err error) int {
	var derr *core.DriverError
	if errors.As(err, &derr) {
		return 2
	}
	return 1
}

// loadConfig loads the layered configuration and applies flag
// overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = flagDBPath
	}
	return cfg, nil
}

// bindings resolves the configured key names. Load already validated
// them.
func bindings(cfg config.Config) host.Bindings {
	quit, _ := config.ParseKey(cfg.Keys.Quit)
	pause, _ := config.ParseKey(cfg.Keys.Pause)
	return host.Bindings{
		Quit:  core.KeyEvent{Key: quit},
		Pause: core.KeyEvent{Key: pause},
	}
}

// openLogger opens the session log file. The terminal belongs to the
// compositor, so logs never go to stderr while a session runs; if the
// file cannot be opened, logging is dropped rather than corrupting the
// screen.
func openLogger(cfg config.LogConfig) *log.Logger {
	var out io.Writer = io.Discard

	path := cfg.Path
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				out = f
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "terminity",
	})
	if level, err := log.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
