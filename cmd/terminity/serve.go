package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/NeoGalaxy/terminity/internal/platform/sshd"
	"github.com/NeoGalaxy/terminity/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeGame   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the terminity SSH server",
	Long: `Start an SSH server that lets users connect and play remotely.

Each connection gets its own session running the configured game.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.terminity/id_host

Examples:
  terminity serve                           # Listen on the configured address
  terminity serve --ssh :2222 --game snake  # Listen on port 2222 serving snake
  terminity serve --host-key ./id_host      # Use a specific host key

Users connect with:
  ssh -t localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeGame, "game", "snake", "Game served to incoming sessions")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("ssh") {
		cfg.SSH.Addr = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.SSH.HostKeyPath = flagHostKey
	}

	logger := openLogger(cfg.Log)

	reg := buildRegistry()
	defer reg.Clear()

	var store *storage.Store
	if s, err := storage.Open(cfg.Database.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
	} else {
		defer s.Close()
		store = s
	}

	server, err := sshd.NewServer(sshd.Config{
		Address:     cfg.SSH.Addr,
		HostKeyPath: cfg.SSH.HostKeyPath,
		Game:        flagServeGame,
		TickRate:    cfg.TickRate,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, reg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting terminity SSH server on %s serving %q\n", server.Addr(), flagServeGame)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
