// Package config provides YAML-based runtime configuration for the
// terminity host: tick rate, key bindings, persistence and log paths,
// and the SSH listener.
package config

import (
	"fmt"
	"strings"

	"github.com/NeoGalaxy/terminity/internal/core"
)

// Config is the host runtime configuration.
type Config struct {
	TickRate int            `yaml:"tick_rate"` // Frames per second
	Keys     KeysConfig     `yaml:"keys"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	SSH      SSHConfig      `yaml:"ssh"`
}

// KeysConfig names the global host bindings. These are checked before
// any game sees input, so a game can never rebind them.
type KeysConfig struct {
	Quit  string `yaml:"quit"`
	Pause string `yaml:"pause"`
}

// DatabaseConfig locates the scores and saves database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig locates the session log file. The terminal is owned by the
// compositor, so logs never go to stderr during a session.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// SSHConfig configures the remote play listener.
type SSHConfig struct {
	Addr        string `yaml:"addr"`
	HostKeyPath string `yaml:"host_key_path"`
}

// keyNames maps binding names accepted in config files to key codes.
var keyNames = map[string]core.Key{
	"ctrl+c":    core.KeyCtrlC,
	"esc":       core.KeyEsc,
	"escape":    core.KeyEsc,
	"enter":     core.KeyEnter,
	"tab":       core.KeyTab,
	"backspace": core.KeyBackspace,
	"delete":    core.KeyDelete,
	"up":        core.KeyUp,
	"down":      core.KeyDown,
	"left":      core.KeyLeft,
	"right":     core.KeyRight,
	"pgup":      core.KeyPageUp,
	"pgdn":      core.KeyPageDown,
}

// ParseKey resolves a binding name like "ctrl+c" or "esc" to a key
// code.
func ParseKey(name string) (core.Key, error) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("config: unknown key name %q", name)
	}
	return key, nil
}
