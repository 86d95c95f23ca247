package config

import (
	_ "embed"
)

//go:embed defaults/terminity.yaml
var defaultYAML []byte

// Default returns the built-in host configuration.
func Default() Config {
	return Config{
		TickRate: 30,
		Keys: KeysConfig{
			Quit:  "ctrl+c",
			Pause: "esc",
		},
		Database: DatabaseConfig{
			Path: "~/.terminity/terminity.db",
		},
		Log: LogConfig{
			Path:  "~/.terminity/terminity.log",
			Level: "info",
		},
		SSH: SSHConfig{
			Addr:        ":2222",
			HostKeyPath: "~/.terminity/id_host",
		},
	}
}

// DefaultYAML returns the embedded default configuration file, for
// printing or seeding a user config.
func DefaultYAML() []byte {
	return defaultYAML
}
