// Package daemon manages the soccorso server lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all server configuration.
type Config struct {
	Player     PlayerConfig     `toml:"player"`
	API        APIConfig        `toml:"api"`
	Engagement EngagementConfig `toml:"engagement"`
	Logging    LoggingConfig    `toml:"logging"`
}

// PlayerConfig identifies the default local player (single-profile CLI use).
type PlayerConfig struct {
	ID string `toml:"id"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	Metrics     bool     `toml:"metrics"`
}

// EngagementConfig tunes celebration behavior. Numeric policies (grade
// cap, milestones, rewards) are catalog constants — changing them would
// desync players — but presentation toggles belong here.
type EngagementConfig struct {
	Mute bool `toml:"mute"` // Suppress celebration sounds client-side
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns the defaults used before any config file exists.
func DefaultConfig() Config {
	home := soccorsoHome()
	return Config{
		Player: PlayerConfig{
			ID: "local",
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8480,
			CORSOrigins: []string{"*"},
			Metrics:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "soccorso.log"),
		},
	}
}

// LoadConfig reads config from $SOCCORSO_HOME/config.toml, falling back
// to defaults when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(soccorsoHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to $SOCCORSO_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(soccorsoHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// soccorsoHome returns the data directory.
func soccorsoHome() string {
	if env := os.Getenv("SOCCORSO_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".soccorso")
}

// Home is exported for use by other packages.
func Home() string {
	return soccorsoHome()
}
