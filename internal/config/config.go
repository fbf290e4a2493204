package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/paths"
)

// ErrInvalid is wrapped by errors returned from Validate.
var ErrInvalid = errors.New("invalid config")

// Config represents ~/.flash/config.toml.
type Config struct {
	Flash   FlashConfig   `toml:"flash"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// FlashConfig holds the flash service defaults.
type FlashConfig struct {
	DefaultDuration time.Duration `toml:"default_duration" env:"FLASH_DEFAULT_DURATION"`
	DefaultType     string        `toml:"default_type"     env:"FLASH_DEFAULT_TYPE"`
	NavigationEvent string        `toml:"navigation_event" env:"FLASH_NAVIGATION_EVENT"`
}

// HistoryConfig controls the flash history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" env:"FLASH_HISTORY_ENABLED"`
	Path    string `toml:"path"    env:"FLASH_HISTORY_PATH"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `toml:"path"  env:"FLASH_LOG_PATH"`
	Level string `toml:"level" env:"FLASH_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Flash: FlashConfig{
			DefaultDuration: flash.DefaultDuration,
			DefaultType:     flash.DefaultType,
			NavigationEvent: flash.DefaultNavigationEvent,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    paths.HistoryDBPath(),
		},
		Log: LogConfig{
			Path:  paths.LogPath(),
			Level: "info",
		},
	}
}

// Load reads config from the given path on top of the defaults, then applies
// FLASH_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	cfg.History.Path = paths.Expand(cfg.History.Path)
	cfg.Log.Path = paths.Expand(cfg.Log.Path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the flash defaults are usable.
func (c *Config) Validate() error {
	switch {
	case c.Flash.DefaultDuration <= 0:
		return fmt.Errorf("%w: flash.default_duration must be positive, got %s", ErrInvalid, c.Flash.DefaultDuration)
	case c.Flash.DefaultType == "":
		return fmt.Errorf("%w: flash.default_type is empty", ErrInvalid)
	case c.Flash.NavigationEvent == "":
		return fmt.Errorf("%w: flash.navigation_event is empty", ErrInvalid)
	case c.History.Enabled && c.History.Path == "":
		return fmt.Errorf("%w: history.path is empty", ErrInvalid)
	}
	return nil
}

// FlashService converts the flash section to the service configuration.
func (c *Config) FlashService() flash.Config {
	return flash.Config{
		DefaultDuration: c.Flash.DefaultDuration,
		DefaultType:     c.Flash.DefaultType,
		NavigationEvent: c.Flash.NavigationEvent,
	}
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := Encode(f, cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
