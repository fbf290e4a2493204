package config

import (
	"io"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with durations as strings so the written file
// reads "5s" rather than nanoseconds.
type fileConfig struct {
	Flash struct {
		DefaultDuration string `toml:"default_duration"`
		DefaultType     string `toml:"default_type"`
		NavigationEvent string `toml:"navigation_event"`
	} `toml:"flash"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	var fc fileConfig
	fc.Flash.DefaultDuration = cfg.Flash.DefaultDuration.String()
	fc.Flash.DefaultType = cfg.Flash.DefaultType
	fc.Flash.NavigationEvent = cfg.Flash.NavigationEvent
	fc.History = cfg.History
	fc.Log = cfg.Log
	return toml.NewEncoder(w).Encode(fc)
}
