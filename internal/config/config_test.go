package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Flash.DefaultDuration != 5*time.Second {
		t.Errorf("default_duration = %s, want 5s", cfg.Flash.DefaultDuration)
	}
	if cfg.Flash.DefaultType != "alert" {
		t.Errorf("default_type = %q, want alert", cfg.Flash.DefaultType)
	}
	if cfg.Flash.NavigationEvent != "routeChangeSuccess" {
		t.Errorf("navigation_event = %q, want routeChangeSuccess", cfg.Flash.NavigationEvent)
	}
	if !cfg.History.Enabled {
		t.Error("history should be enabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
[flash]
default_duration = "1500ms"
default_type = "notice"
navigation_event = "pageShown"

[history]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Flash.DefaultDuration != 1500*time.Millisecond {
		t.Errorf("default_duration = %s, want 1.5s", cfg.Flash.DefaultDuration)
	}
	if cfg.Flash.DefaultType != "notice" {
		t.Errorf("default_type = %q, want notice", cfg.Flash.DefaultType)
	}
	if cfg.Flash.NavigationEvent != "pageShown" {
		t.Errorf("navigation_event = %q, want pageShown", cfg.Flash.NavigationEvent)
	}
	if cfg.History.Enabled {
		t.Error("history.enabled = true, want false")
	}
	// Unset keys keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
[flash]
default_type = "notice"
`)
	t.Setenv("FLASH_DEFAULT_TYPE", "banner")
	t.Setenv("FLASH_DEFAULT_DURATION", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Flash.DefaultType != "banner" {
		t.Errorf("default_type = %q, want banner", cfg.Flash.DefaultType)
	}
	if cfg.Flash.DefaultDuration != 2*time.Second {
		t.Errorf("default_duration = %s, want 2s", cfg.Flash.DefaultDuration)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero duration", "[flash]\ndefault_duration = \"0s\"\n"},
		{"negative duration", "[flash]\ndefault_duration = \"-1s\"\n"},
		{"empty type", "[flash]\ndefault_type = \"\"\n"},
		{"empty event", "[flash]\nnavigation_event = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeFile(t, "[flash\n"))
	if err == nil {
		t.Fatal("Load() should fail on malformed TOML")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("decode errors should not be reported as ErrInvalid")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Flash.DefaultDuration = 3 * time.Second
	cfg.Flash.DefaultType = "toast"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Flash.DefaultDuration != 3*time.Second || got.Flash.DefaultType != "toast" {
		t.Errorf("round trip = %+v", got.Flash)
	}
}

func TestEncodeWritesReadableDuration(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `default_duration = "5s"`) {
		t.Errorf("encoded config missing readable duration:\n%s", buf.String())
	}
}

func TestFlashService(t *testing.T) {
	cfg := Default()
	cfg.Flash.NavigationEvent = "pageShown"
	fc := cfg.FlashService()
	if fc.NavigationEvent != "pageShown" || fc.DefaultDuration != 5*time.Second || fc.DefaultType != "alert" {
		t.Errorf("FlashService() = %+v", fc)
	}
}
