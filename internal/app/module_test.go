package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/flash/internal/bus"
	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/history"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FLASH_HOME", dir)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCoreWiresServiceAndHistory(t *testing.T) {
	path := writeConfig(t, `
[flash]
default_duration = "1h"
navigation_event = "pageShown"
`)
	var svc *flash.Service
	var db *history.DB
	app := fxtest.New(t, Core(Params{ConfigPath: path}), fx.Populate(&svc, &db))
	app.RequireStart()
	defer app.RequireStop()

	if got := svc.Config().NavigationEvent; got != "pageShown" {
		t.Errorf("navigation event = %q, want pageShown", got)
	}
	if db == nil {
		t.Fatal("history should be enabled by default")
	}

	svc.Add("Saved", flash.Options{})

	deadline := time.Now().Add(2 * time.Second)
	for {
		entries, err := db.Recent(10)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) == 1 && entries[0].Event == history.EventAdded {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("entries = %+v, want one added entry", entries)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCoreRoutesNavigationToService(t *testing.T) {
	path := writeConfig(t, `
[flash]
default_duration = "1h"

[history]
enabled = false
`)
	var svc *flash.Service
	var b *bus.Bus
	app := fxtest.New(t, Core(Params{ConfigPath: path}), fx.Populate(&svc, &b))
	app.RequireStart()
	defer app.RequireStop()

	svc.Add("kept", flash.Options{Persist: 80})
	for range 80 {
		b.Emit(flash.DefaultNavigationEvent, nil)
	}
	if n := svc.Len(flash.GlobalScope); n != 1 {
		t.Fatalf("Len() after 80 navigations = %d, want 1", n)
	}
	b.Emit(flash.DefaultNavigationEvent, nil)
	if n := svc.Len(flash.GlobalScope); n != 0 {
		t.Errorf("Len() after 81 navigations = %d, want 0", n)
	}
}

func TestCoreWithoutHistory(t *testing.T) {
	path := writeConfig(t, `
[history]
enabled = false
`)
	var db *history.DB
	var rec *history.Recorder
	app := fxtest.New(t, Core(Params{ConfigPath: path}), fx.Populate(&db, &rec))
	app.RequireStart().RequireStop()

	if db != nil || rec != nil {
		t.Error("history components should be nil when disabled")
	}
}

func TestCoreRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, `
[flash]
default_duration = "0s"
`)
	app := fx.New(Core(Params{ConfigPath: path}), fx.NopLogger)
	if app.Err() == nil {
		t.Error("expected invalid config to fail the fx graph")
	}
}

func TestModuleGraphIsComplete(t *testing.T) {
	writeConfig(t, "")
	if err := fx.ValidateApp(Module(Params{ConfigPath: filepath.Join(os.Getenv("FLASH_HOME"), "config.toml")})); err != nil {
		t.Fatal(err)
	}
}
