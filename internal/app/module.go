package app

import (
	"context"

	"github.com/matheus3301/flash/internal/bus"
	"github.com/matheus3301/flash/internal/config"
	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/history"
	"github.com/matheus3301/flash/internal/logging"
	"github.com/matheus3301/flash/internal/paths"
	"github.com/matheus3301/flash/internal/tui"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the command-line inputs passed to the fx module.
type Params struct {
	ConfigPath string
}

// Module returns the fx module composing the flash service, its collaborators
// and the TUI.
func Module(p Params) fx.Option {
	return fx.Options(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		Core(p),
		fx.Provide(tui.NewApp),
	)
}

// Core returns everything except the TUI: config, logging, bus, flash
// service, navigation watcher and history.
func Core(p Params) fx.Option {
	return fx.Module("flash",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideWatcher,
			provideService,
			provideHistory,
			provideRecorder,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	path := p.ConfigPath
	if path == "" {
		path = paths.ConfigPath()
	}
	return config.Load(path)
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Path, cfg.Log.Level)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideWatcher(cfg *config.Config, b *bus.Bus, logger *zap.Logger) *flash.NavigationWatcher {
	return flash.NewNavigationWatcher(cfg.Flash.NavigationEvent, b, logger.Named("nav"))
}

func provideService(cfg *config.Config, w *flash.NavigationWatcher, b *bus.Bus, logger *zap.Logger) *flash.Service {
	return flash.NewService(cfg.FlashService(), flash.SystemScheduler{}, w, b, logger.Named("flash"))
}

// provideHistory returns a nil DB when history is disabled.
func provideHistory(cfg *config.Config, logger *zap.Logger) (*history.DB, error) {
	if !cfg.History.Enabled {
		logger.Info("history disabled")
		return nil, nil
	}
	if err := paths.EnsureDir(cfg.History.Path); err != nil {
		return nil, err
	}
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("history initialized", zap.String("path", cfg.History.Path))
	return db, nil
}

// provideRecorder returns a nil Recorder when history is disabled.
func provideRecorder(db *history.DB, b *bus.Bus, logger *zap.Logger) *history.Recorder {
	if db == nil {
		return nil
	}
	return history.NewRecorder(db, b, logger.Named("history"))
}

func registerLifecycle(lc fx.Lifecycle, b *bus.Bus, w *flash.NavigationWatcher, db *history.DB, rec *history.Recorder, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			w.Start(context.Background())
			if rec != nil {
				rec.Start(context.Background())
			}
			logger.Info("flash service started", zap.String("navigation_event", w.Event()))
			return nil
		},
		OnStop: func(_ context.Context) error {
			w.Stop()
			if rec != nil {
				rec.Stop()
			}
			if n := b.Dropped(); n > 0 {
				logger.Warn("bus subscribers missed events", zap.Uint64("dropped", n))
			}
			if db != nil {
				if err := db.Close(); err != nil {
					logger.Warn("error closing history", zap.Error(err))
				}
			}
			logger.Info("flash service stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
