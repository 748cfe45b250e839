package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xvierd/pomodoro-cli/internal/adapters/notification"
	"github.com/xvierd/pomodoro-cli/internal/adapters/storage"
	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/ports"
	"github.com/xvierd/pomodoro-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	logger     *slog.Logger
	logFile    io.Closer
	storage    ports.Storage
	session    *services.SessionState
	controller *services.Controller
	notifier   *notification.Notifier
	stats      *services.StatsService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	app.config = loadConfig()
	app.logger, app.logFile = newLogger(app.config)

	// Determine database path
	path := dbPath
	if path == "" {
		path = config.GetDBPath(app.config)
	}

	if err := os.MkdirAll(getDir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.storage = store

	clock := clockwork.NewRealClock()
	app.session = services.NewSessionState(store.Settings(), clock, time.Duration(app.config.Timer.SaveDebounce), app.logger)
	app.session.Init(ctx)

	app.notifier = notification.New(&app.config.Notifications)

	app.controller = services.NewController(app.session, clock, app.logger)
	if app.notifier.IsEnabled() {
		app.controller.SetAlerter(app.notifier)
	} else {
		app.logger.Debug("alerts disabled in config")
	}
	app.controller.SetCompletionLog(store.Completions())

	app.stats = services.NewStatsService(store.Completions(), clock)

	app.logger.Debug("services initialized", "db", path)
	return nil
}

// cleanupServices flushes pending settings and closes all resources.
// It is safe to call more than once.
func cleanupServices(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var firstErr error
	if app.controller != nil {
		app.controller.Unmount()
	}
	if app.session != nil {
		if err := app.session.Teardown(ctx); err != nil {
			firstErr = fmt.Errorf("failed to save settings: %w", err)
		}
	}
	if app.storage != nil {
		if err := app.storage.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close storage: %w", err)
		}
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}

	app = appDeps{}
	return firstErr
}

// loadConfig reads the config file, falling back to defaults when it
// cannot be read.
func loadConfig() *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err == nil {
		return cfg
	}

	cfg = config.DefaultConfig()
	if dir, err := config.ExpandHome(cfg.Storage.DataDir); err == nil {
		cfg.Storage.DataDir = dir
	}
	return cfg
}

// newLogger opens the log file in the data directory. The TUI owns stdout,
// so logs never go to the terminal. A log file that cannot be opened
// disables logging.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	level := cfg.Logging.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	path := config.GetLogPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return slog.New(slog.DiscardHandler), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return slog.New(slog.DiscardHandler), nil
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f
}

// getDir returns the directory portion of a file path.
func getDir(path string) string {
	return filepath.Dir(path)
}
