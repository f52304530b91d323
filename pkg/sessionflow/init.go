// Package sessionflow decides which part of the app a user lands in (welcome
// carousel, onboarding questionnaire, or the authenticated main area) and
// moves them between those parts as they finish onboarding or log out.
//
// The package wires the persisted session store, the transition engine, the
// navigation router and the localized copy into a Flow. Screens raise
// intents; the engine writes the session flags and only then navigates.
package sessionflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/config"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/engine"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/internal"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/locale"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/router"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/bolt"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/memory"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/redis"
)

// Options configures logging for the process.
type Options struct {
	LogPath   string    // Full path for log file including filename (creates parent directories)
	LogFormat string    // "json" (default) or "text"
	LogLevel  string    // "debug", "info", "warn" or "error"
	LogOutput io.Writer // Console destination, stdout when nil
}

// Init configures the shared logger. Call it before any other sessionflow
// function so components pick up the settings. ENVIRONMENT=DEV forces debug.
func Init(options Options) {
	internal.SetLogPath(options.LogPath)
	internal.SetLogFormat(options.LogFormat)
	if options.LogOutput != nil {
		internal.SetLogOutput(options.LogOutput)
	}

	if constants.IsDevMode() {
		internal.SetLogLevel(slog.LevelDebug)
	} else {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// InitFromConfig is Init with the logging section of cfg.
func InitFromConfig(cfg *config.Config, console io.Writer) {
	Init(Options{
		LogPath:   cfg.Log.Path,
		LogFormat: cfg.Log.Format,
		LogLevel:  cfg.Log.Level,
		LogOutput: console,
	})
}

// Close releases the log file. Call it before program exit.
func Close() {
	internal.CloseLogger()
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// OpenStore opens the backend named in cfg.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(nil), nil
	case config.BackendBolt:
		s, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, NewSetupError("open_store", err)
		}
		return s, nil
	case config.BackendRedis:
		s, err := redis.Open(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, NewSetupError("open_store", err)
		}
		return s, nil
	default:
		return nil, NewSetupError("open_store", fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend))
	}
}

// Flow bundles the components a host app needs to run the session flow.
type Flow struct {
	Store   store.Store
	Engine  *engine.Engine
	Router  *router.Router
	Catalog *locale.Catalog
}

// Open opens the configured store and assembles a Flow around it. The caller
// must Close the flow.
func Open(ctx context.Context, cfg *config.Config) (*Flow, error) {
	catalog, err := locale.New(cfg.Language)
	if err != nil {
		return nil, NewSetupError("load_catalog", err)
	}

	s, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	internal.GetLogger().Debug("Store opened", "backend", cfg.Store.Backend, "language", catalog.Language().String())
	return NewFlow(s, catalog), nil
}

// NewFlow assembles a Flow on an already open store.
func NewFlow(s store.Store, catalog *locale.Catalog) *Flow {
	r := router.New()
	return &Flow{
		Store:   s,
		Engine:  engine.New(s, r),
		Router:  r,
		Catalog: catalog,
	}
}

// Start resolves the persisted session and roots the router at its phase.
func (f *Flow) Start(ctx context.Context) session.Phase {
	return f.Engine.Start(ctx)
}

// Run drives the registered screens until one returns router.Exit.
func (f *Flow) Run(ctx context.Context) error {
	return f.Router.Run(ctx, f.Engine.Dispatch)
}

// Greeting returns the home screen greeting for the stored profile.
func (f *Flow) Greeting(ctx context.Context) (string, error) {
	profile, err := session.LoadProfile(ctx, f.Store)
	if err != nil {
		return f.Catalog.Greeting(""), err
	}
	return f.Catalog.Greeting(profile.Name), nil
}

// Close releases the store.
func (f *Flow) Close() error {
	return store.Close(f.Store)
}
