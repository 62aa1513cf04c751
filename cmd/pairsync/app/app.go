// Package app provides the application context and dependency wiring for
// the pairsync CLI: configuration, logging, the shared console, and the
// cobra command tree.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/pairsync/pairsync/internal/config"
	"github.com/pairsync/pairsync/pkg/console"
	"github.com/pairsync/pairsync/pkg/errors"
)

// App holds everything a command needs: flag state, the logger, the
// console, and the lazily loaded configuration.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Flag state, populated by cobra before commands run.
	flags *Flags

	logger  *zerolog.Logger
	console *console.Console

	// Configuration (lazy-loaded, cached)
	mu  sync.Mutex
	cfg *config.Config
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		flags:   DefaultFlags(),
		console: console.Default(),
	}

	logger := NewLogger(app.flags)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Flags returns the global flag state.
func (a *App) Flags() *Flags {
	return a.flags
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Console returns the shared serialized console.
func (a *App) Console() *console.Console {
	return a.console
}

// Config loads the configuration on first use and caches it.
func (a *App) Config() (*config.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, err := config.Load(a.flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// DebugLogging reports whether debug (or finer) diagnostics are enabled.
// The worker budget rule for --max-workers=0 depends on it.
func (a *App) DebugLogging() bool {
	return a.logger.GetLevel() <= zerolog.DebugLevel
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

// WithConsole sets a custom console (useful for testing).
func WithConsole(c *console.Console) Option {
	return func(a *App) error {
		if c == nil {
			return errors.New("console cannot be nil")
		}
		a.console = c
		return nil
	}
}

// WithConfig sets a pre-loaded configuration (useful for testing).
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.cfg = cfg
		return nil
	}
}
