// Package app provides the application context and dependency management
// for the tallysheet CLI. It centralizes configuration, logging and the
// resolver construction shared by all commands.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/resolver"
)

// App represents the tallysheet application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment,
// .env files and the config file, then customized by opts.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
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

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Inputs returns the configured input and output locations.
func (a *App) Inputs() config.Inputs {
	return a.config.Inputs
}

// Resolver creates a resolver from the configured rating fields plus opts.
// Later options override earlier ones.
func (a *App) Resolver(opts ...resolver.Option) (*resolver.Resolver, error) {
	var base []resolver.Option
	if fields := a.config.Inputs.RatingIDFields; len(fields) > 0 {
		base = append(base, resolver.WithRatingFields(fields...))
	}
	r, err := resolver.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("resolver", err.Error(), err)
	}
	return r, nil
}

// Shutdown performs graceful shutdown of the application. Commands run to
// completion in the foreground, so there is nothing to stop.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		if cfg == nil {
			return errors.NewConfigError("app", "config is nil", nil)
		}
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
