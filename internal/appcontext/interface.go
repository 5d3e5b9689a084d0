// Package appcontext provides the application context interface shared by
// all commands, so command packages do not import the app package.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/pkg/resolver"
)

// Interface defines what commands need from the application.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Inputs returns the configured input and output locations.
	Inputs() config.Inputs

	// Resolver creates a resolver from configuration plus opts.
	Resolver(opts ...resolver.Option) (*resolver.Resolver, error)

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
