package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tallysheet/internal/config"
	"github.com/agentstation/tallysheet/pkg/resolver"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	InputsFunc       func() config.Inputs
	ResolverFunc     func(...resolver.Option) (*resolver.Resolver, error)
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Inputs returns inputs using the mock function or config defaults.
func (m *Mock) Inputs() config.Inputs {
	if m.InputsFunc != nil {
		return m.InputsFunc()
	}
	return config.Defaults()
}

// Resolver returns a resolver using the mock function or resolver.New.
func (m *Mock) Resolver(opts ...resolver.Option) (*resolver.Resolver, error) {
	if m.ResolverFunc != nil {
		return m.ResolverFunc(opts...)
	}
	return resolver.New(opts...)
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
