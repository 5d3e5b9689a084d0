// Package errors provides the error types used by tallysheet.
//
// Only I/O boundaries fail: locating inputs, reading them, and writing the
// report. Identifier normalization and resolution are total and never return
// errors. Each type implements Is against a sentinel so callers can branch
// with errors.Is without type assertions.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-exported from the standard library for convenience.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors.
var (
	// ErrMissingInput indicates a required source file could not be located.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidInput indicates a source was readable but structurally invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrOutputWrite indicates the report could not be written.
	ErrOutputWrite = errors.New("output write failed")

	// ErrNotFound indicates a lookup found nothing.
	ErrNotFound = errors.New("not found")
)

// MissingInputError reports a required source that could not be located.
type MissingInputError struct {
	Source  string // "registry", "roster", "matches"
	Dir     string
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *MissingInputError) Error() string {
	switch {
	case e.Pattern != "" && e.Dir != "":
		return fmt.Sprintf("missing %s input: no file matching %q in %s", e.Source, e.Pattern, e.Dir)
	case e.Err != nil:
		return fmt.Sprintf("missing %s input: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("missing %s input", e.Source)
	}
}

// Unwrap implements errors.Unwrap
func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// NewMissingInputError creates a MissingInputError for a discovery miss.
func NewMissingInputError(source, dir, pattern string) *MissingInputError {
	return &MissingInputError{Source: source, Dir: dir, Pattern: pattern}
}

// ValidationError represents a structural problem in an input.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// MissingColumnsError reports required columns absent from a tabular source.
type MissingColumnsError struct {
	File    string
	Columns []string
}

// Error implements the error interface
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s", e.File, strings.Join(e.Columns, ", "))
}

// Is implements errors.Is support
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParseError represents a failure to decode a source file.
type ParseError struct {
	Format  string // "csv", "xlsx", "json"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// UnsupportedFormatError reports a file no reader understands.
type UnsupportedFormatError struct {
	File      string
	Extension string
}

// Error implements the error interface
func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file type for %s: no extension", e.File)
	}
	return fmt.Sprintf("unsupported file type %s for %s", e.Extension, e.File)
}

// Is implements errors.Is support
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// IOError represents a failed filesystem operation.
type IOError struct {
	Operation string // "read", "write", "rename", "stat", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// OutputWriteError reports a failed report write. Rows is the number of data
// rows the run intended to write.
type OutputWriteError struct {
	Path string
	Rows int
	Err  error
}

// Error implements the error interface
func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %d rows to %s: %v", e.Rows, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *OutputWriteError) Is(target error) bool {
	return target == ErrOutputWrite
}

// ConfigError represents a configuration problem.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// Helper functions for error checking

// IsMissingInput checks if an error is a missing input error
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsOutputWrite checks if an error is an output write error
func IsOutputWrite(err error) bool {
	return errors.Is(err, ErrOutputWrite)
}

// IsUnsupportedFormat checks if an error is an unsupported format error
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapOutput wraps an error as an OutputWriteError
func WrapOutput(path string, rows int, err error) error {
	if err == nil {
		return nil
	}
	return &OutputWriteError{Path: path, Rows: rows, Err: err}
}
