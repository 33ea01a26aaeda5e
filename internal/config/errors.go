package config

import "errors"

// Sentinel errors returned by config loading and validation.
var (
	ErrConfigNotFound   = errors.New("config: file not found")
	ErrInvalidYAML      = errors.New("config: invalid YAML")
	ErrValidationFailed = errors.New("config: validation failed")
	ErrMissingRequired  = errors.New("config: missing required field")
	ErrInvalidValue     = errors.New("config: invalid value")
)

// ValidationError reports a single invalid field within a named
// config component.
type ValidationError struct {
	Component string
	Field     string
	Err       error
}

func (e *ValidationError) Error() string {
	return "config: " + e.Component + "." + e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a ValidationError wrapping err.
func NewValidationError(component, field string, err error) *ValidationError {
	return &ValidationError{Component: component, Field: field, Err: err}
}

// LoadError reports a failure to read or parse a specific config file.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return "config: loading " + e.File + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError builds a LoadError wrapping err.
func NewLoadError(file string, err error) *LoadError {
	return &LoadError{File: file, Err: err}
}
