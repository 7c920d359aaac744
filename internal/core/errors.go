package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ConfigurationError via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigurationError reports a RuntimeConfig that cannot host a game.
// It is returned by Reset and is not recoverable mid-game.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("snake: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
