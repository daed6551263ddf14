package world

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError through errors.Is.
	ErrConfiguration = errors.New("invalid generation configuration")
	// ErrRouting matches every *RoutingError through errors.Is.
	ErrRouting = errors.New("no corridor route")
)

// ConfigurationError reports generation parameters that can never produce a
// map. It is fatal to the generation call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RoutingError reports that two regions could not be joined by a corridor.
// Repair recovers from it by trying another pair.
type RoutingError struct {
	Start, End RegionID
	Reason     string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("route region %d to region %d: %s", e.Start, e.End, e.Reason)
}

// Unwrap lets errors.Is(err, ErrRouting) succeed.
func (e *RoutingError) Unwrap() error {
	return ErrRouting
}
