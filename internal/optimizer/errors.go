// Package optimizer enumerates guest lists, picks the best menu for each and ranks the
// resulting parties by host happiness.
package optimizer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration matches every *ConfigError via errors.Is
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrEmptyCatalog is returned when there are no friends or no foods to optimize over
	ErrEmptyCatalog = errors.New("empty catalog")
)

// ConfigError describes a rejected OptimizationConfig field
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid configuration: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrInvalidConfiguration) match any ConfigError
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
