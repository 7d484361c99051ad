package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate matches any DuplicateError
	ErrDuplicate = errors.New("duplicate record")
)

// LoadError represents a failure reading or decoding a catalog file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned when a named friend or food does not exist
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError is returned when adding a name that already exists (case-insensitive)
type DuplicateError struct {
	Kind string
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a %s with name %q already exists", e.Kind, e.Name)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
