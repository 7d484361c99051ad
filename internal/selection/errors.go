// Package selection finds the most satisfying affordable menu for a fixed guest list.
package selection

import (
	"errors"
	"fmt"
)

// ErrNoViableMenu signals that no menu obeying the composition rule fits the budget.
// Callers treat it as "no recommendation for this guest list", not as a failure.
var ErrNoViableMenu = errors.New("no viable menu within budget")

// Error represents an error that occurs during menu selection
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
