// internal/domain/store/errors.go
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks results rejected because of bad input
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks results that reference something that does not exist
	ErrNotFound = errors.New("not found")
)

// Outcome is embedded in every operation result. Domain failures are reported
// here instead of as Go errors.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	err error
}

// Err returns nil on success, otherwise an error wrapping ErrValidation or
// ErrNotFound.
func (o Outcome) Err() error {
	return o.err
}

func succeeded(message string) Outcome {
	return Outcome{Success: true, Message: message}
}

func invalid(message string) Outcome {
	return Outcome{Error: message, err: fmt.Errorf("%w: %s", ErrValidation, message)}
}

func notFound(message string) Outcome {
	return Outcome{Error: message, err: fmt.Errorf("%w: %s", ErrNotFound, message)}
}
