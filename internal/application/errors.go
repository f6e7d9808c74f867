package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrRunActive is returned when a second operation is started while one
	// is already running against the account.
	ErrRunActive = errors.New("an operation is already running")
)

// ValidationError represents a precondition failure: missing credentials,
// an unusable parameter, a run that may not start.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PlacementError represents a failure to place a single file during
// organizing. It is logged and the run continues.
type PlacementError struct {
	FileID string
	Reason string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %s: %s", e.FileID, e.Reason)
}
