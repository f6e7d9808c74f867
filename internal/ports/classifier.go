package ports

import (
	"context"
	"errors"
)

// ErrDailyLimitExceeded signals the classification backend's hard daily
// quota. It is the one error that must stop a tagging run instead of being
// skipped: further calls in the same run are certain to fail.
var ErrDailyLimitExceeded = errors.New("classifier daily limit exceeded")

// Classifier turns file content into a category label. Implementations own
// prompt selection, retries and response validation: Classify never returns
// a label outside the configured set, and its only expected error values are
// ErrDailyLimitExceeded and context cancellation.
type Classifier interface {
	Classify(ctx context.Context, content []byte, extension string) (string, error)

	// Verify checks that the configured credential is accepted by the
	// backend. Used as a precondition before a run starts.
	Verify(ctx context.Context) error
}
