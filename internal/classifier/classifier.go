package classifier

import (
	"context"
	"errors"
)

// Classifier is the external AI boundary consulted for ambiguous scores.
// Classify returns free-form advisory text on success. Any error wraps one
// of the sentinel failures below; callers treat all of them the same and
// degrade to the rule-based verdict.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

var (
	// ErrNotConfigured means no API key was provided.
	ErrNotConfigured = errors.New("classifier not configured")
	// ErrTransport covers request failures and timeouts.
	ErrTransport = errors.New("classifier transport error")
	// ErrUnparseable means the provider answered with nothing usable.
	ErrUnparseable = errors.New("unparseable classifier response")
)
