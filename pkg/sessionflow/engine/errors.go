package engine

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
)

var (
	// ErrNotReady is returned for intents raised before Start has resolved
	// the session.
	ErrNotReady = errors.New("session still loading")

	// ErrIntentInFlight is returned when an intent arrives while another is
	// still being handled.
	ErrIntentInFlight = errors.New("another intent is in flight")

	// ErrUnknownIntent is returned by Dispatch for results that are not intents.
	ErrUnknownIntent = errors.New("unknown intent")
)

// TransitionError reports an intent raised from a phase that does not accept
// it. Nothing was written and no directive was issued.
type TransitionError struct {
	Phase session.Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("not allowed in phase %s", e.Phase)
}

// IntentError wraps every failure returned by an intent handler.
type IntentError struct {
	Intent string // Intent that failed (e.g., "logout_requested")
	Err    error  // Underlying error
}

func (e *IntentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Intent, e.Err)
}

func (e *IntentError) Unwrap() error {
	return e.Err
}

func intentError(intent Intent, err error) error {
	return &IntentError{Intent: intent.IntentName(), Err: err}
}

// IsRetryable reports whether err is a failed store write the user may retry.
func IsRetryable(err error) bool {
	return store.IsWriteFailure(err)
}

// IsTransitionError checks if err is an intent raised from the wrong phase.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
