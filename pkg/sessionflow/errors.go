package sessionflow

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/engine"
)

// Sentinel errors for common conditions.
var (
	// ErrActionUnavailable indicates a screen action that is not offered in
	// the screen's current state, such as Get Started before the last slide.
	ErrActionUnavailable = errors.New("action not available")

	// ErrUnknownBackend indicates a store backend name Open does not know.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// SetupError represents a failure to assemble the flow: the store could not
// be opened, the language catalog could not load, and so on. These happen
// before the engine exists and are not retryable from a screen.
type SetupError struct {
	Op  string // Operation that failed (e.g., "open_store", "load_catalog")
	Err error  // Underlying error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sessionflow: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sessionflow: %s", e.Op)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSetupError creates a new setup error.
func NewSetupError(op string, err error) *SetupError {
	return &SetupError{Op: op, Err: err}
}

// IsSetupError checks if an error is a setup error.
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return errors.As(err, &setupErr)
}

// IsRetryable reports whether an intent failed on a store write. Screens
// should keep the user in place and offer to try again.
func IsRetryable(err error) bool {
	return engine.IsRetryable(err)
}

// IsRejected reports whether an intent was refused without touching the
// store: fired from the wrong phase, before start, or while another intent
// was in flight.
func IsRejected(err error) bool {
	return engine.IsTransitionError(err) ||
		errors.Is(err, engine.ErrNotReady) ||
		errors.Is(err, engine.ErrIntentInFlight)
}
