package session

import "github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"

// Flags is the pair of persisted session booleans. Absent keys, read
// failures, and any value other than exactly "true" are false.
type Flags struct {
	HasCompletedOnboarding bool
	IsLoggedIn             bool
}

// ParseFlag interprets a raw stored value.
func ParseFlag(value string, ok bool) bool {
	return ok && value == constants.FlagTrue
}

// Phase maps the flags onto the phase the app starts in.
func (f Flags) Phase() Phase {
	if f.HasCompletedOnboarding && f.IsLoggedIn {
		return Authenticated
	}
	return Welcome
}

// Consistent reports whether the flags satisfy "logged in implies onboarded".
func (f Flags) Consistent() bool {
	return !f.IsLoggedIn || f.HasCompletedOnboarding
}
