// Package session derives the in-memory phase of the app from the persisted
// session flags.
package session

import (
	"fmt"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
)

// PhaseKind is the coarse state of the flow.
type PhaseKind int

const (
	PhaseLoading PhaseKind = iota
	PhaseWelcome
	PhaseOnboarding
	PhaseAuthenticated
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseLoading:
		return "loading"
	case PhaseWelcome:
		return "welcome"
	case PhaseOnboarding:
		return "onboarding"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Phase is the derived state governing which screens are reachable. Step is
// set only for PhaseOnboarding.
type Phase struct {
	Kind PhaseKind
	Step constants.Route
}

var (
	Loading       = Phase{Kind: PhaseLoading}
	Welcome       = Phase{Kind: PhaseWelcome}
	Authenticated = Phase{Kind: PhaseAuthenticated}
)

// Onboarding returns the onboarding phase at step.
func Onboarding(step constants.Route) Phase {
	return Phase{Kind: PhaseOnboarding, Step: step}
}

// Root returns the route a reset stack is rooted at for this phase.
func (p Phase) Root() constants.Route {
	switch p.Kind {
	case PhaseWelcome:
		return constants.RouteWelcome
	case PhaseOnboarding:
		return p.Step
	case PhaseAuthenticated:
		return constants.RouteMain
	default:
		return constants.RouteNone
	}
}

// Allows reports whether route may appear on the navigation stack while in
// this phase.
func (p Phase) Allows(route constants.Route) bool {
	switch p.Kind {
	case PhaseWelcome, PhaseOnboarding:
		return route == constants.RouteWelcome || route.IsOnboardingStep()
	case PhaseAuthenticated:
		return route == constants.RouteMain
	default:
		return false
	}
}

func (p Phase) String() string {
	if p.Kind == PhaseOnboarding {
		return fmt.Sprintf("onboarding(%s)", p.Step)
	}
	return p.Kind.String()
}
