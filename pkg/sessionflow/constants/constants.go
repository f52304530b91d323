// Package constants defines shared constants, types, and configuration values
// used throughout sessionflow: route identifiers, persisted session keys and
// environment variable names.
package constants

import (
	"os"
	"strings"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by sessionflow itself. Configuration fields use
// the SESSIONFLOW_ prefix and are declared on config.Config.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	ConfigPathEnvVar  = "SESSIONFLOW_CONFIG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Persisted session keys. Values are exact strings; only "true" counts as set.
const (
	KeyHasCompletedOnboarding = "hasCompletedOnboarding"
	KeyIsLoggedIn             = "isLoggedIn"
	KeyUserData               = "userData"
	KeyUserProfile            = "userProfile"

	FlagTrue = "true"
)

// SessionKeys lists every session-scoped key, in the order they are purged on
// logout. isLoggedIn is first so a sequential store never keeps it alongside
// purged profile data.
var SessionKeys = []string{
	KeyIsLoggedIn,
	KeyUserData,
	KeyHasCompletedOnboarding,
	KeyUserProfile,
}

// Route identifies a screen that can sit on the navigation stack.
type Route int

const (
	RouteNone Route = iota
	RouteWelcome
	RouteUserInfo
	RouteWorkoutPreference
	RouteEquipment
	RouteGymEquipment
	RouteFitnessGoal
	RouteMain
)

// OnboardingSteps is the ordered onboarding sequence.
var OnboardingSteps = []Route{
	RouteUserInfo,
	RouteWorkoutPreference,
	RouteEquipment,
	RouteGymEquipment,
	RouteFitnessGoal,
}

func (r Route) GetName() string {
	switch r {
	case RouteWelcome:
		return "Welcome"
	case RouteUserInfo:
		return "UserInfo"
	case RouteWorkoutPreference:
		return "WorkoutPreference"
	case RouteEquipment:
		return "Equipment"
	case RouteGymEquipment:
		return "GymEquipment"
	case RouteFitnessGoal:
		return "FitnessGoal"
	case RouteMain:
		return "Main"
	default:
		return "None"
	}
}

func (r Route) String() string {
	return r.GetName()
}

// ParseRoute returns the route with the given name, ignoring case.
func ParseRoute(name string) (Route, bool) {
	for r := RouteWelcome; r <= RouteMain; r++ {
		if strings.EqualFold(r.GetName(), name) {
			return r, true
		}
	}
	return RouteNone, false
}

// IsOnboardingStep reports whether r is one of the OnboardingSteps.
func (r Route) IsOnboardingStep() bool {
	return r.stepIndex() >= 0
}

// IsFinalStep reports whether r is the last onboarding step.
func (r Route) IsFinalStep() bool {
	return r == OnboardingSteps[len(OnboardingSteps)-1]
}

// NextStep returns the onboarding step after r, or RouteNone if r is the
// final step or not a step at all.
func (r Route) NextStep() Route {
	i := r.stepIndex()
	if i < 0 || i == len(OnboardingSteps)-1 {
		return RouteNone
	}
	return OnboardingSteps[i+1]
}

// StepNumber returns the 1-based position of r in the onboarding sequence,
// or 0 if r is not a step.
func (r Route) StepNumber() int {
	return r.stepIndex() + 1
}

func (r Route) stepIndex() int {
	for i, s := range OnboardingSteps {
		if s == r {
			return i
		}
	}
	return -1
}

// GestureEnabled reports whether a user back gesture may pop r off the stack.
// Phase-defining screens and the later onboarding steps are locked.
func (r Route) GestureEnabled() bool {
	return r == RouteUserInfo
}
