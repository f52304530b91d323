package engine

import (
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
)

// Intent is a user action raised by a screen.
type Intent interface {
	IntentName() string
}

// WelcomeSkip is raised by the Skip button on the welcome carousel.
type WelcomeSkip struct{}

// WelcomeGetStarted is raised by the Get Started button on the last slide.
type WelcomeGetStarted struct{}

// StepComplete is raised when an intermediate onboarding step is finished.
type StepComplete struct {
	Step    constants.Route
	Answers session.Profile
}

// FinalComplete is raised by the last onboarding step.
type FinalComplete struct {
	Profile session.Profile
}

// LogoutRequested is raised from the authenticated screens.
type LogoutRequested struct{}

// BackGesture is a user swipe-back or hardware back press.
type BackGesture struct{}

func (WelcomeSkip) IntentName() string       { return "welcome_skip" }
func (WelcomeGetStarted) IntentName() string { return "welcome_get_started" }
func (StepComplete) IntentName() string      { return "onboarding_step_complete" }
func (FinalComplete) IntentName() string     { return "final_onboarding_complete" }
func (LogoutRequested) IntentName() string   { return "logout_requested" }
func (BackGesture) IntentName() string       { return "back_gesture" }
