package sessionflow

// WelcomeAction represents user actions that can occur on the welcome carousel.
type WelcomeAction int

const (
	WelcomeActionNext       WelcomeAction = iota // Advance to the next slide
	WelcomeActionSkip                            // Leave the carousel early
	WelcomeActionGetStarted                      // Leave from the last slide
)

func (a WelcomeAction) String() string {
	switch a {
	case WelcomeActionNext:
		return "next"
	case WelcomeActionSkip:
		return "skip"
	case WelcomeActionGetStarted:
		return "get_started"
	default:
		return "unknown"
	}
}

// StepAction represents user actions that can occur on an onboarding step.
type StepAction int

const (
	StepActionContinue StepAction = iota // Submit the step's answers
	StepActionBack                       // Back gesture
	StepActionRetry                      // Resubmit after a failed save
)
