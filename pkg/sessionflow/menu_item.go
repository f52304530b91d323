package sessionflow

import (
	"fmt"
	"slices"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/engine"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/locale"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
)

// Choice represents a single answer offered on an onboarding step.
type Choice struct {
	Text     string // Display text for the choice
	Value    string // Value stored in the profile
	Selected bool   // Whether this choice is selected
}

// stepChoices lists the answer values per step, in display order.
var stepChoices = map[constants.Route][]string{
	constants.RouteWorkoutPreference: {"home", "gym", "outdoor"},
	constants.RouteEquipment:         {"dumbbells", "resistance_bands", "kettlebell", "pull_up_bar", "yoga_mat"},
	constants.RouteGymEquipment:      {"treadmill", "rowing_machine", "squat_rack", "cable_machine", "leg_press"},
	constants.RouteFitnessGoal:       {"lose_weight", "build_muscle", "improve_endurance", "stay_healthy"},
}

// multiSelect marks the steps that accept more than one choice.
var multiSelect = map[constants.Route]bool{
	constants.RouteEquipment:    true,
	constants.RouteGymEquipment: true,
}

// StepForm is the state of one onboarding step screen. UserInfo takes a name
// and age; every other step takes one or more Choices.
type StepForm struct {
	Step        constants.Route
	Title       string
	Progress    string
	Choices     []Choice
	MultiSelect bool

	name string
	age  int
}

// NewStepForm builds the form for step with its copy from catalog.
func NewStepForm(catalog *locale.Catalog, step constants.Route) *StepForm {
	f := &StepForm{
		Step:        step,
		Title:       catalog.StepTitle(step),
		Progress:    catalog.StepProgress(step),
		MultiSelect: multiSelect[step],
	}
	for _, v := range stepChoices[step] {
		f.Choices = append(f.Choices, Choice{Text: catalog.ChoiceText(v), Value: v})
	}
	return f
}

// SetUserInfo fills the UserInfo step.
func (f *StepForm) SetUserInfo(name string, age int) error {
	if f.Step != constants.RouteUserInfo {
		return fmt.Errorf("%w: user info on %s", ErrActionUnavailable, f.Step)
	}
	f.name = name
	f.age = age
	return nil
}

// Select marks the choices with the given values. A single-select step keeps
// only the last value.
func (f *StepForm) Select(values ...string) error {
	for _, v := range values {
		i := slices.IndexFunc(f.Choices, func(c Choice) bool { return c.Value == v })
		if i < 0 {
			return fmt.Errorf("%w: choice %q on %s", ErrActionUnavailable, v, f.Step)
		}
		if !f.MultiSelect {
			for j := range f.Choices {
				f.Choices[j].Selected = false
			}
		}
		f.Choices[i].Selected = true
	}
	return nil
}

// Selected returns the values of the selected choices in display order.
func (f *StepForm) Selected() []string {
	var values []string
	for _, c := range f.Choices {
		if c.Selected {
			values = append(values, c.Value)
		}
	}
	return values
}

// Answers returns the profile fields this step contributes.
func (f *StepForm) Answers() session.Profile {
	selected := f.Selected()
	first := ""
	if len(selected) > 0 {
		first = selected[0]
	}

	switch f.Step {
	case constants.RouteUserInfo:
		return session.Profile{Name: f.name, Age: f.age}
	case constants.RouteWorkoutPreference:
		return session.Profile{WorkoutPreference: first}
	case constants.RouteEquipment:
		return session.Profile{Equipment: selected}
	case constants.RouteGymEquipment:
		return session.Profile{GymEquipment: selected}
	case constants.RouteFitnessGoal:
		return session.Profile{FitnessGoal: first}
	default:
		return session.Profile{}
	}
}

// Submit turns action into the intent the engine should receive. Continue
// and Retry submit the answers; the final step submits the completed profile.
func (f *StepForm) Submit(action StepAction) (engine.Intent, error) {
	switch action {
	case StepActionBack:
		return engine.BackGesture{}, nil
	case StepActionContinue, StepActionRetry:
		if f.Step.IsFinalStep() {
			return engine.FinalComplete{Profile: f.Answers()}, nil
		}
		return engine.StepComplete{Step: f.Step, Answers: f.Answers()}, nil
	default:
		return nil, fmt.Errorf("%w: step action %d", ErrActionUnavailable, action)
	}
}
