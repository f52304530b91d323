package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/engine"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/locale"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/router"
	"github.com/spf13/cobra"
)

// script holds the answers the scripted screens give.
type script struct {
	skip         bool
	name         string
	age          int
	preference   string
	equipment    []string
	gymEquipment []string
	goal         string
	logout       bool
	maxRetries   int

	failures map[constants.Route]int
}

func newWalkthroughCmd(opts *rootOptions) *cobra.Command {
	s := &script{}

	cmd := &cobra.Command{
		Use:   "walkthrough",
		Short: "Run the screens with scripted answers from wherever the session resolves",
		Long: `Walkthrough resolves the stored session and renders each screen as text,
answering onboarding with the given flags. It stops at the main screen, or logs
out first with --logout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer flow.Close()

			s.register(flow, cmd.OutOrStdout())
			flow.Start(cmd.Context())
			return flow.Run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.BoolVar(&s.skip, "skip", false, "press Skip on the first slide")
	f.StringVar(&s.name, "name", "Alex", "name entered on UserInfo")
	f.IntVar(&s.age, "age", 30, "age entered on UserInfo")
	f.StringVar(&s.preference, "preference", "gym", "workout preference")
	f.StringSliceVar(&s.equipment, "equipment", []string{"dumbbells"}, "home equipment")
	f.StringSliceVar(&s.gymEquipment, "gym-equipment", []string{"squat_rack"}, "gym equipment")
	f.StringVar(&s.goal, "goal", "build_muscle", "fitness goal")
	f.BoolVar(&s.logout, "logout", false, "log out from the main screen")
	f.IntVar(&s.maxRetries, "retries", 2, "times a screen retries a failed save")
	return cmd
}

func (s *script) register(flow *sessionflow.Flow, out io.Writer) {
	catalog := flow.Catalog
	loggedOut := false

	flow.Router.Register(constants.RouteWelcome, func(ctx context.Context, f router.Frame) (any, error) {
		if loggedOut {
			fmt.Fprintln(out, "[Welcome] logged out")
			return router.Exit, nil
		}
		if err := s.retry(f); err != nil {
			return nil, err
		}

		carousel := sessionflow.NewCarousel(catalog)
		for {
			slide := carousel.Slide()
			fmt.Fprintf(out, "[Welcome %d/%d] %s: %s\n", carousel.Index()+1, locale.SlideCount, slide.Title, slide.Description)

			action := sessionflow.WelcomeActionNext
			switch {
			case carousel.IsLast():
				action = sessionflow.WelcomeActionGetStarted
			case s.skip:
				action = sessionflow.WelcomeActionSkip
			}

			intent, err := carousel.Apply(action)
			if err != nil {
				return nil, err
			}
			if intent != nil {
				fmt.Fprintf(out, "  > %s\n", welcomeButton(catalog, action))
				return intent, nil
			}
		}
	})

	for _, step := range constants.OnboardingSteps {
		step := step
		flow.Router.Register(step, func(ctx context.Context, f router.Frame) (any, error) {
			if err := s.retry(f); err != nil {
				return nil, err
			}

			form := sessionflow.NewStepForm(catalog, step)
			fmt.Fprintf(out, "[%s] %s\n", form.Progress, form.Title)
			if f.Err != nil {
				fmt.Fprintf(out, "  ! %s\n", catalog.Text(locale.SaveFailed))
			}

			if err := s.fill(form); err != nil {
				return nil, err
			}
			for _, c := range form.Choices {
				if c.Selected {
					fmt.Fprintf(out, "  [x] %s\n", c.Text)
				}
			}

			action := sessionflow.StepActionContinue
			if f.Err != nil {
				action = sessionflow.StepActionRetry
			}
			return form.Submit(action)
		})
	}

	flow.Router.Register(constants.RouteMain, func(ctx context.Context, f router.Frame) (any, error) {
		if err := s.retry(f); err != nil {
			return nil, err
		}

		greeting, err := flow.Greeting(ctx)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "[Main] %s %s\n", greeting, catalog.Text(locale.HomeSubtitle))

		if !s.logout {
			return router.Exit, nil
		}
		loggedOut = true
		fmt.Fprintf(out, "  > %s\n", catalog.Text(locale.ButtonLogout))
		return engine.LogoutRequested{}, nil
	})
}

func (s *script) fill(form *sessionflow.StepForm) error {
	switch form.Step {
	case constants.RouteUserInfo:
		return form.SetUserInfo(s.name, s.age)
	case constants.RouteWorkoutPreference:
		return form.Select(s.preference)
	case constants.RouteEquipment:
		return form.Select(s.equipment...)
	case constants.RouteGymEquipment:
		return form.Select(s.gymEquipment...)
	case constants.RouteFitnessGoal:
		return form.Select(s.goal)
	default:
		return nil
	}
}

func welcomeButton(catalog *locale.Catalog, action sessionflow.WelcomeAction) string {
	switch action {
	case sessionflow.WelcomeActionSkip:
		return catalog.Text(locale.ButtonSkip)
	case sessionflow.WelcomeActionGetStarted:
		return catalog.Text(locale.ButtonGetStarted)
	default:
		return catalog.Text(locale.ButtonNext)
	}
}

// retry stops a screen that keeps failing instead of retrying forever.
// Rejected intents are not retried at all.
func (s *script) retry(f router.Frame) error {
	if f.Err == nil {
		return nil
	}
	if !sessionflow.IsRetryable(f.Err) {
		return f.Err
	}
	if s.failures == nil {
		s.failures = make(map[constants.Route]int)
	}
	s.failures[f.Route]++
	if n := s.failures[f.Route]; n > s.maxRetries {
		return fmt.Errorf("giving up on %s after %d failed saves: %w", strings.ToLower(f.Route.String()), n, f.Err)
	}
	return nil
}
