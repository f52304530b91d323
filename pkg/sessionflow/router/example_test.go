package router_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/router"
)

// Screen results used by these examples.
type next struct{}
type finish struct{}

// Example demonstrates a screen set driven by a dispatcher that pushes
// forward and resets at the end.
func Example() {
	r := router.New()

	r.Register(constants.RouteWelcome, func(ctx context.Context, f router.Frame) (any, error) {
		fmt.Println("Welcome: get started")
		return next{}, nil
	})

	r.Register(constants.RouteUserInfo, func(ctx context.Context, f router.Frame) (any, error) {
		fmt.Println("UserInfo: done")
		return finish{}, nil
	})

	r.Register(constants.RouteMain, func(ctx context.Context, f router.Frame) (any, error) {
		fmt.Println("Main: exiting")
		return router.Exit, nil
	})

	dispatch := func(ctx context.Context, from constants.Route, result any) error {
		switch result.(type) {
		case next:
			r.Push(constants.RouteUserInfo)
		case finish:
			r.Reset(constants.RouteMain)
		}
		return nil
	}

	r.Reset(constants.RouteWelcome)
	_ = r.Run(context.Background(), dispatch)
	fmt.Println(r.Routes())

	// Output:
	// Welcome: get started
	// UserInfo: done
	// Main: exiting
	// [Main]
}

// Example_failedIntent demonstrates a screen seeing its failed intent on the
// next render.
func Example_failedIntent() {
	r := router.New()
	attempts := 0

	r.Register(constants.RouteFitnessGoal, func(ctx context.Context, f router.Frame) (any, error) {
		if f.Err != nil {
			fmt.Printf("FitnessGoal: previous attempt failed (%v)\n", f.Err)
		}
		if attempts == 2 {
			fmt.Println("FitnessGoal: giving up")
			return router.Exit, nil
		}
		attempts++
		fmt.Println("FitnessGoal: finish")
		return finish{}, nil
	})

	dispatch := func(ctx context.Context, from constants.Route, result any) error {
		return errors.New("disk full")
	}

	r.Reset(constants.RouteFitnessGoal)
	_ = r.Run(context.Background(), dispatch)

	// Output:
	// FitnessGoal: finish
	// FitnessGoal: previous attempt failed (disk full)
	// FitnessGoal: finish
	// FitnessGoal: previous attempt failed (disk full)
	// FitnessGoal: giving up
}

// Example_backGesture demonstrates that gestures only pop unlocked routes.
func Example_backGesture() {
	r := router.New()

	r.Reset(constants.RouteWelcome)
	r.Push(constants.RouteUserInfo)
	fmt.Println(r.Back(), r.Routes())

	r.Push(constants.RouteUserInfo)
	r.Push(constants.RouteWorkoutPreference)
	fmt.Println(r.Back(), r.Routes())

	// Output:
	// true [Welcome]
	// false [Welcome UserInfo WorkoutPreference]
}
