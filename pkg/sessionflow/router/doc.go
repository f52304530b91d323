// Package router is the navigation stack controller.
//
// The router owns the history stack and accepts two directives: Push appends
// a route and keeps history, Reset discards history and leaves a single
// route. Back is reserved for user gestures and is refused on routes whose
// gestures are disabled (see constants.Route.GestureEnabled).
//
// # Driving screens
//
// Screens are plain functions registered per route. Run renders the screen
// on top of the stack, passes the intent it returns to a dispatcher (normally
// the transition engine), and renders whatever is on top afterwards:
//
//	r := router.New()
//
//	r.Register(constants.RouteWelcome, func(ctx context.Context, f router.Frame) (any, error) {
//	    return engine.WelcomeGetStarted{}, nil
//	})
//
//	r.Register(constants.RouteMain, func(ctx context.Context, f router.Frame) (any, error) {
//	    return router.Exit, nil
//	})
//
//	eng := engine.New(st, r)
//	eng.Start(ctx)
//	err := r.Run(ctx, eng.Dispatch)
//
// # Failed intents
//
// When the dispatcher returns an error the stack is left as it was, so the
// same screen is rendered again with Frame.Err set. Screens use it to show a
// retry affordance or give up by returning Exit.
package router
