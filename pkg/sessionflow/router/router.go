package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/internal"
)

// Frame is what a screen receives each time it is rendered.
type Frame struct {
	Route  constants.Route
	Params any
	Err    error // failure of the intent this screen emitted last, if any
}

// ScreenFunc renders a screen and returns the intent the user raised on it.
// Returning Exit stops Run.
type ScreenFunc func(ctx context.Context, frame Frame) (result any, err error)

// DispatchFunc handles an intent raised by the screen at from. It is expected
// to issue navigation directives on the router.
type DispatchFunc func(ctx context.Context, from constants.Route, result any) error

// ChangeFunc is called after every change to the stack with the new routes,
// bottom first.
type ChangeFunc func(routes []constants.Route)

type exitResult struct{}

// Exit is the screen result that ends Run.
var Exit any = exitResult{}

// Router is the navigation stack controller. It accepts push and reset
// directives, applies user back gestures on gesture-enabled routes, and can
// drive a registered set of screens headlessly.
type Router struct {
	mu        sync.Mutex
	screens   map[constants.Route]ScreenFunc
	stack     *Stack
	listeners []ChangeFunc
	logger    *slog.Logger
}

// New creates a new Router with an empty stack.
func New() *Router {
	return &Router{
		screens: make(map[constants.Route]ScreenFunc),
		stack:   NewStack(),
		logger:  internal.GetLogger(),
	}
}

// WithLogger replaces the application logger.
func (r *Router) WithLogger(logger *slog.Logger) *Router {
	r.logger = logger
	return r
}

// Register adds a screen to the router.
// The screen function will be called whenever route is on top of the stack.
func (r *Router) Register(route constants.Route, fn ScreenFunc) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens[route] = fn
	return r
}

// OnChange registers a listener for stack changes.
func (r *Router) OnChange(fn ChangeFunc) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
	return r
}

// Push appends route to the history.
func (r *Router) Push(route constants.Route) {
	r.PushWithParams(route, nil)
}

// PushWithParams appends route with screen parameters.
func (r *Router) PushWithParams(route constants.Route, params any) {
	r.mu.Lock()
	r.stack.Push(route, params)
	r.mu.Unlock()

	r.logger.Debug("Navigation push", "route", route.String())
	r.notify()
}

// Reset discards the entire history and leaves route as the only entry.
func (r *Router) Reset(route constants.Route) {
	r.mu.Lock()
	r.stack.Clear()
	r.stack.Push(route, nil)
	r.mu.Unlock()

	r.logger.Debug("Navigation reset", "route", route.String())
	r.notify()
}

// Back applies a user back gesture. It pops the top entry only when that
// route allows gestures and something remains beneath it.
func (r *Router) Back() bool {
	r.mu.Lock()
	top := r.stack.Peek()
	if top == nil || r.stack.Len() < 2 || !top.Route.GestureEnabled() {
		r.mu.Unlock()
		return false
	}
	popped := r.stack.Pop()
	r.mu.Unlock()

	r.logger.Debug("Navigation back", "from", popped.Route.String())
	r.notify()
	return true
}

// Current returns the route on top of the stack, or RouteNone.
func (r *Router) Current() constants.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if top := r.stack.Peek(); top != nil {
		return top.Route
	}
	return constants.RouteNone
}

// Routes returns the routes on the stack, bottom first.
func (r *Router) Routes() []constants.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Routes()
}

// Stack returns the navigation stack for inspection.
func (r *Router) Stack() *Stack {
	return r.stack
}

func (r *Router) notify() {
	r.mu.Lock()
	routes := r.stack.Routes()
	listeners := append([]ChangeFunc(nil), r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(routes)
	}
}

// Run renders whatever screen is on top of the stack, hands its result to
// dispatch, and repeats until a screen returns Exit, a screen fails, or ctx
// is done. A dispatch error is not fatal: the same screen is rendered again
// with the error in Frame.Err.
func (r *Router) Run(ctx context.Context, dispatch DispatchFunc) error {
	if dispatch == nil {
		return fmt.Errorf("router: no dispatch function set")
	}

	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.mu.Lock()
		top := r.stack.Peek()
		var (
			entry StackEntry
			fn    ScreenFunc
			ok    bool
		)
		if top != nil {
			entry = *top
			fn, ok = r.screens[entry.Route]
		}
		r.mu.Unlock()

		if top == nil {
			return fmt.Errorf("router: navigation stack is empty")
		}
		if !ok {
			return fmt.Errorf("router: screen %s not registered", entry.Route)
		}

		result, err := fn(ctx, Frame{Route: entry.Route, Params: entry.Params, Err: lastErr})
		if err != nil {
			return fmt.Errorf("router: screen %s error: %w", entry.Route, err)
		}

		if _, exit := result.(exitResult); exit {
			return nil
		}

		lastErr = dispatch(ctx, entry.Route, result)
		if lastErr != nil {
			r.logger.Debug("Intent failed, staying on screen", "route", entry.Route.String(), "error", lastErr)
		}
	}
}
