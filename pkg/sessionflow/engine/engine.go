// Package engine implements the session transition engine: the single writer
// of the persisted session flags and the only issuer of navigation directives.
//
// Every intent follows the same order: check the phase, apply its store
// writes, and only once the store has confirmed them update the in-memory
// phase and issue a push or reset. A failed write suppresses the directive so
// the user stays on the current screen and may retry.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/internal"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	"go.uber.org/atomic"
)

// Navigator is the navigation stack controller the engine drives.
type Navigator interface {
	// Push appends route and keeps history.
	Push(route constants.Route)
	// Reset discards history and leaves route as the only entry.
	Reset(route constants.Route)
	// Current returns the route on top of the stack.
	Current() constants.Route
	// Back applies a user back gesture and reports whether it was accepted.
	Back() bool
}

// PhaseFunc observes phase changes.
type PhaseFunc func(from, to session.Phase)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine is the session state machine.
type Engine struct {
	store    store.Store
	nav      Navigator
	resolver *session.Resolver
	logger   *slog.Logger

	busy *atomic.Bool

	mu        sync.RWMutex
	phase     session.Phase
	draft     session.Profile
	observers []PhaseFunc
}

// New creates an engine in the Loading phase. The store and navigator are
// required; Start must run before any intent is accepted.
func New(s store.Store, nav Navigator, opts ...Option) *Engine {
	if s == nil {
		panic("engine: nil store")
	}
	if nav == nil {
		panic("engine: nil navigator")
	}

	e := &Engine{
		store:  s,
		nav:    nav,
		logger: internal.GetLogger(),
		busy:   atomic.NewBool(false),
		phase:  session.Loading,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = session.NewResolver(s, e.logger)
	return e
}

// OnPhaseChange registers an observer called after every phase change.
func (e *Engine) OnPhaseChange(fn PhaseFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Phase returns the current in-memory phase.
func (e *Engine) Phase() session.Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phase
}

// Draft returns the onboarding answers buffered so far.
func (e *Engine) Draft() session.Profile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.draft
}

// Start resolves the persisted session and roots the navigation stack at the
// resolved phase. It never fails; calling it again re-derives the phase from
// the store, as a restart would.
func (e *Engine) Start(ctx context.Context) session.Phase {
	if !e.busy.CompareAndSwap(false, true) {
		e.logger.Warn("Start called while an intent is in flight")
		return e.Phase()
	}
	defer e.busy.Store(false)

	phase := e.resolver.Resolve(ctx)
	e.mu.Lock()
	e.draft = session.Profile{}
	e.mu.Unlock()
	e.setPhase(phase)
	e.nav.Reset(phase.Root())

	e.logger.Info("Session started", "phase", phase.String())
	return phase
}

// OnWelcomeSkip handles the Skip button on the welcome carousel.
func (e *Engine) OnWelcomeSkip(ctx context.Context) error {
	return e.handle(ctx, WelcomeSkip{}, e.startOnboarding)
}

// OnWelcomeGetStarted handles the Get Started button on the welcome carousel.
func (e *Engine) OnWelcomeGetStarted(ctx context.Context) error {
	return e.handle(ctx, WelcomeGetStarted{}, e.startOnboarding)
}

// OnOnboardingStepComplete advances from an intermediate onboarding step.
// answers are buffered in memory until the final step commits them.
func (e *Engine) OnOnboardingStepComplete(ctx context.Context, step constants.Route, answers session.Profile) error {
	intent := StepComplete{Step: step, Answers: answers}
	return e.handle(ctx, intent, func(ctx context.Context, phase session.Phase) error {
		return e.advanceStep(phase, intent)
	})
}

// OnFinalOnboardingComplete commits the profile and both session flags, then
// resets the stack to the authenticated root.
func (e *Engine) OnFinalOnboardingComplete(ctx context.Context, profile session.Profile) error {
	intent := FinalComplete{Profile: profile}
	return e.handle(ctx, intent, func(ctx context.Context, phase session.Phase) error {
		return e.completeOnboarding(ctx, phase, profile)
	})
}

// OnLogoutRequested purges every session key and resets the stack to Welcome.
func (e *Engine) OnLogoutRequested(ctx context.Context) error {
	return e.handle(ctx, LogoutRequested{}, e.logout)
}

// OnBackGesture forwards a user back gesture to the navigator and keeps the
// phase in step with the route it lands on. A refused gesture is not an error.
func (e *Engine) OnBackGesture(ctx context.Context) error {
	return e.handle(ctx, BackGesture{}, e.back)
}

// Dispatch routes a screen result to its intent handler. It matches
// router.DispatchFunc.
func (e *Engine) Dispatch(ctx context.Context, from constants.Route, result any) error {
	switch in := result.(type) {
	case WelcomeSkip:
		return e.OnWelcomeSkip(ctx)
	case WelcomeGetStarted:
		return e.OnWelcomeGetStarted(ctx)
	case StepComplete:
		return e.OnOnboardingStepComplete(ctx, in.Step, in.Answers)
	case FinalComplete:
		return e.OnFinalOnboardingComplete(ctx, in.Profile)
	case LogoutRequested:
		return e.OnLogoutRequested(ctx)
	case BackGesture:
		return e.OnBackGesture(ctx)
	default:
		return fmt.Errorf("dispatch from %s: %w: %T", from, ErrUnknownIntent, result)
	}
}

func (e *Engine) handle(ctx context.Context, intent Intent, fn func(context.Context, session.Phase) error) error {
	if !e.busy.CompareAndSwap(false, true) {
		e.logger.Warn("Rejected intent while another is in flight", "intent", intent.IntentName())
		return intentError(intent, ErrIntentInFlight)
	}
	defer e.busy.Store(false)

	phase := e.Phase()
	e.logger.Debug("Handling intent", "intent", intent.IntentName(), "phase", phase.String())

	if phase.Kind == session.PhaseLoading {
		return intentError(intent, ErrNotReady)
	}

	if err := fn(ctx, phase); err != nil {
		e.logger.Error("Intent failed", "intent", intent.IntentName(), "phase", phase.String(), "error", err)
		return intentError(intent, err)
	}
	return nil
}

func (e *Engine) startOnboarding(ctx context.Context, phase session.Phase) error {
	if phase.Kind != session.PhaseWelcome {
		return &TransitionError{Phase: phase}
	}

	// Marks the welcome carousel as seen; the same key is set again when
	// onboarding finishes.
	if err := e.store.Set(ctx, constants.KeyHasCompletedOnboarding, constants.FlagTrue); err != nil {
		return err
	}

	first := constants.OnboardingSteps[0]
	e.setPhase(session.Onboarding(first))
	e.nav.Push(first)
	e.logger.Info("Onboarding started", "step", first.String())
	return nil
}

func (e *Engine) advanceStep(phase session.Phase, intent StepComplete) error {
	if phase.Kind != session.PhaseOnboarding || phase.Step != intent.Step || intent.Step.IsFinalStep() {
		return &TransitionError{Phase: phase}
	}

	next := intent.Step.NextStep()
	e.mu.Lock()
	e.draft = e.draft.Merge(intent.Answers)
	e.mu.Unlock()

	e.setPhase(session.Onboarding(next))
	e.nav.Push(next)
	e.logger.Debug("Onboarding step complete", "step", intent.Step.String(), "next", next.String())
	return nil
}

func (e *Engine) completeOnboarding(ctx context.Context, phase session.Phase, profile session.Profile) error {
	if phase.Kind != session.PhaseOnboarding || !phase.Step.IsFinalStep() {
		return &TransitionError{Phase: phase}
	}

	merged := e.Draft().Merge(profile)
	encoded, err := merged.Encode()
	if err != nil {
		return err
	}

	// isLoggedIn goes last so a store without batching never holds it
	// without hasCompletedOnboarding.
	err = store.SetAll(ctx, e.store,
		store.Pair{Key: constants.KeyUserProfile, Value: encoded},
		store.Pair{Key: constants.KeyHasCompletedOnboarding, Value: constants.FlagTrue},
		store.Pair{Key: constants.KeyIsLoggedIn, Value: constants.FlagTrue},
	)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.draft = session.Profile{}
	e.mu.Unlock()

	e.setPhase(session.Authenticated)
	e.nav.Reset(constants.RouteMain)
	e.logger.Info("Onboarding complete, session established")
	return nil
}

func (e *Engine) logout(ctx context.Context, phase session.Phase) error {
	if phase.Kind != session.PhaseAuthenticated {
		return &TransitionError{Phase: phase}
	}

	if err := e.store.MultiRemove(ctx, constants.SessionKeys...); err != nil {
		return err
	}

	e.mu.Lock()
	e.draft = session.Profile{}
	e.mu.Unlock()

	e.setPhase(session.Welcome)
	e.nav.Reset(constants.RouteWelcome)
	e.logger.Info("Logged out, session purged")
	return nil
}

func (e *Engine) back(ctx context.Context, phase session.Phase) error {
	if !e.nav.Back() {
		e.logger.Debug("Back gesture refused", "route", e.nav.Current().String())
		return nil
	}

	top := e.nav.Current()
	switch {
	case top == constants.RouteWelcome:
		e.setPhase(session.Welcome)
	case top.IsOnboardingStep():
		e.setPhase(session.Onboarding(top))
	}
	return nil
}

func (e *Engine) setPhase(to session.Phase) {
	e.mu.Lock()
	from := e.phase
	e.phase = to
	observers := append([]PhaseFunc(nil), e.observers...)
	e.mu.Unlock()

	if from == to {
		return
	}
	for _, fn := range observers {
		fn(from, to)
	}
}
