package session

import (
	"context"
	"log/slog"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/internal"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	"golang.org/x/sync/errgroup"
)

// Resolver derives the starting phase from the store.
type Resolver struct {
	store  store.Store
	logger *slog.Logger
}

// NewResolver creates a resolver reading from s. A nil logger uses the
// application logger.
func NewResolver(s store.Store, logger *slog.Logger) *Resolver {
	if s == nil {
		panic("session: nil store")
	}
	if logger == nil {
		logger = internal.GetLogger()
	}
	return &Resolver{store: s, logger: logger}
}

// ReadFlags reads both flags concurrently. Flags whose read failed are false;
// the first read error is returned alongside for diagnostics.
func (r *Resolver) ReadFlags(ctx context.Context) (Flags, error) {
	var onboarded, loggedIn bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, ok, err := r.store.Get(gctx, constants.KeyHasCompletedOnboarding)
		onboarded = err == nil && ParseFlag(v, ok)
		return err
	})
	g.Go(func() error {
		v, ok, err := r.store.Get(gctx, constants.KeyIsLoggedIn)
		loggedIn = err == nil && ParseFlag(v, ok)
		return err
	})
	err := g.Wait()

	return Flags{HasCompletedOnboarding: onboarded, IsLoggedIn: loggedIn}, err
}

// Resolve returns PhaseAuthenticated when both flags are set and PhaseWelcome
// otherwise. It never fails: a read error is logged and treated as flags
// absent.
func (r *Resolver) Resolve(ctx context.Context) Phase {
	flags, err := r.ReadFlags(ctx)
	if err != nil {
		r.logger.Warn("Failed to read session flags, starting at welcome", "error", err)
		return Welcome
	}

	phase := flags.Phase()
	r.logger.Debug("Resolved session phase",
		"phase", phase.String(),
		"has_completed_onboarding", flags.HasCompletedOnboarding,
		"is_logged_in", flags.IsLoggedIn,
	)
	return phase
}
