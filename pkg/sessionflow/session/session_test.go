package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/memory"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_DecisionTable(t *testing.T) {
	values := []struct {
		name  string
		value string
		set   bool
	}{
		{"absent", "", false},
		{"true", "true", true},
		{"false", "false", true},
		{"TRUE", "TRUE", true},
		{"empty", "", true},
		{"one", "1", true},
	}

	for _, onboarded := range values {
		for _, loggedIn := range values {
			seed := map[string]string{}
			if onboarded.set {
				seed[constants.KeyHasCompletedOnboarding] = onboarded.value
			}
			if loggedIn.set {
				seed[constants.KeyIsLoggedIn] = loggedIn.value
			}

			want := Welcome
			if onboarded.name == "true" && loggedIn.name == "true" {
				want = Authenticated
			}

			r := NewResolver(memory.New(seed), quietLogger())
			got := r.Resolve(context.Background())
			assert.Equal(t, want, got, "hasCompletedOnboarding=%s isLoggedIn=%s", onboarded.name, loggedIn.name)
		}
	}
}

func TestResolve_ReadFailureYieldsWelcome(t *testing.T) {
	seed := map[string]string{
		constants.KeyHasCompletedOnboarding: "true",
		constants.KeyIsLoggedIn:             "true",
	}

	for _, key := range []string{constants.KeyHasCompletedOnboarding, constants.KeyIsLoggedIn} {
		f := storetest.New(seed).FailKey(key)
		r := NewResolver(f, quietLogger())
		assert.Equal(t, Welcome, r.Resolve(context.Background()), "failing key %s", key)
	}

	f := storetest.New(seed).FailOp(store.OpGet)
	assert.Equal(t, Welcome, NewResolver(f, quietLogger()).Resolve(context.Background()))
}

func TestResolve_NeverReturnsLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := NewResolver(memory.New(nil), quietLogger()).Resolve(ctx)
	assert.Equal(t, Welcome, got)
}

func TestReadFlags_ReportsError(t *testing.T) {
	f := storetest.New(map[string]string{constants.KeyHasCompletedOnboarding: "true"}).FailKey(constants.KeyIsLoggedIn)

	flags, err := NewResolver(f, quietLogger()).ReadFlags(context.Background())
	require.Error(t, err)
	assert.True(t, store.IsReadFailure(err))
	assert.False(t, flags.IsLoggedIn)
}

func TestFlagsConsistent(t *testing.T) {
	assert.True(t, Flags{}.Consistent())
	assert.True(t, Flags{HasCompletedOnboarding: true}.Consistent())
	assert.True(t, Flags{HasCompletedOnboarding: true, IsLoggedIn: true}.Consistent())
	assert.False(t, Flags{IsLoggedIn: true}.Consistent())
}

func TestPhaseRootAndAllows(t *testing.T) {
	assert.Equal(t, constants.RouteWelcome, Welcome.Root())
	assert.Equal(t, constants.RouteMain, Authenticated.Root())
	assert.Equal(t, constants.RouteEquipment, Onboarding(constants.RouteEquipment).Root())
	assert.Equal(t, constants.RouteNone, Loading.Root())

	assert.False(t, Authenticated.Allows(constants.RouteWelcome))
	assert.False(t, Authenticated.Allows(constants.RouteUserInfo))
	assert.True(t, Authenticated.Allows(constants.RouteMain))
	assert.False(t, Welcome.Allows(constants.RouteMain))
	assert.True(t, Onboarding(constants.RouteFitnessGoal).Allows(constants.RouteWelcome))

	assert.Equal(t, "onboarding(GymEquipment)", Onboarding(constants.RouteGymEquipment).String())
	assert.Equal(t, "authenticated", Authenticated.String())
}

func TestLoadProfile(t *testing.T) {
	ctx := context.Background()

	p, err := LoadProfile(ctx, memory.New(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultDisplayName, p.DisplayName())

	p, err = LoadProfile(ctx, memory.New(map[string]string{constants.KeyUserProfile: "{not json"}))
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)

	encoded, err := Profile{Name: "Alex", Equipment: []string{"dumbbells"}}.Encode()
	require.NoError(t, err)
	p, err = LoadProfile(ctx, memory.New(map[string]string{constants.KeyUserProfile: encoded}))
	require.NoError(t, err)
	assert.Equal(t, "Alex", p.DisplayName())
	assert.Equal(t, []string{"dumbbells"}, p.Equipment)

	_, err = LoadProfile(ctx, storetest.New(nil).FailOp(store.OpGet))
	assert.True(t, store.IsReadFailure(err))
}

func TestProfileMerge(t *testing.T) {
	base := Profile{Name: "Sam", FitnessGoal: "strength"}
	merged := base.Merge(Profile{Name: "Alex", Equipment: []string{"bands"}})

	assert.Equal(t, Profile{Name: "Alex", FitnessGoal: "strength", Equipment: []string{"bands"}}, merged)
	assert.Equal(t, "Sam", base.Name)
}
