package router

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack()
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Peek())

	s.Push(constants.RouteWelcome, nil)
	s.Push(constants.RouteUserInfo, "params")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []constants.Route{constants.RouteWelcome, constants.RouteUserInfo}, s.Routes())

	top := s.Pop()
	require.NotNil(t, top)
	assert.Equal(t, constants.RouteUserInfo, top.Route)
	assert.Equal(t, "params", top.Params)

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestResetLeavesSingleEntry(t *testing.T) {
	r := New()
	r.Reset(constants.RouteWelcome)
	r.Push(constants.RouteUserInfo)
	r.Push(constants.RouteWorkoutPreference)

	r.Reset(constants.RouteMain)
	assert.Equal(t, []constants.Route{constants.RouteMain}, r.Routes())
	assert.Equal(t, constants.RouteMain, r.Current())
}

func TestBackRefusedOnLockedAndRootRoutes(t *testing.T) {
	r := New()
	assert.False(t, r.Back(), "empty stack")

	r.Reset(constants.RouteUserInfo)
	assert.False(t, r.Back(), "single entry")

	r.Reset(constants.RouteMain)
	assert.False(t, r.Back())

	r.Reset(constants.RouteWelcome)
	r.Push(constants.RouteUserInfo)
	r.Push(constants.RouteWorkoutPreference)
	r.Push(constants.RouteEquipment)
	assert.False(t, r.Back())
	assert.Equal(t, constants.RouteEquipment, r.Current())
}

func TestOnChangeReceivesRoutes(t *testing.T) {
	r := New()
	var seen [][]constants.Route
	r.OnChange(func(routes []constants.Route) {
		seen = append(seen, routes)
	})

	r.Reset(constants.RouteWelcome)
	r.Push(constants.RouteUserInfo)
	r.Back()

	assert.Equal(t, [][]constants.Route{
		{constants.RouteWelcome},
		{constants.RouteWelcome, constants.RouteUserInfo},
		{constants.RouteWelcome},
	}, seen)
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	noop := func(context.Context, constants.Route, any) error { return nil }

	r := New()
	assert.ErrorContains(t, r.Run(ctx, nil), "no dispatch function")
	assert.ErrorContains(t, r.Run(ctx, noop), "stack is empty")

	r.Reset(constants.RouteWelcome)
	assert.ErrorContains(t, r.Run(ctx, noop), "screen Welcome not registered")

	boom := errors.New("boom")
	r.Register(constants.RouteWelcome, func(context.Context, Frame) (any, error) { return nil, boom })
	assert.ErrorIs(t, r.Run(ctx, noop), boom)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, r.Run(cancelled, noop), context.Canceled)
}

func TestRunPassesParams(t *testing.T) {
	r := New()
	var got any
	r.Register(constants.RouteUserInfo, func(_ context.Context, f Frame) (any, error) {
		got = f.Params
		return Exit, nil
	})

	r.PushWithParams(constants.RouteUserInfo, map[string]string{"name": "Alex"})
	require.NoError(t, r.Run(context.Background(), func(context.Context, constants.Route, any) error { return nil }))
	assert.Equal(t, map[string]string{"name": "Alex"}, got)
}
