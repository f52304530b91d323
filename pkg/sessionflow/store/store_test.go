package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/memory"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setOnly hides MultiSet so SetAll takes the sequential path.
type setOnly struct {
	store.Store
}

func TestSetAll_UsesMultiSetWhenAvailable(t *testing.T) {
	s := memory.New(nil)
	err := store.SetAll(context.Background(), s,
		store.Pair{Key: "a", Value: "1"},
		store.Pair{Key: "b", Value: "2"},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, s.Snapshot())
}

func TestSetAll_SequentialStopsAtFirstFailure(t *testing.T) {
	f := storetest.New(nil).FailKey("b")
	err := store.SetAll(context.Background(), setOnly{f},
		store.Pair{Key: "a", Value: "1"},
		store.Pair{Key: "b", Value: "2"},
		store.Pair{Key: "c", Value: "3"},
	)
	require.Error(t, err)
	assert.True(t, store.IsWriteFailure(err))
	assert.Equal(t, map[string]string{"a": "1"}, f.Snapshot())
}

func TestError_Classification(t *testing.T) {
	readErr := store.NewError(store.OpGet, errors.New("boom"), "k")
	writeErr := store.NewError(store.OpMultiRemove, errors.New("boom"), "k1", "k2")

	assert.True(t, store.IsReadFailure(readErr))
	assert.False(t, store.IsWriteFailure(readErr))
	assert.True(t, store.IsWriteFailure(writeErr))
	assert.False(t, store.IsReadFailure(writeErr))
	assert.EqualError(t, writeErr, "store: multi_remove [k1,k2]: boom")
	assert.Nil(t, store.NewError(store.OpSet, nil, "k"))
	assert.False(t, store.IsWriteFailure(errors.New("plain")))
}

func TestNewError_DoesNotDoubleWrap(t *testing.T) {
	inner := store.NewError(store.OpGet, errors.New("boom"), "k")
	outer := store.NewError(store.OpSet, inner, "other")
	assert.Same(t, inner, outer)
}
