// Package storetest provides a fault-injecting store.Store for tests.
//
// Faulty wraps a map and applies every batch one key at a time, so a failure
// injected in the middle of MultiRemove or MultiSet leaves a partial result
// behind, the way a store without native batching would.
package storetest

import (
	"context"
	"errors"
	"maps"
	"math/rand"
	"sync"
	"time"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
)

// ErrInjected is the underlying error of every injected failure.
var ErrInjected = errors.New("injected store failure")

// Call is one recorded key-level operation.
type Call struct {
	Op  string
	Key string
}

// Faulty is a sequential, fault-injecting store.
type Faulty struct {
	mu   sync.Mutex
	data map[string]string
	log  []Call

	failOps  map[string]bool
	failKeys map[string]bool
	failAt   int // fail the Nth key-level write (1-based); 0 disables
	writes   int
	failRate float64
	rnd      *rand.Rand
	maxDelay time.Duration
}

// New creates a Faulty store seeded with initial values.
func New(seed map[string]string) *Faulty {
	data := make(map[string]string, len(seed))
	maps.Copy(data, seed)
	return &Faulty{
		data:     data,
		failOps:  make(map[string]bool),
		failKeys: make(map[string]bool),
		rnd:      rand.New(rand.NewSource(1)),
	}
}

// FailOp makes every call of op (store.OpGet, store.OpSet, ...) fail.
func (f *Faulty) FailOp(op string) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOps[op] = true
	return f
}

// FailKey makes every key-level operation on key fail.
func (f *Faulty) FailKey(key string) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failKeys[key] = true
	return f
}

// FailWriteAt makes the nth key-level write fail, counting from 1.
func (f *Faulty) FailWriteAt(n int) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAt = n
	f.writes = 0
	return f
}

// WithRandomFailures makes each key-level write fail with probability rate,
// using a deterministic source seeded with seed.
func (f *Faulty) WithRandomFailures(rate float64, seed int64) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRate = rate
	f.rnd = rand.New(rand.NewSource(seed))
	return f
}

// WithRandomDelay sleeps up to limit before every operation.
func (f *Faulty) WithRandomDelay(limit time.Duration) *Faulty {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxDelay = limit
	return f
}

// Heal clears every injected failure.
func (f *Faulty) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOps = make(map[string]bool)
	f.failKeys = make(map[string]bool)
	f.failAt = 0
	f.failRate = 0
}

func (f *Faulty) Get(ctx context.Context, key string) (string, bool, error) {
	f.delay(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, Call{Op: store.OpGet, Key: key})
	if f.failOps[store.OpGet] || f.failKeys[key] {
		return "", false, store.NewError(store.OpGet, ErrInjected, key)
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *Faulty) Set(ctx context.Context, key, value string) error {
	return f.apply(ctx, store.OpSet, []string{key}, func(k string) { f.data[k] = value })
}

func (f *Faulty) MultiSet(ctx context.Context, pairs ...store.Pair) error {
	keys := make([]string, len(pairs))
	values := make(map[string]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
		values[p.Key] = p.Value
	}
	return f.apply(ctx, store.OpMultiSet, keys, func(k string) { f.data[k] = values[k] })
}

func (f *Faulty) MultiRemove(ctx context.Context, keys ...string) error {
	return f.apply(ctx, store.OpMultiRemove, keys, func(k string) { delete(f.data, k) })
}

func (f *Faulty) apply(ctx context.Context, op string, keys []string, write func(key string)) error {
	f.delay(ctx)
	if err := ctx.Err(); err != nil {
		return store.NewError(op, err, keys...)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		f.log = append(f.log, Call{Op: op, Key: k})
		if f.shouldFail(op, k) {
			return store.NewError(op, ErrInjected, keys...)
		}
		write(k)
	}
	return nil
}

func (f *Faulty) shouldFail(op, key string) bool {
	f.writes++
	if f.failOps[op] || f.failKeys[key] {
		return true
	}
	if f.failAt > 0 && f.writes == f.failAt {
		return true
	}
	return f.failRate > 0 && f.rnd.Float64() < f.failRate
}

func (f *Faulty) delay(ctx context.Context) {
	f.mu.Lock()
	var d time.Duration
	if f.maxDelay > 0 {
		d = time.Duration(f.rnd.Int63n(int64(f.maxDelay)))
	}
	f.mu.Unlock()
	if d == 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Snapshot returns a copy of the current contents.
func (f *Faulty) Snapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.data)
}

// Calls returns the recorded key-level operations.
func (f *Faulty) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.log...)
}
