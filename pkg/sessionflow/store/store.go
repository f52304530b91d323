// Package store defines the persisted session store contract consumed by the
// resolver and the transition engine, along with its error taxonomy.
//
// The store is a local string-to-string key/value map. It offers no
// transactions of its own; backends that can apply a batch atomically do so,
// and callers that need ordering across keys pass keys in the order they
// should be applied.
package store

import "context"

// Store is the minimal key/value surface sessionflow needs.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// MultiRemove deletes keys in the order given. Missing keys are not an error.
	MultiRemove(ctx context.Context, keys ...string) error
}

// Pair is a single key/value assignment in a batch write.
type Pair struct {
	Key   string
	Value string
}

// MultiSetter is implemented by stores that can apply several writes as one
// operation. Pairs are applied in order.
type MultiSetter interface {
	MultiSet(ctx context.Context, pairs ...Pair) error
}

// Closer is implemented by stores holding OS or network resources.
type Closer interface {
	Close() error
}

// SetAll writes pairs through MultiSet when s supports it, otherwise one Set
// at a time in the given order, stopping at the first failure.
func SetAll(ctx context.Context, s Store, pairs ...Pair) error {
	if ms, ok := s.(MultiSetter); ok {
		return ms.MultiSet(ctx, pairs...)
	}
	for _, p := range pairs {
		if err := s.Set(ctx, p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Close releases s if it implements Closer.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
