// Package bolt provides a store.Store backed by a single bbolt database file.
// Every batch runs in one read-write transaction, so multi-key writes and
// removes are all-or-nothing even if the process dies mid-write.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	bolt "go.etcd.io/bbolt"
)

const (
	sessionBucket      = "session"
	defaultOpenTimeout = 5 * time.Second
)

// Store implements store.Store and store.MultiSetter on bbolt.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path and ensures the session bucket
// exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout:      defaultOpenTimeout,
		FreelistType: bolt.FreelistArrayType,
	})
	if err != nil {
		return nil, fmt.Errorf("open session database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, store.NewError(store.OpGet, err, key)
	}

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// bbolt byte slices are only valid inside the transaction.
		if v := tx.Bucket([]byte(sessionBucket)).Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, store.NewError(store.OpGet, translate(err), key)
	}
	return value, found, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.MultiSet(ctx, store.Pair{Key: key, Value: value})
}

func (s *Store) MultiSet(ctx context.Context, pairs ...store.Pair) error {
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	op := store.OpMultiSet
	if len(pairs) == 1 {
		op = store.OpSet
	}
	if err := ctx.Err(); err != nil {
		return store.NewError(op, err, keys...)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))
		for _, p := range pairs {
			if err := b.Put([]byte(p.Key), []byte(p.Value)); err != nil {
				return err
			}
		}
		return nil
	})
	return store.NewError(op, translate(err), keys...)
}

func (s *Store) MultiRemove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return store.NewError(store.OpMultiRemove, err, keys...)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	return store.NewError(store.OpMultiRemove, translate(err), keys...)
}

// Dump returns every key/value pair in the session bucket.
func (s *Store) Dump(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func translate(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return store.ErrClosed
	}
	return err
}
