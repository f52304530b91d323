// Package redis provides a store.Store on a Redis server, for running the flow
// against a shared developer instance. Keys are namespaced with a prefix;
// MultiSet maps to MSET and MultiRemove to a single DEL, both atomic on the
// server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "sessionflow"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Key namespace, default "sessionflow"
}

// Store implements store.Store and store.MultiSetter on go-redis.
type Store struct {
	client *redis.Client
	prefix string
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Key returns the namespaced Redis key for a session key.
func (s *Store) Key(parts ...string) string {
	var sb strings.Builder
	sb.WriteString(s.prefix)
	for _, part := range parts {
		if part != "" {
			sb.WriteString(":")
			sb.WriteString(part)
		}
	}
	return sb.String()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.NewError(store.OpGet, translate(err), key)
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, s.Key(key), value, 0).Err()
	return store.NewError(store.OpSet, translate(err), key)
}

func (s *Store) MultiSet(ctx context.Context, pairs ...store.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	keys := make([]string, len(pairs))
	args := make([]any, 0, len(pairs)*2)
	for i, p := range pairs {
		keys[i] = p.Key
		args = append(args, s.Key(p.Key), p.Value)
	}
	err := s.client.MSet(ctx, args...).Err()
	return store.NewError(store.OpMultiSet, translate(err), keys...)
}

func (s *Store) MultiRemove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.Key(k)
	}
	err := s.client.Del(ctx, full...).Err()
	return store.NewError(store.OpMultiRemove, translate(err), keys...)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func translate(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return store.ErrClosed
	}
	return err
}
