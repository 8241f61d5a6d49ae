package optimistic

import (
	"context"
	"fmt"
)

// Store is the slice of a cache the mutation flow needs.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Mutate applies a speculative transform to the cached value under key before
// running the durable write, so readers never see the pre-mutation list while
// the write is in flight. If the write fails the snapshot taken beforehand is
// restored; if it succeeds the entry is invalidated and the next reader
// refetches the authoritative state. apply must treat its argument as
// read-only: a transform that mutates the value in place corrupts the
// snapshot the rollback writes back.
func Mutate[T any](ctx context.Context, store Store, key string, apply func(T) T, commit func(context.Context) error) error {
	if store == nil || key == "" {
		return commit(ctx)
	}

	var snapshot T
	hit, err := store.Get(ctx, key, &snapshot)
	if err != nil {
		// A broken cache must not block the durable write.
		hit = false
	}

	if hit {
		if err := store.Set(ctx, key, apply(snapshot)); err != nil {
			hit = false
		}
	}

	if err := commit(ctx); err != nil {
		if hit {
			if restoreErr := store.Set(ctx, key, snapshot); restoreErr != nil {
				return fmt.Errorf("restore cache after failed write: %w (write error: %v)", restoreErr, err)
			}
		} else {
			_ = store.Delete(ctx, key)
		}
		return err
	}

	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate cache after write: %w", err)
	}
	return nil
}

// Read returns the cached value when present, otherwise loads it from source
// and fills the cache for the next caller.
func Read[T any](ctx context.Context, store Store, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if store != nil && key != "" {
		if hit, err := store.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if store != nil && key != "" {
		_ = store.Set(ctx, key, value)
	}
	return value, nil
}
