package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Loaded is the outcome of a fail-open read: Value always holds something usable.
// When Fallback is true Value is the caller's default and Err says why
// (nil for a key that was simply never written).
type Loaded[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

// LoadJSON reads key and decodes it into T. Any failure (missing key, backend
// error, bad JSON, validate rejecting the value) yields fallback instead of an error.
func LoadJSON[T any](ctx context.Context, store Store, key string, fallback T, validate func(T) error) Loaded[T] {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Loaded[T]{Value: fallback, Fallback: true}
	}
	if err != nil {
		return Loaded[T]{Value: fallback, Fallback: true, Err: err}
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Loaded[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("decode %s: %w", key, err)}
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return Loaded[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("validate %s: %w", key, err)}
		}
	}
	return Loaded[T]{Value: v}
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, store Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(data))
}
