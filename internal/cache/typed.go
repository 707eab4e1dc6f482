package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Typed stores values of T as JSON.
type Typed[T any] struct {
	store Store
}

func NewTyped[T any](store Store) *Typed[T] {
	return &Typed[T]{store: store}
}

// Get decodes the entry at key. Misses surface the store's
// sentinel.ErrNotFound unchanged.
func (t *Typed[T]) Get(ctx context.Context, key string) (*T, error) {
	b, err := t.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return &v, nil
}

func (t *Typed[T]) Put(ctx context.Context, key string, v *T) error {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return t.store.Put(ctx, key, b)
}
