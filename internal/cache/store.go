// Package cache holds the response cache shared by search and profile
// lookups. Entries are opaque payloads with a fixed TTL; Typed adds a JSON
// codec on top.
package cache

import (
	"context"
	"time"

	"retrato/internal/profile/models"
	"retrato/pkg/domain"
)

// DefaultTTL applies when a store is created without one.
const DefaultTTL = 30 * time.Minute

// Key families.
const (
	SearchPrefix  = "search:"
	ProfilePrefix = "profile:"
)

// Store is a TTL key-value cache. Get returns sentinel.ErrNotFound on a miss
// or when the entry expired.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Clear(ctx context.Context) error
}

// SearchKey is the cache key of a search; equal parameters after
// normalization share a key.
func SearchKey(p models.SearchParams) string {
	return SearchPrefix + p.Canonical()
}

// ProfileKey is the cache key of a municipality profile.
func ProfileKey(id domain.MunicipalityID) string {
	return ProfilePrefix + id.String()
}
