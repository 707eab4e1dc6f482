package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrato/internal/profile/models"
	"retrato/pkg/domain"
	"retrato/pkg/platform/sentinel"
	"retrato/pkg/requestcontext"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func TestMemoryStore_HitWithinTTL(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	require.NoError(t, s.Put(at(t0), "profile:05001", []byte("a")))

	got, err := s.Get(at(t0.Add(29*time.Minute+59*time.Second)), "profile:05001")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)
}

func TestMemoryStore_ExpiredEntryIsDeleted(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	require.NoError(t, s.Put(at(t0), "profile:05001", []byte("a")))

	_, err := s.Get(at(t0.Add(30*time.Minute)), "profile:05001")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	require.NoError(t, s.Put(at(t0), "k", []byte("old")))
	require.NoError(t, s.Put(at(t0.Add(50*time.Second)), "k", []byte("new")))

	got, err := s.Get(at(t0.Add(90*time.Second)), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got, "overwrite restarts the TTL")
}

func TestMemoryStore_MissAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	assert.Equal(t, DefaultTTL, s.ttl)

	_, err := s.Get(ctx, "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, "b", []byte("2")))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, 0, s.Len())
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestKeys(t *testing.T) {
	a := SearchKey(models.SearchParams{Query: "  Ávila ", Province: domain.ProvinceAvila})
	b := SearchKey(models.SearchParams{Query: "ávila", Province: domain.ProvinceAvila, Limit: 10})
	assert.Equal(t, a, b)
	assert.Equal(t, "search:limit=10&province=AV&q=ávila", a)
	assert.NotEqual(t, a, SearchKey(models.SearchParams{Query: "ávila", Limit: 10}))

	assert.Equal(t, "profile:05001", ProfileKey(domain.MunicipalityID("05001")))
}

type sample struct {
	Name   string        `json:"name"`
	Metric models.Metric `json:"metric"`
	Tags   []string      `json:"tags"`
}

func TestTyped_RoundTrip(t *testing.T) {
	ctx := context.Background()
	typed := NewTyped[sample](NewMemoryStore(time.Minute))

	in := &sample{Name: "Adanero", Metric: models.Known(12.5), Tags: []string{"x"}}
	require.NoError(t, typed.Put(ctx, "k", in))

	out, err := typed.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTyped_MissAndCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	typed := NewTyped[sample](store)

	_, err := typed.Get(ctx, "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, store.Put(ctx, "bad", []byte("{")))
	_, err = typed.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, typed.Put(ctx, "nil", nil))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	const (
		key     = "profile:05001"
		workers = 32
		rounds  = 200
	)
	now := t0.Add(31 * time.Minute)

	t.Run("expiry on read never drops a fresh write", func(t *testing.T) {
		s := NewMemoryStore(30 * time.Minute)
		require.NoError(t, s.Put(at(t0), key, []byte("stale")))

		written := make(map[string]bool, workers)
		for w := 0; w < workers; w++ {
			written[fmt.Sprintf("w%d", w)] = true
		}

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for i := 0; i < rounds; i++ {
					_ = s.Put(at(now), key, []byte(fmt.Sprintf("w%d", w)))
				}
			}()
			go func() {
				defer wg.Done()
				for i := 0; i < rounds; i++ {
					if got, err := s.Get(at(now), key); err == nil {
						assert.True(t, written[string(got)], "unexpected payload %q", got)
					}
				}
			}()
		}
		wg.Wait()

		got, err := s.Get(at(now), key)
		require.NoError(t, err, "a fresh entry must survive concurrent expiry checks")
		assert.True(t, written[string(got)])
	})

	t.Run("clear interleaved with reads and writes", func(t *testing.T) {
		s := NewMemoryStore(30 * time.Minute)
		require.NoError(t, s.Put(at(t0), key, []byte("stale")))

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(3)
			go func() {
				defer wg.Done()
				for i := 0; i < rounds; i++ {
					_ = s.Put(at(now), key, []byte("fresh"))
				}
			}()
			go func() {
				defer wg.Done()
				for i := 0; i < rounds; i++ {
					if got, err := s.Get(at(now), key); err == nil {
						assert.Equal(t, []byte("fresh"), got)
					}
				}
			}()
			go func() {
				defer wg.Done()
				for i := 0; i < rounds/10; i++ {
					_ = s.Clear(context.Background())
				}
			}()
		}
		wg.Wait()

		require.NoError(t, s.Put(at(now), key, []byte("final")))
		got, err := s.Get(at(now), key)
		require.NoError(t, err)
		assert.Equal(t, []byte("final"), got)
	})
}
