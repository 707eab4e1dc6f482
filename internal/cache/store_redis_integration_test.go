//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"retrato/internal/cache"
	"retrato/pkg/platform/sentinel"
	"retrato/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *cache.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = cache.NewRedisStore(s.redis.Client, 2*time.Second, "")
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "profile:05001", []byte(`{"id":"05001"}`)))

	got, err := s.store.Get(ctx, "profile:05001")
	s.Require().NoError(err)
	s.JSONEq(`{"id":"05001"}`, string(got))

	ttl, err := s.redis.Client.TTL(ctx, "retrato:profile:05001").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestMiss() {
	_, err := s.store.Get(context.Background(), "profile:missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestExpiry() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "search:q=a", []byte("1")))

	s.Eventually(func() bool {
		_, err := s.store.Get(ctx, "search:q=a")
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *RedisStoreSuite) TestClearOnlyTouchesNamespace() {
	ctx := context.Background()
	for _, k := range []string{"search:a", "search:b", "profile:1"} {
		s.Require().NoError(s.store.Put(ctx, k, []byte("v")))
	}
	s.Require().NoError(s.redis.Client.Set(ctx, "other:key", "keep", 0).Err())

	s.Require().NoError(s.store.Clear(ctx))

	_, err := s.store.Get(ctx, "search:a")
	s.ErrorIs(err, sentinel.ErrNotFound)
	n, err := s.redis.Client.Exists(ctx, "other:key").Result()
	s.Require().NoError(err)
	s.EqualValues(1, n)
}
