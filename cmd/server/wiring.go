package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"retrato/internal/cache"
	"retrato/internal/opendata"
	"retrato/internal/platform/metrics"
	platformredis "retrato/internal/platform/redis"
	"retrato/internal/profile"
	"retrato/internal/reference"
)

// components is the assembled service graph.
type components struct {
	service  *profile.Service
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	close    func()
}

// build wires reference data, the cache backend, the open-data gateway and
// the aggregation service. Redis is used when REDIS_URL is set, otherwise an
// in-process cache.
func (a *app) build(ctx context.Context) (*components, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	ref := reference.Load(a.cfg.DataDir, a.log)

	store, closeStore, err := a.cacheStore(ctx)
	if err != nil {
		return nil, err
	}

	gw := opendata.New(opendata.Config{
		SearchURL:  a.cfg.OpenData.SearchURL,
		CatalogURL: a.cfg.OpenData.CatalogURL,
		Timeout:    a.cfg.OpenData.Timeout,
		Retries:    a.cfg.OpenData.Retries,
	}, opendata.WithMetrics(m), opendata.WithLogger(a.log))

	svc := profile.New(gw, ref, store,
		profile.WithMetrics(m),
		profile.WithLogger(a.log),
	)
	return &components{service: svc, registry: reg, metrics: m, close: closeStore}, nil
}

func (a *app) cacheStore(ctx context.Context) (cache.Store, func(), error) {
	client, err := platformredis.New(ctx, a.cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		a.log.Info("using in-process cache", zap.Duration("ttl", a.cfg.Cache.TTL))
		return cache.NewMemoryStore(a.cfg.Cache.TTL), func() {}, nil
	}
	a.log.Info("using redis cache", zap.Duration("ttl", a.cfg.Cache.TTL))
	return cache.NewRedisStore(client, a.cfg.Cache.TTL, ""), func() {
		if err := client.Close(); err != nil {
			a.log.Warn("close redis", zap.Error(err))
		}
	}, nil
}
