// Package profile is the aggregation engine. It merges the static reference
// datasets with the remote open-data gateway into one municipality profile,
// caches profiles and searches, and degrades category by category when the
// remote side fails.
package profile

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"retrato/internal/cache"
	"retrato/internal/platform/metrics"
	"retrato/internal/profile/models"
	"retrato/internal/reference"
	"retrato/pkg/domain"
	dErrors "retrato/pkg/domain-errors"
	"retrato/pkg/platform/sentinel"
	"retrato/pkg/requestcontext"
)

const (
	tracerName = "retrato/profile"

	familySearch  = "search"
	familyProfile = "profile"
)

// Health pagination bounds.
const (
	DefaultHealthLimit = 50
	MaxHealthLimit     = 100
)

// Service builds, caches and serves municipality profiles.
type Service struct {
	gateway   Gateway
	reference Reference
	store     cache.Store
	profiles  *cache.Typed[models.Profile]
	searches  *cache.Typed[models.SearchResult]
	metrics   *metrics.Metrics
	log       *zap.Logger
	tracer    trace.Tracer
}

// Option customizes a Service.
type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New wires the engine. A nil store gets an in-memory cache with the default TTL.
func New(gateway Gateway, ref Reference, store cache.Store, opts ...Option) *Service {
	if store == nil {
		store = cache.NewMemoryStore(cache.DefaultTTL)
	}
	s := &Service{
		gateway:   gateway,
		reference: ref,
		store:     store,
		profiles:  cache.NewTyped[models.Profile](store),
		searches:  cache.NewTyped[models.SearchResult](store),
		log:       zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const msgMunicipalityNotFound = "Municipio no encontrado"

// BuildProfile returns the composite profile of rawID, from cache when
// possible. The id is normalized first; an id that cannot be a municipality
// code, or one unknown to both sources, is a not_found error. Failures of
// individual categories leave that category absent.
func (s *Service) BuildProfile(ctx context.Context, rawID string) (*models.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.BuildProfile")
	defer span.End()

	id, err := domain.ParseMunicipalityID(rawID)
	if err != nil {
		span.SetStatus(codes.Error, "invalid id")
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, msgMunicipalityNotFound)
	}
	span.SetAttributes(attribute.String("municipality.id", id.String()))

	key := cache.ProfileKey(id)
	if cached, ok := lookup(ctx, s, familyProfile, key, s.profiles.Get); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	start := time.Now()
	p, err := s.build(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.metrics.ObserveProfileBuild(p.Degraded(), time.Since(start))
	span.SetAttributes(attribute.Bool("profile.degraded", p.Degraded()))

	if err := s.profiles.Put(ctx, key, p); err != nil {
		s.log.Warn("profile cache write failed", zap.String("municipality_id", id.String()), zap.Error(err))
	}
	return p, nil
}

func (s *Service) build(ctx context.Context, id domain.MunicipalityID) (*models.Profile, error) {
	remote, remoteErr := s.gateway.MunicipalityByID(ctx, id)
	if remoteErr != nil {
		remote = nil
		if !errors.Is(remoteErr, sentinel.ErrNotFound) {
			s.log.Warn("remote municipality lookup failed",
				zap.String("operation", "municipality_by_id"),
				zap.String("municipality_id", id.String()),
				zap.Error(remoteErr),
			)
		}
	}
	static, hasStatic := s.reference.FindMunicipality(id.String())
	if remote == nil && !hasStatic {
		return nil, dErrors.Wrap(remoteErr, dErrors.CodeNotFound, msgMunicipalityNotFound)
	}

	p := &models.Profile{
		Municipality: mergeMunicipality(id, remote, static, hasStatic, s.reference.FindPostalCodes(id.String())),
		GeneratedAt:  requestcontext.Now(ctx).UTC(),
	}
	if d, ok := s.reference.FindDemographics(id.String()); ok {
		p.Demographics = d
	}

	p.Education, p.Health = s.fetchRemoteCategories(ctx, id, p.Municipality)

	p.Services = deriveServices(p.Health)
	if e, ok := s.reference.FindEconomy(id.String()); ok {
		p.Economy = &e
	}
	p.Indicators = computeIndicators(p)
	applyDistances(p)
	return p, nil
}

// fetchRemoteCategories fetches education and health in parallel. A failed
// category is logged and returned as nil.
func (s *Service) fetchRemoteCategories(ctx context.Context, id domain.MunicipalityID, m models.Municipality) (*models.Education, *models.Health) {
	var (
		education *models.Education
		health    *models.Health
		g         errgroup.Group
	)

	g.Go(func() error {
		ctx, span := s.tracer.Start(ctx, "profile.education")
		defer span.End()
		edu, err := s.gateway.EducationCenters(ctx, m.Name)
		if err != nil {
			span.RecordError(err)
			s.logCategoryFailure("education_centers", id, err)
			return nil
		}
		education = edu
		return nil
	})

	g.Go(func() error {
		ctx, span := s.tracer.Start(ctx, "profile.health")
		defer span.End()
		centers, err := s.gateway.HealthCenters(ctx, s.localitiesFor(id, m))
		if err != nil {
			span.RecordError(err)
			s.logCategoryFailure("health_centers", id, err)
			return nil
		}
		health = &models.Health{Centers: centers}
		return nil
	})

	_ = g.Wait()
	return education, health
}

// localitiesFor returns the mapped localities of id, or the municipality
// itself when the mapping has none.
func (s *Service) localitiesFor(id domain.MunicipalityID, m models.Municipality) []reference.LocalityRef {
	if refs := s.reference.Localities(id.String()); len(refs) > 0 {
		return refs
	}
	if m.Name == "" {
		return nil
	}
	return []reference.LocalityRef{{
		Plain:          plainName(m.Name),
		Display:        m.Name,
		MunicipalityID: id.String(),
	}}
}

func (s *Service) logCategoryFailure(op string, id domain.MunicipalityID, err error) {
	s.log.Warn("profile category unavailable",
		zap.String("operation", op),
		zap.String("municipality_id", id.String()),
		zap.Error(err),
	)
}

// Search returns municipalities matching params. Results from the remote
// registry are cached; when the registry fails the static dataset answers
// and that answer is not cached.
func (s *Service) Search(ctx context.Context, params models.SearchParams) (*models.SearchResult, error) {
	params = params.Normalized()
	ctx, span := s.tracer.Start(ctx, "profile.Search", trace.WithAttributes(
		attribute.String("search.query", params.Query),
		attribute.String("search.province", params.Province.String()),
		attribute.Int("search.limit", params.Limit),
	))
	defer span.End()

	key := cache.SearchKey(params)
	if cached, ok := lookup(ctx, s, familySearch, key, s.searches.Get); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	res, err := s.gateway.SearchMunicipalities(ctx, params)
	if err != nil {
		span.RecordError(err)
		s.log.Warn("remote search failed, answering from static data",
			zap.String("operation", "search_municipalities"),
			zap.String("query", params.Query),
			zap.Error(err),
		)
		return s.staticSearch(params), nil
	}

	if err := s.searches.Put(ctx, key, res); err != nil {
		s.log.Warn("search cache write failed", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}

func (s *Service) staticSearch(params models.SearchParams) *models.SearchResult {
	out := &models.SearchResult{Municipalities: make([]models.Municipality, 0)}
	for _, m := range s.reference.Search(params.Query) {
		if params.Province.IsValid() && m.ProvinceCode != params.Province {
			continue
		}
		out.Municipalities = append(out.Municipalities, fromStatic(m))
		if len(out.Municipalities) == params.Limit {
			break
		}
	}
	out.Total = len(out.Municipalities)
	return out
}

// HealthCenters pages through the health facilities of a municipality's
// profile. Pages past the end are empty.
func (s *Service) HealthCenters(ctx context.Context, rawID string, page, limit int) (*models.HealthPage, error) {
	p, err := s.BuildProfile(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultHealthLimit
	}

	var all []models.HealthCenter
	if p.Health != nil {
		all = p.Health.Centers
	}
	total := len(all)
	pages := (total + limit - 1) / limit

	centers := make([]models.HealthCenter, 0)
	// Compare page counts before multiplying so huge pages cannot overflow.
	if page <= pages {
		from := (page - 1) * limit
		to := min(from+limit, total)
		centers = append(centers, all[from:to]...)
	}
	return &models.HealthPage{
		Centers:        centers,
		TotalCenters:   len(centers),
		TotalAvailable: total,
		Page:           page,
		Limit:          limit,
		HasMore:        page < pages,
	}, nil
}

// ClearCache drops every cached search and profile.
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "clear cache")
	}
	s.log.Info("cache cleared")
	return nil
}

// Stats returns the static dataset record counts.
func (s *Service) Stats() reference.Stats {
	return s.reference.Stats()
}

// lookup reads key from cache. Store failures other than a miss are logged
// and treated as a miss.
func lookup[T any](ctx context.Context, s *Service, family, key string, get func(context.Context, string) (*T, error)) (*T, bool) {
	v, err := get(ctx, key)
	switch {
	case err == nil:
		s.metrics.IncrementCacheLookup(family, true)
		return v, true
	case !errors.Is(err, sentinel.ErrNotFound):
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	s.metrics.IncrementCacheLookup(family, false)
	return nil, false
}
