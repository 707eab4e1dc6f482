// Package opendata is the gateway to the Junta de Castilla y León open-data
// portals. It builds typed queries, normalizes records into the shared models
// and reports failures as categorized *ProviderError values; callers decide
// how to degrade.
package opendata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"retrato/internal/platform/metrics"
	"retrato/internal/profile/models"
	"retrato/internal/reference"
	"retrato/pkg/domain"
	"retrato/pkg/platform/circuit"
)

// Operation names used in logs, metrics and errors.
const (
	OpSearchMunicipalities = "search_municipalities"
	OpMunicipalityByID     = "municipality_by_id"
	OpEducationCenters     = "education_centers"
	OpHealthCenters        = "health_centers"
)

const (
	educationRows     = 100
	healthRows        = 100
	healthConcurrency = 4
	defaultTimeout    = 10 * time.Second
	defaultRetryWait  = 200 * time.Millisecond
	breakerName       = "opendata"
)

// Config configures a Gateway.
type Config struct {
	SearchURL  string
	CatalogURL string
	Timeout    time.Duration
	Retries    int
	HTTPClient *http.Client
}

// Gateway issues the four remote query shapes.
type Gateway struct {
	search  *resty.Client
	catalog *resty.Client
	timeout time.Duration
	breaker *circuit.Breaker
	metrics *metrics.Metrics
	log     *zap.Logger
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(g *Gateway) { g.breaker = b }
}

// WithMetrics records upstream latency and outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// New builds a gateway over two resty clients, one per portal.
func New(cfg Config, opts ...Option) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &Gateway{
		search:  newClient(cfg.SearchURL, timeout, cfg.Retries, cfg.HTTPClient),
		catalog: newClient(cfg.CatalogURL, timeout, cfg.Retries, cfg.HTTPClient),
		timeout: timeout,
		breaker: circuit.New(breakerName,
			circuit.WithFailureThreshold(5),
			circuit.WithSuccessThreshold(2),
			circuit.WithCooldown(30*time.Second),
		),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func newClient(baseURL string, timeout time.Duration, retries int, hc *http.Client) *resty.Client {
	var c *resty.Client
	if hc != nil {
		c = resty.NewWithClient(hc)
	} else {
		c = resty.New()
	}
	c.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(defaultRetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil || r == nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})
	return c
}

// get performs one GET under the per-call timeout and the circuit breaker,
// decoding the JSON body into out.
func (g *Gateway) get(ctx context.Context, client *resty.Client, op, path string, params url.Values, out any) error {
	if !g.breaker.Allow() {
		g.metrics.ObserveUpstream(op, "circuit_open", 0)
		return NewProviderError(ErrorProviderOutage, op, "upstream circuit open", ErrCircuitOpen)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(path)

	var perr *ProviderError
	switch {
	case err != nil:
		perr = classifyTransport(op, err)
	default:
		perr = classifyStatus(op, resp.StatusCode())
		if perr == nil {
			if decodeErr := json.Unmarshal(resp.Body(), out); decodeErr != nil {
				perr = NewProviderError(ErrorBadData, op, "malformed response body", decodeErr)
			}
		}
	}
	g.record(op, perr, time.Since(start))
	if perr != nil {
		return perr
	}
	return nil
}

func (g *Gateway) record(op string, perr *ProviderError, d time.Duration) {
	outcome := "ok"
	if perr != nil {
		outcome = string(perr.Category)
	}
	g.metrics.ObserveUpstream(op, outcome, d)

	var change circuit.StateChange
	if perr != nil && perr.Retryable {
		_, change = g.breaker.RecordFailure()
	} else if perr == nil || perr.Category == ErrorNotFound {
		_, change = g.breaker.RecordSuccess()
	} else {
		g.breaker.Release()
	}
	if change.Opened {
		g.log.Warn("upstream circuit opened", zap.String("breaker", g.breaker.Name()), zap.String("operation", op))
	}
	if change.Closed {
		g.log.Info("upstream circuit closed", zap.String("breaker", g.breaker.Name()))
	}
	g.metrics.SetBreakerOpen(g.breaker.Name(), g.breaker.IsOpen())
}

// SearchMunicipalities runs a substring search on municipality names,
// optionally refined by province.
func (g *Gateway) SearchMunicipalities(ctx context.Context, params models.SearchParams) (*models.SearchResult, error) {
	p := params.Normalized()
	q := NewQuery(DatasetMunicipalities).
		WithRows(p.Limit).
		WithFacet("provincia", "municipio").
		Contains("municipio", p.Query)
	if p.Province.IsValid() {
		q.Refine("provincia", p.Province.Name())
	}

	var resp recordsResponse[municipalityFields]
	if err := g.get(ctx, g.search, OpSearchMunicipalities, "", q.RecordsSearchParams(), &resp); err != nil {
		return nil, err
	}

	out := &models.SearchResult{Municipalities: make([]models.Municipality, 0, len(resp.Records))}
	for _, r := range resp.Records {
		out.Municipalities = append(out.Municipalities, transformMunicipality(r))
	}
	out.Total = len(out.Municipalities)
	return out, nil
}

// MunicipalityByID looks up one municipality by INE code. A response without
// records is a not_found ProviderError (errors.Is sentinel.ErrNotFound).
func (g *Gateway) MunicipalityByID(ctx context.Context, id domain.MunicipalityID) (*models.Municipality, error) {
	q := NewQuery(DatasetMunicipalities).WithRows(1).Exact("cod_ine", id.String())

	var resp recordsResponse[municipalityFields]
	if err := g.get(ctx, g.search, OpMunicipalityByID, "", q.RecordsSearchParams(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, NewProviderError(ErrorNotFound, OpMunicipalityByID, "no record for "+id.String(), nil)
	}
	m := transformMunicipality(resp.Records[0])
	if m.ID == "" || m.ID == "00000" {
		m.ID = id.String()
	}
	return &m, nil
}

// EducationCenters lists the schools of a municipality, matched on the
// upper-cased municipality name, and counts them by category.
func (g *Gateway) EducationCenters(ctx context.Context, municipalityName string) (*models.Education, error) {
	name := strings.ToUpper(strings.TrimSpace(municipalityName))
	if name == "" {
		return nil, NewProviderError(ErrorInternal, OpEducationCenters, "municipality name required", nil)
	}
	q := NewQuery(DatasetEducationCenters).WithRows(educationRows).Where("municipio", name)

	var resp catalogResponse[educationRecord]
	if err := g.get(ctx, g.catalog, OpEducationCenters, q.CatalogPath(), q.CatalogParams(), &resp); err != nil {
		return nil, err
	}

	centers := make([]models.EducationCenter, 0, len(resp.Results))
	for _, r := range resp.Results {
		centers = append(centers, transformEducationCenter(r))
	}
	return summarizeEducation(centers), nil
}

// HealthCenters queries the health registry once per locality, at most
// healthConcurrency at a time, and concatenates the results in locality
// order. Facilities are tagged with the locality's accented name and are not
// deduplicated across localities. Failed localities are skipped; an error is
// returned only when every locality failed.
func (g *Gateway) HealthCenters(ctx context.Context, localities []reference.LocalityRef) ([]models.HealthCenter, error) {
	if len(localities) == 0 {
		return []models.HealthCenter{}, nil
	}

	perLocality := make([][]models.HealthCenter, len(localities))
	var (
		mu       sync.Mutex
		failed   int
		firstErr error
	)

	var eg errgroup.Group
	eg.SetLimit(healthConcurrency)
	for i, loc := range localities {
		eg.Go(func() error {
			q := NewQuery(DatasetHealthCenters).WithRows(healthRows).Exact("localidad", loc.Plain)
			var resp recordsResponse[healthFields]
			if err := g.get(ctx, g.search, OpHealthCenters, "", q.RecordsSearchParams(), &resp); err != nil {
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				g.log.Warn("health lookup failed for locality",
					zap.String("locality", loc.Plain),
					zap.String("municipality_id", loc.MunicipalityID),
					zap.String("category", string(GetCategory(err))),
					zap.Error(err),
				)
				return nil
			}
			display := loc.Display
			if display == "" {
				display = loc.Plain
			}
			centers := make([]models.HealthCenter, 0, len(resp.Records))
			for _, r := range resp.Records {
				centers = append(centers, transformHealthCenter(r, display))
			}
			perLocality[i] = centers
			return nil
		})
	}
	_ = eg.Wait()

	if failed == len(localities) {
		return nil, errors.Join(errAllLocalitiesFailed, firstErr)
	}

	out := make([]models.HealthCenter, 0)
	for _, centers := range perLocality {
		out = append(out, centers...)
	}
	return out, nil
}

var errAllLocalitiesFailed = errors.New("health lookup failed for every locality")
