package httptransport

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"retrato/internal/platform/metrics"
	"retrato/internal/profile/models"
	"retrato/internal/reference"
	"retrato/internal/transport/http/mocks"
	"retrato/pkg/domain"
	dErrors "retrato/pkg/domain-errors"
	"retrato/pkg/platform/httputil"
	"retrato/pkg/testutil"
)

//go:generate mockgen -source=handlers_municipality.go -destination=mocks/service-mocks.go -package=mocks Service

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	logs    *observer.ObservedLogs
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)

	core, logs := observer.New(zapcore.InfoLevel)
	s.logs = logs
	log := zap.New(core)

	reg := prometheus.NewRegistry()
	s.router = NewRouter(NewHandler(s.service, log), log, metrics.New(reg), reg)
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, req)
}

func sampleProfile() *models.Profile {
	surface := 52.0
	return &models.Profile{
		Municipality: models.Municipality{
			ID:           "05001",
			Name:         "Adanero",
			ProvinceCode: "AV",
			ProvinceName: "Ávila",
			PostalCodes:  []string{"05296"},
			Surface:      &surface,
		},
		Demographics: &models.Demographics{TotalPopulation: 250, Men: 130, Women: 120},
		Health: &models.Health{Centers: []models.HealthCenter{
			{Code: "H1", Name: "Consultorio Local", Locality: "Adanero"},
		}},
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) TestSearch() {
	s.Run("passes validated parameters", func() {
		want := models.SearchParams{Query: "Ávila", Province: domain.ProvinceAvila, Limit: 5}
		s.service.EXPECT().Search(gomock.Any(), want).Return(&models.SearchResult{
			Municipalities: []models.Municipality{{ID: "05019", Name: "Ávila", ProvinceCode: "AV"}},
			Total:          1,
		}, nil)

		q := url.Values{"query": {" Ávila "}, "provinceCode": {"av"}, "limit": {"5"}}
		rr := s.do(testutil.Get(s.T(), "/api/municipalities/search?"+q.Encode()))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		res := testutil.UnmarshalResponse[models.SearchResult](s.T(), rr)
		s.Equal(1, res.Total)
		s.Equal("05019", res.Municipalities[0].ID)
	})

	s.Run("defaults the limit", func() {
		s.service.EXPECT().
			Search(gomock.Any(), models.SearchParams{Limit: models.DefaultSearchLimit}).
			Return(&models.SearchResult{Municipalities: []models.Municipality{}}, nil)

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/search"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	cases := []struct {
		name  string
		query string
		field string
	}{
		{"zero limit", "limit=0", "limit"},
		{"non numeric limit", "limit=abc", "limit"},
		{"limit above maximum", "limit=51", "limit"},
		{"unknown province", "provinceCode=XX", "provinceCode"},
		{"query too long", "query=" + strings.Repeat("a", 101), "query"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rr := s.do(testutil.Get(s.T(), "/api/municipalities/search?"+tc.query))

			resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
			s.Require().Len(resp.Errors, 1)
			s.Equal(tc.field, resp.Errors[0].Field)
		})
	}

	s.Run("reports every invalid field", func() {
		rr := s.do(testutil.Get(s.T(), "/api/municipalities/search?limit=0&provinceCode=XX"))

		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
		s.Len(resp.Errors, 2)
	})
}

func (s *HandlerSuite) TestProfile() {
	s.Run("returns the profile", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "05001").Return(sampleProfile(), nil)

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/05001"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Equal("application/json; charset=utf-8", rr.Header().Get("Content-Type"))
		p := testutil.UnmarshalResponse[models.Profile](s.T(), rr)
		s.Equal("Adanero", p.Municipality.Name)
		s.Equal(250, p.Demographics.TotalPopulation)
	})

	s.Run("not found", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "99999").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Municipio no encontrado"))

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/99999"))

		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		s.Equal("Municipio no encontrado", resp.ErrorDescription)
	})

	s.Run("internal error does not leak details", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "05001").
			Return(nil, errors.New("dial tcp 10.0.0.7:6379: connection refused"))

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/05001"))

		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
		s.Equal(httputil.InternalErrorMessage, resp.ErrorDescription)
		s.NotContains(rr.Body.String(), "10.0.0.7")

		failures := s.logs.FilterMessage("request failed").FilterField(zap.String("municipality_id", "05001"))
		s.Equal(1, failures.Len())
	})

	s.Run("panic is recovered", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "05002").Do(func(any, string) { panic("boom") })

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/05002"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
	})
}

func (s *HandlerSuite) TestExport() {
	s.Run("csv by default", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "05001").Return(sampleProfile(), nil)

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/05001/export"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Equal("text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
		s.Equal(`attachment; filename="Adanero_datos.csv"`, rr.Header().Get("Content-Disposition"))
		s.True(strings.HasPrefix(rr.Body.String(), `"Categoría","Campo","Valor"`))
		s.Contains(rr.Body.String(), `"Adanero"`)
	})

	s.Run("xlsx workbook", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "05001").Return(sampleProfile(), nil)

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/05001/export?format=xlsx"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
		s.Equal(`attachment; filename="Adanero_datos.xlsx"`, rr.Header().Get("Content-Disposition"))

		f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
		s.Require().NoError(err)
		defer f.Close()
		s.Equal([]string{"Perfil", "Centros sanitarios"}, f.GetSheetList())
	})

	s.Run("unsupported format is rejected before building", func() {
		rr := s.do(testutil.Get(s.T(), "/api/municipalities/05001/export?format=pdf"))

		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
		s.Require().Len(resp.Errors, 1)
		s.Equal("format", resp.Errors[0].Field)
	})

	s.Run("missing municipality", func() {
		s.service.EXPECT().BuildProfile(gomock.Any(), "00000").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Municipio no encontrado"))

		rr := s.do(testutil.Get(s.T(), "/api/municipalities/00000/export?format=csv"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestHealthCenters() {
	s.Run("defaults page and limit", func() {
		s.service.EXPECT().HealthCenters(gomock.Any(), "05001", 1, 50).Return(&models.HealthPage{
			Centers:        []models.HealthCenter{{Code: "H1"}},
			TotalCenters:   1,
			TotalAvailable: 1,
			Page:           1,
			Limit:          50,
		}, nil)

		rr := s.do(testutil.Get(s.T(), "/api/health/05001"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		page := testutil.UnmarshalResponse[models.HealthPage](s.T(), rr)
		s.Equal(1, page.TotalAvailable)
		s.False(page.HasMore)
	})

	s.Run("explicit page", func() {
		s.service.EXPECT().HealthCenters(gomock.Any(), "05001", 3, 10).Return(&models.HealthPage{Page: 3, Limit: 10}, nil)

		rr := s.do(testutil.Get(s.T(), "/api/health/05001?page=3&limit=10"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("page far past the end", func() {
		s.service.EXPECT().HealthCenters(gomock.Any(), "05001", math.MaxInt64, 50).
			Return(&models.HealthPage{Centers: []models.HealthCenter{}, TotalAvailable: 3, Page: math.MaxInt64, Limit: 50}, nil)

		rr := s.do(testutil.Get(s.T(), "/api/health/05001?page=9223372036854775807"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		page := testutil.UnmarshalResponse[models.HealthPage](s.T(), rr)
		s.Empty(page.Centers)
		s.False(page.HasMore)
	})

	for _, q := range []string{"page=0", "page=x", "page=9223372036854775808", "limit=0", "limit=101"} {
		s.Run("rejects "+q, func() {
			rr := s.do(testutil.Get(s.T(), "/api/health/05001?"+q))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
		})
	}
}

func (s *HandlerSuite) TestClearCache() {
	s.Run("post clears", func() {
		s.service.EXPECT().ClearCache(gomock.Any()).Return(nil)

		rr := s.do(testutil.Post(s.T(), "/api/cache/clear"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "message", "Caché limpiada correctamente")
	})

	s.Run("get is not allowed", func() {
		rr := s.do(testutil.Get(s.T(), "/api/cache/clear"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	s.Run("store failure", func() {
		s.service.EXPECT().ClearCache(gomock.Any()).Return(dErrors.New(dErrors.CodeInternal, "redis down"))

		rr := s.do(testutil.Post(s.T(), "/api/cache/clear"))

		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
		s.Equal(httputil.InternalErrorMessage, resp.ErrorDescription)
	})
}

func (s *HandlerSuite) TestStats() {
	s.service.EXPECT().Stats().Return(reference.Stats{MunicipalitiesCount: 2248, PostalCodesCount: 1500})

	rr := s.do(testutil.Get(s.T(), "/api/stats"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	st := testutil.UnmarshalResponse[reference.Stats](s.T(), rr)
	s.Equal(2248, st.MunicipalitiesCount)
	s.Equal(1500, st.PostalCodesCount)
}

func (s *HandlerSuite) TestOperationalRoutes() {
	s.Run("liveness", func() {
		rr := s.do(testutil.Get(s.T(), "/healthz"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "status", "ok")
	})

	s.Run("metrics exposition", func() {
		rr := s.do(testutil.Get(s.T(), "/metrics"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Contains(rr.Body.String(), "retrato_profile_build_duration_seconds")
	})

	s.Run("unknown route", func() {
		rr := s.do(testutil.Get(s.T(), "/api/unknown"))
		resp := testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		s.Equal("Recurso no encontrado", resp.ErrorDescription)
	})

	s.Run("request id is echoed", func() {
		req := testutil.Get(s.T(), "/healthz")
		req.Header.Set("X-Request-ID", "req-42")
		rr := s.do(req)
		s.Equal("req-42", rr.Header().Get("X-Request-ID"))
	})
}

func TestRouterWithoutMetrics(t *testing.T) {
	router := NewRouter(NewHandler(nil, nil), zap.NewNop(), nil, nil)

	rr := testutil.DoRequest(router, testutil.Get(t, "/metrics"))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not_found")
}
