package httptransport

import (
	"net/url"
	"strconv"
	"strings"

	"retrato/internal/export"
	"retrato/internal/profile"
	"retrato/internal/profile/models"
	"retrato/pkg/domain"
	dErrors "retrato/pkg/domain-errors"
)

const maxQueryLength = 100

// SearchRequest is the query string of GET /api/municipalities/search.
type SearchRequest struct {
	Query        string
	ProvinceCode string
	Limit        string
}

func searchRequestFrom(q url.Values) SearchRequest {
	return SearchRequest{
		Query:        q.Get("query"),
		ProvinceCode: q.Get("provinceCode"),
		Limit:        q.Get("limit"),
	}
}

// Params validates the request. Every invalid field is reported.
func (r SearchRequest) Params() (models.SearchParams, error) {
	var (
		params models.SearchParams
		fields []dErrors.FieldError
	)

	params.Query = strings.TrimSpace(r.Query)
	if len([]rune(params.Query)) > maxQueryLength {
		fields = append(fields, dErrors.FieldError{Field: "query", Message: "no puede superar 100 caracteres"})
	}

	if code := strings.TrimSpace(r.ProvinceCode); code != "" {
		p, err := domain.ParseProvinceCode(code)
		if err != nil {
			fields = append(fields, dErrors.FieldError{Field: "provinceCode", Message: "provincia no válida"})
		}
		params.Province = p
	}

	params.Limit = models.DefaultSearchLimit
	if raw := strings.TrimSpace(r.Limit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > models.MaxSearchLimit {
			fields = append(fields, dErrors.FieldError{Field: "limit", Message: "debe ser un entero entre 1 y 50"})
		}
		params.Limit = n
	}

	if len(fields) > 0 {
		return models.SearchParams{}, dErrors.New(dErrors.CodeValidation, "Parámetros de búsqueda no válidos").WithFields(fields...)
	}
	return params, nil
}

// HealthRequest is the query string of GET /api/health/{municipalityId}.
type HealthRequest struct {
	Page  string
	Limit string
}

func healthRequestFrom(q url.Values) HealthRequest {
	return HealthRequest{Page: q.Get("page"), Limit: q.Get("limit")}
}

// Pagination validates page (>= 1, default 1) and limit (1..100, default 50).
func (r HealthRequest) Pagination() (page, limit int, err error) {
	var fields []dErrors.FieldError
	page, limit = 1, profile.DefaultHealthLimit

	if raw := strings.TrimSpace(r.Page); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			fields = append(fields, dErrors.FieldError{Field: "page", Message: "debe ser un entero mayor o igual que 1"})
		}
		page = n
	}
	if raw := strings.TrimSpace(r.Limit); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 || n > profile.MaxHealthLimit {
			fields = append(fields, dErrors.FieldError{Field: "limit", Message: "debe ser un entero entre 1 y 100"})
		}
		limit = n
	}

	if len(fields) > 0 {
		return 0, 0, dErrors.New(dErrors.CodeValidation, "Parámetros de paginación no válidos").WithFields(fields...)
	}
	return page, limit, nil
}

func exportFormatFrom(q url.Values) (export.Format, error) {
	return export.ParseFormat(q.Get("format"))
}
