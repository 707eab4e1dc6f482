package httptransport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"retrato/internal/export"
	"retrato/internal/profile/models"
	"retrato/internal/reference"
	dErrors "retrato/pkg/domain-errors"
	"retrato/pkg/platform/httputil"
	"retrato/pkg/requestcontext"
)

// Service is the aggregation engine as seen by the HTTP layer.
type Service interface {
	BuildProfile(ctx context.Context, id string) (*models.Profile, error)
	Search(ctx context.Context, params models.SearchParams) (*models.SearchResult, error)
	HealthCenters(ctx context.Context, id string, page, limit int) (*models.HealthPage, error)
	ClearCache(ctx context.Context) error
	Stats() reference.Stats
}

// Handler serves the municipality API.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/municipalities/search", h.HandleSearch)
		r.Get("/municipalities/{id}", h.HandleProfile)
		r.Get("/municipalities/{id}/export", h.HandleExport)
		r.Get("/health/{municipalityId}", h.HandleHealthCenters)
		r.Post("/cache/clear", h.HandleClearCache)
		r.Get("/stats", h.HandleStats)
	})
}

// HandleSearch handles GET /api/municipalities/search.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := searchRequestFrom(r.URL.Query()).Params()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Search(ctx, params)
	if err != nil {
		h.fail(ctx, w, "search", "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleProfile handles GET /api/municipalities/{id}.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	p, err := h.service.BuildProfile(ctx, id)
	if err != nil {
		h.fail(ctx, w, "profile", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleExport handles GET /api/municipalities/{id}/export.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	format, err := exportFormatFrom(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.BuildProfile(ctx, id)
	if err != nil {
		h.fail(ctx, w, "export", id, err)
		return
	}

	// Render fully before writing headers so a failure still yields a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, p, format, requestcontext.Now(ctx)); err != nil {
		h.fail(ctx, w, "export", id, dErrors.Wrap(err, dErrors.CodeInternal, "render export"))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(p, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleHealthCenters handles GET /api/health/{municipalityId}.
func (h *Handler) HandleHealthCenters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "municipalityId")

	page, limit, err := healthRequestFrom(r.URL.Query()).Pagination()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.HealthCenters(ctx, id, page, limit)
	if err != nil {
		h.fail(ctx, w, "health_centers", id, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleClearCache handles POST /api/cache/clear.
func (h *Handler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.ClearCache(ctx); err != nil {
		h.fail(ctx, w, "clear_cache", "", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Caché limpiada correctamente"})
}

// HandleStats handles GET /api/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Stats())
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail logs err with the operation and id, then writes the error envelope.
// Not-found outcomes are logged at info.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op, id string, err error) {
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("request_id", requestcontext.RequestID(ctx)),
		zap.Error(err),
	}
	if id != "" {
		fields = append(fields, zap.String("municipality_id", id))
	}
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.log.Info("request failed", fields...)
	} else {
		h.log.Error("request failed", fields...)
	}
	httputil.WriteError(w, err)
}
