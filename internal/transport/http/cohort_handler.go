package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"yhstat/internal/apierrors"
	"yhstat/internal/services"
)

// CohortHandler serves the admitted-student analytics routes.
type CohortHandler struct {
	service *services.CohortService
	logger  *slog.Logger
}

// NewCohortHandler creates the handler.
func NewCohortHandler(service *services.CohortService, logger *slog.Logger) *CohortHandler {
	return &CohortHandler{
		service: service,
		logger:  logger.With(slog.String("component", "cohort_handler")),
	}
}

// Routes mounts the cohort routes.
func (h *CohortHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/years", h.GetYears)
	r.Get("/areas", h.GetAreas)
	r.Get("/observations", h.GetObservations)
	r.Get("/gender-ratio", h.GetGenderRatio)
	r.Get("/growth", h.GetGrowth)

	return r
}

// GetYears handles GET /api/cohort/years.
func (h *CohortHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years := h.service.Years(r.Context())
	respond(w, r, years, len(years))
}

// GetAreas handles GET /api/cohort/areas.
func (h *CohortHandler) GetAreas(w http.ResponseWriter, r *http.Request) {
	areas := h.service.EducationAreas(r.Context())
	respond(w, r, areas, len(areas))
}

// GetObservations handles GET /api/cohort/observations?year=.
func (h *CohortHandler) GetObservations(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	obs, err := h.service.ObservationsForYear(r.Context(), year)
	if err != nil {
		renderError(w, r, err)
		return
	}
	respond(w, r, obs, len(obs))
}

// GetGenderRatio handles GET /api/cohort/gender-ratio?year=.
func (h *CohortHandler) GetGenderRatio(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	ratio, err := h.service.GenderRatio(r.Context(), year)
	if err != nil {
		renderError(w, r, err)
		return
	}
	respond(w, r, ratio, 1)
}

// GetGrowth handles GET /api/cohort/growth?year=.
func (h *CohortHandler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	growth, err := h.service.Growth(r.Context(), year)
	if err != nil {
		renderError(w, r, err)
		return
	}
	respond(w, r, growth, 1)
}

func (h *CohortHandler) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		renderError(w, r, apierrors.BadRequest("year query parameter is required"))
		return 0, false
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.DebugContext(r.Context(), "invalid year parameter", slog.String("year", raw))
		renderError(w, r, apierrors.BadRequest("year must be an integer"))
		return 0, false
	}
	return year, true
}
