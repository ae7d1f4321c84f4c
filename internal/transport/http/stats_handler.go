package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"yhstat/internal/apierrors"
	"yhstat/internal/services"
	"yhstat/internal/stats"
)

// StatsHandler serves scope statistics and region code routes.
type StatsHandler struct {
	service *services.StatsService
	logger  *slog.Logger
}

// NewStatsHandler creates the handler.
func NewStatsHandler(service *services.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With(slog.String("component", "stats_handler")),
	}
}

// Routes mounts the statistics and region routes.
func (h *StatsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/statistics", func(r chi.Router) {
		r.Get("/national", h.GetNational)
		r.Get("/counties", h.GetCounties)
		r.Get("/county/{county}", h.GetCounty)
		r.Get("/approved-by-county", h.GetApprovedByCounty)
	})

	r.Route("/regions", func(r chi.Router) {
		r.Get("/codes", h.GetRegionCodes)
		r.Get("/matches", h.GetRegionMatches)
	})

	return r
}

type scopeResponse struct {
	Statistics stats.ScopeStatistics `json:"statistics"`
	Breakdown  []stats.AreaStat      `json:"breakdown"`
}

// GetNational handles GET /api/statistics/national.
func (h *StatsHandler) GetNational(w http.ResponseWriter, r *http.Request) {
	breakdown, scope, err := h.service.NationalStatistics(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "national statistics failed", slog.String("error", err.Error()))
		renderError(w, r, err)
		return
	}
	respond(w, r, scopeResponse{Statistics: scope, Breakdown: breakdown}, len(breakdown))
}

// GetCounties handles GET /api/statistics/counties.
func (h *StatsHandler) GetCounties(w http.ResponseWriter, r *http.Request) {
	counties := h.service.Counties(r.Context())
	respond(w, r, counties, len(counties))
}

// GetCounty handles GET /api/statistics/county/{county}.
func (h *StatsHandler) GetCounty(w http.ResponseWriter, r *http.Request) {
	county, err := url.PathUnescape(chi.URLParam(r, "county"))
	if err != nil || county == "" {
		renderError(w, r, apierrors.BadRequest("county parameter is required"))
		return
	}

	breakdown, scope, err := h.service.CountyStatistics(r.Context(), county)
	if err != nil {
		renderError(w, r, err)
		return
	}
	respond(w, r, scopeResponse{Statistics: scope, Breakdown: breakdown}, len(breakdown))
}

// GetApprovedByCounty handles GET /api/statistics/approved-by-county.
func (h *StatsHandler) GetApprovedByCounty(w http.ResponseWriter, r *http.Request) {
	counts := h.service.ApprovedByCounty(r.Context())
	respond(w, r, counts, len(counts))
}

// GetRegionCodes handles GET /api/regions/codes.
func (h *StatsHandler) GetRegionCodes(w http.ResponseWriter, r *http.Request) {
	codes := h.service.RegionCodes(r.Context())
	respond(w, r, codes, len(codes))
}

// GetRegionMatches handles GET /api/regions/matches.
func (h *StatsHandler) GetRegionMatches(w http.ResponseWriter, r *http.Request) {
	matches := h.service.MatchedRegionCodes(r.Context())
	respond(w, r, matches, len(matches))
}
