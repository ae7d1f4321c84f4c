package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"yhstat/internal/apierrors"
	"yhstat/internal/services"
)

// ProvidersHandler serves the ranked provider routes.
type ProvidersHandler struct {
	service *services.StatsService
	logger  *slog.Logger
}

// NewProvidersHandler creates the handler.
func NewProvidersHandler(service *services.StatsService, logger *slog.Logger) *ProvidersHandler {
	return &ProvidersHandler{
		service: service,
		logger:  logger.With(slog.String("component", "providers_handler")),
	}
}

// Routes mounts the provider routes.
func (h *ProvidersHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetProviders)
	r.Get("/{name}", h.GetProvider)

	return r
}

// GetProviders handles GET /api/providers.
func (h *ProvidersHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	summaries := h.service.ProviderSummaries(r.Context())
	respond(w, r, summaries, len(summaries))
}

// GetProvider handles GET /api/providers/{name}.
func (h *ProvidersHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		renderError(w, r, apierrors.BadRequest("provider name is required"))
		return
	}

	view, err := h.service.ProviderView(r.Context(), name)
	if err != nil {
		renderError(w, r, err)
		return
	}
	respond(w, r, view, 1)
}
