package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yhstat/internal/config"
	"yhstat/internal/middleware"
	"yhstat/internal/services"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Stats    *services.StatsService
	Cohort   *services.CohortService
	Registry *prometheus.Registry
}

// NewRouter assembles the middleware chain and mounts all routes.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(chimw.Timeout(60 * time.Second))

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(registry)
	r.Use(metrics.Handler)

	if deps.Config != nil && deps.Config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst, deps.Logger)
		r.Use(limiter.Handler)
	}

	r.Get("/healthz", healthHandler(deps.Stats))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		statsHandler := NewStatsHandler(deps.Stats, deps.Logger)
		r.Mount("/", statsHandler.Routes())
		r.Mount("/providers", NewProvidersHandler(deps.Stats, deps.Logger).Routes())
		r.Mount("/cohort", NewCohortHandler(deps.Cohort, deps.Logger).Routes())
	})

	return r
}

func healthHandler(stats *services.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		var snapshotID string
		if snap := stats.Snapshot(); snap != nil {
			snapshotID = snap.ID
		} else {
			status = "degraded"
		}
		render.Status(r, http.StatusOK)
		render.JSON(w, r, map[string]string{
			"status":      status,
			"snapshot_id": snapshotID,
		})
	}
}
