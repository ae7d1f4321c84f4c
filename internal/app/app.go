// Package app wires configuration, logging, data loading, services, and the
// HTTP server into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"yhstat/internal/config"
	"yhstat/internal/loader"
	"yhstat/internal/logging"
	"yhstat/internal/services"
	transport "yhstat/internal/transport/http"
)

// Application is the composed server.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Stats  *services.StatsService
	Cohort *services.CohortService
	Server *http.Server

	closeLog func() error
}

// New loads configuration and datasets and builds the HTTP server.
func New(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	snap, err := loader.BuildSnapshot(ctx, cfg, logger)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	stats := services.NewStatsService(snap, logger)
	cohortSvc := services.NewCohortService(snap, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := transport.NewRouter(transport.RouterDeps{
		Config:   cfg,
		Logger:   logger,
		Stats:    stats,
		Cohort:   cohortSvc,
		Registry: registry,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Stats:    stats,
		Cohort:   cohortSvc,
		Server:   server,
		closeLog: closeLog,
	}, nil
}

// Run serves HTTP until the context is cancelled or a shutdown signal
// arrives, then drains connections within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	defer a.closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.InfoContext(ctx, "server starting", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
