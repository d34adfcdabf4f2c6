package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quadrantgeo/pinmap/internal/config"
	"github.com/quadrantgeo/pinmap/internal/geocoding"
	"github.com/quadrantgeo/pinmap/internal/metrics"
	"github.com/quadrantgeo/pinmap/internal/render"
	"github.com/quadrantgeo/pinmap/internal/repository"
	"github.com/quadrantgeo/pinmap/internal/service"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// File-backed storage for the input table and the geocoded dataset artifact.
	repo := repository.NewFileRepository(cfg.InputFile, cfg.DatasetFile, logger)

	// Create geocoding provider using factory pattern based on configuration.
	// This allows runtime selection between different providers (Google, Nominatim).
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:   geocoding.ProviderType(cfg.ProviderType),
		APIKey: cfg.APIKey,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	resolver := geocoding.NewResolver(geoProvider, logger, cfg.RequestTimeout, cfg.RetryBackoff)
	pipeline := service.NewPipelineService(logger, repo, resolver, cfg.ProviderType, appMetrics)

	// A geocoding pass over a long input table can run for minutes; expose
	// health and metrics endpoints while it does. Port 0 disables this.
	if cfg.Port > 0 {
		go startMonitoringServer(ctx, logger, reg, cfg.Port)
	}

	dataset, err := pipeline.EnsureGeocoded(ctx)
	if err != nil {
		log.Fatalf("Geocoding pipeline failed: %v", err)
	}

	renderer := render.NewRenderer(logger, render.Options{
		BoundaryPath: cfg.BoundaryFile,
		OutputPath:   cfg.OutputFile,
		Title:        cfg.Render.Title,
		ExtentMode:   cfg.Render.ExtentMode,
		Width:        cfg.Render.Width,
		Height:       cfg.Render.Height,
	})

	if err = renderer.Render(ctx, dataset); err != nil {
		log.Fatalf("Map rendering failed: %v", err)
	}

	logger.InfoContext(ctx, "Pipeline finished.")
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
