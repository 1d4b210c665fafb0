package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/label"
	"github.com/UnknownOlympus/hermes/internal/ledger"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/printer"
	"github.com/UnknownOlympus/hermes/internal/routesource"
	"github.com/UnknownOlympus/hermes/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	sourceType := routesource.SourceTypeHTTP
	if cfg.Simulation {
		sourceType = routesource.SourceTypeSimulation
	}
	source, err := routesource.NewSource(routesource.SourceConfig{
		Type:      sourceType,
		BaseURL:   cfg.Source.BaseURL,
		APIKey:    cfg.Source.APIKey,
		RateLimit: cfg.Source.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create route source: %v", err)
	}
	logger.InfoContext(ctx, "Route source initialized", "type", sourceType)

	sink := printer.NewSink(cfg.Printer.Host, cfg.Printer.Port, cfg.Printer.Timeout, logger)
	if err = sink.Probe(ctx); err != nil {
		// The printer may come online later, every document is dialed separately.
		logger.WarnContext(ctx, "Printer is not reachable", "addr", sink.Addr(), "error", err)
	}

	store, err := ledger.NewStore(ctx, ledger.StoreConfig{
		Backend: ledger.Backend(cfg.Ledger.Backend),
		Path:    cfg.Ledger.Path,
		Postgres: ledger.PostgresConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
		},
		Redis: ledger.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
			Key:  cfg.Redis.Key,
		},
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	defer func() {
		if errClose := store.Close(); errClose != nil {
			logger.Error("Failed to close ledger store", "error", errClose)
		}
	}()

	processed, err := ledger.Open(ctx, store, logger)
	if err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}

	printingService := service.NewPrintingService(
		logger,
		source,
		label.NewRenderer(nil),
		sink,
		processed,
		appMetrics,
		service.SystemClock{},
		cfg.Interval,
		cfg.Cooldown,
	)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"printer", sink.Addr(), "ledger", cfg.Ledger.Backend, "routes_processed", processed.Len())

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, processed, cfg.Port)

	done := make(chan struct{})
	go func() {
		printingService.Run(ctx)
		close(done)
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Let the route in progress finish its current document.
	<-done

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// healthChecker is anything the health endpoint can ping.
type healthChecker interface {
	Ping(ctx context.Context) error
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// /healthz reports 503 while the ledger store is unreachable.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	checker healthChecker,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := checker.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "Ledger ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
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

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
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
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
