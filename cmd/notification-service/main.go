package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/northmart/commerce-platform/notification-service/config"
	"github.com/northmart/commerce-platform/notification-service/handlers"
	"github.com/northmart/commerce-platform/shared/telemetry"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting service",
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port))

	// Initialize telemetry
	ctx := context.Background()
	tel, telShutdown, err := telemetry.InitTelemetry(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		logger.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer telShutdown()

	// Initialize dependencies
	deps, err := config.BuildDependencies(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build dependencies", zap.Error(err))
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("error closing dependencies", zap.Error(err))
		}
	}()

	// Start event subscriber. The notification service listens to everything
	// and lets the handler decide what is notification-worthy.
	go func() {
		if err := deps.EventSubscriber.Subscribe(context.Background(), "#", deps.NotificationEventHandlers); err != nil {
			logger.Error("event subscriber stopped", zap.Error(err))
		}
	}()

	// Setup HTTP router for health and metrics
	router := setupRouter(tel)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", zap.String("service", cfg.ServiceName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("service stopped", zap.String("service", cfg.ServiceName))
}

func setupRouter(tel *telemetry.Telemetry) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	if tel != nil {
		r.Use(telemetry.Middleware(tel))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	return r
}
