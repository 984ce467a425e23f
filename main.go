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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/Chouhan705/DateMapz/app/logger"
	"github.com/Chouhan705/DateMapz/app/observability/metrics"
	"github.com/Chouhan705/DateMapz/app/tracer"
	"github.com/Chouhan705/DateMapz/config"
	"github.com/Chouhan705/DateMapz/internal/api/geocode"
	generativeAI "github.com/Chouhan705/DateMapz/internal/api/generative_ai"
	"github.com/Chouhan705/DateMapz/internal/api/places"
	"github.com/Chouhan705/DateMapz/internal/api/planner"
	api "github.com/Chouhan705/DateMapz/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracer.InitTracingAndMetrics()
	metrics.InitAppMetrics()

	// --- Outbound collaborators ---
	placesClient := places.NewClient(cfg.Providers.Places.BaseURL, cfg.Providers.Places.APIKey, cfg.Providers.Places.Timeout)
	geocoder := geocode.NewService(cfg.Providers.Nominatim.BaseURL, cfg.Providers.Nominatim.Timeout, logger)
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Providers.Gemini.Model)
	if err != nil {
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	adapter := places.NewAdapter(placesClient, logger)
	finder := places.NewFinder(adapter, logger, cfg.Search.MaxCandidates, cfg.Search.SufficiencyThreshold)
	planService := planner.NewService(finder, geocoder, aiClient, logger, planner.PolicyConfig{
		MinCandidates:   cfg.Planner.MinCandidates,
		MinStopsCurated: cfg.Planner.MinStopsCurated,
		MinStopsArea:    cfg.Planner.MinStopsArea,
		MinStopsSimple:  cfg.Planner.MinStopsSimple,
	})
	plannerHandler := planner.NewHandler(planService, logger)

	// --- Router Setup ---
	mainRouter := api.SetupRouter(&api.Config{
		PlannerHandler: plannerHandler,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		slog.InfoContext(r.Context(), "Root endpoint hit")
		w.Write([]byte("Welcome to DateMapz API"))
	})

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
