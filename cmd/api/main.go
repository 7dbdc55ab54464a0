package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/spendwise/internal/api"
	"github.com/dvloznov/spendwise/internal/api/handlers"
	"github.com/dvloznov/spendwise/internal/app"
	"github.com/dvloznov/spendwise/internal/config"
	"github.com/dvloznov/spendwise/internal/export"
	"github.com/dvloznov/spendwise/internal/insights"
	"github.com/dvloznov/spendwise/internal/jobs/inmemory"
	"github.com/dvloznov/spendwise/internal/logger"
)

func main() {
	// Parse command-line flags
	var (
		envFile = flag.String("env", "", "Path to a .env file (defaults to ./.env if present)")
		port    = flag.String("port", "", "HTTP server port (overrides PORT)")
	)
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		bootLog := logger.New()
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != "" {
		cfg.Port = *port
	}

	// Initialize logger
	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	ctx := context.Background()

	// Initialize repositories
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer stores.Close()

	log.Info().
		Str("backend", cfg.StorageBackend).
		Str("database", cfg.DatabasePath).
		Msg("Storage ready")

	// Initialize the insight service
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("No GEMINI_API_KEY configured - insight requests will return 500")
	}
	completer, err := insights.NewGeminiCompleter(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	svc := insights.NewService(completer, insights.Config{
		Model:       cfg.InsightsModel,
		Temperature: &cfg.InsightsTemperature,
	}, log.With().Str("component", "insights").Logger())

	// Initialize export
	var exporter *export.Exporter
	if cfg.ExportBucket == "" {
		log.Warn().Msg("No EXPORT_BUCKET configured - data export will be disabled")
		exporter = export.NewExporter(nil, "")
	} else {
		uploader, err := export.NewGCSUploader(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create GCS client")
		}
		defer uploader.Close()
		exporter = export.NewExporter(uploader, cfg.ExportBucket)
	}

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	// Start export workers in background
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if exporter.Enabled() {
		log.Info().Str("bucket", cfg.ExportBucket).Msg("Starting export workers")
		if err := jobQueue.Start(workerCtx, exporter.JobHandler(stores.Transactions)); err != nil {
			log.Fatal().Err(err).Msg("Failed to start export workers")
		}
	}

	// Initialize handlers
	router := api.NewRouter(api.Handlers{
		Insights:      handlers.NewInsightsHandler(svc, log),
		Transactions:  handlers.NewTransactionsHandler(stores.Transactions, log),
		Bills:         handlers.NewBillsHandler(stores.Bills, log),
		Subscriptions: handlers.NewSubscriptionsHandler(stores.Subscriptions, log),
		Summary:       handlers.NewSummaryHandler(stores.Transactions, cfg.MonthlyBudget, log),
		Export:        handlers.NewExportHandler(jobQueue, jobStore, exporter.Enabled(), log),
	}, cfg.DefaultOwnerID, log)

	// Create HTTP server. The write timeout covers a full completion round trip.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("model", cfg.InsightsModel).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight exports
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}
	cancelWorker()

	log.Info().Msg("Server exited")
}
