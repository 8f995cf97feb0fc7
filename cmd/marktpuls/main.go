package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/analyzer"
	"github.com/marktpuls/marktpuls/internal/config"
	"github.com/marktpuls/marktpuls/internal/importer"
	"github.com/marktpuls/marktpuls/internal/influencer"
	"github.com/marktpuls/marktpuls/internal/notifications"
	"github.com/marktpuls/marktpuls/internal/risk"
	"github.com/marktpuls/marktpuls/internal/scheduler"
	"github.com/marktpuls/marktpuls/internal/server"
	"github.com/marktpuls/marktpuls/internal/service"
	"github.com/marktpuls/marktpuls/internal/store"
	"github.com/marktpuls/marktpuls/internal/translator"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting MarktPuls")

	// Initialize the review store
	reviewStore, err := store.New(cfg.DatabasePath)
	if err != nil {
		logrus.Fatalf("Failed to initialize store: %v", err)
	}
	defer reviewStore.Close()

	// Initialize the risk detector, optionally with custom keywords
	detector, err := risk.NewDetector(cfg.CustomRiskKeywords)
	if err != nil {
		logrus.Fatalf("Failed to initialize risk detector: %v", err)
	}

	// Initialize the analysis pipeline; translation is optional
	var trans translator.Translator
	if cfg.EnableTranslation {
		trans = translator.NewDeepL(cfg.DeepLBaseURL, cfg.DeepLAuthKey)
	}
	reviewAnalyzer := analyzer.New(nil, trans, cfg.TargetLang)

	// Initialize the influencer evaluator
	weights := influencer.Weights{
		Activity:     cfg.ActivityWeight,
		Authenticity: cfg.AuthenticityWeight,
		Relevance:    cfg.RelevanceWeight,
	}
	evaluator, err := influencer.NewEvaluator(cfg.TargetNiche, weights)
	if err != nil {
		logrus.Fatalf("Failed to initialize evaluator: %v", err)
	}

	// Initialize notification services
	notificationService := notifications.NewService(cfg)

	// Initialize the analysis service
	analysisService := service.NewService(cfg, reviewStore, reviewAnalyzer, detector, notificationService)

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, analysisService)

	// Start scheduler
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server
	csvImporter := importer.NewCSVImporter(detector)
	apiServer := server.New(cfg, analysisService, reviewAnalyzer, evaluator, detector, csvImporter, reviewStore)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
