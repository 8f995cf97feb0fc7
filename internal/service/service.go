// Package service orchestrates the analysis pipeline: it pulls pending
// reviews from the store, runs sentiment, aspect and risk analysis,
// persists the results and dispatches reports and alerts.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/analyzer"
	"github.com/marktpuls/marktpuls/internal/config"
	"github.com/marktpuls/marktpuls/internal/models"
	"github.com/marktpuls/marktpuls/internal/notifications"
	"github.com/marktpuls/marktpuls/internal/risk"
	"github.com/marktpuls/marktpuls/internal/store"
)

// Service runs the scheduled review analysis passes
type Service struct {
	config              *config.Config
	store               *store.Store
	analyzer            *analyzer.Analyzer
	detector            *risk.Detector
	notificationService notifications.NotificationInterface
	metrics             *Metrics
	mu                  sync.RWMutex
}

// Metrics holds analysis run metrics
type Metrics struct {
	TotalAnalyzed         int            `json:"total_analyzed"`
	LastRun               time.Time      `json:"last_run"`
	LastRunDuration       string         `json:"last_run_duration"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	RiskDistribution      map[string]int `json:"risk_distribution"`
	AlertsSent            int            `json:"alerts_sent"`
	ErrorCount            int            `json:"error_count"`
}

// NewService creates a new analysis service
func NewService(cfg *config.Config, st *store.Store, az *analyzer.Analyzer, detector *risk.Detector, notificationService notifications.NotificationInterface) *Service {
	return &Service{
		config:              cfg,
		store:               st,
		analyzer:            az,
		detector:            detector,
		notificationService: notificationService,
		metrics: &Metrics{
			SentimentDistribution: make(map[string]int),
			RiskDistribution:      make(map[string]int),
		},
	}
}

// RunAnalysis performs the main scheduled analysis pass: analyze all
// pending reviews, persist results and send the risk report.
func (s *Service) RunAnalysis() error {
	start := time.Now()
	logrus.Info("Starting analysis run")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pending, err := s.store.ListUnanalyzed(s.config.BatchLimit)
	if err != nil {
		return fmt.Errorf("failed to load pending reviews: %w", err)
	}
	if len(pending) == 0 {
		logrus.Info("No pending reviews to analyze")
		return nil
	}

	logrus.Infof("Analyzing %d pending reviews", len(pending))

	analyzed, errorCount := s.analyzeRecords(ctx, pending)

	saved, saveErrs := s.store.SaveReviews(analyzed)
	for _, saveErr := range saveErrs {
		logrus.Errorf("Failed to persist analysis result: %v", saveErr)
	}
	errorCount += len(saveErrs)
	logrus.Infof("Persisted %d analyzed reviews", saved)

	s.updateMetrics(analyzed, time.Since(start), errorCount)

	report := s.detector.BuildReport(analyzed)
	if err := s.notificationService.SendRiskReport(report); err != nil {
		logrus.Errorf("Failed to send risk report: %v", err)
		return err
	}

	logrus.Infof("Analysis run completed in %v", time.Since(start))
	return nil
}

// analyzeRecords fills the analysis fields of every record. One failing
// record does not stop the batch.
func (s *Service) analyzeRecords(ctx context.Context, records []*models.ReviewRecord) ([]*models.ReviewRecord, int) {
	errorCount := 0
	for _, record := range records {
		record.ClearAnalysis()

		insight := s.analyzer.AnalyzeSingle(ctx, record.Content)
		score := insight.SentimentScore
		record.SentimentScore = &score
		record.Aspects = insight.Aspects

		detection := s.detector.Detect(record.Content, record.Rating)
		level := string(detection.Level)
		record.RiskLevel = &level
		record.RiskFlags = detection.Flags
	}
	return records, errorCount
}

// RunCriticalSweep performs a focused check for reviews needing
// immediate attention. This runs every 4 hours and only notifies about
// critical-tier findings.
func (s *Service) RunCriticalSweep() error {
	start := time.Now()
	logrus.Info("Starting critical review sweep")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Analyze anything still pending so fresh imports are covered too.
	pending, err := s.store.ListUnanalyzed(s.config.BatchLimit)
	if err != nil {
		return fmt.Errorf("failed to load pending reviews: %w", err)
	}
	if len(pending) > 0 {
		analyzed, _ := s.analyzeRecords(ctx, pending)
		if _, errs := s.store.SaveReviews(analyzed); len(errs) > 0 {
			logrus.Errorf("Sweep persisted with %d errors", len(errs))
		}
	}

	critical, err := s.store.ListByRiskLevels(string(risk.LevelCritical))
	if err != nil {
		return fmt.Errorf("failed to load critical reviews: %w", err)
	}

	if len(critical) == 0 {
		logrus.Info("No critical reviews found")
		return nil
	}

	logrus.Infof("Found %d critical reviews requiring immediate notification", len(critical))

	alert := s.buildCriticalAlert(critical)
	if err := s.notificationService.SendAlert(alert); err != nil {
		logrus.Errorf("Failed to send critical alert: %v", err)
		return err
	}

	s.mu.Lock()
	s.metrics.AlertsSent++
	s.mu.Unlock()

	logrus.Infof("Critical sweep completed in %v", time.Since(start))
	return nil
}

func (s *Service) buildCriticalAlert(critical []*models.ReviewRecord) *models.Alert {
	ids := make([]string, 0, len(critical))
	for _, record := range critical {
		ids = append(ids, record.ReviewID)
	}

	return &models.Alert{
		ID:        uuid.NewString(),
		Type:      "critical",
		Title:     "Kritische Bewertungen erkannt",
		Message:   fmt.Sprintf("%d Bewertungen mit Rechts- oder Sicherheitsrisiko benötigen sofortige Bearbeitung", len(critical)),
		ReviewIDs: ids,
		CreatedAt: time.Now(),
	}
}

func (s *Service) updateMetrics(records []*models.ReviewRecord, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalAnalyzed = len(records)
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ErrorCount = errorCount

	// Reset counters
	s.metrics.SentimentDistribution = make(map[string]int)
	s.metrics.RiskDistribution = make(map[string]int)

	for _, record := range records {
		if record.SentimentScore != nil {
			s.metrics.SentimentDistribution[sentimentBucket(*record.SentimentScore)]++
		}
		if record.RiskLevel != nil {
			s.metrics.RiskDistribution[*record.RiskLevel]++
		}
	}
}

func sentimentBucket(score float64) string {
	switch {
	case score >= 0.6:
		return "positive"
	case score <= 0.4:
		return "negative"
	default:
		return "neutral"
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
