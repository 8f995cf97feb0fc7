package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/config"
	"github.com/marktpuls/marktpuls/internal/service"
)

// Service handles scheduling of analysis tasks
type Service struct {
	config          *config.Config
	analysisService *service.Service
	cron            *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, analysisService *service.Service) *Service {
	return &Service{
		config:          cfg,
		analysisService: analysisService,
		cron:            cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled analysis
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.ReportSchedule {
	case "daily":
		// Run daily at 9 AM
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM
		cronExpression = "0 0 9 * * MON"
	default:
		// Default to weekly
		cronExpression = "0 0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled analysis run")
		if err := s.analysisService.RunAnalysis(); err != nil {
			logrus.Errorf("Scheduled analysis run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	// Also add a more frequent check for critical reviews (every 4 hours)
	_, err = s.cron.AddFunc("0 0 */4 * * *", func() {
		logrus.Info("Starting critical review sweep (4-hour frequency)")
		if err := s.analysisService.RunCriticalSweep(); err != nil {
			logrus.Errorf("Critical review sweep failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule (plus critical sweeps every 4 hours)", s.config.ReportSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
