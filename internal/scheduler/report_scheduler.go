package scheduler

import (
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const bestSellerLimit = 10

// ReportScheduler runs the nightly revenue snapshot and best-seller
// recomputation.
type ReportScheduler struct {
	cron          *cron.Cron
	reportService service.ReportService
}

func NewReportScheduler(reportService service.ReportService) *ReportScheduler {
	return &ReportScheduler{
		cron:          cron.New(),
		reportService: reportService,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *ReportScheduler) Start() error {
	// Snapshot the previous day shortly after midnight.
	_, err := s.cron.AddFunc("10 0 * * *", func() {
		yesterday := time.Now().AddDate(0, 0, -1)
		logger.Info("Starting scheduled revenue snapshot", map[string]interface{}{
			"date": yesterday.Format("2006-01-02"),
		})

		if _, err := s.reportService.SnapshotDay(yesterday); err != nil {
			logger.Error("Scheduled revenue snapshot failed", err)
			return
		}
		logger.Info("Scheduled revenue snapshot completed", nil)
	})
	if err != nil {
		logger.Error("Failed to register revenue snapshot job", err)
		return err
	}

	// Recompute the best-seller flags every night at 01:00.
	_, err = s.cron.AddFunc("0 1 * * *", func() {
		logger.Info("Starting scheduled best-seller recompute", nil)

		if err := s.reportService.RecomputeBestSellers(bestSellerLimit); err != nil {
			logger.Error("Scheduled best-seller recompute failed", err)
			return
		}
		logger.Info("Scheduled best-seller recompute completed", nil)
	})
	if err != nil {
		logger.Error("Failed to register best-seller job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Report scheduler started", nil)
	return nil
}

// Stop stops the cron loop.
func (s *ReportScheduler) Stop() {
	logger.Info("Stopping report scheduler...", nil)
	s.cron.Stop()
	logger.Info("Report scheduler stopped", nil)
}
