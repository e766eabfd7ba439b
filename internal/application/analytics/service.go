// Package analytics produces daily usage reports.
package analytics

import (
	"context"
	"time"

	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// Service computes and stores daily aggregates.
type Service struct {
	repo   domain.AnalyticsRepository
	logger logging.Logger
}

// NewService builds an analytics service.
func NewService(repo domain.AnalyticsRepository, log logging.Logger) *Service {
	return &Service{repo: repo, logger: log.Named("analytics")}
}

// GenerateDaily computes the aggregates for day and stores them, replacing
// any previous report for the same day.
func (s *Service) GenerateDaily(ctx context.Context, day time.Time) (*domain.DailyReport, error) {
	report, err := s.repo.BuildDailyReport(ctx, day)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertDailyReport(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Info("daily report generated",
		logging.String("date", report.Date.Format("2006-01-02")),
		logging.Int("messages", report.TotalMessages),
		logging.Int("emergencies", report.EmergencyDetections))
	return report, nil
}

// GenerateYesterday runs GenerateDaily for the previous UTC day, the default
// for the scheduled run.
func (s *Service) GenerateYesterday(ctx context.Context) (*domain.DailyReport, error) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	return s.GenerateDaily(ctx, yesterday)
}

// GetDaily returns the stored report for a day.
func (s *Service) GetDaily(ctx context.Context, day time.Time) (*domain.DailyReport, error) {
	return s.repo.GetDailyReport(ctx, day)
}
