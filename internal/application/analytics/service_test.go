package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

type fakeAnalyticsRepo struct {
	built     *domain.DailyReport
	buildErr  error
	upserted  *domain.DailyReport
	upsertErr error
}

func (r *fakeAnalyticsRepo) BuildDailyReport(_ context.Context, day time.Time) (*domain.DailyReport, error) {
	if r.buildErr != nil {
		return nil, r.buildErr
	}
	r.built.Date = day.UTC().Truncate(24 * time.Hour)
	return r.built, nil
}

func (r *fakeAnalyticsRepo) UpsertDailyReport(_ context.Context, report *domain.DailyReport) error {
	r.upserted = report
	return r.upsertErr
}

func (r *fakeAnalyticsRepo) GetDailyReport(context.Context, time.Time) (*domain.DailyReport, error) {
	return r.upserted, nil
}

func TestGenerateDaily(t *testing.T) {
	repo := &fakeAnalyticsRepo{built: &domain.DailyReport{
		TotalMessages:       42,
		EmergencyDetections: 3,
		TopConditions:       map[string]int{"Malaria": 7},
	}}
	svc := NewService(repo, logging.NewNopLogger())

	day := time.Date(2026, 8, 22, 13, 30, 0, 0, time.UTC)
	report, err := svc.GenerateDaily(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), report.Date)
	assert.Equal(t, 42, report.TotalMessages)
	assert.Same(t, report, repo.upserted)
}

func TestGenerateDaily_BuildError(t *testing.T) {
	repo := &fakeAnalyticsRepo{buildErr: assert.AnError}
	svc := NewService(repo, logging.NewNopLogger())

	_, err := svc.GenerateDaily(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestGenerateDaily_UpsertError(t *testing.T) {
	repo := &fakeAnalyticsRepo{built: &domain.DailyReport{}, upsertErr: assert.AnError}
	svc := NewService(repo, logging.NewNopLogger())

	_, err := svc.GenerateDaily(context.Background(), time.Now())
	assert.Error(t, err)
}
