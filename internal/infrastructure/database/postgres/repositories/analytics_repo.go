package repositories

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/pkg/errors"
)

// topConditionsLimit caps the condition ranking stored per daily report.
const topConditionsLimit = 10

// AnalyticsRepository computes and stores daily usage aggregates.
type AnalyticsRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewAnalyticsRepository builds an AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool, log logging.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool, logger: log.Named("analytics_repo")}
}

func (r *AnalyticsRepository) BuildDailyReport(ctx context.Context, day time.Time) (*chat.DailyReport, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	report := &chat.DailyReport{Date: dayStart, TopConditions: map[string]int{}}

	err := r.pool.QueryRow(ctx, `
		SELECT
		  (SELECT count(*) FROM user_profiles WHERE first_seen < $2),
		  (SELECT count(*) FROM user_profiles WHERE first_seen >= $1 AND first_seen < $2),
		  (SELECT count(*) FROM user_profiles
		     WHERE first_seen < $1 AND last_seen >= $1 AND last_seen < $2),
		  (SELECT count(*) FROM chat_messages WHERE created_at >= $1 AND created_at < $2),
		  (SELECT count(*) FROM emergency_logs WHERE created_at >= $1 AND created_at < $2),
		  (SELECT count(*) FROM emergency_logs
		     WHERE created_at >= $1 AND created_at < $2 AND location_shared),
		  (SELECT coalesce(avg(rating), 0) FROM feedback
		     WHERE created_at >= $1 AND created_at < $2 AND rating > 0)`,
		dayStart, dayEnd).
		Scan(&report.TotalUsers, &report.NewUsers, &report.ReturningUsers,
			&report.TotalMessages, &report.EmergencyDetections,
			&report.LocationShares, &report.AverageRating)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to compute daily aggregates")
	}
	report.AverageRating = math.Round(report.AverageRating*100) / 100

	rows, err := r.pool.Query(ctx,
		`SELECT matched_conditions FROM symptom_logs
		 WHERE created_at >= $1 AND created_at < $2`, dayStart, dayEnd)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load matched conditions")
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var matched []chat.MatchedCondition
		if err := rows.Scan(&matched); err != nil {
			r.logger.Warn("skipping malformed matched_conditions row", logging.Err(err))
			continue
		}
		for _, m := range matched {
			if m.Name != "" {
				counts[m.Name]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "matched condition iteration failed")
	}
	report.TopConditions = topN(counts, topConditionsLimit)

	return report, nil
}

func (r *AnalyticsRepository) UpsertDailyReport(ctx context.Context, report *chat.DailyReport) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_analytics
		  (date, total_users, new_users, returning_users, total_messages,
		   emergency_detections, location_shares, average_rating, top_conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (date) DO UPDATE SET
		  total_users = EXCLUDED.total_users,
		  new_users = EXCLUDED.new_users,
		  returning_users = EXCLUDED.returning_users,
		  total_messages = EXCLUDED.total_messages,
		  emergency_detections = EXCLUDED.emergency_detections,
		  location_shares = EXCLUDED.location_shares,
		  average_rating = EXCLUDED.average_rating,
		  top_conditions = EXCLUDED.top_conditions`,
		report.Date, report.TotalUsers, report.NewUsers, report.ReturningUsers,
		report.TotalMessages, report.EmergencyDetections, report.LocationShares,
		report.AverageRating, report.TopConditions)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to upsert daily report")
	}
	return nil
}

func (r *AnalyticsRepository) GetDailyReport(ctx context.Context, day time.Time) (*chat.DailyReport, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)

	var report chat.DailyReport
	err := r.pool.QueryRow(ctx, `
		SELECT date, total_users, new_users, returning_users, total_messages,
		       emergency_detections, location_shares, average_rating, top_conditions
		FROM daily_analytics WHERE date = $1`, dayStart).
		Scan(&report.Date, &report.TotalUsers, &report.NewUsers,
			&report.ReturningUsers, &report.TotalMessages,
			&report.EmergencyDetections, &report.LocationShares,
			&report.AverageRating, &report.TopConditions)
	if err != nil {
		return nil, wrapQueryError(err, errors.ErrCodeNotFound, "no report for that day")
	}
	return &report, nil
}

// topN keeps the n highest counts, ties resolved by name for determinism.
func topN(counts map[string]int, n int) map[string]int {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.name] = e.count
	}
	return out
}

var _ chat.AnalyticsRepository = (*AnalyticsRepository)(nil)
