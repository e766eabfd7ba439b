package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists conversational state and audit logs. Implementations
// return pkg/errors codes for not-found conditions so callers can map them
// to transport errors.
type Repository interface {
	// GetProfileBySessionID returns the profile for a client session ID, or
	// a not-found error.
	GetProfileBySessionID(ctx context.Context, sessionID string) (*UserProfile, error)

	// CreateProfile stores a new profile and fills in its ID and
	// timestamps.
	CreateProfile(ctx context.Context, profile *UserProfile) error

	// TouchProfile updates the profile's last-seen timestamp.
	TouchProfile(ctx context.Context, id uuid.UUID, seenAt time.Time) error

	// GetOrCreateSession returns the session for a client session ID,
	// creating it under the given profile when absent.
	GetOrCreateSession(ctx context.Context, sessionID string, profileID uuid.UUID) (*Session, error)

	// SaveMessage stores one chat message and fills in its ID.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages returns the most recent messages of a session, newest
	// last, capped at limit.
	ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]Message, error)

	// SaveSymptomLog stores one extraction audit record.
	SaveSymptomLog(ctx context.Context, log *SymptomLog) error

	// LatestSymptomLog returns the profile's most recent symptom log, or
	// nil when none exists.
	LatestSymptomLog(ctx context.Context, profileID uuid.UUID) (*SymptomLog, error)

	// SaveEmergencyLog stores one emergency audit record.
	SaveEmergencyLog(ctx context.Context, log *EmergencyLog) error

	// SetEmergencyLocation marks the emergency as location-shared and
	// records the coordinates.
	SetEmergencyLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error

	// SetEmergencyHospitalCount records how many nearby facilities were
	// shown for the emergency.
	SetEmergencyHospitalCount(ctx context.Context, id uuid.UUID, count int) error

	// SaveFeedback stores one feedback record.
	SaveFeedback(ctx context.Context, fb *Feedback) error
}

// AnalyticsRepository aggregates activity into daily reports.
type AnalyticsRepository interface {
	// BuildDailyReport computes the aggregates for the given calendar day.
	BuildDailyReport(ctx context.Context, day time.Time) (*DailyReport, error)

	// UpsertDailyReport stores the report, replacing any existing row for
	// its day.
	UpsertDailyReport(ctx context.Context, report *DailyReport) error

	// GetDailyReport returns the stored report for a day, or a not-found
	// error.
	GetDailyReport(ctx context.Context, day time.Time) (*DailyReport, error)
}
