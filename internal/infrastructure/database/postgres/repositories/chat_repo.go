package repositories

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/pkg/errors"
)

// ChatRepository is the PostgreSQL store of profiles, sessions, messages,
// audit logs, and feedback.
type ChatRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewChatRepository builds a ChatRepository.
func NewChatRepository(pool *pgxpool.Pool, log logging.Logger) *ChatRepository {
	return &ChatRepository{pool: pool, logger: log.Named("chat_repo")}
}

func (r *ChatRepository) GetProfileBySessionID(ctx context.Context, sessionID string) (*chat.UserProfile, error) {
	var p chat.UserProfile
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, age_group, gender, location, ip_address, user_agent,
		        first_seen, last_seen, total_sessions
		 FROM user_profiles WHERE session_id = $1`, sessionID).
		Scan(&p.ID, &p.SessionID, &p.AgeGroup, &p.Gender, &p.Location,
			&p.IPAddress, &p.UserAgent, &p.FirstSeen, &p.LastSeen, &p.TotalSessions)
	if err != nil {
		return nil, wrapQueryError(err, errors.ErrCodeProfileNotFound, "user profile not found")
	}
	return &p, nil
}

func (r *ChatRepository) CreateProfile(ctx context.Context, profile *chat.UserProfile) error {
	profile.ID = uuid.New()
	now := time.Now().UTC()
	profile.FirstSeen = now
	profile.LastSeen = now
	if profile.AgeGroup == "" {
		profile.AgeGroup = "unknown"
	}
	if profile.Gender == "" {
		profile.Gender = "unknown"
	}
	if profile.TotalSessions == 0 {
		profile.TotalSessions = 1
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_profiles
		 (id, session_id, age_group, gender, location, ip_address, user_agent,
		  first_seen, last_seen, total_sessions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		profile.ID, profile.SessionID, profile.AgeGroup, profile.Gender,
		profile.Location, profile.IPAddress, profile.UserAgent,
		profile.FirstSeen, profile.LastSeen, profile.TotalSessions)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create user profile")
	}
	return nil
}

func (r *ChatRepository) TouchProfile(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET last_seen = $2 WHERE id = $1`, id, seenAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to touch user profile")
	}
	return nil
}

func (r *ChatRepository) GetOrCreateSession(ctx context.Context, sessionID string, profileID uuid.UUID) (*chat.Session, error) {
	var s chat.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, user_profile_id, created_at, last_activity
		 FROM chat_sessions WHERE session_id = $1`, sessionID).
		Scan(&s.ID, &s.SessionID, &s.UserProfileID, &s.CreatedAt, &s.LastActivity)
	if err == nil {
		if _, err := r.pool.Exec(ctx,
			`UPDATE chat_sessions SET last_activity = now() WHERE id = $1`, s.ID); err != nil {
			r.logger.Warn("failed to bump session activity", logging.Err(err))
		}
		return &s, nil
	}
	if !stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load session")
	}

	s = chat.Session{
		ID:            uuid.New(),
		SessionID:     sessionID,
		UserProfileID: profileID,
		CreatedAt:     time.Now().UTC(),
		LastActivity:  time.Now().UTC(),
	}
	// A concurrent insert for the same session ID wins via the unique
	// constraint; re-read on conflict.
	_, err = r.pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, session_id, user_profile_id, created_at, last_activity)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id) DO NOTHING`,
		s.ID, s.SessionID, s.UserProfileID, s.CreatedAt, s.LastActivity)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create session")
	}

	err = r.pool.QueryRow(ctx,
		`SELECT id, session_id, user_profile_id, created_at, last_activity
		 FROM chat_sessions WHERE session_id = $1`, sessionID).
		Scan(&s.ID, &s.SessionID, &s.UserProfileID, &s.CreatedAt, &s.LastActivity)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to reload session")
	}
	return &s, nil
}

func (r *ChatRepository) SaveMessage(ctx context.Context, msg *chat.Message) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO chat_messages
		 (id, session_id, user_profile_id, role, content, emergency_detected, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.SessionID, msg.UserProfileID, msg.Role, msg.Content,
		msg.EmergencyDetected, msg.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save message")
	}
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, user_profile_id, role, content, emergency_detected, created_at
		 FROM (
		   SELECT * FROM chat_messages WHERE session_id = $1
		   ORDER BY created_at DESC LIMIT $2
		 ) recent ORDER BY created_at ASC`,
		sessionID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list messages")
	}
	defer rows.Close()

	var out []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserProfileID, &m.Role,
			&m.Content, &m.EmergencyDetected, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan message row")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "message row iteration failed")
	}
	return out, nil
}

func (r *ChatRepository) SaveSymptomLog(ctx context.Context, log *chat.SymptomLog) error {
	log.ID = uuid.New()
	log.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO symptom_logs
		 (id, user_profile_id, symptoms, raw_input, matched_conditions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ID, log.UserProfileID, log.Symptoms, log.RawInput,
		log.MatchedConditions, log.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save symptom log")
	}
	return nil
}

func (r *ChatRepository) LatestSymptomLog(ctx context.Context, profileID uuid.UUID) (*chat.SymptomLog, error) {
	var l chat.SymptomLog
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_profile_id, symptoms, raw_input, matched_conditions, created_at
		 FROM symptom_logs WHERE user_profile_id = $1
		 ORDER BY created_at DESC LIMIT 1`, profileID).
		Scan(&l.ID, &l.UserProfileID, &l.Symptoms, &l.RawInput, &l.MatchedConditions, &l.CreatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load latest symptom log")
	}
	return &l, nil
}

func (r *ChatRepository) SaveEmergencyLog(ctx context.Context, log *chat.EmergencyLog) error {
	log.ID = uuid.New()
	log.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO emergency_logs
		 (id, user_profile_id, keywords, severity, raw_input, location_shared,
		  latitude, longitude, nearby_hospitals_shown, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		log.ID, log.UserProfileID, log.Keywords, log.Severity, log.RawInput,
		log.LocationShared, log.Latitude, log.Longitude,
		log.NearbyHospitalsShown, log.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save emergency log")
	}
	return nil
}

func (r *ChatRepository) SetEmergencyLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE emergency_logs
		 SET location_shared = TRUE, latitude = $2, longitude = $3
		 WHERE id = $1`, id, lat, lng)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update emergency location")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeNotFound, "emergency log not found")
	}
	return nil
}

func (r *ChatRepository) SetEmergencyHospitalCount(ctx context.Context, id uuid.UUID, count int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE emergency_logs SET nearby_hospitals_shown = $2 WHERE id = $1`, id, count)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update hospital count")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeNotFound, "emergency log not found")
	}
	return nil
}

func (r *ChatRepository) SaveFeedback(ctx context.Context, fb *chat.Feedback) error {
	fb.ID = uuid.New()
	fb.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO feedback
		 (id, user_profile_id, symptom_log_id, condition_name, response_given,
		  rating, feedback_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fb.ID, fb.UserProfileID, fb.SymptomLogID, fb.ConditionName,
		fb.ResponseGiven, fb.Rating, fb.FeedbackText, fb.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save feedback")
	}
	return nil
}

var _ chat.Repository = (*ChatRepository)(nil)
