// Package chat holds the conversational entities persisted around the triage
// core: user profiles, sessions, message history, audit logs, and feedback.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleBot
}

// UserProfile is an anonymous user identified by a client session ID.
// Demographics are optional and default to "unknown".
type UserProfile struct {
	ID            uuid.UUID
	SessionID     string
	AgeGroup      string
	Gender        string
	Location      string
	IPAddress     string
	UserAgent     string
	FirstSeen     time.Time
	LastSeen      time.Time
	TotalSessions int
}

// Session is one conversation thread for a profile.
type Session struct {
	ID            uuid.UUID
	SessionID     string
	UserProfileID uuid.UUID
	CreatedAt     time.Time
	LastActivity  time.Time
}

// Message is one utterance in a session, from the user or the bot.
type Message struct {
	ID                uuid.UUID
	SessionID         uuid.UUID
	UserProfileID     uuid.UUID
	Role              Role
	Content           string
	EmergencyDetected bool
	CreatedAt         time.Time
}

// MatchedCondition records one ranked condition attached to a symptom log.
type MatchedCondition struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// SymptomLog is the audit record of one extraction pass: the raw input, the
// tags found, and the conditions they matched.
type SymptomLog struct {
	ID                uuid.UUID
	UserProfileID     uuid.UUID
	Symptoms          []string
	RawInput          string
	MatchedConditions []MatchedCondition
	CreatedAt         time.Time
}

// EmergencyLog is the audit record of one emergency detection. Location
// fields are filled in later if the user shares their position during the
// hospital lookup.
type EmergencyLog struct {
	ID                   uuid.UUID
	UserProfileID        uuid.UUID
	Keywords             []string
	Severity             lexicon.Severity
	RawInput             string
	LocationShared       bool
	Latitude             *float64
	Longitude            *float64
	NearbyHospitalsShown int
	CreatedAt            time.Time
}

// Feedback rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a user's rating of a first-aid reply, optionally tied to the
// symptom log that produced it.
type Feedback struct {
	ID            uuid.UUID
	UserProfileID uuid.UUID
	SymptomLogID  *uuid.UUID
	ConditionName string
	ResponseGiven string
	Rating        int
	FeedbackText  string
	CreatedAt     time.Time
}

// ValidRating reports whether rating is within the accepted 1..5 range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// DailyReport is the aggregated analytics row for one calendar day.
type DailyReport struct {
	Date                time.Time
	TotalUsers          int
	NewUsers            int
	ReturningUsers      int
	TotalMessages       int
	EmergencyDetections int
	LocationShares      int
	AverageRating       float64
	TopConditions       map[string]int
}
