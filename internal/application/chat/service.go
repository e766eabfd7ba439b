// Package chat orchestrates message processing: validation, rate limiting,
// persistence, and the triage pipeline.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/domain/triage"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/prometheus"
	"github.com/afyabot/afyabot/pkg/errors"
)

// RateLimiter gates message throughput per session.
type RateLimiter interface {
	Allow(ctx context.Context, sessionID string) bool
}

// ReplyType tags the response payload shape.
type ReplyType string

const (
	ReplyNormal    ReplyType = "normal"
	ReplyEmergency ReplyType = "emergency"
)

// ActionRequestLocation asks the client to prompt for coordinates so the
// hospital lookup can run.
const ActionRequestLocation = "request_location"

// Request is one incoming user message.
type Request struct {
	SessionID string
	Message   string
	IPAddress string
	UserAgent string
}

// Reply is the processed result returned to the transport layer.
type Reply struct {
	Type             ReplyType               `json:"type"`
	Message          string                  `json:"message"`
	SessionID        string                  `json:"session_id"`
	SymptomsDetected []string                `json:"symptoms_detected,omitempty"`
	Severity         string                  `json:"severity,omitempty"`
	Emergencies      []triage.EmergencyMatch `json:"emergencies,omitempty"`
	Action           string                  `json:"action,omitempty"`
	EmergencyID      *uuid.UUID              `json:"emergency_id,omitempty"`
}

// Service processes chat messages end to end.
type Service struct {
	repo             domain.Repository
	pipeline         *triage.Pipeline
	limiter          RateLimiter
	metrics          *prometheus.Metrics
	logger           logging.Logger
	maxMessageLength int
}

// NewService wires the message-processing dependencies together.
func NewService(repo domain.Repository, pipeline *triage.Pipeline, limiter RateLimiter,
	metrics *prometheus.Metrics, log logging.Logger, maxMessageLength int) *Service {
	if maxMessageLength <= 0 {
		maxMessageLength = 5000
	}
	return &Service{
		repo:             repo,
		pipeline:         pipeline,
		limiter:          limiter,
		metrics:          metrics,
		logger:           log.Named("chat"),
		maxMessageLength: maxMessageLength,
	}
}

// ProcessMessage validates, rate-limits, triages, and persists one message.
// Audit persistence (symptom logs, emergency logs, bot messages) is
// best-effort: a failed write is logged but never fails the reply.
func (s *Service) ProcessMessage(ctx context.Context, req Request) (*Reply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.New(errors.ErrCodeMessageEmpty, "message cannot be empty")
	}
	if len(req.Message) > s.maxMessageLength {
		return nil, errors.New(errors.ErrCodeMessageTooLong, "message exceeds the maximum length")
	}
	if req.SessionID == "" {
		return nil, errors.New(errors.ErrCodeSessionRequired, "session ID is required")
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, req.SessionID) {
		return nil, errors.New(errors.ErrCodeRateLimited, "too many requests, please wait a moment")
	}

	profile, err := s.getOrCreateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.GetOrCreateSession(ctx, req.SessionID, profile.ID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result := s.pipeline.Process(ctx, message)
	elapsed := time.Since(started)
	if s.metrics != nil {
		s.metrics.ObserveTriage(string(result.Outcome), string(result.Severity()), elapsed)
	}

	s.saveMessage(ctx, session, profile, domain.RoleUser, message,
		result.Outcome == triage.OutcomeEmergency)

	if result.Outcome == triage.OutcomeEmergency {
		return s.emergencyReply(ctx, req.SessionID, profile, message, result), nil
	}

	if len(result.Symptoms) > 0 {
		s.saveSymptomLog(ctx, profile, message, result)
	}
	s.saveMessage(ctx, session, profile, domain.RoleBot, result.Message, false)

	return &Reply{
		Type:             ReplyNormal,
		Message:          result.Message,
		SessionID:        req.SessionID,
		SymptomsDetected: result.Symptoms,
	}, nil
}

func (s *Service) getOrCreateProfile(ctx context.Context, req Request) (*domain.UserProfile, error) {
	profile, err := s.repo.GetProfileBySessionID(ctx, req.SessionID)
	if err == nil {
		if touchErr := s.repo.TouchProfile(ctx, profile.ID, time.Now().UTC()); touchErr != nil {
			s.logger.Warn("failed to touch profile", logging.Err(touchErr))
		}
		return profile, nil
	}
	if !errors.IsCode(err, errors.ErrCodeProfileNotFound) {
		return nil, err
	}

	profile = &domain.UserProfile{
		SessionID: req.SessionID,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("created new profile", logging.String("session_id", req.SessionID))
	return profile, nil
}

func (s *Service) emergencyReply(ctx context.Context, sessionID string,
	profile *domain.UserProfile, message string, result *triage.Result) *Reply {
	top := result.Emergencies[0]

	keywords := make([]string, len(result.Emergencies))
	for i, e := range result.Emergencies {
		keywords[i] = e.Keyword
	}

	var emergencyID *uuid.UUID
	log := &domain.EmergencyLog{
		UserProfileID: profile.ID,
		Keywords:      keywords,
		Severity:      top.Severity,
		RawInput:      message,
	}
	if err := s.repo.SaveEmergencyLog(ctx, log); err != nil {
		s.logger.Error("failed to save emergency log", logging.Err(err))
	} else {
		emergencyID = &log.ID
	}

	return &Reply{
		Type:        ReplyEmergency,
		Message:     top.Message,
		SessionID:   sessionID,
		Severity:    string(top.Severity),
		Emergencies: result.Emergencies,
		Action:      ActionRequestLocation,
		EmergencyID: emergencyID,
	}
}

func (s *Service) saveMessage(ctx context.Context, session *domain.Session,
	profile *domain.UserProfile, role domain.Role, content string, emergency bool) {
	msg := &domain.Message{
		SessionID:         session.ID,
		UserProfileID:     profile.ID,
		Role:              role,
		Content:           content,
		EmergencyDetected: emergency,
	}
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		s.logger.Error("failed to save message",
			logging.String("role", string(role)), logging.Err(err))
	}
}

func (s *Service) saveSymptomLog(ctx context.Context, profile *domain.UserProfile,
	message string, result *triage.Result) {
	matched := make([]domain.MatchedCondition, len(result.Matches))
	for i, m := range result.Matches {
		matched[i] = domain.MatchedCondition{Name: m.ConditionName, Confidence: m.Confidence}
	}
	log := &domain.SymptomLog{
		UserProfileID:     profile.ID,
		Symptoms:          result.Symptoms,
		RawInput:          message,
		MatchedConditions: matched,
	}
	if err := s.repo.SaveSymptomLog(ctx, log); err != nil {
		s.logger.Error("failed to save symptom log", logging.Err(err))
	}
}

// History returns the recent messages of a session.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	if sessionID == "" {
		return nil, errors.New(errors.ErrCodeSessionRequired, "session ID is required")
	}
	profile, err := s.repo.GetProfileBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := s.repo.GetOrCreateSession(ctx, sessionID, profile.ID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, session.ID, limit)
}
