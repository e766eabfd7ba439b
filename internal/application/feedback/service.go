// Package feedback records user ratings of first-aid replies.
package feedback

import (
	"context"

	domain "github.com/afyabot/afyabot/internal/domain/chat"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/prometheus"
	"github.com/afyabot/afyabot/pkg/errors"
)

// maxFeedbackTextLength bounds the free-text comment.
const maxFeedbackTextLength = 5000

// Request is one feedback submission.
type Request struct {
	SessionID     string
	ConditionName string
	Rating        int
	FeedbackText  string
}

// Service validates and stores feedback.
type Service struct {
	repo    domain.Repository
	metrics *prometheus.Metrics
	logger  logging.Logger
}

// NewService builds a feedback service.
func NewService(repo domain.Repository, metrics *prometheus.Metrics, log logging.Logger) *Service {
	return &Service{repo: repo, metrics: metrics, logger: log.Named("feedback")}
}

// Submit validates the submission, ties it to the profile's most recent
// symptom log when one exists, and stores it. It returns the stored
// feedback record.
func (s *Service) Submit(ctx context.Context, req Request) (*domain.Feedback, error) {
	if req.SessionID == "" {
		return nil, errors.New(errors.ErrCodeSessionRequired, "session ID is required")
	}
	if !domain.ValidRating(req.Rating) {
		return nil, errors.New(errors.ErrCodeRatingInvalid, "rating must be an integer between 1 and 5")
	}
	if len(req.FeedbackText) > maxFeedbackTextLength {
		return nil, errors.New(errors.ErrCodeRatingInvalid, "feedback text exceeds the maximum length")
	}

	profile, err := s.repo.GetProfileBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	fb := &domain.Feedback{
		UserProfileID: profile.ID,
		ConditionName: req.ConditionName,
		Rating:        req.Rating,
		FeedbackText:  req.FeedbackText,
	}

	// Best-effort link to the symptom log the reply came from.
	if log, err := s.repo.LatestSymptomLog(ctx, profile.ID); err != nil {
		s.logger.Warn("failed to load latest symptom log", logging.Err(err))
	} else if log != nil {
		fb.SymptomLogID = &log.ID
	}

	if err := s.repo.SaveFeedback(ctx, fb); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.FeedbackRatings.Observe(float64(req.Rating))
	}
	s.logger.Info("feedback recorded",
		logging.String("condition", req.ConditionName),
		logging.Int("rating", req.Rating))
	return fb, nil
}
