package seed

import (
	"context"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// Service replaces the reference corpora with the bundled Kenyan dataset.
type Service struct {
	writer lexicon.Writer
	logger logging.Logger
}

// NewService builds a seeding service.
func NewService(writer lexicon.Writer, log logging.Logger) *Service {
	return &Service{writer: writer, logger: log.Named("seed")}
}

// Run replaces symptoms, emergency keywords, and conditions wholesale. It
// stops at the first failure so a partial seed is visible rather than
// silently mixed.
func (s *Service) Run(ctx context.Context) error {
	symptoms := KenyaSymptoms()
	if err := s.writer.ReplaceSymptoms(ctx, symptoms); err != nil {
		return err
	}

	keywords := KenyaEmergencyKeywords()
	if err := s.writer.ReplaceEmergencyKeywords(ctx, keywords); err != nil {
		return err
	}

	conditions := KenyaConditions()
	if err := s.writer.ReplaceConditions(ctx, conditions); err != nil {
		return err
	}

	s.logger.Info("reference data seeded",
		logging.Int("symptoms", len(symptoms)),
		logging.Int("emergency_keywords", len(keywords)),
		logging.Int("conditions", len(conditions)))
	return nil
}
