package lexicon

import "context"

// Repository provides read access to the reference corpora. Implementations
// must return entries in a stable order: symptoms and keywords by ID,
// conditions by ID, first aid within a condition by ID.
type Repository interface {
	ListSymptoms(ctx context.Context) ([]Symptom, error)
	ListEmergencyKeywords(ctx context.Context) ([]EmergencyKeyword, error)
	ListConditions(ctx context.Context) ([]Condition, error)
}

// Writer replaces the reference corpora wholesale. Used only by the seeding
// command; the running service never writes reference data.
type Writer interface {
	ReplaceSymptoms(ctx context.Context, symptoms []Symptom) error
	ReplaceEmergencyKeywords(ctx context.Context, keywords []EmergencyKeyword) error
	ReplaceConditions(ctx context.Context, conditions []Condition) error
}
