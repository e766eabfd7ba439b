package triage

import (
	"context"
	"strings"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// synonymEntry maps a canonical symptom tag to its built-in phrase variants.
// Entries are ordered; extraction iterates them in declaration order so
// output ordering is deterministic.
type synonymEntry struct {
	tag      string
	variants []string
}

// synonymTable is the fixed fallback vocabulary covering common phrasings,
// including regional ones like "running stomach", that a seeded lexicon may
// lack. It runs after the lexicon pass and is always available, so symptom
// extraction still produces output when the reference store is down.
var synonymTable = []synonymEntry{
	{"fever", []string{"fever", "hot", "temperature", "sweating", "chills", "feverish"}},
	{"headache", []string{"headache", "head pain", "head hurting", "migraine"}},
	{"cough", []string{"cough", "coughing", "dry cough", "wet cough"}},
	{"fatigue", []string{"fatigue", "tired", "weakness", "exhausted", "lethargy"}},
	{"vomiting", []string{"vomit", "vomiting", "throwing up", "nausea", "sick stomach"}},
	{"diarrhea", []string{"diarrhea", "diarrhoea", "loose stools", "running stomach"}},
	{"chest_pain", []string{"chest pain", "chest discomfort", "heart pain"}},
	{"difficulty_breathing", []string{"difficulty breathing", "shortness of breath", "can't breathe"}},
	{"joint_pain", []string{"joint pain", "joint ache", "arthritis", "pain in joints"}},
	{"stomach_ache", []string{"stomach ache", "stomach pain", "abdominal pain", "belly pain"}},
}

// Extractor finds canonical symptom tags in free text by naive substring
// matching: no word-boundary enforcement and no negation handling, so
// "no fever" still yields "fever". This is a deliberate recall-over-precision
// tradeoff carried over from the matching data.
type Extractor struct {
	lexicon lexicon.Repository
	logger  logging.Logger
}

// NewExtractor builds an Extractor backed by the given lexicon.
func NewExtractor(repo lexicon.Repository, logger logging.Logger) *Extractor {
	return &Extractor{lexicon: repo, logger: logger.Named("extractor")}
}

// Extract returns the canonical symptom tags found in text, deduplicated and
// in first-occurrence order. Two passes run in sequence: the lexicon pass
// over the seeded symptom definitions, then the built-in synonym table.
// A lexicon read failure is logged and degrades to the synonym pass alone;
// it never aborts extraction.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	textLower := strings.ToLower(text)

	var found []string

	symptoms, err := e.lexicon.ListSymptoms(ctx)
	if err != nil {
		e.logger.Warn("symptom lexicon unavailable, continuing with synonym table only",
			logging.Err(err))
	}
	for _, s := range symptoms {
		if s.Name == "" {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(s.Name)) {
			found = append(found, s.Name)
			continue
		}
		for _, variant := range s.Variants() {
			if strings.Contains(textLower, variant) {
				found = append(found, s.Name)
				break
			}
		}
	}

	for _, entry := range synonymTable {
		for _, variant := range entry.variants {
			if strings.Contains(textLower, variant) {
				found = append(found, entry.tag)
				break
			}
		}
	}

	return dedupePreservingOrder(found)
}

func dedupePreservingOrder(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
