package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

func newTestExtractor(repo *stubLexicon) *Extractor {
	return NewExtractor(repo, logging.NewNopLogger())
}

func TestExtractor_LexiconAndSynonymPasses(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())

	got := ex.Extract(context.Background(), "I have a fever and headache")
	assert.Equal(t, []string{"fever", "headache"}, got)
}

func TestExtractor_AlternativeNames(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())

	// "hot body" is an alternative name for the lexicon symptom "fever".
	got := ex.Extract(context.Background(), "my child has a hot body")
	assert.Contains(t, got, "fever")
	assert.Equal(t, "fever", got[0], "lexicon pass results come first")
}

func TestExtractor_SynonymTableOnly(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())

	// "running stomach" appears only in the built-in synonym table.
	got := ex.Extract(context.Background(), "I have a running stomach")
	assert.Equal(t, []string{"diarrhea"}, got)
}

func TestExtractor_DeduplicatesPreservingFirstSeenOrder(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())

	// "fever" hits the lexicon pass and the synonym pass; it must appear
	// once, at its first position.
	got := ex.Extract(context.Background(), "headache then fever then headache again")
	assert.Equal(t, []string{"headache", "fever"}, got)
}

func TestExtractor_NoNegationHandling(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())

	// Substring matching is deliberately naive: negated mentions still
	// match.
	got := ex.Extract(context.Background(), "no fever at all")
	assert.Contains(t, got, "fever")
}

func TestExtractor_NoSymptoms(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())

	got := ex.Extract(context.Background(), "I feel a bit off")
	assert.Empty(t, got)
}

func TestExtractor_LexiconFailureDegradesToSynonymTable(t *testing.T) {
	repo := kenyaFixture()
	repo.symptomsErr = assert.AnError
	ex := newTestExtractor(repo)

	got := ex.Extract(context.Background(), "I have a fever and a rash")
	// "rash" exists only in the lexicon, which is down; "fever" is still
	// found via the synonym table.
	assert.Equal(t, []string{"fever"}, got)
}

func TestExtractor_SkipsMalformedLexiconEntries(t *testing.T) {
	repo := kenyaFixture()
	repo.symptoms = append([]lexicon.Symptom{{ID: 99}}, repo.symptoms...)
	ex := newTestExtractor(repo)

	got := ex.Extract(context.Background(), "fever")
	require.NotEmpty(t, got)
	assert.Equal(t, "fever", got[0])
}

func TestExtractor_Idempotent(t *testing.T) {
	ex := newTestExtractor(kenyaFixture())
	ctx := context.Background()
	input := "fever, headache and coughing all night"

	first := ex.Extract(ctx, input)
	second := ex.Extract(ctx, input)
	assert.Equal(t, first, second)
}
