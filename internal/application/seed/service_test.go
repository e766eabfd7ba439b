package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

type recordingWriter struct {
	symptoms     []lexicon.Symptom
	keywords     []lexicon.EmergencyKeyword
	conditions   []lexicon.Condition
	symptomErr   error
	keywordErr   error
	conditionErr error
}

func (w *recordingWriter) ReplaceSymptoms(_ context.Context, s []lexicon.Symptom) error {
	w.symptoms = s
	return w.symptomErr
}

func (w *recordingWriter) ReplaceEmergencyKeywords(_ context.Context, k []lexicon.EmergencyKeyword) error {
	w.keywords = k
	return w.keywordErr
}

func (w *recordingWriter) ReplaceConditions(_ context.Context, c []lexicon.Condition) error {
	w.conditions = c
	return w.conditionErr
}

func TestRun(t *testing.T) {
	w := &recordingWriter{}
	svc := NewService(w, logging.NewNopLogger())

	require.NoError(t, svc.Run(context.Background()))
	assert.Len(t, w.symptoms, 8)
	assert.Len(t, w.keywords, 6)
	assert.Len(t, w.conditions, 4)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	w := &recordingWriter{keywordErr: assert.AnError}
	svc := NewService(w, logging.NewNopLogger())

	assert.Error(t, svc.Run(context.Background()))
	assert.NotEmpty(t, w.symptoms, "symptoms seeded before the failure")
	assert.Empty(t, w.conditions, "conditions never reached")
}

func TestDataset_Invariants(t *testing.T) {
	for _, kw := range KenyaEmergencyKeywords() {
		assert.True(t, kw.Severity.Valid(), kw.Keyword)
		assert.NotEmpty(t, kw.ResponseMessage, kw.Keyword)
	}

	seen := map[string]bool{}
	for _, s := range KenyaSymptoms() {
		assert.NotEmpty(t, s.Name)
		assert.False(t, seen[s.Name], "duplicate symptom %q", s.Name)
		seen[s.Name] = true
	}

	withFirstAid := 0
	for _, c := range KenyaConditions() {
		assert.NotEmpty(t, c.CommonSymptoms, c.Name)
		if _, ok := c.PrimaryFirstAid(); ok {
			withFirstAid++
		}
	}
	assert.Equal(t, 3, withFirstAid)
}
