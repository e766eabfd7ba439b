package triage

import (
	"context"
	"sync/atomic"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
)

// stubLexicon is an in-memory lexicon.Repository for triage tests. Per-corpus
// errors simulate an unreachable reference store; call counters verify the
// short-circuit paths.
type stubLexicon struct {
	symptoms   []lexicon.Symptom
	keywords   []lexicon.EmergencyKeyword
	conditions []lexicon.Condition

	symptomsErr   error
	keywordsErr   error
	conditionsErr error

	symptomCalls   atomic.Int64
	keywordCalls   atomic.Int64
	conditionCalls atomic.Int64
}

func (s *stubLexicon) ListSymptoms(context.Context) ([]lexicon.Symptom, error) {
	s.symptomCalls.Add(1)
	return s.symptoms, s.symptomsErr
}

func (s *stubLexicon) ListEmergencyKeywords(context.Context) ([]lexicon.EmergencyKeyword, error) {
	s.keywordCalls.Add(1)
	return s.keywords, s.keywordsErr
}

func (s *stubLexicon) ListConditions(context.Context) ([]lexicon.Condition, error) {
	s.conditionCalls.Add(1)
	return s.conditions, s.conditionsErr
}

// kenyaFixture returns a reference set mirroring the seeded production data
// closely enough for scenario tests.
func kenyaFixture() *stubLexicon {
	return &stubLexicon{
		symptoms: []lexicon.Symptom{
			{ID: 1, Name: "fever", AlternativeNames: "high temperature, hot body"},
			{ID: 2, Name: "headache", AlternativeNames: "head pain, migraine"},
			{ID: 3, Name: "rash", AlternativeNames: "skin rash, itchy skin"},
		},
		keywords: []lexicon.EmergencyKeyword{
			{ID: 1, Keyword: "not breathing", Severity: lexicon.SeverityCritical,
				ResponseMessage: "Call 999 immediately. Start CPR if trained."},
			{ID: 2, Keyword: "unconscious", Severity: lexicon.SeverityCritical,
				ResponseMessage: "Call 999 immediately. Check airway and breathing."},
			{ID: 3, Keyword: "severe bleeding", Severity: lexicon.SeverityUrgent,
				ResponseMessage: "Apply firm pressure to the wound and seek help now."},
			{ID: 4, Keyword: "high fever in infant", Severity: lexicon.SeverityCaution,
				ResponseMessage: "Monitor closely and visit a clinic today."},
		},
		conditions: []lexicon.Condition{
			{
				ID: 1, Name: "Malaria",
				CommonSymptoms: "fever, chills, headache, sweating, fatigue",
				FirstAid: []lexicon.FirstAid{{
					ID: 1, Title: "Malaria care",
					Steps:          "1. Rest in a cool place\n2. Drink plenty of fluids",
					WarningNotes:   "Do not take aspirin for children",
					WhenToSeekHelp: "Seek care within 24 hours if fever persists",
				}},
			},
			{
				ID: 2, Name: "Typhoid",
				CommonSymptoms: "fever, stomach pain, headache, weakness",
				FirstAid: []lexicon.FirstAid{{
					ID: 2, Title: "Typhoid care",
					Steps:          "1. Hydrate with clean water\n2. Eat soft foods",
					WhenToSeekHelp: "Visit a clinic for testing",
				}},
			},
			{
				ID: 3, Name: "Common Cold",
				CommonSymptoms: "cough, runny nose, headache, sore throat",
				FirstAid: []lexicon.FirstAid{{
					ID: 3, Title: "Cold care",
					Steps:          "1. Rest\n2. Warm fluids",
					WhenToSeekHelp: "See a doctor if symptoms last over a week",
				}},
			},
			{
				// No first aid attached; must never appear in results.
				ID: 4, Name: "Dengue",
				CommonSymptoms: "fever, headache, joint pain, rash",
			},
		},
	}
}
