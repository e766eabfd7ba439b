// Package triage implements the medical triage core: emergency keyword
// detection, lexical symptom extraction, condition matching by symptom
// overlap, and response formatting. All operations are synchronous, free of
// side effects beyond logging, and safe for concurrent use.
package triage

import "github.com/afyabot/afyabot/internal/domain/lexicon"

// EmergencyMatch is one emergency keyword hit in a message.
type EmergencyMatch struct {
	Keyword  string           `json:"keyword"`
	Severity lexicon.Severity `json:"severity"`
	Message  string           `json:"message"`
}

// MatchResult is one ranked condition candidate. Confidence is the fraction
// of the user's extracted symptom tags found in the condition's descriptive
// text; it is not a calibrated probability.
type MatchResult struct {
	ConditionName string           `json:"condition_name"`
	Confidence    float64          `json:"confidence"`
	FirstAid      lexicon.FirstAid `json:"first_aid"`
}

// Outcome is the terminal state of one message-processing pass. Exactly one
// of the four outcomes is produced per message.
type Outcome string

const (
	OutcomeEmergency  Outcome = "emergency"
	OutcomeMatched    Outcome = "matched"
	OutcomeNoMatch    Outcome = "no_match"
	OutcomeNoSymptoms Outcome = "no_symptoms"
)

// Result is the full output of Pipeline.Process for one message.
type Result struct {
	Outcome Outcome

	// Message is the formatted reply shown to the user.
	Message string

	// Symptoms are the extracted canonical tags, first-occurrence order.
	// Empty on the emergency path, which skips extraction.
	Symptoms []string

	// Emergencies holds every keyword hit sorted by severity descending;
	// only populated for OutcomeEmergency. The first entry is the
	// representative emergency.
	Emergencies []EmergencyMatch

	// Matches are the ranked condition candidates; only populated for
	// OutcomeMatched.
	Matches []MatchResult
}

// Severity returns the representative severity of an emergency result, or
// the empty severity for non-emergency outcomes.
func (r *Result) Severity() lexicon.Severity {
	if len(r.Emergencies) == 0 {
		return ""
	}
	return r.Emergencies[0].Severity
}
