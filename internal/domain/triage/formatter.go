package triage

import (
	"fmt"
	"strings"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
)

// DefaultLowConfidenceThreshold is the confidence below which a formatted
// match carries the preliminary-suggestion disclaimer.
const DefaultLowConfidenceThreshold = 0.5

// Formatter renders triage outcomes into user-facing markdown. All methods
// are pure functions.
type Formatter struct {
	lowConfidenceThreshold float64
}

// NewFormatter builds a Formatter. A threshold outside (0, 1] falls back to
// the default.
func NewFormatter(lowConfidenceThreshold float64) *Formatter {
	if lowConfidenceThreshold <= 0 || lowConfidenceThreshold > 1 {
		lowConfidenceThreshold = DefaultLowConfidenceThreshold
	}
	return &Formatter{lowConfidenceThreshold: lowConfidenceThreshold}
}

// FormatMatch renders the best condition match: headline, first-aid steps,
// the warning section when present, escalation criteria, and a disclaimer
// when confidence is below the threshold.
func (f *Formatter) FormatMatch(conditionName string, firstAid lexicon.FirstAid, confidence float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Based on your symptoms, you may have %s**\n\n", conditionName)

	steps := firstAid.Steps
	if steps == "" {
		steps = "N/A"
	}
	fmt.Fprintf(&b, "**First Aid Steps:**\n%s\n\n", steps)

	if firstAid.WarningNotes != "" {
		fmt.Fprintf(&b, "**⚠️ WARNING:** %s\n\n", firstAid.WarningNotes)
	}

	seekHelp := firstAid.WhenToSeekHelp
	if seekHelp == "" {
		seekHelp = "Consult a healthcare provider"
	}
	fmt.Fprintf(&b, "**When to Seek Help:**\n%s", seekHelp)

	if confidence < f.lowConfidenceThreshold {
		b.WriteString("\n\n*Note: This is a preliminary suggestion with low confidence. " +
			"Please consult a healthcare provider.*")
	}

	return b.String()
}

// FormatNoMatch renders the reply for symptoms that matched no condition.
func (f *Formatter) FormatNoMatch(symptoms []string) string {
	return fmt.Sprintf(
		"I found these symptoms: %s. "+
			"However, I couldn't match them to a specific condition in my database. "+
			"Please provide more details or consult a healthcare provider for a proper diagnosis.",
		strings.Join(symptoms, ", "))
}

// FormatNoSymptoms renders the reply for a message with no recognized
// symptoms.
func (f *Formatter) FormatNoSymptoms() string {
	return "I couldn't identify any specific symptoms. " +
		"Please describe how you're feeling. For example: " +
		"'I have fever, headache, and body aches'"
}
