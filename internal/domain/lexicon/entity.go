// Package lexicon holds the reference data the triage pipeline matches
// against: the symptom lexicon, the emergency keyword table, and the
// condition corpus with its attached first-aid procedures. All of it is
// immutable from the pipeline's perspective; only the seeding collaborator
// writes it.
package lexicon

import "strings"

// Symptom is a single entry of the symptom lexicon: a unique canonical name
// plus comma-delimited alternative phrasings.
type Symptom struct {
	ID               int64
	Name             string
	AlternativeNames string
}

// Variants splits the comma-delimited alternative names into trimmed,
// lowercased phrases. Empty segments produced by stray commas are dropped so
// one malformed record never aborts an extraction pass.
func (s Symptom) Variants() []string {
	if s.AlternativeNames == "" {
		return nil
	}
	parts := strings.Split(s.AlternativeNames, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.ToLower(strings.TrimSpace(p))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Severity classifies an emergency keyword. The numeric rank is used only
// for ordering; CRITICAL outranks URGENT outranks CAUTION.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityUrgent   Severity = "URGENT"
	SeverityCaution  Severity = "CAUTION"
)

// Rank returns the numeric ordering of the severity: CRITICAL=3, URGENT=2,
// CAUTION=1. Unknown severities rank 0 and therefore sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityUrgent:
		return 2
	case SeverityCaution:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the three defined severities.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// EmergencyKeyword is a phrase whose presence in a message signals a
// potential emergency. The response message is shown to the user verbatim.
type EmergencyKeyword struct {
	ID              int64
	Keyword         string
	Severity        Severity
	ResponseMessage string
}

// FirstAid is the structured guidance attached to a condition.
type FirstAid struct {
	ID             int64
	Title          string
	Steps          string
	WarningNotes   string
	WhenToSeekHelp string
}

// Condition is a known disease with a free-text symptom description used as
// the matching corpus. CommonSymptoms is deliberately unstructured text, not
// a normalized symptom list.
type Condition struct {
	ID             int64
	Name           string
	Description    string
	CommonSymptoms string
	FirstAid       []FirstAid
}

// SearchText returns the lowercased text the condition matcher scans for
// symptom tags: the condition name followed by its symptom description.
func (c Condition) SearchText() string {
	return strings.ToLower(c.Name + " " + c.CommonSymptoms)
}

// PrimaryFirstAid returns the condition's first first-aid procedure. A
// condition without one is not presentable and is excluded from match
// results.
func (c Condition) PrimaryFirstAid() (FirstAid, bool) {
	if len(c.FirstAid) == 0 {
		return FirstAid{}, false
	}
	return c.FirstAid[0], true
}
