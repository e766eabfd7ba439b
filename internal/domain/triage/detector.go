package triage

import (
	"context"
	"sort"
	"strings"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// Detector scans raw message text for emergency keywords. It runs on the
// original input, not the normalized tokens, so multi-word keywords like
// "not breathing" survive stopword removal.
type Detector struct {
	lexicon lexicon.Repository
	logger  logging.Logger
}

// NewDetector builds a Detector backed by the given keyword table.
func NewDetector(repo lexicon.Repository, logger logging.Logger) *Detector {
	return &Detector{lexicon: repo, logger: logger.Named("detector")}
}

// Detect returns every emergency keyword found in text as a case-insensitive
// substring, in keyword registration order. It never short-circuits; callers
// sort by severity and take the top entry as the representative emergency.
// A keyword-store failure is logged and returns an empty list: an unreachable
// store must neither block triage nor invent a false emergency.
func (d *Detector) Detect(ctx context.Context, text string) []EmergencyMatch {
	keywords, err := d.lexicon.ListEmergencyKeywords(ctx)
	if err != nil {
		d.logger.Warn("emergency keyword table unavailable, treating as no emergency",
			logging.Err(err))
		return nil
	}

	textLower := strings.ToLower(text)

	var matches []EmergencyMatch
	for _, kw := range keywords {
		if kw.Keyword == "" {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(kw.Keyword)) {
			matches = append(matches, EmergencyMatch{
				Keyword:  kw.Keyword,
				Severity: kw.Severity,
				Message:  kw.ResponseMessage,
			})
		}
	}
	return matches
}

// SortBySeverity orders matches by severity rank descending, in place. The
// sort is stable: equal-severity matches keep their registration order.
func SortBySeverity(matches []EmergencyMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Severity.Rank() > matches[j].Severity.Rank()
	})
}
