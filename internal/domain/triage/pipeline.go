package triage

import (
	"context"

	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

// Pipeline orchestrates one message through the triage state machine:
//
//	START → EMERGENCY_CHECK → {EMERGENCY_EXIT |
//	        SYMPTOM_EXTRACT → CONDITION_MATCH → RESPOND}
//
// The emergency check always runs first; any keyword hit bypasses symptom
// extraction and condition matching entirely, so an emergency is never
// masked by normal triage output. Pipeline holds no per-request state and
// is safe for concurrent use.
type Pipeline struct {
	extractor *Extractor
	detector  *Detector
	matcher   *Matcher
	formatter *Formatter
	logger    logging.Logger
}

// NewPipeline wires the triage stages together.
func NewPipeline(extractor *Extractor, detector *Detector, matcher *Matcher,
	formatter *Formatter, logger logging.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		detector:  detector,
		matcher:   matcher,
		formatter: formatter,
		logger:    logger.Named("pipeline"),
	}
}

// Process triages one message and always yields exactly one of the four
// terminal outcomes: emergency, matched, no-match, or no-symptoms. It never
// returns an error; every internal failure degrades to a fallback response.
func (p *Pipeline) Process(ctx context.Context, message string) *Result {
	emergencies := p.detector.Detect(ctx, message)
	if len(emergencies) > 0 {
		SortBySeverity(emergencies)
		top := emergencies[0]
		p.logger.Warn("emergency detected",
			logging.String("keyword", top.Keyword),
			logging.String("severity", string(top.Severity)))
		return &Result{
			Outcome:     OutcomeEmergency,
			Message:     top.Message,
			Emergencies: emergencies,
		}
	}

	symptoms := p.extractor.Extract(ctx, message)
	if len(symptoms) == 0 {
		p.logger.Debug("no symptoms identified")
		return &Result{
			Outcome: OutcomeNoSymptoms,
			Message: p.formatter.FormatNoSymptoms(),
		}
	}

	matches := p.matcher.Match(ctx, symptoms)
	if len(matches) == 0 {
		p.logger.Debug("symptoms matched no condition",
			logging.Strings("symptoms", symptoms))
		return &Result{
			Outcome:  OutcomeNoMatch,
			Message:  p.formatter.FormatNoMatch(symptoms),
			Symptoms: symptoms,
		}
	}

	best := matches[0]
	p.logger.Debug("condition matched",
		logging.String("condition", best.ConditionName),
		logging.Float64("confidence", best.Confidence))
	return &Result{
		Outcome:  OutcomeMatched,
		Message:  p.formatter.FormatMatch(best.ConditionName, best.FirstAid, best.Confidence),
		Symptoms: symptoms,
		Matches:  matches,
	}
}
