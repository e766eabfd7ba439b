package triage

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

const resultCacheKeyPrefix = "triage:match:"

// MatcherOption customises a Matcher.
type MatcherOption func(*Matcher)

// WithTopMatches overrides the result cap, default 3.
func WithTopMatches(n int) MatcherOption {
	return func(m *Matcher) {
		if n > 0 {
			m.topMatches = n
		}
	}
}

// WithResultCache enables per-symptom-set result caching. The key is the
// sorted, deduplicated tag set, so the TTL bounds how long a result may
// outlive a reference-data change.
func WithResultCache(cache lexicon.Cache, ttl time.Duration) MatcherOption {
	return func(m *Matcher) {
		if cache != nil && ttl > 0 {
			m.cache = cache
			m.cacheTTL = ttl
		}
	}
}

// Matcher ranks known conditions against extracted symptom tags. A tag
// counts as a hit when it appears as a substring of the condition's
// lowercased name plus symptom description.
type Matcher struct {
	lexicon    lexicon.Repository
	logger     logging.Logger
	topMatches int
	cache      lexicon.Cache
	cacheTTL   time.Duration
}

// NewMatcher builds a Matcher backed by the given condition corpus.
func NewMatcher(repo lexicon.Repository, logger logging.Logger, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		lexicon:    repo,
		logger:     logger.Named("matcher"),
		topMatches: 3,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match scores every known condition by the fraction of tags found in its
// search text and returns up to the configured cap of results, confidence
// descending. Equal-confidence results keep condition registration order.
// Conditions with no matched tag, and conditions without a first-aid
// procedure, are excluded; every returned confidence is therefore in (0, 1].
// A condition-store failure is logged and returns empty, never an error the
// caller must handle.
func (m *Matcher) Match(ctx context.Context, tags []string) []MatchResult {
	tagSet := normalizeTagSet(tags)
	if len(tagSet) == 0 {
		return nil
	}

	cacheKey := resultCacheKeyPrefix + strings.Join(tagSet, ",")
	if m.cache != nil {
		var cached []MatchResult
		if hit, err := m.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached
		}
	}

	conditions, err := m.lexicon.ListConditions(ctx)
	if err != nil {
		m.logger.Warn("condition corpus unavailable, returning no matches",
			logging.Err(err))
		return nil
	}

	var results []MatchResult
	for _, cond := range conditions {
		firstAid, ok := cond.PrimaryFirstAid()
		if !ok {
			continue
		}

		searchText := cond.SearchText()
		matched := 0
		for _, tag := range tagSet {
			if strings.Contains(searchText, tag) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		results = append(results, MatchResult{
			ConditionName: cond.Name,
			Confidence:    float64(matched) / float64(len(tagSet)),
			FirstAid:      firstAid,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > m.topMatches {
		results = results[:m.topMatches]
	}

	if m.cache != nil {
		_ = m.cache.Set(ctx, cacheKey, results, m.cacheTTL)
	}
	return results
}

// normalizeTagSet lowercases, trims, deduplicates, and sorts the tags. The
// tag "underscore" forms like chest_pain are kept as-is; condition corpora
// are seeded with both phrasings.
func normalizeTagSet(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
