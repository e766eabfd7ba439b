package triage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyabot/afyabot/internal/domain/lexicon"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
)

func newTestMatcher(repo *stubLexicon, opts ...MatcherOption) *Matcher {
	return NewMatcher(repo, logging.NewNopLogger(), opts...)
}

func TestMatcher_FullOverlapRanksFirst(t *testing.T) {
	m := newTestMatcher(kenyaFixture())

	got := m.Match(context.Background(), []string{"fever", "headache"})
	require.NotEmpty(t, got)

	// Both tags appear in Malaria's symptom text.
	assert.Equal(t, "Malaria", got[0].ConditionName)
	assert.Equal(t, 1.0, got[0].Confidence)
	assert.Equal(t, "Malaria care", got[0].FirstAid.Title)
}

func TestMatcher_EmptyTagsFastPath(t *testing.T) {
	repo := kenyaFixture()
	m := newTestMatcher(repo)

	assert.Empty(t, m.Match(context.Background(), nil))
	assert.Empty(t, m.Match(context.Background(), []string{"", "  "}))
	assert.Equal(t, int64(0), repo.conditionCalls.Load(), "empty input must not hit the store")
}

func TestMatcher_UnmatchedTagReturnsEmpty(t *testing.T) {
	m := newTestMatcher(kenyaFixture())
	assert.Empty(t, m.Match(context.Background(), []string{"unmatched_tag"}))
}

func TestMatcher_ConfidenceInHalfOpenInterval(t *testing.T) {
	m := newTestMatcher(kenyaFixture())

	got := m.Match(context.Background(), []string{"fever", "headache", "unmatched_tag"})
	require.NotEmpty(t, got)
	for _, r := range got {
		assert.Greater(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}
}

func TestMatcher_SortedDescendingAndCapped(t *testing.T) {
	m := newTestMatcher(kenyaFixture())

	// "fever" and "headache" hit Malaria and Typhoid fully; "cough" hits
	// only Common Cold. Dengue would match but has no first aid.
	got := m.Match(context.Background(), []string{"fever", "headache", "cough"})
	require.LessOrEqual(t, len(got), 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Confidence, got[i].Confidence)
	}
}

func TestMatcher_EqualConfidenceKeepsRegistrationOrder(t *testing.T) {
	m := newTestMatcher(kenyaFixture())

	// "fever" and "headache" both appear in Malaria and Typhoid, so the two
	// tie at 1.0; Malaria is registered first.
	got := m.Match(context.Background(), []string{"fever", "headache"})
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, "Malaria", got[0].ConditionName)
	assert.Equal(t, "Typhoid", got[1].ConditionName)
}

func TestMatcher_ConditionWithoutFirstAidExcluded(t *testing.T) {
	m := newTestMatcher(kenyaFixture())

	// "rash" appears only in Dengue's text, and Dengue has no first aid.
	assert.Empty(t, m.Match(context.Background(), []string{"rash"}))
}

func TestMatcher_TagNormalization(t *testing.T) {
	m := newTestMatcher(kenyaFixture())

	// Case, padding, and duplicates collapse before scoring, so the
	// denominator is the two distinct tags.
	got := m.Match(context.Background(), []string{" FEVER ", "fever", "Headache"})
	require.NotEmpty(t, got)
	assert.Equal(t, 1.0, got[0].Confidence)
}

func TestMatcher_TopMatchesOption(t *testing.T) {
	m := newTestMatcher(kenyaFixture(), WithTopMatches(1))

	got := m.Match(context.Background(), []string{"fever", "headache"})
	assert.Len(t, got, 1)
}

func TestMatcher_StoreFailureReturnsEmpty(t *testing.T) {
	repo := kenyaFixture()
	repo.conditionsErr = assert.AnError
	m := newTestMatcher(repo)

	assert.Empty(t, m.Match(context.Background(), []string{"fever"}))
}

func TestMatcher_Idempotent(t *testing.T) {
	m := newTestMatcher(kenyaFixture())
	ctx := context.Background()
	tags := []string{"fever", "headache"}

	first := m.Match(ctx, tags)
	second := m.Match(ctx, tags)
	assert.Equal(t, first, second)
}

// matchResultCache is an in-process lexicon.Cache storing only match results.
type matchResultCache struct {
	entries map[string][]MatchResult
	gets    int
	sets    int
}

func newMatchResultCache() *matchResultCache {
	return &matchResultCache{entries: map[string][]MatchResult{}}
}

func (c *matchResultCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	cached, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*dest.(*[]MatchResult) = cached
	return true, nil
}

func (c *matchResultCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.sets++
	c.entries[key] = value.([]MatchResult)
	return nil
}

var _ lexicon.Cache = (*matchResultCache)(nil)

func TestMatcher_ResultCache(t *testing.T) {
	repo := kenyaFixture()
	cache := newMatchResultCache()
	m := newTestMatcher(repo, WithResultCache(cache, 30*time.Second))

	ctx := context.Background()

	first := m.Match(ctx, []string{"headache", "fever"})
	require.NotEmpty(t, first)
	assert.Equal(t, int64(1), repo.conditionCalls.Load())
	assert.Equal(t, 1, cache.sets)

	// Same tag set in a different order hits the same cache key.
	second := m.Match(ctx, []string{"fever", "headache"})
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), repo.conditionCalls.Load(), "cached read must not hit the store")
}
