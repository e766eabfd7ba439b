package lexicon

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is the subset of caching behaviour the lexicon needs. dest must be a
// pointer; Get returns (false, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const (
	cacheKeySymptoms   = "lexicon:symptoms"
	cacheKeyKeywords   = "lexicon:keywords"
	cacheKeyConditions = "lexicon:conditions"
)

// CachedRepository wraps a Repository with a read-through cache. Concurrent
// cold-cache reads for the same corpus collapse into a single backing query
// via singleflight. Cache failures degrade to the backing store; they never
// fail a read.
type CachedRepository struct {
	inner Repository
	cache Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedRepository wraps inner with cache at the given TTL.
func NewCachedRepository(inner Repository, cache Cache, ttl time.Duration) *CachedRepository {
	return &CachedRepository{inner: inner, cache: cache, ttl: ttl}
}

func (r *CachedRepository) ListSymptoms(ctx context.Context) ([]Symptom, error) {
	var cached []Symptom
	if hit, err := r.cache.Get(ctx, cacheKeySymptoms, &cached); err == nil && hit {
		return cached, nil
	}

	v, err, _ := r.group.Do(cacheKeySymptoms, func() (interface{}, error) {
		items, err := r.inner.ListSymptoms(ctx)
		if err != nil {
			return nil, err
		}
		_ = r.cache.Set(ctx, cacheKeySymptoms, items, r.ttl)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Symptom), nil
}

func (r *CachedRepository) ListEmergencyKeywords(ctx context.Context) ([]EmergencyKeyword, error) {
	var cached []EmergencyKeyword
	if hit, err := r.cache.Get(ctx, cacheKeyKeywords, &cached); err == nil && hit {
		return cached, nil
	}

	v, err, _ := r.group.Do(cacheKeyKeywords, func() (interface{}, error) {
		items, err := r.inner.ListEmergencyKeywords(ctx)
		if err != nil {
			return nil, err
		}
		_ = r.cache.Set(ctx, cacheKeyKeywords, items, r.ttl)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmergencyKeyword), nil
}

func (r *CachedRepository) ListConditions(ctx context.Context) ([]Condition, error) {
	var cached []Condition
	if hit, err := r.cache.Get(ctx, cacheKeyConditions, &cached); err == nil && hit {
		return cached, nil
	}

	v, err, _ := r.group.Do(cacheKeyConditions, func() (interface{}, error) {
		items, err := r.inner.ListConditions(ctx)
		if err != nil {
			return nil, err
		}
		_ = r.cache.Set(ctx, cacheKeyConditions, items, r.ttl)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Condition), nil
}

var _ Repository = (*CachedRepository)(nil)
