package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeModerationDB struct {
	ids     []string
	err     error
	fetches int
}

func (f *fakeModerationDB) GetShadowbannedUserIds(ctx context.Context) ([]string, error) {
	f.fetches++
	return f.ids, f.err
}

func (f *fakeModerationDB) SetShadowbanned(ctx context.Context, userId string, shadowbanned bool) error {
	return nil
}

func newTestCache(fake *fakeModerationDB) (*ShadowbanCache, *time.Time) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewShadowbanCache(fake)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestCacheServesWithinTTL(t *testing.T) {
	fake := &fakeModerationDB{ids: []string{"user-1", "user-2"}}
	cache, now := newTestCache(fake)

	first := cache.Get(context.Background())
	*now = now.Add(ShadowbanCacheTTL - time.Second)
	second := cache.Get(context.Background())

	if fake.fetches != 1 {
		t.Errorf("fetches = %v, want 1", fake.fetches)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("cached ids = %v then %v, want two ids each", first, second)
	}
}

func TestCacheRefetchesAfterTTL(t *testing.T) {
	fake := &fakeModerationDB{ids: []string{"user-1"}}
	cache, now := newTestCache(fake)

	cache.Get(context.Background())
	*now = now.Add(ShadowbanCacheTTL)
	cache.Get(context.Background())

	if fake.fetches != 2 {
		t.Errorf("fetches = %v, want 2", fake.fetches)
	}
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	fake := &fakeModerationDB{ids: []string{"user-1"}}
	cache, _ := newTestCache(fake)

	cache.Get(context.Background())
	cache.Invalidate()
	cache.Get(context.Background())

	if fake.fetches != 2 {
		t.Errorf("fetches = %v, want 2", fake.fetches)
	}
}

func TestCacheFetchFailureDegradesToEmpty(t *testing.T) {
	fake := &fakeModerationDB{err: errors.New("store unavailable")}
	cache, _ := newTestCache(fake)

	ids := cache.Get(context.Background())
	if ids == nil || len(ids) != 0 {
		t.Errorf("Get returned %v, want empty non-nil set", ids)
	}

	// the empty result is cached for the window, not retried per call
	cache.Get(context.Background())
	if fake.fetches != 1 {
		t.Errorf("fetches = %v, want 1", fake.fetches)
	}
}

func TestCacheEmptyStoreResultIsCached(t *testing.T) {
	fake := &fakeModerationDB{ids: nil}
	cache, _ := newTestCache(fake)

	if ids := cache.Get(context.Background()); ids == nil {
		t.Error("Get returned nil, want empty set")
	}
	cache.Get(context.Background())
	if fake.fetches != 1 {
		t.Errorf("fetches = %v, want 1", fake.fetches)
	}
}
