package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/neighborly/neighborly-be/db"
)

const ShadowbanCacheTTL = 2 * time.Minute

// ShadowbanCache keeps the set of shadowbanned user ids in memory so
// report listings don't query user_moderation on every request. The
// staleness window is bounded by the TTL and by Invalidate calls from
// the moderation routes.
type ShadowbanCache struct {
	db  db.ModerationDatabase
	now func() time.Time

	mu     sync.Mutex
	ids    []string
	expiry time.Time
}

func NewShadowbanCache(db db.ModerationDatabase) *ShadowbanCache {
	return &ShadowbanCache{
		db:  db,
		now: time.Now,
	}
}

// Get returns the cached ids, refetching once the TTL has elapsed. A
// fetch failure degrades to an empty set for the rest of the window: a
// moderation-store outage makes banned users transiently visible
// rather than taking listings down.
func (sc *ShadowbanCache) Get(ctx context.Context) []string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.ids != nil && sc.now().Before(sc.expiry) {
		return sc.ids
	}
	sc.ids = sc.fetchFresh(ctx)
	sc.expiry = sc.now().Add(ShadowbanCacheTTL)
	return sc.ids
}

func (sc *ShadowbanCache) fetchFresh(ctx context.Context) []string {
	ids, err := sc.db.GetShadowbannedUserIds(ctx)
	if err != nil {
		log.Println("an error occurred while fetching shadowbanned users", err)
		return []string{}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

// Invalidate clears the cached set so the next Get refetches. Must be
// called immediately after flipping a user's shadowban flag.
func (sc *ShadowbanCache) Invalidate() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.ids = nil
	sc.expiry = time.Time{}
}
