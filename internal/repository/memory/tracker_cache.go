package memory

import (
	"time"

	"storefront-assistant-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// TrackerCache keeps handoff trackers hot in-process so the request
// path does not round-trip to the backing store on every turn. Entries
// expire with the conversation inactivity window.
type TrackerCache struct {
	cache *cache.Cache
}

func NewTrackerCache() *TrackerCache {
	// Expire with the 30 minute inactivity window, purge every 10 minutes
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &TrackerCache{
		cache: c,
	}
}

func (r *TrackerCache) Save(tracker *entity.HandoffTracker) {
	r.cache.Set(tracker.ConversationId.String(), tracker, cache.DefaultExpiration)
}

func (r *TrackerCache) Get(conversationId uuid.UUID) (*entity.HandoffTracker, bool) {
	if x, found := r.cache.Get(conversationId.String()); found {
		return x.(*entity.HandoffTracker), true
	}
	return nil, false
}

func (r *TrackerCache) Delete(conversationId uuid.UUID) {
	r.cache.Delete(conversationId.String())
}
