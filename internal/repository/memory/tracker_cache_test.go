package memory

import (
	"testing"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/pkg/dialogue/handoff"

	"github.com/google/uuid"
)

func TestTrackerCache(t *testing.T) {
	c := NewTrackerCache()
	id := uuid.New()

	if _, found := c.Get(id); found {
		t.Fatal("found tracker in empty cache")
	}

	c.Save(&entity.HandoffTracker{
		ConversationId: id,
		Tracker:        handoff.Tracker{LowConfidenceCount: 2},
	})

	got, found := c.Get(id)
	if !found {
		t.Fatal("saved tracker not found")
	}
	if got.Tracker.LowConfidenceCount != 2 {
		t.Errorf("LowConfidenceCount = %d, want 2", got.Tracker.LowConfidenceCount)
	}

	// Different conversation, different entry.
	if _, found := c.Get(uuid.New()); found {
		t.Error("tracker leaked across conversations")
	}

	c.Delete(id)
	if _, found := c.Get(id); found {
		t.Error("tracker survived delete")
	}
}
