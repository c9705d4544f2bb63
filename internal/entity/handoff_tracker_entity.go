package entity

import (
	"time"

	"github.com/google/uuid"

	"storefront-assistant-be/pkg/dialogue/handoff"
)

// HandoffTracker is the persisted risk record for one conversation.
// The process is stateless per request, so the record is restored
// before evaluation and saved after. Writes are best-effort: a lost
// record means the next turn starts from a fresh tracker.
type HandoffTracker struct {
	ConversationId uuid.UUID
	Tracker        handoff.Tracker
	UpdatedAt      time.Time
}
