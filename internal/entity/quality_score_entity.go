package entity

import (
	"time"

	"github.com/google/uuid"

	"storefront-assistant-be/pkg/dialogue/quality"
)

// QualityScore is the persisted post-hoc rating of one ended
// conversation. Written once by the insight consumer, never mutated by
// this core afterward.
type QualityScore struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Score          int
	Breakdown      quality.Breakdown
	Flagged        bool
	FlagReasons    []string
	CreatedAt      time.Time
}
