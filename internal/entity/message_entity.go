package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one immutable conversation turn. ProductsShown holds the
// catalog item ids the assistant surfaced in this turn, display order
// preserved.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	ProductsShown  []string
	CreatedAt      time.Time
}
