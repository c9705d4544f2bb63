package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySession filters conversations by store and widget session key.
type BySession struct {
	StoreId    uuid.UUID
	SessionKey string
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("store_id = ? AND session_key = ?", s.StoreId, s.SessionKey)
}

// ByStatus filters conversations by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByConversationId filters messages by their parent conversation.
type ByConversationId struct {
	ConversationId uuid.UUID
}

func (s ByConversationId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationId)
}

// UpdatedBefore filters records whose last activity predates the cutoff.
type UpdatedBefore struct {
	Cutoff time.Time
}

func (s UpdatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("updated_at < ?", s.Cutoff)
}
