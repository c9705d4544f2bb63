package contract

import (
	"context"

	"storefront-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type HandoffTrackerRepository interface {
	// Save upserts the tracker for a conversation.
	Save(ctx context.Context, tracker *entity.HandoffTracker) error
	FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.HandoffTracker, error)
	Delete(ctx context.Context, conversationId uuid.UUID) error
}
