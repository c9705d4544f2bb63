package contract

import (
	"context"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByConversationId returns the full transcript in send order.
	FindByConversationId(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)
}
