package contract

import (
	"context"
	"time"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindInactive returns active conversations whose last update is
	// older than the cutoff, for the inactivity sweep.
	FindInactive(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Conversation, error)
}
