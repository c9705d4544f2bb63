package contract

import (
	"context"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QualityScoreRepository interface {
	Create(ctx context.Context, score *entity.QualityScore) error
	FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.QualityScore, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QualityScore, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
