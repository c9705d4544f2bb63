package contract

import (
	"context"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredCatalogItem pairs a catalog item with its cosine similarity to
// the query embedding.
type ScoredCatalogItem struct {
	Item       *entity.CatalogItem
	Similarity float64
}

type CatalogItemRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	CreateBulk(ctx context.Context, items []*entity.CatalogItem) error
	Update(ctx context.Context, item *entity.CatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CatalogItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CatalogItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore runs pgvector cosine search over a store's
	// catalog, returning candidates at or above the threshold, best
	// first. Ranking caps and per-kind thresholds are applied by the
	// caller.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, storeId uuid.UUID, itemType entity.CatalogItemType, threshold float64, limit int) ([]*ScoredCatalogItem, error)
}
