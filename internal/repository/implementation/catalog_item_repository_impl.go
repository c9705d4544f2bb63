package implementation

import (
	"context"
	"errors"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/mapper"
	"storefront-assistant-be/internal/model"
	"storefront-assistant-be/internal/repository/contract"
	"storefront-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CatalogItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCatalogItemRepository(db *gorm.DB) contract.CatalogItemRepository {
	return &CatalogItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *CatalogItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CatalogItemRepositoryImpl) Create(ctx context.Context, item *entity.CatalogItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *CatalogItemRepositoryImpl) CreateBulk(ctx context.Context, items []*entity.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.CatalogItem, len(items))
	for i, item := range items {
		models[i] = r.mapper.ToModel(item)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*items[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CatalogItemRepositoryImpl) Update(ctx context.Context, item *entity.CatalogItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *CatalogItemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CatalogItem{}, id).Error
}

func (r *CatalogItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CatalogItem, error) {
	var m model.CatalogItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CatalogItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CatalogItem, error) {
	var models []*model.CatalogItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CatalogItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CatalogItem{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore computes 1 - (embedding <=> query) so the
// score is cosine similarity, then filters by the threshold in SQL.
func (r *CatalogItemRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, storeId uuid.UUID, itemType entity.CatalogItemType, threshold float64, limit int) ([]*contract.ScoredCatalogItem, error) {
	if limit <= 0 {
		limit = 12
	}

	type result struct {
		model.CatalogItem
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("catalog_items").
		Select("catalog_items.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("store_id = ?", storeId).
		Where("type = ?", string(itemType)).
		Where("deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCatalogItem, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCatalogItem{
			Item:       r.mapper.ToEntity(&res.CatalogItem),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
