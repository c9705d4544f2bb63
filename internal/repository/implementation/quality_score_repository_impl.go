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
	"gorm.io/gorm"
)

type QualityScoreRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InsightMapper
}

func NewQualityScoreRepository(db *gorm.DB) contract.QualityScoreRepository {
	return &QualityScoreRepositoryImpl{
		db:     db,
		mapper: mapper.NewInsightMapper(),
	}
}

func (r *QualityScoreRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QualityScoreRepositoryImpl) Create(ctx context.Context, score *entity.QualityScore) error {
	m := r.mapper.QualityToModel(score)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*score = *r.mapper.QualityToEntity(m)
	return nil
}

func (r *QualityScoreRepositoryImpl) FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.QualityScore, error) {
	var m model.QualityScore
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.QualityToEntity(&m), nil
}

func (r *QualityScoreRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QualityScore, error) {
	var models []*model.QualityScore
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.QualityScore, len(models))
	for i, m := range models {
		entities[i] = r.mapper.QualityToEntity(m)
	}
	return entities, nil
}

func (r *QualityScoreRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.QualityScore{}).Count(&count).Error
	return count, err
}
