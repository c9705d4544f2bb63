package implementation

import (
	"context"
	"errors"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/mapper"
	"storefront-assistant-be/internal/model"
	"storefront-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HandoffTrackerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InsightMapper
}

func NewHandoffTrackerRepository(db *gorm.DB) contract.HandoffTrackerRepository {
	return &HandoffTrackerRepositoryImpl{
		db:     db,
		mapper: mapper.NewInsightMapper(),
	}
}

func (r *HandoffTrackerRepositoryImpl) Save(ctx context.Context, tracker *entity.HandoffTracker) error {
	m := r.mapper.TrackerToModel(tracker)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"counters", "updated_at"}),
		}).
		Create(m).Error
}

func (r *HandoffTrackerRepositoryImpl) FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.HandoffTracker, error) {
	var m model.HandoffTracker
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TrackerToEntity(&m), nil
}

func (r *HandoffTrackerRepositoryImpl) Delete(ctx context.Context, conversationId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Delete(&model.HandoffTracker{}).Error
}
