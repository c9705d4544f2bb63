package unitofwork

import (
	"context"

	"storefront-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	CatalogItemRepository() contract.CatalogItemRepository
	HandoffTrackerRepository() contract.HandoffTrackerRepository
	QualityScoreRepository() contract.QualityScoreRepository
}
