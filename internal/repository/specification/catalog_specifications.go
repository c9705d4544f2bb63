package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStoreId scopes catalog items to one store.
type ByStoreId struct {
	StoreId uuid.UUID
}

func (s ByStoreId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("store_id = ?", s.StoreId)
}

// ByItemType filters catalog items by product or page.
type ByItemType struct {
	Type string
}

func (s ByItemType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// InStockOnly keeps sellable items.
type InStockOnly struct{}

func (s InStockOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("in_stock = true")
}
