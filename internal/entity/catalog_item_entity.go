package entity

import (
	"time"

	"github.com/google/uuid"
)

// CatalogItemType separates sellable products from informational pages.
type CatalogItemType string

const (
	CatalogItemProduct CatalogItemType = "product"
	CatalogItemPage    CatalogItemType = "page"
)

// CatalogItem is the store's indexed content with its precomputed
// embedding. Read-only from the dialogue core's perspective.
type CatalogItem struct {
	Id        uuid.UUID
	StoreId   uuid.UUID
	Type      CatalogItemType
	Title     string
	Text      string
	Price     float64
	InStock   bool
	Link      string
	ImageURL  string
	Embedding []float32
	UpdatedAt *time.Time
}
