package mapper

import (
	"time"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ToEntity(c *model.CatalogItem) *entity.CatalogItem {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.CatalogItem{
		Id:        c.Id,
		StoreId:   c.StoreId,
		Type:      entity.CatalogItemType(c.Type),
		Title:     c.Title,
		Text:      c.Text,
		Price:     c.Price,
		InStock:   c.InStock,
		Link:      c.Link,
		ImageURL:  c.ImageURL,
		Embedding: c.Embedding.Slice(),
		UpdatedAt: updatedAt,
	}
}

func (m *CatalogMapper) ToModel(c *entity.CatalogItem) *model.CatalogItem {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.CatalogItem{
		Id:        c.Id,
		StoreId:   c.StoreId,
		Type:      string(c.Type),
		Title:     c.Title,
		Text:      c.Text,
		Price:     c.Price,
		InStock:   c.InStock,
		Link:      c.Link,
		ImageURL:  c.ImageURL,
		Embedding: pgvector.NewVector(c.Embedding),
		UpdatedAt: updatedAt,
	}
}

func (m *CatalogMapper) ToEntities(items []*model.CatalogItem) []*entity.CatalogItem {
	entities := make([]*entity.CatalogItem, len(items))
	for i, c := range items {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
