package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CatalogItem struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      string          `gorm:"type:varchar(20);not null;index"`
	Title     string          `gorm:"type:varchar(500);not null"`
	Text      string          `gorm:"type:text"`
	Price     float64         `gorm:"default:0"`
	InStock   bool            `gorm:"default:true"`
	Link      string          `gorm:"type:text"`
	ImageURL  string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}
