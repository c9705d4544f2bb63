package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_store_session,priority:1"`
	SessionKey   string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_conversations_store_session,priority:2"`
	Status       string         `gorm:"type:varchar(20);not null;default:'active';index"`
	MessageCount int            `gorm:"default:0"`
	StartedAt    time.Time      `gorm:"autoCreateTime"`
	EndedAt      *time.Time     `gorm:""`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
