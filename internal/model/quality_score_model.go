package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QualityScore struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Score          int            `gorm:"not null"`
	Breakdown      datatypes.JSON `gorm:"type:jsonb"`
	Flagged        bool           `gorm:"default:false;index"`
	FlagReasons    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (QualityScore) TableName() string {
	return "quality_scores"
}
