package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type HandoffTracker struct {
	ConversationId uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Counters       datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (HandoffTracker) TableName() string {
	return "handoff_trackers"
}
