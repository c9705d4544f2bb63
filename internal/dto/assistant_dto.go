package dto

import (
	"time"

	"github.com/google/uuid"

	"storefront-assistant-be/pkg/dialogue/quality"
)

type SendMessageRequest struct {
	SessionKey string `json:"session_key" validate:"required,max=255"`
	Message    string `json:"message" validate:"required,max=2000"`
	Language   string `json:"language,omitempty" validate:"omitempty,oneof=sv en"`
}

type ProductCardDTO struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Link       string  `json:"link"`
	ImageURL   string  `json:"image_url"`
	Similarity float64 `json:"similarity"`
}

type SendMessageResponse struct {
	ConversationId    uuid.UUID        `json:"conversation_id"`
	Reply             string           `json:"reply"`
	Intent            string           `json:"intent"`
	Confidence        float64          `json:"confidence"`
	JourneyStage      string           `json:"journey_stage"`
	DiscoveryComplete bool             `json:"discovery_complete"`
	ProductCards      []ProductCardDTO `json:"product_cards,omitempty"`
	HandoffNeeded     bool             `json:"handoff_needed"`
	HandoffSuggested  bool             `json:"handoff_suggested,omitempty"`
	HandoffReason     string           `json:"handoff_reason,omitempty"`
	Warning           string           `json:"warning,omitempty"`
}

type EndConversationRequest struct {
	SessionKey string `json:"session_key" validate:"required,max=255"`
}

type EndConversationResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	Status         string    `json:"status"`
}

type GetHistoryResponse struct {
	Id            uuid.UUID `json:"id"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	ProductsShown []string  `json:"products_shown,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type GetQualityResponse struct {
	ConversationId uuid.UUID         `json:"conversation_id"`
	Score          int               `json:"score"`
	Breakdown      quality.Breakdown `json:"breakdown"`
	Flagged        bool              `json:"flagged"`
	FlagReasons    []string          `json:"flag_reasons,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ConversationEndedMessage is the internal bus payload that hands an
// ended conversation to the insight consumer.
type ConversationEndedMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
}
