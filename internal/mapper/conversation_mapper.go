package mapper

import (
	"encoding/json"
	"time"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:           c.Id,
		StoreId:      c.StoreId,
		SessionKey:   c.SessionKey,
		Status:       entity.ConversationStatus(c.Status),
		MessageCount: c.MessageCount,
		StartedAt:    c.StartedAt,
		EndedAt:      c.EndedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:           c.Id,
		StoreId:      c.StoreId,
		SessionKey:   c.SessionKey,
		Status:       string(c.Status),
		MessageCount: c.MessageCount,
		StartedAt:    c.StartedAt,
		EndedAt:      c.EndedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

// Message mappers

func (m *ConversationMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var productsShown []string
	if len(msg.ProductsShown) > 0 {
		_ = json.Unmarshal(msg.ProductsShown, &productsShown)
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		ProductsShown:  productsShown,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var productsShown []byte
	if msg.ProductsShown != nil {
		productsShown, _ = json.Marshal(msg.ProductsShown)
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		ProductsShown:  productsShown,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
