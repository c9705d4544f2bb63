package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConversationStatus is the lifecycle of one conversation. Transitions
// are validated: active→ended, ended→processed, and ended|processed→active
// when the same session resumes. Anything else is rejected.
type ConversationStatus string

const (
	StatusActive    ConversationStatus = "active"
	StatusEnded     ConversationStatus = "ended"
	StatusProcessed ConversationStatus = "processed"
)

// ErrInvalidTransition is returned for a disallowed status change.
var ErrInvalidTransition = fmt.Errorf("invalid conversation status transition")

type Conversation struct {
	Id           uuid.UUID
	StoreId      uuid.UUID
	SessionKey   string
	Status       ConversationStatus
	MessageCount int
	StartedAt    time.Time
	EndedAt      *time.Time
	UpdatedAt    *time.Time
}

var allowedTransitions = map[ConversationStatus][]ConversationStatus{
	StatusActive:    {StatusEnded},
	StatusEnded:     {StatusProcessed, StatusActive},
	StatusProcessed: {StatusActive},
}

// TransitionTo validates and applies a status change.
func (c *Conversation) TransitionTo(next ConversationStatus) error {
	for _, allowed := range allowedTransitions[c.Status] {
		if allowed == next {
			c.Status = next
			if next == StatusEnded {
				now := time.Now()
				c.EndedAt = &now
			}
			if next == StatusActive {
				c.EndedAt = nil
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, next)
}

// IsResumable reports whether a new message may re-activate the
// conversation.
func (c *Conversation) IsResumable() bool {
	return c.Status == StatusEnded || c.Status == StatusProcessed
}
