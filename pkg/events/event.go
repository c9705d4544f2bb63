package events

import "time"

// Event types emitted by the dialogue core.
const (
	TypeConversationScored = "CONVERSATION_SCORED"
	TypeHandoffRequested   = "HANDOFF_REQUESTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "HANDOFF_REQUESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by the dialogue services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewConversationScored builds the monitoring event published after the
// quality scorer processed an ended conversation.
func NewConversationScored(conversationId string, score int, flagged bool) Event {
	return BaseEvent{
		Type: TypeConversationScored,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"score":           score,
			"flagged":         flagged,
		},
		OccurredAt: time.Now(),
	}
}

// NewHandoffRequested builds the event that tells the store's agent desk
// a conversation needs a human.
func NewHandoffRequested(conversationId, reason string, confidence float64) Event {
	return BaseEvent{
		Type: TypeHandoffRequested,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"reason":          reason,
			"confidence":      confidence,
		},
		OccurredAt: time.Now(),
	}
}
