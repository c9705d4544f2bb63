package dialogue

import (
	"strings"
	"time"
)

// Role constants for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one immutable turn of a conversation as the dialogue
// components see it. ProductsShown carries the catalog item ids the
// assistant surfaced in that turn, in display order.
type Message struct {
	Role          string
	Content       string
	ProductsShown []string
	Timestamp     time.Time
}

// UserText concatenates the content of all user turns, newest last.
// The needs assessment and sentiment tracking operate on this blob.
func UserText(history []Message) string {
	var b strings.Builder
	for _, m := range history {
		if m.Role != RoleUser {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

// LastByRole returns the most recent message with the given role, or nil.
func LastByRole(history []Message, role string) *Message {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == role {
			return &history[i]
		}
	}
	return nil
}

// CountByRole counts the turns with the given role.
func CountByRole(history []Message, role string) int {
	n := 0
	for _, m := range history {
		if m.Role == role {
			n++
		}
	}
	return n
}
