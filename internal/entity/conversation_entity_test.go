package entity

import (
	"errors"
	"testing"
)

func TestConversationTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ConversationStatus
		to      ConversationStatus
		wantErr bool
	}{
		{"active to ended", StatusActive, StatusEnded, false},
		{"ended to processed", StatusEnded, StatusProcessed, false},
		{"ended resumes", StatusEnded, StatusActive, false},
		{"processed resumes", StatusProcessed, StatusActive, false},
		{"active to processed skips ending", StatusActive, StatusProcessed, true},
		{"processed back to ended", StatusProcessed, StatusEnded, true},
		{"active to active", StatusActive, StatusActive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Conversation{Status: tt.from}
			err := c.TransitionTo(tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("error = %v, want ErrInvalidTransition", err)
				}
				if c.Status != tt.from {
					t.Errorf("status changed on rejected transition: %s", c.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Status != tt.to {
				t.Errorf("status = %s, want %s", c.Status, tt.to)
			}
		})
	}
}

func TestConversationEndedAtBookkeeping(t *testing.T) {
	c := &Conversation{Status: StatusActive}

	if err := c.TransitionTo(StatusEnded); err != nil {
		t.Fatalf("end: %v", err)
	}
	if c.EndedAt == nil {
		t.Fatal("EndedAt not set on end")
	}

	if err := c.TransitionTo(StatusActive); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if c.EndedAt != nil {
		t.Error("EndedAt not cleared on resume")
	}
}

func TestConversationIsResumable(t *testing.T) {
	if (&Conversation{Status: StatusActive}).IsResumable() {
		t.Error("active conversation reported resumable")
	}
	if !(&Conversation{Status: StatusEnded}).IsResumable() {
		t.Error("ended conversation not resumable")
	}
	if !(&Conversation{Status: StatusProcessed}).IsResumable() {
		t.Error("processed conversation not resumable")
	}
}
