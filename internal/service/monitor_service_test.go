package service

import (
	"context"
	"testing"

	"storefront-assistant-be/pkg/events"
)

type logRecord struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	records []logRecord
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.records = append(l.records, logRecord{"debug", module, message, details})
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.records = append(l.records, logRecord{"info", module, message, details})
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.records = append(l.records, logRecord{"warn", module, message, details})
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.records = append(l.records, logRecord{"error", module, message, details})
}

func (l *recordingLogger) Sync() error { return nil }

func TestMonitorConsumeWithoutSubscriber(t *testing.T) {
	svc := NewMonitorService(nil, &recordingLogger{})

	if err := svc.Consume(); err != nil {
		t.Fatalf("Consume() with no subscriber = %v, want nil", err)
	}
}

func TestMonitorHandleConversationScored(t *testing.T) {
	tests := []struct {
		name        string
		event       events.Event
		wantLevel   string
		wantMessage string
	}{
		{
			name:        "flagged conversation logs a warning",
			event:       events.NewConversationScored("conv-1", 25, true),
			wantLevel:   "warn",
			wantMessage: "flagged conversation scored",
		},
		{
			name:        "healthy conversation logs info",
			event:       events.NewConversationScored("conv-2", 85, false),
			wantLevel:   "info",
			wantMessage: "conversation scored",
		},
		{
			name: "missing flag field treated as unflagged",
			event: events.BaseEvent{
				Type: events.TypeConversationScored,
				Data: map[string]interface{}{"conversation_id": "conv-3"},
			},
			wantLevel:   "info",
			wantMessage: "conversation scored",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingLogger{}
			svc := NewMonitorService(nil, rec)

			if err := svc.HandleConversationScored(context.Background(), tc.event); err != nil {
				t.Fatalf("HandleConversationScored() = %v, want nil", err)
			}
			if len(rec.records) != 1 {
				t.Fatalf("logged %d records, want 1", len(rec.records))
			}
			got := rec.records[0]
			if got.level != tc.wantLevel {
				t.Errorf("level = %q, want %q", got.level, tc.wantLevel)
			}
			if got.message != tc.wantMessage {
				t.Errorf("message = %q, want %q", got.message, tc.wantMessage)
			}
			if got.module != "monitor" {
				t.Errorf("module = %q, want %q", got.module, "monitor")
			}
		})
	}
}

func TestMonitorHandleHandoffRequested(t *testing.T) {
	rec := &recordingLogger{}
	svc := NewMonitorService(nil, rec)

	event := events.NewHandoffRequested("conv-9", "USER_REQUEST", 1.0)
	if err := svc.HandleHandoffRequested(context.Background(), event); err != nil {
		t.Fatalf("HandleHandoffRequested() = %v, want nil", err)
	}

	if len(rec.records) != 1 {
		t.Fatalf("logged %d records, want 1", len(rec.records))
	}
	got := rec.records[0]
	if got.level != "warn" {
		t.Errorf("level = %q, want %q", got.level, "warn")
	}
	if got.details["reason"] != "USER_REQUEST" {
		t.Errorf("reason = %v, want USER_REQUEST", got.details["reason"])
	}
}
