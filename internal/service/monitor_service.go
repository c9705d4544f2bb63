package service

import (
	"context"

	"storefront-assistant-be/internal/pkg/logger"
	"storefront-assistant-be/pkg/events"
	pkgNats "storefront-assistant-be/pkg/nats"
)

type IMonitorService interface {
	Consume() error
	HandleConversationScored(ctx context.Context, event events.Event) error
	HandleHandoffRequested(ctx context.Context, event events.Event) error
}

// monitorService mirrors the outbound event stream into the structured
// log so flagged conversations and handoffs show up in one place without
// a separate dashboard service. Durable consumers: restarts do not lose
// events.
type monitorService struct {
	subscriber *pkgNats.Subscriber
	logger     logger.ILogger
}

func NewMonitorService(subscriber *pkgNats.Subscriber, sysLogger logger.ILogger) IMonitorService {
	return &monitorService{
		subscriber: subscriber,
		logger:     sysLogger,
	}
}

func (s *monitorService) Consume() error {
	if s.subscriber == nil {
		return nil
	}
	if err := s.subscriber.Subscribe("events."+events.TypeConversationScored, "monitor-conversation-scored", s.HandleConversationScored); err != nil {
		return err
	}
	return s.subscriber.Subscribe("events."+events.TypeHandoffRequested, "monitor-handoff-requested", s.HandleHandoffRequested)
}

func (s *monitorService) HandleConversationScored(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	flagged, _ := payload["flagged"].(bool)
	if flagged {
		s.logger.Warn("monitor", "flagged conversation scored", payload)
		return nil
	}
	s.logger.Info("monitor", "conversation scored", payload)
	return nil
}

func (s *monitorService) HandleHandoffRequested(ctx context.Context, event events.Event) error {
	s.logger.Warn("monitor", "handoff requested", event.Payload())
	return nil
}
