package service

import (
	"context"
	"encoding/json"

	"storefront-assistant-be/internal/dto"
	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/pkg/logger"
	"storefront-assistant-be/internal/repository/specification"
	"storefront-assistant-be/internal/repository/unitofwork"
	"storefront-assistant-be/pkg/dialogue/quality"
	"storefront-assistant-be/pkg/events"
	pkgNats "storefront-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IInsightService interface {
	Consume(ctx context.Context) error
}

// insightService scores ended conversations off the request path. The
// status guard (only "ended" gets scored) makes the consumer idempotent
// under redelivery.
type insightService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	scorer     *quality.Scorer
	natsPub    *pkgNats.Publisher
	logger     logger.ILogger
}

func NewInsightService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	deltas quality.Deltas,
	natsPub *pkgNats.Publisher,
	sysLogger logger.ILogger,
) IInsightService {
	return &insightService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		scorer:     quality.NewScorer(deltas),
		natsPub:    natsPub,
		logger:     sysLogger,
	}
}

func (s *insightService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *insightService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ConversationEndedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("insight", "failed to unmarshal conversation ended message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		s.logger.Error("insight", "failed to load conversation", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}
	if conversation == nil {
		s.logger.Warn("insight", "conversation not found, skipping", map[string]interface{}{
			"conversation_id": payload.ConversationId.String(),
		})
		msg.Ack()
		return
	}
	if conversation.Status != entity.StatusEnded {
		// Already processed or resumed in the meantime.
		msg.Ack()
		return
	}

	messageEntities, err := uow.MessageRepository().FindByConversationId(ctx, conversation.Id)
	if err != nil {
		s.logger.Error("insight", "failed to load transcript", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}

	score := s.scorer.ScoreConversation(toDialogueHistory(messageEntities))

	record := &entity.QualityScore{
		ConversationId: conversation.Id,
		Score:          score.Score,
		Breakdown:      score.Breakdown,
		Flagged:        score.Flagged,
		FlagReasons:    score.FlagReasons,
	}
	if err := uow.QualityScoreRepository().Create(ctx, record); err != nil {
		s.logger.Error("insight", "failed to persist quality score", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}

	if err := conversation.TransitionTo(entity.StatusProcessed); err == nil {
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			s.logger.Error("insight", "failed to mark conversation processed", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	if s.natsPub != nil {
		event := events.NewConversationScored(conversation.Id.String(), score.Score, score.Flagged)
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Error("insight", "failed to publish scored event", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	s.logger.Info("insight", "conversation scored", map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"score":           score.Score,
		"flagged":         score.Flagged,
	})

	msg.Ack()
}
