package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const trackerTTL = 24 * time.Hour

// TrackerRepository stores handoff trackers in redis so any instance
// can restore a conversation's risk counters on the next turn.
type TrackerRepository struct {
	client *redis.Client
}

func NewTrackerRepository(client *redis.Client) contract.HandoffTrackerRepository {
	return &TrackerRepository{
		client: client,
	}
}

func trackerKey(conversationId uuid.UUID) string {
	return fmt.Sprintf("handoff:tracker:%s", conversationId)
}

func (r *TrackerRepository) Save(ctx context.Context, tracker *entity.HandoffTracker) error {
	payload, err := json.Marshal(tracker)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, trackerKey(tracker.ConversationId), payload, trackerTTL).Err()
}

func (r *TrackerRepository) FindByConversationId(ctx context.Context, conversationId uuid.UUID) (*entity.HandoffTracker, error) {
	payload, err := r.client.Get(ctx, trackerKey(conversationId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var tracker entity.HandoffTracker
	if err := json.Unmarshal(payload, &tracker); err != nil {
		return nil, err
	}
	return &tracker, nil
}

func (r *TrackerRepository) Delete(ctx context.Context, conversationId uuid.UUID) error {
	return r.client.Del(ctx, trackerKey(conversationId)).Err()
}
