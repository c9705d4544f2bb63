package mapper

import (
	"encoding/json"

	"storefront-assistant-be/internal/entity"
	"storefront-assistant-be/internal/model"
	"storefront-assistant-be/pkg/dialogue/handoff"
	"storefront-assistant-be/pkg/dialogue/quality"
)

type InsightMapper struct{}

func NewInsightMapper() *InsightMapper {
	return &InsightMapper{}
}

func (m *InsightMapper) TrackerToEntity(t *model.HandoffTracker) *entity.HandoffTracker {
	if t == nil {
		return nil
	}

	var tracker handoff.Tracker
	if len(t.Counters) > 0 {
		_ = json.Unmarshal(t.Counters, &tracker)
	}

	return &entity.HandoffTracker{
		ConversationId: t.ConversationId,
		Tracker:        tracker,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (m *InsightMapper) TrackerToModel(t *entity.HandoffTracker) *model.HandoffTracker {
	if t == nil {
		return nil
	}

	counters, _ := json.Marshal(t.Tracker)

	return &model.HandoffTracker{
		ConversationId: t.ConversationId,
		Counters:       counters,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (m *InsightMapper) QualityToEntity(q *model.QualityScore) *entity.QualityScore {
	if q == nil {
		return nil
	}

	var breakdown quality.Breakdown
	if len(q.Breakdown) > 0 {
		_ = json.Unmarshal(q.Breakdown, &breakdown)
	}

	var flagReasons []string
	if len(q.FlagReasons) > 0 {
		_ = json.Unmarshal(q.FlagReasons, &flagReasons)
	}

	return &entity.QualityScore{
		Id:             q.Id,
		ConversationId: q.ConversationId,
		Score:          q.Score,
		Breakdown:      breakdown,
		Flagged:        q.Flagged,
		FlagReasons:    flagReasons,
		CreatedAt:      q.CreatedAt,
	}
}

func (m *InsightMapper) QualityToModel(q *entity.QualityScore) *model.QualityScore {
	if q == nil {
		return nil
	}

	breakdown, _ := json.Marshal(q.Breakdown)

	var flagReasons []byte
	if q.FlagReasons != nil {
		flagReasons, _ = json.Marshal(q.FlagReasons)
	}

	return &model.QualityScore{
		Id:             q.Id,
		ConversationId: q.ConversationId,
		Score:          q.Score,
		Breakdown:      breakdown,
		Flagged:        q.Flagged,
		FlagReasons:    flagReasons,
		CreatedAt:      q.CreatedAt,
	}
}
