// Package handoff decides when a conversation should escalate to a
// human agent. The evaluator is a pure function over the message, the
// derived state and the tracker record restored from the previous turn;
// callers must invoke it at most once per turn since the tracker
// transitions are not idempotent.
package handoff

import (
	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/locale"
	"storefront-assistant-be/pkg/dialogue/state"
)

// Reason identifies which rule triggered the escalation.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonUserRequest        Reason = "USER_REQUEST"
	ReasonAccountIssue       Reason = "ACCOUNT_ISSUE"
	ReasonFrustration        Reason = "FRUSTRATION"
	ReasonLowConfidence      Reason = "LOW_CONFIDENCE"
	ReasonUncertainResponses Reason = "UNCERTAIN_RESPONSES"
	ReasonDecliningSentiment Reason = "DECLINING_SENTIMENT"
	ReasonOffTopic           Reason = "OFF_TOPIC"
)

// Evaluation is the outcome of one handoff check. Needed forces the
// escalation; SuggestHandoff is the soft signal the response layer may
// weave into the reply.
type Evaluation struct {
	Needed         bool
	SuggestHandoff bool
	Reason         Reason
	Confidence     float64
	Message        string
}

// Thresholds for the counter-based rules.
const (
	lowConfidenceLimit     = 3
	uncertainResponseLimit = 2
	frustrationRepeatLimit = 2
	decliningRiskFloor     = 5
)

// Below this classifier confidence a turn counts as low-confidence.
const confidentClassification = 7.0

// Evaluator applies the escalation rules in strict priority order.
type Evaluator struct {
	weights RiskWeights
}

func NewEvaluator(weights RiskWeights) *Evaluator {
	return &Evaluator{weights: weights}
}

// Evaluate runs the rules against one turn and returns both the decision
// and the updated tracker to persist. First matching rule wins.
func (e *Evaluator) Evaluate(message string, st state.State, res intent.Result, t Tracker, lang locale.Language) (Evaluation, Tracker) {
	table := locale.For(lang)

	// 1. The customer asked for a human in so many words.
	if locale.ContainsAny(message, table.HumanRequestWords) {
		return Evaluation{
			Needed:     true,
			Reason:     ReasonUserRequest,
			Confidence: 1.0,
			Message:    "customer explicitly asked for a human",
		}, t
	}

	// 2. Order/delivery/refund issues are outside the assistant's remit.
	if locale.ContainsAny(message, table.AccountIssueWords) {
		return Evaluation{
			Needed:     true,
			Reason:     ReasonAccountIssue,
			Confidence: 0.9,
			Message:    "account or order issue raised",
		}, t
	}

	// 3. Frustration: escalate on repetition, suggest on first sight.
	if locale.ContainsAny(message, table.FrustrationPhrases) {
		t = RecordSentiment(t, SentimentScoreNegative)
		if t.NegativeSentimentCount >= frustrationRepeatLimit {
			return Evaluation{
				Needed:     true,
				Reason:     ReasonFrustration,
				Confidence: 0.85,
				Message:    "repeated frustration detected",
			}, t
		}
		return Evaluation{
			SuggestHandoff: true,
			Reason:         ReasonFrustration,
			Confidence:     0.6,
			Message:        "first frustration signal recorded",
		}, t
	}

	// 4. Fold the turn's reported sentiment into the running history.
	t = RecordSentiment(t, sentimentScore(st.UserSentiment))

	// 5. The classifier has been guessing for too long.
	t = RecordConfidence(t, res.Confidence >= confidentClassification)
	if t.LowConfidenceCount >= lowConfidenceLimit {
		return Evaluation{
			Needed:     true,
			Reason:     ReasonLowConfidence,
			Confidence: 0.8,
			Message:    "repeated low-confidence classifications",
		}, t
	}

	// 6. The assistant keeps admitting it does not know.
	if uncertainResponse(st, table) {
		t = RecordUncertainResponse(t)
	}
	if t.UncertainResponseCount >= uncertainResponseLimit {
		return Evaluation{
			Needed:     true,
			Reason:     ReasonUncertainResponses,
			Confidence: 0.75,
			Message:    "assistant repeatedly unable to answer",
		}, t
	}

	// 7. Mood is sliding and accumulated risk is already high.
	if t.SentimentDeclining() && t.Risk(e.weights) >= decliningRiskFloor {
		return Evaluation{
			SuggestHandoff: true,
			Reason:         ReasonDecliningSentiment,
			Confidence:     0.6,
			Message:        "sentiment trending down under high risk",
		}, t
	}

	// 8. The model flagged the conversation as off-topic.
	if res.Primary == intent.TagOffTopic && res.Source == intent.SourceLLM {
		return Evaluation{
			SuggestHandoff: true,
			Reason:         ReasonOffTopic,
			Confidence:     0.5,
			Message:        "conversation drifted off topic",
		}, t
	}

	return Evaluation{Reason: ReasonNone}, t
}

func sentimentScore(s state.Sentiment) float64 {
	switch s {
	case state.SentimentPositive:
		return SentimentScorePositive
	case state.SentimentNegative:
		return SentimentScoreNegative
	default:
		return SentimentScoreNeutral
	}
}

// uncertainResponse detects "I don't know"-equivalents in the last
// assistant turn.
func uncertainResponse(st state.State, table locale.Table) bool {
	if st.LastAssistantMessage == "" {
		return false
	}
	return locale.ContainsAny(st.LastAssistantMessage, table.UncertaintyPhrases)
}
