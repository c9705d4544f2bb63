package handoff

// sentimentHistoryMax bounds the ring buffer of recent sentiment samples.
const sentimentHistoryMax = 5

// Sentiment sample values pushed into the tracker history.
const (
	SentimentScorePositive = 1.0
	SentimentScoreNeutral  = 0.5
	SentimentScoreNegative = 0.0
)

// Tracker is the per-conversation risk record. It is an immutable value:
// every transition returns a new Tracker, and the caller persists the
// record between turns because the process itself is stateless.
type Tracker struct {
	LowConfidenceCount     int       `json:"low_confidence_count"`
	UncertainResponseCount int       `json:"uncertain_response_count"`
	NegativeSentimentCount int       `json:"negative_sentiment_count"`
	SentimentHistory       []float64 `json:"sentiment_history"`
}

// RiskWeights convert the tracker counters into a single risk score.
type RiskWeights struct {
	LowConfidence     int
	UncertainResponse int
	NegativeSentiment int
}

// DefaultRiskWeights mirrors the production defaults.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		LowConfidence:     1,
		UncertainResponse: 2,
		NegativeSentiment: 2,
	}
}

// RecordSentiment pushes a sentiment sample and bumps the negative
// counter when the sample reads negative.
func RecordSentiment(t Tracker, score float64) Tracker {
	history := append(append([]float64{}, t.SentimentHistory...), score)
	if len(history) > sentimentHistoryMax {
		history = history[len(history)-sentimentHistoryMax:]
	}
	t.SentimentHistory = history
	if score <= SentimentScoreNegative {
		t.NegativeSentimentCount++
	}
	return t
}

// RecordConfidence bumps the low-confidence counter on a shaky
// classification and decays it on a confident one, so a single bad turn
// cannot permanently flag the conversation. Counters never go below 0.
func RecordConfidence(t Tracker, confident bool) Tracker {
	if confident {
		if t.LowConfidenceCount > 0 {
			t.LowConfidenceCount--
		}
		return t
	}
	t.LowConfidenceCount++
	return t
}

// RecordUncertainResponse bumps the "assistant said it doesn't know"
// counter.
func RecordUncertainResponse(t Tracker) Tracker {
	t.UncertainResponseCount++
	return t
}

// Risk is the weighted sum of the counters.
func (t Tracker) Risk(w RiskWeights) int {
	return w.LowConfidence*t.LowConfidenceCount +
		w.UncertainResponse*t.UncertainResponseCount +
		w.NegativeSentiment*t.NegativeSentimentCount
}

// SentimentDeclining reports whether the last three samples are strictly
// non-increasing. Fewer than three samples is not a trend.
func (t Tracker) SentimentDeclining() bool {
	n := len(t.SentimentHistory)
	if n < 3 {
		return false
	}
	last := t.SentimentHistory[n-3:]
	return last[1] <= last[0] && last[2] <= last[1]
}
