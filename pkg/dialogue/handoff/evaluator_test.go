package handoff

import (
	"testing"

	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/locale"
	"storefront-assistant-be/pkg/dialogue/state"
)

func neutralState() state.State {
	return state.State{UserSentiment: state.SentimentNeutral}
}

func confidentResult() intent.Result {
	return intent.Result{Primary: intent.TagProductInfo, Confidence: 13, Source: intent.SourceRules}
}

func TestEvaluateUserRequest(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())

	ev, _ := e.Evaluate("I want to talk to a human", neutralState(), confidentResult(), Tracker{}, locale.English)
	if !ev.Needed {
		t.Fatal("Needed = false, want true")
	}
	if ev.Reason != ReasonUserRequest {
		t.Errorf("Reason = %s, want %s", ev.Reason, ReasonUserRequest)
	}
	if ev.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", ev.Confidence)
	}
}

func TestEvaluateAccountIssue(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())

	tests := []struct {
		name    string
		message string
		lang    locale.Language
	}{
		{"english package", "where is my package?", locale.English},
		{"swedish order", "jag undrar om min beställning", locale.Swedish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, _ := e.Evaluate(tt.message, neutralState(), confidentResult(), Tracker{}, tt.lang)
			if !ev.Needed || ev.Reason != ReasonAccountIssue {
				t.Errorf("Needed = %v, Reason = %s", ev.Needed, ev.Reason)
			}
		})
	}
}

func TestEvaluateFrustrationEscalatesOnRepeat(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())

	// First frustration signal only suggests.
	ev, tr := e.Evaluate("you don't understand what I need", neutralState(), confidentResult(), Tracker{}, locale.English)
	if ev.Needed {
		t.Fatal("first frustration: Needed = true, want suggestion only")
	}
	if !ev.SuggestHandoff || ev.Reason != ReasonFrustration {
		t.Errorf("first frustration: SuggestHandoff = %v, Reason = %s", ev.SuggestHandoff, ev.Reason)
	}
	if tr.NegativeSentimentCount != 1 {
		t.Errorf("NegativeSentimentCount = %d, want 1", tr.NegativeSentimentCount)
	}

	// Second one escalates.
	ev, _ = e.Evaluate("this is not working at all", neutralState(), confidentResult(), tr, locale.English)
	if !ev.Needed || ev.Reason != ReasonFrustration {
		t.Errorf("repeat frustration: Needed = %v, Reason = %s", ev.Needed, ev.Reason)
	}
}

func TestEvaluateLowConfidenceStreak(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())
	shaky := intent.Result{Primary: intent.TagUnclear, Confidence: 3, Source: intent.SourceRules}

	var ev Evaluation
	tr := Tracker{}
	for i := 0; i < 3; i++ {
		ev, tr = e.Evaluate("hmm okay", neutralState(), shaky, tr, locale.English)
	}

	if !ev.Needed || ev.Reason != ReasonLowConfidence {
		t.Errorf("after 3 shaky turns: Needed = %v, Reason = %s", ev.Needed, ev.Reason)
	}
	if tr.LowConfidenceCount != 3 {
		t.Errorf("LowConfidenceCount = %d, want 3", tr.LowConfidenceCount)
	}
}

func TestEvaluateUncertainResponses(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())
	st := neutralState()
	st.LastAssistantMessage = "I don't know, I have no information about that."

	ev, tr := e.Evaluate("what about the warranty", st, confidentResult(), Tracker{}, locale.English)
	if ev.Needed {
		t.Fatal("first uncertain response already escalated")
	}
	if tr.UncertainResponseCount != 1 {
		t.Fatalf("UncertainResponseCount = %d, want 1", tr.UncertainResponseCount)
	}

	ev, _ = e.Evaluate("and the battery life", st, confidentResult(), tr, locale.English)
	if !ev.Needed || ev.Reason != ReasonUncertainResponses {
		t.Errorf("second uncertain response: Needed = %v, Reason = %s", ev.Needed, ev.Reason)
	}
}

func TestEvaluateDecliningSentiment(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())

	// Accumulated risk is high and the mood trend is flat-to-down.
	tr := Tracker{
		UncertainResponseCount: 1,
		NegativeSentimentCount: 2,
		SentimentHistory:       []float64{1.0, 0.5, 0.5},
	}

	ev, _ := e.Evaluate("hmm okay", neutralState(), confidentResult(), tr, locale.English)
	if ev.Needed {
		t.Fatal("Needed = true, want suggestion only")
	}
	if !ev.SuggestHandoff || ev.Reason != ReasonDecliningSentiment {
		t.Errorf("SuggestHandoff = %v, Reason = %s", ev.SuggestHandoff, ev.Reason)
	}
}

func TestEvaluateOffTopic(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())

	// Only an LLM-sourced off-topic classification triggers the suggestion.
	res := intent.Result{Primary: intent.TagOffTopic, Confidence: 12, Source: intent.SourceLLM}
	ev, _ := e.Evaluate("can you write my homework", neutralState(), res, Tracker{}, locale.English)
	if !ev.SuggestHandoff || ev.Reason != ReasonOffTopic {
		t.Errorf("SuggestHandoff = %v, Reason = %s", ev.SuggestHandoff, ev.Reason)
	}

	res.Source = intent.SourceRules
	ev, _ = e.Evaluate("can you write my homework", neutralState(), res, Tracker{}, locale.English)
	if ev.SuggestHandoff {
		t.Error("rules-sourced off-topic should not suggest handoff")
	}
}

func TestEvaluateHealthyTurn(t *testing.T) {
	e := NewEvaluator(DefaultRiskWeights())

	ev, tr := e.Evaluate("do you have watches?", neutralState(), confidentResult(), Tracker{}, locale.English)
	if ev.Needed || ev.SuggestHandoff {
		t.Errorf("healthy turn flagged: %+v", ev)
	}
	if ev.Reason != ReasonNone {
		t.Errorf("Reason = %s, want none", ev.Reason)
	}
	if len(tr.SentimentHistory) != 1 {
		t.Errorf("sentiment not recorded: %v", tr.SentimentHistory)
	}
}
