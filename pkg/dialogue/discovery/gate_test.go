package discovery

import (
	"testing"

	"storefront-assistant-be/pkg/dialogue"
	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/state"
)

func TestIsDiscoveryComplete(t *testing.T) {
	tests := []struct {
		name         string
		turnCount    int
		current      string
		wantComplete bool
		wantReason   string
		wantWarning  bool
	}{
		{
			name:         "below exchange floor",
			turnCount:    2,
			current:      "en present till min pappa på hans födelsedag, max 500 kr",
			wantComplete: false,
			wantReason:   ReasonMinimumExchanges,
		},
		{
			name:         "enough needs signals",
			turnCount:    3,
			current:      "en present till min pappa på hans födelsedag, max 500 kr",
			wantComplete: true,
			wantReason:   ReasonDiscoveryComplete,
		},
		{
			name:         "turns but no signals",
			turnCount:    3,
			current:      "hmm okej",
			wantComplete: false,
			wantReason:   ReasonInsufficientNeeds,
		},
		{
			name:         "long conversation unlocks without signals",
			turnCount:    5,
			current:      "hmm okej",
			wantComplete: true,
			wantReason:   ReasonTurnCountOverride,
			wantWarning:  true,
		},
	}

	g := NewGate(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := state.State{TurnCount: tt.turnCount}
			d := g.IsDiscoveryComplete(st, nil, tt.current)
			if d.Complete != tt.wantComplete {
				t.Errorf("Complete = %v, want %v", d.Complete, tt.wantComplete)
			}
			if d.Reason != tt.wantReason {
				t.Errorf("Reason = %s, want %s", d.Reason, tt.wantReason)
			}
			if (d.Warning != "") != tt.wantWarning {
				t.Errorf("Warning = %q, wantWarning %v", d.Warning, tt.wantWarning)
			}
		})
	}
}

func TestIsDiscoveryCompleteAccumulatesAcrossTurns(t *testing.T) {
	g := NewGate(DefaultConfig())

	// Signals spread over history plus the current turn add up.
	history := []dialogue.Message{
		{Role: dialogue.RoleUser, Content: "jag letar efter något till min mamma"},
		{Role: dialogue.RoleAssistant, Content: "Vad roligt! Vad är din budget?"},
		{Role: dialogue.RoleUser, Content: "max 400 kr"},
	}
	st := state.State{TurnCount: 3}

	d := g.IsDiscoveryComplete(st, history, "hon fyller år, det är hennes födelsedag")
	if !d.Complete {
		t.Fatalf("Complete = false, reason %s, score %d", d.Reason, d.Needs.Score)
	}
	if d.Needs.Score < 7 {
		t.Errorf("Needs.Score = %d, want >= 7", d.Needs.Score)
	}
}

func TestShouldIncludeProducts(t *testing.T) {
	g := NewGate(DefaultConfig())

	// Explicit product intent bypasses the gate even on turn one.
	d := g.ShouldIncludeProducts(state.State{TurnCount: 1}, intent.Result{Primary: intent.TagPriceCheck}, nil, "vad kostar den?")
	if !d.Include || d.Reason != ReasonExplicitProduct {
		t.Errorf("price check: Include = %v, Reason = %s", d.Include, d.Reason)
	}

	// Terminal intents never get product context.
	d = g.ShouldIncludeProducts(state.State{TurnCount: 6}, intent.Result{Primary: intent.TagGreeting, IsTerminal: true}, nil, "hej")
	if d.Include || d.Reason != ReasonTerminalIntent {
		t.Errorf("greeting: Include = %v, Reason = %s", d.Include, d.Reason)
	}

	// Everything else defers to the core check.
	d = g.ShouldIncludeProducts(state.State{TurnCount: 1}, intent.Result{Primary: intent.TagProductDiscovery}, nil, "jag letar efter en klocka")
	if d.Include || d.Reason != ReasonMinimumExchanges {
		t.Errorf("early discovery: Include = %v, Reason = %s", d.Include, d.Reason)
	}
}

func TestShouldAllowProductCardsStripsPrematureMarkers(t *testing.T) {
	g := NewGate(DefaultConfig())

	response := "Kolla gärna denna! [product:abc-123] Den är populär."
	d := g.ShouldAllowProductCards(state.State{TurnCount: 1}, intent.Result{Primary: intent.TagProductDiscovery}, nil, "jag letar efter en klocka", response)

	if d.Allow {
		t.Error("Allow = true, want false on turn one")
	}
	if !d.SuppressedCards {
		t.Error("SuppressedCards = false, want true")
	}
	if d.Response != "Kolla gärna denna! Den är populär." {
		t.Errorf("Response = %q", d.Response)
	}
}

func TestShouldAllowProductCardsExplicitIntent(t *testing.T) {
	g := NewGate(DefaultConfig())

	response := "Den kostar 299 kr. [product:abc-123]"
	d := g.ShouldAllowProductCards(state.State{TurnCount: 1}, intent.Result{Primary: intent.TagPriceCheck}, nil, "vad kostar den?", response)

	if !d.Allow {
		t.Error("Allow = false, want true for explicit product intent")
	}
	if d.Response != response {
		t.Errorf("Response rewritten: %q", d.Response)
	}
}

func TestAssessNeeds(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantScore      int
		wantCategories []SignalCategory
	}{
		{
			name:      "empty text",
			text:      "",
			wantScore: 0,
		},
		{
			name:           "recipient occasion budget",
			text:           "en present till min pappa på hans födelsedag, max 500 kr",
			wantScore:      7,
			wantCategories: []SignalCategory{SignalRecipient, SignalOccasion, SignalBudget},
		},
		{
			name:           "category alone scores one",
			text:           "har ni klockor",
			wantScore:      1,
			wantCategories: []SignalCategory{SignalCategoryHit},
		},
		{
			name:           "each category counts once",
			text:           "till min mamma och till min syster",
			wantScore:      3,
			wantCategories: []SignalCategory{SignalRecipient},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AssessNeeds(tt.text)
			if a.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", a.Score, tt.wantScore)
			}
			if len(a.Categories) != len(tt.wantCategories) {
				t.Fatalf("Categories = %v, want %v", a.Categories, tt.wantCategories)
			}
			for i, c := range tt.wantCategories {
				if a.Categories[i] != c {
					t.Errorf("Categories[%d] = %s, want %s", i, a.Categories[i], c)
				}
			}
		})
	}
}
