package intent

import (
	"context"
	"testing"

	"storefront-assistant-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func TestClassifyRules(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		wantPrimary    Tag
		wantConfidence float64
		wantTerminal   bool
	}{
		{
			name:           "swedish greeting",
			message:        "Hej!",
			wantPrimary:    TagGreeting,
			wantConfidence: 13, // regex hit plus keyword hit
			wantTerminal:   true,
		},
		{
			name:           "english greeting",
			message:        "hello",
			wantPrimary:    TagGreeting,
			wantConfidence: 13,
			wantTerminal:   true,
		},
		{
			name:           "swedish price check",
			message:        "vad kostar den?",
			wantPrimary:    TagPriceCheck,
			wantConfidence: 13,
			wantTerminal:   false,
		},
		{
			name:           "english product discovery",
			message:        "I am looking for something nice",
			wantPrimary:    TagProductDiscovery,
			wantConfidence: 13,
			wantTerminal:   false,
		},
	}

	c := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.message, Context{})
			if got.Primary != tt.wantPrimary {
				t.Errorf("Primary = %s, want %s", got.Primary, tt.wantPrimary)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.IsTerminal != tt.wantTerminal {
				t.Errorf("IsTerminal = %v, want %v", got.IsTerminal, tt.wantTerminal)
			}
		})
	}
}

func TestClassifyContextDependent(t *testing.T) {
	c := NewClassifier(nil)

	// Bare "ja" with nothing preceding it is capped.
	got := c.Classify(context.Background(), "ja", Context{})
	if got.Primary != TagAffirmative {
		t.Fatalf("Primary = %s, want %s", got.Primary, TagAffirmative)
	}
	if !got.RequiresContext {
		t.Error("RequiresContext = false, want true")
	}
	if got.Confidence != 5 {
		t.Errorf("Confidence without context = %v, want 5", got.Confidence)
	}

	// With a pending question and products on the table it keeps the
	// rule score and earns the continuation boost.
	got = c.Classify(context.Background(), "ja", Context{
		LastQuestion: "Vill du se fler alternativ?",
		LastProducts: []string{"p1"},
	})
	if got.Confidence != 13 {
		t.Errorf("Confidence with context = %v, want 13", got.Confidence)
	}
}

func TestClassifyFallbackToLLM(t *testing.T) {
	stub := &stubProvider{
		response: `{"intent": "PRODUCT_DISCOVERY", "secondary": "", "confidence": 0.8, "reason": "vague shopping ask"}`,
	}
	c := NewClassifier(NewResolver(stub))

	got := c.Classify(context.Background(), "blargh florp", Context{})
	if stub.calls != 1 {
		t.Fatalf("resolver calls = %d, want 1", stub.calls)
	}
	if got.Source != SourceLLM {
		t.Errorf("Source = %s, want %s", got.Source, SourceLLM)
	}
	if got.Primary != TagProductDiscovery {
		t.Errorf("Primary = %s, want %s", got.Primary, TagProductDiscovery)
	}
	if got.Confidence != 12 { // 0.8 * 15
		t.Errorf("Confidence = %v, want 12", got.Confidence)
	}
}

func TestClassifyFallbackRejectedOnLowLLMConfidence(t *testing.T) {
	stub := &stubProvider{
		response: `{"intent": "PRODUCT_DISCOVERY", "confidence": 0.2}`,
	}
	c := NewClassifier(NewResolver(stub))

	got := c.Classify(context.Background(), "blargh florp", Context{})
	if got.Source != SourceRulesFallback {
		t.Errorf("Source = %s, want %s", got.Source, SourceRulesFallback)
	}
	if got.Primary != TagUnclear {
		t.Errorf("Primary = %s, want %s", got.Primary, TagUnclear)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "bare json",
			response: `{"intent": "GREETING"}`,
			want:     `{"intent": "GREETING"}`,
		},
		{
			name:     "fenced json",
			response: "```json\n{\"intent\": \"GREETING\"}\n```",
			want:     `{"intent": "GREETING"}`,
		},
		{
			name:     "wrapped in prose",
			response: `Sure, here is the classification: {"intent": "THANKS"} hope that helps`,
			want:     `{"intent": "THANKS"}`,
		},
		{
			name:     "no json at all",
			response: "I cannot classify this",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.response); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKnownTag(t *testing.T) {
	if got := KnownTag("PRICE_CHECK"); got != TagPriceCheck {
		t.Errorf("KnownTag(PRICE_CHECK) = %s", got)
	}
	if got := KnownTag("MADE_UP_INTENT"); got != TagUnclear {
		t.Errorf("KnownTag(unknown) = %s, want %s", got, TagUnclear)
	}
}
