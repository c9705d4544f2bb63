package state

import (
	"testing"

	"storefront-assistant-be/pkg/dialogue"
	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/locale"
)

func TestBuildExtractsPreferences(t *testing.T) {
	history := []dialogue.Message{
		{Role: dialogue.RoleUser, Content: "Hej!"},
		{Role: dialogue.RoleAssistant, Content: "Hej! Vad letar du efter idag?"},
	}
	current := "Jag letar efter en present till min mamma, max 300 kr"

	st := Build(history, current, intent.Result{Primary: intent.TagProductDiscovery}, locale.Swedish)

	if st.TurnCount != 2 {
		t.Errorf("TurnCount = %d, want 2", st.TurnCount)
	}
	if st.Preferences.BudgetAmount != 300 {
		t.Errorf("BudgetAmount = %v, want 300", st.Preferences.BudgetAmount)
	}
	if st.Preferences.Currency != "kr" {
		t.Errorf("Currency = %q, want kr", st.Preferences.Currency)
	}
	if st.Preferences.PriceRange != "300 kr" {
		t.Errorf("PriceRange = %q, want 300 kr", st.Preferences.PriceRange)
	}
	if st.Preferences.ForWhom != "mamma" {
		t.Errorf("ForWhom = %q, want mamma", st.Preferences.ForWhom)
	}
	if st.LastQuestion != "Vad letar du efter idag?" {
		t.Errorf("LastQuestion = %q", st.LastQuestion)
	}
	if st.ContextSummary == "" {
		t.Error("ContextSummary is empty")
	}
}

func TestBuildNormalizesCurrency(t *testing.T) {
	st := Build(nil, "my budget is $25", intent.Result{}, locale.English)
	if st.Preferences.BudgetAmount != 25 {
		t.Errorf("BudgetAmount = %v, want 25", st.Preferences.BudgetAmount)
	}
	if st.Preferences.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", st.Preferences.Currency)
	}
}

func TestBuildSentiment(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    Sentiment
	}{
		{"positive swedish", "tack, det var toppen", SentimentPositive},
		{"negative swedish", "nej det var fel och dåligt", SentimentNegative},
		{"neutral", "har ni klockor?", SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Build(nil, tt.current, intent.Result{}, locale.Swedish)
			if st.UserSentiment != tt.want {
				t.Errorf("UserSentiment = %s, want %s", st.UserSentiment, tt.want)
			}
		})
	}
}

func TestBuildTracksShownProducts(t *testing.T) {
	history := []dialogue.Message{
		{Role: dialogue.RoleUser, Content: "visa mig några klockor"},
		{Role: dialogue.RoleAssistant, Content: "Här är två alternativ.", ProductsShown: []string{"p1", "p2"}},
		{Role: dialogue.RoleUser, Content: "har ni fler?"},
		{Role: dialogue.RoleAssistant, Content: "Absolut, denna också.", ProductsShown: []string{"p3"}},
	}

	st := Build(history, "vilken är billigast?", intent.Result{Primary: intent.TagPriceCheck}, locale.Swedish)

	if len(st.LastProducts) != 1 || st.LastProducts[0] != "p3" {
		t.Errorf("LastProducts = %v, want [p3]", st.LastProducts)
	}
	if len(st.AllProductsDiscussed) != 3 {
		t.Errorf("AllProductsDiscussed = %v, want 3 entries", st.AllProductsDiscussed)
	}
	if st.JourneyStage != StageComparing {
		t.Errorf("JourneyStage = %s, want %s", st.JourneyStage, StageComparing)
	}
}

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name    string
		st      State
		res     intent.Result
		want    JourneyStage
	}{
		{
			name: "purchase intent wins",
			st:   State{},
			res:  intent.Result{Primary: intent.TagPurchase},
			want: StageReadyToBuy,
		},
		{
			name: "shipping question seeks help",
			st:   State{},
			res:  intent.Result{Primary: intent.TagShippingInfo},
			want: StageSeekingHelp,
		},
		{
			name: "goodbye closes",
			st:   State{},
			res:  intent.Result{Primary: intent.TagGoodbye},
			want: StageClosing,
		},
		{
			name: "nothing discussed yet",
			st:   State{AllProductsDiscussed: map[string]int{}},
			res:  intent.Result{Primary: intent.TagProductDiscovery},
			want: StageExploring,
		},
		{
			name: "two products means comparing",
			st:   State{AllProductsDiscussed: map[string]int{"p1": 1, "p2": 1}},
			res:  intent.Result{Primary: intent.TagProductDiscovery},
			want: StageComparing,
		},
		{
			name: "one product plus price question means deciding",
			st:   State{AllProductsDiscussed: map[string]int{"p1": 2}, TurnCount: 4},
			res:  intent.Result{Primary: intent.TagPriceCheck},
			want: StageDeciding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveStage(tt.st, tt.res); got != tt.want {
				t.Errorf("resolveStage() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     QuestionType
	}{
		{"Vill du se några alternativ?", QuestionOffer},
		{"Vad är din budget?", QuestionBudget},
		{"Är det en present, och till vem?", QuestionGift},
		{"Föredrar du silver eller guld?", QuestionPreference},
		{"Menar du den blå modellen?", QuestionClarification},
		{"Hur kan jag hjälpa dig?", QuestionGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := classifyQuestion(tt.question); got != tt.want {
				t.Errorf("classifyQuestion(%q) = %s, want %s", tt.question, got, tt.want)
			}
		})
	}
}

func TestExtractQuestion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "question after statement",
			content: "Vi har flera fina klockor. Vill du se några alternativ?",
			want:    "Vill du se några alternativ?",
		},
		{
			name:    "offer verb without question mark",
			content: "Ska jag visa fler modeller",
			want:    "Ska jag visa fler modeller",
		},
		{
			name:    "no question at all",
			content: "Här är produkten du frågade om.",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractQuestion(tt.content); got != tt.want {
				t.Errorf("extractQuestion() = %q, want %q", got, tt.want)
			}
		})
	}
}
