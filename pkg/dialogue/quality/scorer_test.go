package quality

import (
	"testing"

	"storefront-assistant-be/pkg/dialogue"
)

func user(content string) dialogue.Message {
	return dialogue.Message{Role: dialogue.RoleUser, Content: content}
}

func assistant(content string, products ...string) dialogue.Message {
	return dialogue.Message{Role: dialogue.RoleAssistant, Content: content, ProductsShown: products}
}

func TestScoreHealthyPurchaseFlow(t *testing.T) {
	s := NewScorer(DefaultDeltas())

	messages := []dialogue.Message{
		user("hej, jag letar efter en klocka"),
		assistant("Hej! Vill du se några alternativ?"),
		user("visa gärna något under 1000 kronor"),
		assistant("Här är tre fina klockor.", "p1", "p2"),
		user("perfect, add to cart"),
		assistant("Toppen! Den ligger i varukorgen."),
		user("thanks for the help"),
	}

	score := s.ScoreConversation(messages)

	b := score.Breakdown
	if !b.PurchaseIntent || !b.Satisfaction || !b.HealthyLength || !b.ProductsShown || !b.NaturalEnding {
		t.Errorf("positive signals missed: %+v", b)
	}
	if b.RepeatedQuestion || b.Rejections || b.ContactRequest || b.VeryShort || b.Abandoned {
		t.Errorf("negative signals misfired: %+v", b)
	}
	// 50 + 20 + 15 + 10 + 5 + 5 clamps at 100.
	if score.Score != 100 {
		t.Errorf("Score = %d, want 100", score.Score)
	}
	if score.Flagged {
		t.Error("Flagged = true on a healthy conversation")
	}
}

func TestScoreVeryShortConversation(t *testing.T) {
	s := NewScorer(DefaultDeltas())

	score := s.ScoreConversation([]dialogue.Message{user("do you have watches?")})

	if !score.Breakdown.VeryShort {
		t.Error("VeryShort = false, want true")
	}
	if score.Score != 45 {
		t.Errorf("Score = %d, want 45", score.Score)
	}
	if !score.Flagged {
		t.Error("Flagged = false, want true below the flag line")
	}
	if len(score.FlagReasons) == 0 {
		t.Error("FlagReasons is empty")
	}
}

func TestScoreGreetingOnlyIsNotPenalized(t *testing.T) {
	s := NewScorer(DefaultDeltas())

	score := s.ScoreConversation([]dialogue.Message{
		user("hej"),
		assistant("Hej! Hur kan jag hjälpa dig?"),
	})

	if score.Breakdown.VeryShort {
		t.Error("VeryShort fired on a bare greeting exchange")
	}
	if score.Score != 50 {
		t.Errorf("Score = %d, want 50", score.Score)
	}
	if score.Flagged {
		t.Error("Flagged = true, want false at the base score")
	}
}

func TestScoreRepeatedQuestion(t *testing.T) {
	s := NewScorer(DefaultDeltas())

	messages := []dialogue.Message{
		user("vad kostar frakten till norge"),
		assistant("Det beror på vikten."),
		user("vad kostar frakten till norge"),
	}

	score := s.ScoreConversation(messages)

	if !score.Breakdown.RepeatedQuestion {
		t.Error("RepeatedQuestion = false, want true for identical turns")
	}
	// Ends on an unanswered user turn, so the abandonment signal fires too.
	if !score.Breakdown.Abandoned {
		t.Error("Abandoned = false, want true")
	}
	// 50 - 15 - 10
	if score.Score != 25 {
		t.Errorf("Score = %d, want 25", score.Score)
	}
	if !score.Flagged {
		t.Error("Flagged = false, want true")
	}
}

func TestScoreRejections(t *testing.T) {
	s := NewScorer(DefaultDeltas())

	messages := []dialogue.Message{
		user("inte den, för dyr"),
		assistant("Okej, vad sägs om den här istället?"),
		user("något annat kanske"),
		assistant("Jag kan visa fler modeller."),
	}

	score := s.ScoreConversation(messages)

	if !score.Breakdown.Rejections {
		t.Error("Rejections = false, want true after two rejected suggestions")
	}
	// 50 + 10 (healthy length) - 10 (rejections)
	if score.Score != 50 {
		t.Errorf("Score = %d, want 50", score.Score)
	}
}

func TestScoreContactRequest(t *testing.T) {
	s := NewScorer(DefaultDeltas())

	messages := []dialogue.Message{
		user("hi, I have a question"),
		assistant("Happy to help!"),
		user("never mind, I want customer service"),
		assistant("Of course, connecting you now."),
	}

	score := s.ScoreConversation(messages)

	if !score.Breakdown.ContactRequest {
		t.Error("ContactRequest = false, want true")
	}
	// 50 + 10 (healthy length) - 10 (contact request)
	if score.Score != 50 {
		t.Errorf("Score = %d, want 50", score.Score)
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	s := NewScorer(Deltas{
		RepeatedQuestion: -40,
		Abandoned:        -40,
	})

	messages := []dialogue.Message{
		user("where is my discount code"),
		assistant("I don't have that information."),
		user("where is my discount code"),
	}

	score := s.ScoreConversation(messages)
	if score.Score != 0 {
		t.Errorf("Score = %d, want 0", score.Score)
	}
}
