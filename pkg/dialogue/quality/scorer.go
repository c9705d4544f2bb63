// Package quality scores an ended conversation on a 0-100 scale from
// fixed, independently evaluated signals. The scorer runs once per
// conversation; re-running it against the same log would double-count
// nothing (deltas apply at most once), but callers still guard
// invocation via the conversation status.
package quality

import (
	"strings"

	"storefront-assistant-be/pkg/dialogue"
	"storefront-assistant-be/pkg/dialogue/locale"
)

const baseScore = 50

// Deltas are the per-signal score adjustments; part of the injected
// configuration surface so monitoring can be tuned without a deploy.
type Deltas struct {
	PurchaseIntent   int
	Satisfaction     int
	HealthyLength    int
	ProductsShown    int
	NaturalEnding    int
	RepeatedQuestion int
	Rejections       int
	ContactRequest   int
	VeryShort        int
	Abandoned        int
}

// DefaultDeltas mirrors the production defaults.
func DefaultDeltas() Deltas {
	return Deltas{
		PurchaseIntent:   20,
		Satisfaction:     15,
		HealthyLength:    10,
		ProductsShown:    5,
		NaturalEnding:    5,
		RepeatedQuestion: -15,
		Rejections:       -10,
		ContactRequest:   -10,
		VeryShort:        -5,
		Abandoned:        -10,
	}
}

// Breakdown records which signals fired, for monitoring drill-down.
type Breakdown struct {
	PurchaseIntent   bool `json:"purchase_intent"`
	Satisfaction     bool `json:"satisfaction"`
	HealthyLength    bool `json:"healthy_length"`
	ProductsShown    bool `json:"products_shown"`
	NaturalEnding    bool `json:"natural_ending"`
	RepeatedQuestion bool `json:"repeated_question"`
	Rejections       bool `json:"rejections"`
	ContactRequest   bool `json:"contact_request"`
	VeryShort        bool `json:"very_short"`
	Abandoned        bool `json:"abandoned"`
}

// Score is the persisted outcome for one conversation.
type Score struct {
	Score       int
	Breakdown   Breakdown
	Flagged     bool
	FlagReasons []string
}

const (
	healthyLengthMin = 4
	healthyLengthMax = 10
	veryShortMax     = 2
	abandonedMin     = 3
	repeatSimilarity = 0.6
	rejectionLimit   = 2
	flagBelow        = 50
)

// Scorer applies the rule set over a full message log.
type Scorer struct {
	deltas Deltas
}

func NewScorer(deltas Deltas) *Scorer {
	return &Scorer{deltas: deltas}
}

// ScoreConversation evaluates every signal independently over the
// message list and clamps the result to [0,100].
func (s *Scorer) ScoreConversation(messages []dialogue.Message) Score {
	result := Score{Score: baseScore}
	b := &result.Breakdown

	userTurns := collect(messages, dialogue.RoleUser)
	allUserText := strings.ToLower(strings.Join(userTurns, " "))

	b.PurchaseIntent = matchesAnyLocale(allUserText, func(t locale.Table) []string { return t.PurchaseWords })
	b.Satisfaction = matchesAnyLocale(allUserText, func(t locale.Table) []string { return t.SatisfactionWords })
	b.HealthyLength = len(messages) >= healthyLengthMin && len(messages) <= healthyLengthMax
	b.ProductsShown = anyProductsShown(messages)
	b.NaturalEnding = naturalEnding(messages)
	b.RepeatedQuestion = hasRepeatedQuestion(userTurns)
	b.Rejections = countRejections(userTurns) >= rejectionLimit
	b.ContactRequest = matchesAnyLocale(allUserText, func(t locale.Table) []string { return t.HumanRequestWords })
	b.VeryShort = len(messages) <= veryShortMax && !greetingOnly(messages)
	b.Abandoned = !b.NaturalEnding && !b.PurchaseIntent && !b.Satisfaction &&
		len(messages) >= abandonedMin && lastIsUser(messages)

	apply := func(fired bool, delta int, reason string) {
		if !fired {
			return
		}
		result.Score += delta
		if delta < 0 {
			result.FlagReasons = append(result.FlagReasons, reason)
		}
	}

	apply(b.PurchaseIntent, s.deltas.PurchaseIntent, "")
	apply(b.Satisfaction, s.deltas.Satisfaction, "")
	apply(b.HealthyLength, s.deltas.HealthyLength, "")
	apply(b.ProductsShown, s.deltas.ProductsShown, "")
	apply(b.NaturalEnding, s.deltas.NaturalEnding, "")
	apply(b.RepeatedQuestion, s.deltas.RepeatedQuestion, "customer repeated the same question")
	apply(b.Rejections, s.deltas.Rejections, "multiple suggestions rejected")
	apply(b.ContactRequest, s.deltas.ContactRequest, "customer asked for a human")
	apply(b.VeryShort, s.deltas.VeryShort, "conversation ended almost immediately")
	apply(b.Abandoned, s.deltas.Abandoned, "conversation abandoned mid-flow")

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	result.Flagged = result.Score < flagBelow

	return result
}

func collect(messages []dialogue.Message, role string) []string {
	var out []string
	for _, m := range messages {
		if m.Role == role {
			out = append(out, m.Content)
		}
	}
	return out
}

func matchesAnyLocale(text string, pick func(locale.Table) []string) bool {
	for _, t := range locale.All() {
		if locale.ContainsAny(text, pick(t)) {
			return true
		}
	}
	return false
}

func anyProductsShown(messages []dialogue.Message) bool {
	for _, m := range messages {
		if m.Role == dialogue.RoleAssistant && len(m.ProductsShown) > 0 {
			return true
		}
	}
	return false
}

// naturalEnding: the final user turn is a goodbye or a thank-you.
func naturalEnding(messages []dialogue.Message) bool {
	last := dialogue.LastByRole(messages, dialogue.RoleUser)
	if last == nil {
		return false
	}
	for _, t := range locale.All() {
		if locale.ContainsAny(last.Content, t.GoodbyeWords) {
			return true
		}
		if locale.ContainsAny(last.Content, []string{"tack", "thanks", "thank you"}) {
			return true
		}
	}
	return false
}

// greetingOnly exempts a bare greeting exchange from the very-short
// penalty.
func greetingOnly(messages []dialogue.Message) bool {
	for _, m := range messages {
		if m.Role != dialogue.RoleUser {
			continue
		}
		isGreeting := false
		for _, t := range locale.All() {
			if locale.ContainsAny(m.Content, t.GreetingWords) {
				isGreeting = true
				break
			}
		}
		if !isGreeting {
			return false
		}
	}
	return true
}

func lastIsUser(messages []dialogue.Message) bool {
	if len(messages) == 0 {
		return false
	}
	return messages[len(messages)-1].Role == dialogue.RoleUser
}

func countRejections(userTurns []string) int {
	n := 0
	for _, turn := range userTurns {
		for _, t := range locale.All() {
			if locale.ContainsAny(turn, t.RejectionPhrases) {
				n++
				break
			}
		}
	}
	return n
}

// hasRepeatedQuestion flags two user turns whose token sets overlap past
// the Jaccard threshold, which almost always means the assistant failed
// to answer the first time.
func hasRepeatedQuestion(userTurns []string) bool {
	sets := make([]map[string]bool, len(userTurns))
	for i, turn := range userTurns {
		sets[i] = tokenSet(turn)
	}
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if jaccard(sets[i], sets[j]) > repeatSimilarity {
				return true
			}
		}
	}
	return false
}

func tokenSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?\"'")
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
