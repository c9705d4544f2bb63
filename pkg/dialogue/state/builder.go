// Package state rebuilds the derived conversation state from the
// append-only message history. Nothing here is persisted; the builder is
// deterministic for identical history, so repeated processing of the
// same turn is idempotent.
package state

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"storefront-assistant-be/pkg/dialogue"
	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/locale"
)

// JourneyStage is the inferred phase of the shopping conversation.
type JourneyStage string

const (
	StageExploring   JourneyStage = "exploring"
	StageInterested  JourneyStage = "interested"
	StageComparing   JourneyStage = "comparing"
	StageDeciding    JourneyStage = "deciding"
	StageReadyToBuy  JourneyStage = "ready_to_buy"
	StageSeekingHelp JourneyStage = "seeking_help"
	StageClosing     JourneyStage = "closing"
)

// QuestionType classifies the last assistant question, if any.
type QuestionType string

const (
	QuestionNone          QuestionType = ""
	QuestionOffer         QuestionType = "offer"
	QuestionPreference    QuestionType = "preference"
	QuestionClarification QuestionType = "clarification"
	QuestionBudget        QuestionType = "budget"
	QuestionGift          QuestionType = "gift"
	QuestionGeneral       QuestionType = "general"
)

// Sentiment is a coarse majority-vote mood over the user's turns.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Preferences holds what the user has revealed about the purchase.
type Preferences struct {
	PriceRange   string
	BudgetAmount float64
	Currency     string
	Framing      string // "budget" | "premium" | ""
	ForWhom      string
	Interests    []string
}

// State is the full derived state for one turn.
type State struct {
	JourneyStage         JourneyStage
	TurnCount            int
	AllProductsDiscussed map[string]int
	LastProducts         []string
	LastQuestion         string
	LastQuestionType     QuestionType
	LastAssistantMessage string
	Preferences          Preferences
	UserSentiment        Sentiment
	ContextSummary       string
}

var (
	// "200 kr", "kr 200", "$25", "under 300 kronor"
	budgetPattern = regexp.MustCompile(`(?i)(?:(kr|sek|\$|€|usd|eur)\s*(\d+[.,]?\d*))|(?:(\d+[.,]?\d*)\s*(kr|sek|kronor|dollar|\$|€|usd|eur))`)

	budgetFramingWords  = []string{"budget", "billig", "billigt", "cheap", "affordable", "inte för dyr", "not too expensive"}
	premiumFramingWords = []string{"premium", "exklusiv", "lyx", "luxury", "high end", "det bästa", "the best"}

	giftRecipientPattern = regexp.MustCompile(`(?i)(?:till|åt|for|to)\s+(min|mina|my)?\s*(mamma|pappa|mor|far|fru|man|flickvän|pojkvän|syster|bror|dotter|son|vän|kollega|mom|mother|dad|father|wife|husband|girlfriend|boyfriend|sister|brother|daughter|son|friend|colleague)`)

	questionVerbPattern = regexp.MustCompile(`(?i)\b(vill du|ska jag|kan jag visa|föredrar du|önskar du|would you like|shall i|can i show|do you prefer|do you want)\b`)

	interestPattern = regexp.MustCompile(`(?i)\b(gillar|intresserad av|tycker om|likes?|interested in|into)\s+([\p{L}\s]{3,40})`)
)

// Build walks the history once and derives the state for the current
// turn. The current message and its intent steer stage resolution but
// the walk itself only trusts what was actually said.
func Build(history []dialogue.Message, current string, res intent.Result, lang locale.Language) State {
	st := State{
		AllProductsDiscussed: map[string]int{},
		UserSentiment:        SentimentNeutral,
	}

	table := locale.For(lang)
	positives, negatives := 0, 0

	full := append(append([]dialogue.Message{}, history...), dialogue.Message{
		Role:    dialogue.RoleUser,
		Content: current,
	})

	for _, m := range full {
		switch m.Role {
		case dialogue.RoleAssistant:
			st.LastAssistantMessage = m.Content
			if len(m.ProductsShown) > 0 {
				st.LastProducts = append([]string{}, m.ProductsShown...)
				for _, p := range m.ProductsShown {
					st.AllProductsDiscussed[p]++
				}
			}
			if q := extractQuestion(m.Content); q != "" {
				st.LastQuestion = q
				st.LastQuestionType = classifyQuestion(q)
			} else {
				st.LastQuestion = ""
				st.LastQuestionType = QuestionNone
			}
		case dialogue.RoleUser:
			st.TurnCount++
			extractPreferences(m.Content, &st.Preferences)
			positives += locale.CountMatches(m.Content, table.PositiveWords)
			negatives += locale.CountMatches(m.Content, table.NegativeWords)
		}
	}

	if positives > negatives {
		st.UserSentiment = SentimentPositive
	} else if negatives > positives {
		st.UserSentiment = SentimentNegative
	}

	st.JourneyStage = resolveStage(st, res)
	st.ContextSummary = summarize(st, res)

	return st
}

// extractQuestion returns the question portion of an assistant turn, or
// the whole turn when it ends with an offer verb, or "" when the turn
// asked nothing.
func extractQuestion(content string) string {
	if idx := strings.LastIndex(content, "?"); idx >= 0 {
		// Take the sentence that the question mark terminates.
		start := strings.LastIndexAny(content[:idx], ".!\n") + 1
		return strings.TrimSpace(content[start : idx+1])
	}
	if questionVerbPattern.MatchString(content) {
		return strings.TrimSpace(content)
	}
	return ""
}

// Ordered pattern checks: first match wins, general is the catch-all.
func classifyQuestion(q string) QuestionType {
	lower := strings.ToLower(q)
	switch {
	case containsAnyOf(lower, "vill du se", "ska jag visa", "would you like to see", "shall i show", "kan jag visa", "can i show"):
		return QuestionOffer
	case containsAnyOf(lower, "budget", "prisklass", "price range", "spendera", "spend"):
		return QuestionBudget
	case containsAnyOf(lower, "present", "gift", "vem", "who is it for", "till vem"):
		return QuestionGift
	case containsAnyOf(lower, "föredrar", "prefer", "hellre", "rather", "vilken stil", "what style"):
		return QuestionPreference
	case containsAnyOf(lower, "menar du", "do you mean", "vilken av", "which of", "syftar du"):
		return QuestionClarification
	default:
		return QuestionGeneral
	}
}

func containsAnyOf(s string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func extractPreferences(content string, prefs *Preferences) {
	if m := budgetPattern.FindStringSubmatch(content); m != nil {
		var rawAmount, rawCurrency string
		if m[2] != "" {
			rawCurrency, rawAmount = m[1], m[2]
		} else {
			rawAmount, rawCurrency = m[3], m[4]
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(rawAmount, ",", "."), 64)
		if err == nil && amount > 0 {
			prefs.BudgetAmount = amount
			prefs.Currency = normalizeCurrency(rawCurrency)
			prefs.PriceRange = fmt.Sprintf("%.0f %s", amount, prefs.Currency)
		}
	}

	lower := strings.ToLower(content)
	if locale.ContainsAny(lower, budgetFramingWords) {
		prefs.Framing = "budget"
	} else if locale.ContainsAny(lower, premiumFramingWords) {
		prefs.Framing = "premium"
	}

	if m := giftRecipientPattern.FindStringSubmatch(content); m != nil {
		prefs.ForWhom = strings.ToLower(m[2])
	}

	if m := interestPattern.FindStringSubmatch(content); m != nil {
		interest := strings.TrimSpace(strings.ToLower(m[2]))
		for _, existing := range prefs.Interests {
			if existing == interest {
				return
			}
		}
		prefs.Interests = append(prefs.Interests, interest)
	}
}

func normalizeCurrency(raw string) string {
	switch strings.ToLower(raw) {
	case "kr", "sek", "kronor":
		return "kr"
	case "$", "usd", "dollar":
		return "USD"
	case "€", "eur":
		return "EUR"
	default:
		return raw
	}
}

// resolveStage: explicit terminal intents override inference from the
// discussed-product count.
func resolveStage(st State, res intent.Result) JourneyStage {
	switch res.Primary {
	case intent.TagPurchase:
		return StageReadyToBuy
	case intent.TagContactRequest, intent.TagShippingInfo, intent.TagReturnsInfo:
		return StageSeekingHelp
	case intent.TagGoodbye, intent.TagThanks:
		return StageClosing
	case intent.TagCompare:
		return StageComparing
	case intent.TagDecisionHelp:
		return StageDeciding
	}

	discussed := len(st.AllProductsDiscussed)
	switch {
	case discussed == 0:
		return StageExploring
	case discussed >= 2:
		return StageComparing
	case discussed == 1 && st.TurnCount >= 3 &&
		(res.Primary == intent.TagProductInfo || res.Primary == intent.TagPriceCheck):
		return StageDeciding
	default:
		return StageInterested
	}
}

var stageDescriptions = map[JourneyStage]string{
	StageExploring:   "customer is exploring, no products discussed yet",
	StageInterested:  "customer has shown interest in a product",
	StageComparing:   "customer is comparing products",
	StageDeciding:    "customer is close to a decision",
	StageReadyToBuy:  "customer is ready to buy",
	StageSeekingHelp: "customer needs practical help",
	StageClosing:     "conversation is wrapping up",
}

// summarize assembles the human-readable digest consumed by the reply
// prompt. Deterministic: same state, same summary.
func summarize(st State, res intent.Result) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Turn %d: %s.", st.TurnCount, stageDescriptions[st.JourneyStage]))

	if len(st.LastProducts) > 0 {
		parts = append(parts, fmt.Sprintf("Products currently shown: %s.", strings.Join(st.LastProducts, ", ")))
	}
	if n := len(st.AllProductsDiscussed); n > 1 {
		ids := make([]string, 0, n)
		for id := range st.AllProductsDiscussed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		parts = append(parts, fmt.Sprintf("All products discussed so far: %s.", strings.Join(ids, ", ")))
	}

	if st.LastQuestion != "" {
		parts = append(parts, fmt.Sprintf("Pending assistant question (%s): %q.", st.LastQuestionType, st.LastQuestion))
		if res.Primary == intent.TagAffirmative {
			parts = append(parts, "The customer answered yes to that question.")
		} else if res.Primary == intent.TagNegative {
			parts = append(parts, "The customer answered no to that question.")
		}
	}

	if p := st.Preferences; p.PriceRange != "" || p.ForWhom != "" || p.Framing != "" || len(p.Interests) > 0 {
		var prefBits []string
		if p.PriceRange != "" {
			prefBits = append(prefBits, "budget "+p.PriceRange)
		}
		if p.Framing != "" {
			prefBits = append(prefBits, p.Framing+" framing")
		}
		if p.ForWhom != "" {
			prefBits = append(prefBits, "shopping for "+p.ForWhom)
		}
		if len(p.Interests) > 0 {
			prefBits = append(prefBits, "interests: "+strings.Join(p.Interests, ", "))
		}
		parts = append(parts, "Known preferences: "+strings.Join(prefBits, "; ")+".")
	}

	if st.UserSentiment != SentimentNeutral {
		parts = append(parts, fmt.Sprintf("Customer sentiment reads %s.", st.UserSentiment))
	}

	return strings.Join(parts, " ")
}
