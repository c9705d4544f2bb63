// Package discovery implements the policy that decides whether enough
// context exists to recommend products. Insufficient data is a
// first-class outcome here, never an error: the caller's job is to ask a
// better question, not to fail the request.
package discovery

import (
	"regexp"
	"strings"

	"storefront-assistant-be/pkg/dialogue"
	"storefront-assistant-be/pkg/dialogue/intent"
	"storefront-assistant-be/pkg/dialogue/state"
)

// Decision reasons, surfaced to logs and to the response assembler.
const (
	ReasonMinimumExchanges  = "minimum_exchanges"
	ReasonInsufficientNeeds = "insufficient_needs"
	ReasonTurnCountOverride = "turn_count_override"
	ReasonDiscoveryComplete = "discovery_complete"
	ReasonTerminalIntent    = "terminal_intent"
	ReasonExplicitProduct   = "explicit_product_intent"
	ReasonGateIncomplete    = "discovery_incomplete"
)

// Config carries the gate thresholds; injected, never global.
type Config struct {
	MinExchanges           int
	MinNeedsScore          int
	NeedsScoreOverrideTurn int
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		MinExchanges:           3,
		MinNeedsScore:          3,
		NeedsScoreOverrideTurn: 5,
	}
}

// Decision is the outcome of the core discovery check.
type Decision struct {
	Complete bool
	Reason   string
	Needs    Assessment
	// Warning is set when the turn-count override fired: the
	// conversation was long enough but never produced real needs
	// signals. Operators watch this.
	Warning string
}

// IncludeDecision answers "may product context go into the prompt".
type IncludeDecision struct {
	Include  bool
	Reason   string
	Decision Decision
}

// CardDecision answers "may product cards render", possibly rewriting
// the response to strip premature cards.
type CardDecision struct {
	Allow           bool
	Reason          string
	Response        string
	SuppressedCards bool
}

// productIntents bypass the gate entirely: the customer asked about
// products in so many words.
var productIntents = map[intent.Tag]bool{
	intent.TagProductInfo:  true,
	intent.TagPriceCheck:   true,
	intent.TagAvailability: true,
	intent.TagPurchase:     true,
	intent.TagCompare:      true,
}

// cardMarkerPattern matches the inline product-card markers the
// generation layer embeds, e.g. [product:abc-123].
var cardMarkerPattern = regexp.MustCompile(`\[product:[^\]]+\]`)

// Gate is the discovery policy with its three call sites.
type Gate struct {
	cfg Config
}

func NewGate(cfg Config) *Gate {
	return &Gate{cfg: cfg}
}

// IsDiscoveryComplete is the shared core check.
//
// Order matters: the exchange floor applies before any needs scoring,
// and the turn-count override only rescues conversations past the
// override turn.
func (g *Gate) IsDiscoveryComplete(st state.State, history []dialogue.Message, current string) Decision {
	if st.TurnCount < g.cfg.MinExchanges {
		return Decision{Complete: false, Reason: ReasonMinimumExchanges}
	}

	userText := dialogue.UserText(history)
	if current != "" {
		userText = strings.TrimSpace(userText + " " + current)
	}
	needs := AssessNeeds(userText)

	if needs.Score < g.cfg.MinNeedsScore {
		if st.TurnCount >= g.cfg.NeedsScoreOverrideTurn {
			return Decision{
				Complete: true,
				Reason:   ReasonTurnCountOverride,
				Needs:    needs,
				Warning:  "needs score below minimum; unlocked by turn count override",
			}
		}
		return Decision{Complete: false, Reason: ReasonInsufficientNeeds, Needs: needs}
	}

	return Decision{Complete: true, Reason: ReasonDiscoveryComplete, Needs: needs}
}

// ShouldIncludeProducts decides whether retrieval runs and product
// context enters the generation prompt.
func (g *Gate) ShouldIncludeProducts(st state.State, res intent.Result, history []dialogue.Message, current string) IncludeDecision {
	if res.IsTerminal {
		return IncludeDecision{Include: false, Reason: ReasonTerminalIntent}
	}
	if productIntents[res.Primary] {
		return IncludeDecision{Include: true, Reason: ReasonExplicitProduct}
	}

	d := g.IsDiscoveryComplete(st, history, current)
	if !d.Complete {
		return IncludeDecision{Include: false, Reason: d.Reason, Decision: d}
	}
	return IncludeDecision{Include: true, Reason: d.Reason, Decision: d}
}

// ShouldAllowProductCards applies the same bypass logic to the rendered
// response. When the gate says incomplete but the generated text still
// carries card markers, the markers are stripped and reported rather
// than treated as an error. This keeps premature recommendation
// structurally impossible, not just discouraged in the prompt.
func (g *Gate) ShouldAllowProductCards(st state.State, res intent.Result, history []dialogue.Message, current, response string) CardDecision {
	if productIntents[res.Primary] {
		return CardDecision{Allow: true, Reason: ReasonExplicitProduct, Response: response}
	}

	if res.IsTerminal {
		return stripCards(response, ReasonTerminalIntent)
	}

	d := g.IsDiscoveryComplete(st, history, current)
	if d.Complete {
		return CardDecision{Allow: true, Reason: d.Reason, Response: response}
	}
	return stripCards(response, d.Reason)
}

func stripCards(response, reason string) CardDecision {
	if !cardMarkerPattern.MatchString(response) {
		return CardDecision{Allow: false, Reason: reason, Response: response}
	}
	cleaned := cardMarkerPattern.ReplaceAllString(response, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return CardDecision{
		Allow:           false,
		Reason:          reason,
		Response:        cleaned,
		SuppressedCards: true,
	}
}
