package intent

import (
	"context"
	"sort"
	"strings"

	"storefront-assistant-be/pkg/dialogue/locale"
)

// Source records which stage produced the final result.
type Source string

const (
	SourceRules         Source = "rules"
	SourceLLM           Source = "llm"
	SourceRulesFallback Source = "rules_fallback"
)

// Match is one scored vocabulary entry.
type Match struct {
	Tag   Tag
	Score int
}

// Result is the classification of a single message.
type Result struct {
	Primary         Tag
	Secondary       Tag
	Confidence      float64
	AllMatches      []Match
	RequiresContext bool
	IsTerminal      bool
	Source          Source
}

// Context is the slice of conversation state the classifier needs.
type Context struct {
	LastQuestion         string
	LastAssistantMessage string
	LastProducts         []string
	TurnCount            int
}

const (
	// Below this the rule result is not trusted on its own.
	lowConfidenceThreshold = 7
	// Short messages need a higher bar; two words carry little signal.
	shortMessageWords      = 2
	shortMessageConfidence = 10
	// Top scores this close together mean the rules cannot separate them.
	ambiguityBand = 3
	// Long multi-clause questions routinely defeat single-intent regexes.
	longMessageWords = 15
	// Context-dependent tags are capped here when nothing precedes them.
	noContextCap = 5
	// Boost when the message continues a product already on the table.
	continuationBoost = 3
)

// Classifier scores a message against the rule table and falls back to
// the LLM resolver when the rules are not convincing.
type Classifier struct {
	resolver *Resolver
}

// NewClassifier wires the rule engine with an optional LLM fallback.
// A nil resolver disables the fallback entirely (rules only).
func NewClassifier(resolver *Resolver) *Classifier {
	return &Classifier{resolver: resolver}
}

// Classify produces an intent for one message. It never returns an
// error: every degradation path ends in a usable, lower-confidence
// result.
func (c *Classifier) Classify(ctx context.Context, message string, convCtx Context) Result {
	ruleResult := c.scoreRules(message, convCtx)

	if c.resolver != nil && needsFallback(ruleResult, message) {
		if llmResult, ok := c.resolver.Resolve(ctx, message, convCtx); ok {
			return llmResult
		}
		ruleResult.Source = SourceRulesFallback
	}

	return ruleResult
}

// scoreRules runs the data-driven pass: regex first-match plus keyword
// containment, summed per tag.
func (c *Classifier) scoreRules(message string, convCtx Context) Result {
	lower := strings.ToLower(message)

	var matches []Match
	for _, r := range ruleTable {
		score := 0
		for _, p := range r.patterns {
			if p.MatchString(message) {
				score += regexHitScore
				break
			}
		}
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				score += keywordHitScore
			}
		}
		if score > 0 {
			matches = append(matches, Match{Tag: r.tag, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	result := Result{
		Primary:    TagUnclear,
		AllMatches: matches,
		Source:     SourceRules,
	}
	if len(matches) > 0 {
		result.Primary = matches[0].Tag
		result.Confidence = float64(matches[0].Score)
	}
	if len(matches) > 1 {
		result.Secondary = matches[1].Tag
	}

	result.IsTerminal = IsTerminal(result.Primary)
	result.RequiresContext = RequiresContext(result.Primary)

	// Yes/no without anything to say yes or no to is noise.
	hasContext := convCtx.LastQuestion != "" || len(convCtx.LastProducts) > 0
	if result.RequiresContext && !hasContext && result.Confidence > noContextCap {
		result.Confidence = noContextCap
	}

	if len(convCtx.LastProducts) > 0 && IsProductContinuation(result.Primary) {
		result.Confidence += continuationBoost
	}

	return result
}

// needsFallback decides whether the rule result is trustworthy enough to
// skip the LLM round trip.
func needsFallback(r Result, message string) bool {
	if r.Primary == TagUnclear {
		return true
	}
	if r.Confidence < lowConfidenceThreshold {
		return true
	}

	words := strings.Fields(message)
	if len(words) <= shortMessageWords && r.Confidence < shortMessageConfidence {
		return true
	}

	if len(r.AllMatches) >= 3 {
		if r.AllMatches[0].Score-r.AllMatches[2].Score <= ambiguityBand {
			return true
		}
	}

	if len(words) > longMessageWords && strings.Contains(message, "?") && containsConjunction(message) {
		return true
	}

	return false
}

func containsConjunction(message string) bool {
	lower := " " + strings.ToLower(message) + " "
	for _, t := range locale.All() {
		for _, conj := range t.Conjunctions {
			if strings.Contains(lower, " "+conj+" ") {
				return true
			}
		}
	}
	return false
}
