// Package locale centralizes the per-language keyword tables used by the
// dialogue rule engines. Business logic never branches on language
// directly; it asks for a table and iterates it.
package locale

import "strings"

// Language is a BCP47-ish tag. Only Swedish and English tables exist today.
type Language string

const (
	Swedish Language = "sv"
	English Language = "en"
)

// Table groups every keyword list one language contributes to the rules.
type Table struct {
	PositiveWords      []string
	NegativeWords      []string
	FrustrationPhrases []string
	SatisfactionWords  []string
	PurchaseWords      []string
	GoodbyeWords       []string
	GreetingWords      []string
	RejectionPhrases   []string
	UncertaintyPhrases []string
	AccountIssueWords  []string
	HumanRequestWords  []string
	OfferVerbs         []string
	Conjunctions       []string
}

var tables = map[Language]Table{
	Swedish: {
		PositiveWords:      []string{"tack", "bra", "perfekt", "toppen", "fint", "gärna", "kul", "snyggt", "härligt"},
		NegativeWords:      []string{"dåligt", "fel", "inte", "tyvärr", "besviken", "dyrt", "krångligt", "sämst"},
		FrustrationPhrases: []string{"du förstår inte", "det här fungerar inte", "vad menar du", "hjälp mig då", "du svarar inte på frågan", "det är inte vad jag frågade"},
		SatisfactionWords:  []string{"tack så mycket", "perfekt", "precis vad jag letade efter", "jättebra", "det hjälpte"},
		PurchaseWords:      []string{"köpa", "beställa", "lägg i varukorgen", "slår till", "jag tar den", "kassan"},
		GoodbyeWords:       []string{"hejdå", "ha det bra", "vi hörs", "tack för hjälpen", "adjö"},
		GreetingWords:      []string{"hej", "hallå", "tjena", "god morgon", "god kväll", "hejsan"},
		RejectionPhrases:   []string{"inte den", "något annat", "passar inte", "gillar inte", "för dyr", "nej tack"},
		UncertaintyPhrases: []string{"jag vet inte", "jag är osäker", "tyvärr har jag ingen information", "det kan jag inte svara på"},
		AccountIssueWords:  []string{"min order", "min beställning", "leverans", "återbetalning", "reklamation", "faktura", "retur av order"},
		HumanRequestWords:  []string{"prata med en människa", "riktig person", "kundtjänst", "kundservice", "mänsklig hjälp", "koppla mig"},
		OfferVerbs:         []string{"vill du", "ska jag", "kan jag visa", "föredrar du", "önskar du"},
		Conjunctions:       []string{"och", "eller", "men", "samt", "fast"},
	},
	English: {
		PositiveWords:      []string{"thanks", "great", "perfect", "nice", "awesome", "love", "good", "helpful"},
		NegativeWords:      []string{"bad", "wrong", "not", "unfortunately", "disappointed", "expensive", "confusing", "worst"},
		FrustrationPhrases: []string{"you don't understand", "this is not working", "what do you mean", "that's not what i asked", "you are not answering", "this is useless"},
		SatisfactionWords:  []string{"thank you so much", "perfect", "exactly what i was looking for", "that helped", "great help"},
		PurchaseWords:      []string{"buy", "order", "add to cart", "i'll take it", "checkout", "purchase"},
		GoodbyeWords:       []string{"bye", "goodbye", "see you", "thanks for the help", "that's all"},
		GreetingWords:      []string{"hello", "hi", "hey", "good morning", "good evening", "howdy"},
		RejectionPhrases:   []string{"not that one", "something else", "doesn't fit", "don't like", "too expensive", "no thanks"},
		UncertaintyPhrases: []string{"i don't know", "i'm not sure", "i have no information", "i cannot answer that"},
		AccountIssueWords:  []string{"my order", "my delivery", "refund", "where is my package", "invoice", "return my order"},
		HumanRequestWords:  []string{"talk to a human", "real person", "customer service", "customer support", "speak to an agent", "connect me"},
		OfferVerbs:         []string{"would you like", "shall i", "can i show", "do you prefer", "do you want"},
		Conjunctions:       []string{"and", "or", "but", "however", "although"},
	},
}

// For returns the table for a language, falling back to English for
// unknown tags so rule engines never see an empty table.
func For(lang Language) Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[English]
}

// All returns every registered table. Rule engines that should match
// regardless of the visitor's language iterate over this.
func All() []Table {
	return []Table{tables[Swedish], tables[English]}
}

// Supported reports whether a table exists for the tag.
func Supported(lang Language) bool {
	_, ok := tables[lang]
	return ok
}

// swedishMarkers are tokens that only occur in Swedish text. Detection is
// intentionally crude: it only has to pick a keyword table, not translate.
var swedishMarkers = []string{"hej", "tack", "vad", "är", "och", "jag", "kostar", "köpa", "något", "så", "får", "till", "present", "hejdå"}

// Detect guesses the language of a message. Defaults to English when no
// Swedish marker is present.
func Detect(text string) Language {
	lower := " " + strings.ToLower(text) + " "
	for _, marker := range swedishMarkers {
		if strings.Contains(lower, " "+marker+" ") || strings.Contains(lower, " "+marker+"?") || strings.Contains(lower, " "+marker+"!") {
			return Swedish
		}
	}
	for _, r := range text {
		if r == 'å' || r == 'ä' || r == 'ö' || r == 'Å' || r == 'Ä' || r == 'Ö' {
			return Swedish
		}
	}
	return English
}

// ContainsAny reports whether the lowercased text contains any of the
// given phrases. Shared helper for every keyword rule.
func ContainsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// CountMatches counts how many of the phrases occur in the text.
func CountMatches(text string, phrases []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}
