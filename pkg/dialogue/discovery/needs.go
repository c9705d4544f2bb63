package discovery

import (
	"regexp"
	"strings"
)

// SignalCategory names one kind of "I actually need X" evidence.
type SignalCategory string

const (
	SignalRecipient   SignalCategory = "recipient"
	SignalOccasion    SignalCategory = "occasion"
	SignalBudget      SignalCategory = "budget"
	SignalPreference  SignalCategory = "preference"
	SignalUseCase     SignalCategory = "use_case"
	SignalCategoryHit SignalCategory = "category"
)

// needsSignal is one row of the weighted signal table. The table is
// additive over the cumulative user text, which makes the score
// monotonically non-decreasing as the conversation grows.
type needsSignal struct {
	Category SignalCategory
	Weight   int
	Pattern  *regexp.Regexp
}

var needsTable = []needsSignal{
	// Who the purchase is for weighs heaviest: it pins down the catalog slice.
	{SignalRecipient, 3, regexp.MustCompile(`(?i)\b(till|åt|for)\s+(min|mina|my)?\s*(mamma|pappa|mor|far|fru|man|flickvän|pojkvän|syster|bror|dotter|son|vän|kollega|mig själv|mom|mother|dad|father|wife|husband|girlfriend|boyfriend|sister|brother|daughter|son|friend|colleague|myself)\b`)},
	{SignalOccasion, 2, regexp.MustCompile(`(?i)\b(födelsedag|jul|julklapp|bröllop|examen|student|alla hjärtans dag|mors dag|fars dag|birthday|christmas|wedding|graduation|anniversary|valentine)\b`)},
	{SignalBudget, 2, regexp.MustCompile(`(?i)(\d+[.,]?\d*\s*(kr|sek|kronor|dollar|\$|€|usd|eur))|((kr|sek|\$|€)\s*\d+)|\b(budget|prisklass|price range|max\s+\d+)\b`)},
	{SignalPreference, 2, regexp.MustCompile(`(?i)\b(gillar|föredrar|tycker om|älskar|likes?|prefers?|loves?|favorite|favorit|stil|style|färg|colou?r)\b`)},
	{SignalUseCase, 2, regexp.MustCompile(`(?i)\b(använda (till|för)|ska användas|passar (till|för)|use (it )?for|to wear|för träning|for (running|cooking|work|travel|the office))\b`)},
	{SignalCategoryHit, 1, regexp.MustCompile(`(?i)\b(klocka|klockor|smycke|smycken|halsband|ring|armband|väska|väskor|sko|skor|jacka|tröja|klänning|parfym|doft|watch(es)?|jewell?ery|necklace|bracelet|bag|shoe|shoes|jacket|sweater|dress|perfume|fragrance|headphones|hörlurar)\b`)},
}

// SignalMatch records one matched category with its weight.
type SignalMatch struct {
	Category SignalCategory
	Weight   int
}

// Assessment is the weighted needs score over the user's cumulative
// text. Each category counts once no matter how often it recurs.
type Assessment struct {
	Score      int
	Matched    []SignalMatch
	Categories []SignalCategory
}

// AssessNeeds scans the concatenated user text against the signal table.
func AssessNeeds(userText string) Assessment {
	text := strings.TrimSpace(userText)
	a := Assessment{}
	if text == "" {
		return a
	}

	for _, sig := range needsTable {
		if sig.Pattern.MatchString(text) {
			a.Score += sig.Weight
			a.Matched = append(a.Matched, SignalMatch{Category: sig.Category, Weight: sig.Weight})
			a.Categories = append(a.Categories, sig.Category)
		}
	}
	return a
}
