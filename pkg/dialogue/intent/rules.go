package intent

import "regexp"

// Tag is the fixed classification vocabulary. LLM fallback results are
// mapped onto the same set; anything outside it becomes TagUnclear.
type Tag string

const (
	TagGreeting         Tag = "GREETING"
	TagGoodbye          Tag = "GOODBYE"
	TagThanks           Tag = "THANKS"
	TagAffirmative      Tag = "AFFIRMATIVE"
	TagNegative         Tag = "NEGATIVE"
	TagProductDiscovery Tag = "PRODUCT_DISCOVERY"
	TagProductInfo      Tag = "PRODUCT_INFO"
	TagPriceCheck       Tag = "PRICE_CHECK"
	TagAvailability     Tag = "AVAILABILITY_CHECK"
	TagPurchase         Tag = "PURCHASE_INTENT"
	TagCompare          Tag = "COMPARE_PRODUCTS"
	TagDecisionHelp     Tag = "DECISION_HELP"
	TagGiftInquiry      Tag = "GIFT_INQUIRY"
	TagVisualSearch     Tag = "VISUAL_SEARCH"
	TagShippingInfo     Tag = "SHIPPING_INFO"
	TagReturnsInfo      Tag = "RETURNS_INFO"
	TagContactRequest   Tag = "CONTACT_REQUEST"
	TagStoreInfo        Tag = "STORE_INFO"
	TagOffTopic         Tag = "OFF_TOPIC"
	TagUnclear          Tag = "UNCLEAR"
)

// Scoring constants. A regex hit is worth more than a loose keyword
// because regexes anchor on phrasing, not single tokens.
const (
	regexHitScore   = 10
	keywordHitScore = 3
)

// terminalTags end or sidestep the shopping flow; the discovery gate
// never attaches product context to them.
var terminalTags = map[Tag]bool{
	TagGreeting:       true,
	TagGoodbye:        true,
	TagThanks:         true,
	TagShippingInfo:   true,
	TagReturnsInfo:    true,
	TagContactRequest: true,
	TagStoreInfo:      true,
	TagOffTopic:       true,
}

// contextDependentTags are meaningless without a pending question or
// previously shown products; their confidence is capped in that case.
var contextDependentTags = map[Tag]bool{
	TagAffirmative: true,
	TagNegative:    true,
}

// productContinuationTags get a confidence boost when products are
// already on the table, since they most often refer to those products.
var productContinuationTags = map[Tag]bool{
	TagProductInfo: true,
	TagPriceCheck:  true,
	TagPurchase:    true,
	TagAffirmative: true,
}

// rule is one row of the dispatch table: any first-matching regex scores
// regexHitScore, every contained keyword adds keywordHitScore. Patterns
// cover Swedish and English side by side; the table is data, so adding a
// locale means adding rows, not code.
type rule struct {
	tag      Tag
	patterns []*regexp.Regexp
	keywords []string
}

var ruleTable = []rule{
	{
		tag: TagGreeting,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(hej|hejsan|hallå|tjena|god\s*(morgon|kväll|dag))\s*[!.]*\s*$`),
			regexp.MustCompile(`(?i)^\s*(hello|hi|hey|howdy|good\s*(morning|evening|afternoon))\s*[!.]*\s*$`),
		},
		keywords: []string{"hej", "hello", "hallå"},
	},
	{
		tag: TagGoodbye,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(hejdå|ha det bra|vi hörs|adjö)\b`),
			regexp.MustCompile(`(?i)\b(bye|goodbye|see you|that's all)\b`),
		},
		keywords: []string{"hejdå", "bye"},
	},
	{
		tag: TagThanks,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(tack|tusen tack|tack så mycket)\s*[!.]*\s*$`),
			regexp.MustCompile(`(?i)^\s*(thanks|thank you|thx)\s*[!.]*\s*$`),
		},
		keywords: []string{"tack", "thanks", "thank you"},
	},
	{
		tag: TagAffirmative,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(ja|japp|absolut|gärna|okej|ok|visst)\s*[!.]*\s*$`),
			regexp.MustCompile(`(?i)^\s*(yes|yeah|yep|sure|okay|ok|sounds good)\s*[!.]*\s*$`),
		},
		keywords: []string{"ja tack", "yes please"},
	},
	{
		tag: TagNegative,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^\s*(nej|nja|inte riktigt|nej tack)\s*[!.]*\s*$`),
			regexp.MustCompile(`(?i)^\s*(no|nope|not really|no thanks)\s*[!.]*\s*$`),
		},
		keywords: []string{"nej tack", "no thanks"},
	},
	{
		tag: TagProductDiscovery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(letar efter|söker|behöver|visa mig|har ni)\b.*\b(något|produkt|present|vara|alternativ)\b`),
			regexp.MustCompile(`(?i)\b(looking for|searching for|need|show me|do you have)\b`),
			regexp.MustCompile(`(?i)\b(tips på|förslag på|rekommendera)\b`),
		},
		keywords: []string{"letar efter", "söker", "looking for", "recommend", "rekommendera", "förslag"},
	},
	{
		tag: TagProductInfo,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(berätta (mer )?om|vad är det för|vilket material|hur stor|hur fungerar)\b`),
			regexp.MustCompile(`(?i)\b(tell me (more )?about|what is it made of|how does it work|more details)\b`),
		},
		keywords: []string{"material", "storlek", "detaljer", "details", "specifications", "mått"},
	},
	{
		tag: TagPriceCheck,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(vad kostar|hur mycket kostar|priset på|vad ligger .* på)\b`),
			regexp.MustCompile(`(?i)\b(how much (is|does)|what('s| is) the price|price of)\b`),
		},
		keywords: []string{"kostar", "pris", "price", "cost", "kronor"},
	},
	{
		tag: TagAvailability,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(finns (den|det|de) (i lager|kvar|inne)|när kommer .* in)\b`),
			regexp.MustCompile(`(?i)\b(in stock|available|when will .* be back)\b`),
		},
		keywords: []string{"i lager", "lagerstatus", "in stock", "available", "tillgänglig"},
	},
	{
		tag: TagPurchase,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(jag (tar|köper) (den|det|dem)|lägg .* i varukorgen|till kassan|slår till)\b`),
			regexp.MustCompile(`(?i)\b(i('ll| will) (take|buy) (it|this|that)|add .* to (the )?cart|checkout)\b`),
		},
		keywords: []string{"köpa", "beställa", "buy", "order", "varukorg", "cart"},
	},
	{
		tag: TagCompare,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(vad är skillnaden|jämför|vilken är bäst av|eller den)\b`),
			regexp.MustCompile(`(?i)\b(what('s| is) the difference|compare|which (one )?is better)\b`),
		},
		keywords: []string{"skillnad", "jämföra", "difference", "compare", "versus", " vs "},
	},
	{
		tag: TagDecisionHelp,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(vilken ska jag (välja|ta)|vad tycker du|hjälp mig välja|kan inte bestämma)\b`),
			regexp.MustCompile(`(?i)\b(which (one )?should i|what do you (think|recommend)|help me (choose|decide)|can't decide)\b`),
		},
		keywords: []string{"välja", "bestämma", "choose", "decide", "tycker du"},
	},
	{
		tag: TagGiftInquiry,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(present (till|åt)|ge bort|presenttips|julklapp|födelsedagspresent)\b`),
			regexp.MustCompile(`(?i)\b(gift for|present for|birthday (gift|present)|christmas (gift|present))\b`),
		},
		keywords: []string{"present", "gift", "julklapp", "födelsedag", "birthday"},
	},
	{
		tag: TagVisualSearch,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(något (liknande|som liknar)|ser ut som|samma stil som|i samma färg)\b`),
			regexp.MustCompile(`(?i)\b(something (like|similar to)|looks like|same style as|in the same colou?r)\b`),
		},
		keywords: []string{"liknande", "similar", "stil", "style", "färg", "colour", "color"},
	},
	{
		tag: TagShippingInfo,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(hur lång .* leverans|leveranstid|fraktkostnad|skickar ni till|när får jag)\b`),
			regexp.MustCompile(`(?i)\b(shipping (cost|time)|delivery time|do you ship to|how long .* deliver)\b`),
		},
		keywords: []string{"frakt", "leverans", "shipping", "delivery"},
	},
	{
		tag: TagReturnsInfo,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(kan jag (returnera|lämna tillbaka)|öppet köp|bytesrätt|ångerrätt)\b`),
			regexp.MustCompile(`(?i)\b(can i return|return policy|exchange it|money back)\b`),
		},
		keywords: []string{"retur", "returnera", "return", "ångerrätt", "refund policy"},
	},
	{
		tag: TagContactRequest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(prata med (någon|en människa|kundtjänst)|ring(a)? (er|upp)|kontakta er)\b`),
			regexp.MustCompile(`(?i)\b(talk to (someone|a human|support)|contact you|call you|customer service)\b`),
		},
		keywords: []string{"kundtjänst", "kundservice", "customer service", "kontakt", "contact"},
	},
	{
		tag: TagStoreInfo,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(var ligger (butiken|ni)|öppettider|har ni (en )?butik)\b`),
			regexp.MustCompile(`(?i)\b(opening hours|where (is|are) (the store|you) located|physical store)\b`),
		},
		keywords: []string{"öppettider", "butik", "opening hours", "address", "adress"},
	},
	{
		tag: TagOffTopic,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(vad är meningen med livet|berätta en vits|vad tycker du om vädret)\b`),
			regexp.MustCompile(`(?i)\b(meaning of life|tell me a joke|what do you think about the weather)\b`),
		},
		keywords: []string{"vits", "joke", "väder", "weather"},
	},
}

// IsTerminal reports whether the tag ends or sidesteps the shopping flow.
func IsTerminal(tag Tag) bool {
	return terminalTags[tag]
}

// RequiresContext reports whether the tag only makes sense as an answer
// to something the assistant said.
func RequiresContext(tag Tag) bool {
	return contextDependentTags[tag]
}

// IsProductContinuation reports whether the tag usually refers to
// already-shown products.
func IsProductContinuation(tag Tag) bool {
	return productContinuationTags[tag]
}

// KnownTag maps a free-form label (typically from the LLM fallback) onto
// the vocabulary. Unknown labels collapse to TagUnclear.
func KnownTag(label string) Tag {
	t := Tag(label)
	if t == TagUnclear {
		return TagUnclear
	}
	for _, r := range ruleTable {
		if r.tag == t {
			return t
		}
	}
	return TagUnclear
}
