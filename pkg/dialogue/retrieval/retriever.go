// Package retrieval ranks catalog items against a query embedding.
// Ranking is deliberately decoupled from display: card eligibility runs
// as a second pass with its own threshold and requirements.
package retrieval

import (
	"math"
	"sort"
)

// ItemType separates products from informational pages; they carry
// different thresholds and caps.
type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemPage    ItemType = "page"
)

// SimilarityUnknown is the sentinel for malformed or mismatched
// vectors. One bad item must never abort ranking of the rest, so the
// scorer returns this instead of an error or NaN.
const SimilarityUnknown = -1.0

// Item is a catalog entry with its precomputed embedding.
type Item struct {
	ID        string
	Type      ItemType
	Title     string
	Text      string
	Price     float64
	InStock   bool
	Link      string
	ImageURL  string
	Embedding []float32
}

// Scored pairs an item with its similarity to the query.
type Scored struct {
	Item       Item
	Similarity float64
}

// QueryKind carries the intent flags that shift thresholds and caps.
type QueryKind struct {
	Visual       bool
	GeneralInfo  bool
	ProductQuery bool
}

// Config holds the retrieval thresholds; injected from the central
// configuration surface.
type Config struct {
	ProductThreshold       float64
	VisualProductThreshold float64
	PageThreshold          float64
	LowConfidenceScore     float64
	CardThreshold          float64
	MaxCards               int
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		ProductThreshold:       0.38,
		VisualProductThreshold: 0.32,
		PageThreshold:          0.45,
		LowConfidenceScore:     0.45,
		CardThreshold:          0.42,
		MaxCards:               3,
	}
}

// Ranking is the outcome of one retrieval call.
type Ranking struct {
	Products []Scored
	Pages    []Scored
	// LowConfidence is set when the best product score on a product
	// query sits below the confidence floor; the generation layer
	// surfaces this as an uncertainty flag.
	LowConfidence bool
}

// Retriever applies thresholds and caps on top of cosine scoring.
type Retriever struct {
	cfg Config
}

func NewRetriever(cfg Config) *Retriever {
	return &Retriever{cfg: cfg}
}

// CosineSimilarity is the dot product over the product of L2 norms.
// Empty or mismatched vectors yield SimilarityUnknown, never a panic.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return SimilarityUnknown
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return SimilarityUnknown
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every item against the query vector and applies the
// type-specific thresholds and caps. Out-of-stock products are dropped
// before scoring; pages are always retained.
func (r *Retriever) Rank(query []float32, items []Item, kind QueryKind) Ranking {
	productThreshold := r.cfg.ProductThreshold
	if kind.Visual {
		productThreshold = r.cfg.VisualProductThreshold
	}

	var products, pages []Scored
	for _, item := range items {
		if item.Type == ItemProduct && !item.InStock {
			continue
		}
		sim := CosineSimilarity(query, item.Embedding)
		if sim == SimilarityUnknown {
			continue
		}
		scored := Scored{Item: item, Similarity: sim}
		switch item.Type {
		case ItemProduct:
			if sim >= productThreshold {
				products = append(products, scored)
			}
		case ItemPage:
			if sim >= r.cfg.PageThreshold {
				pages = append(pages, scored)
			}
		}
	}

	sortScored(products)
	sortScored(pages)

	products = capTo(products, r.productCap(kind))
	pages = capTo(pages, r.pageCap(kind))

	ranking := Ranking{Products: products, Pages: pages}
	if kind.ProductQuery {
		if len(products) == 0 || products[0].Similarity < r.cfg.LowConfidenceScore {
			ranking.LowConfidence = true
		}
	}
	return ranking
}

// productCap: general-info queries cast the widest net, visual queries a
// middling one, targeted queries stay tight.
func (r *Retriever) productCap(kind QueryKind) int {
	switch {
	case kind.GeneralInfo:
		return 12
	case kind.Visual:
		return 8
	default:
		return 5
	}
}

func (r *Retriever) pageCap(kind QueryKind) int {
	if kind.GeneralInfo {
		return 3
	}
	return 2
}

// EligibleCards runs the display pass: a slightly higher threshold, a
// tighter cap, and the hard requirement that a card has both a link and
// an image to render.
func (r *Retriever) EligibleCards(products []Scored) []Scored {
	var cards []Scored
	for _, s := range products {
		if s.Similarity < r.cfg.CardThreshold {
			continue
		}
		if s.Item.Link == "" || s.Item.ImageURL == "" {
			continue
		}
		cards = append(cards, s)
		if len(cards) == r.cfg.MaxCards {
			break
		}
	}
	return cards
}

func sortScored(items []Scored) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Similarity > items[j].Similarity
	})
}

func capTo(items []Scored, n int) []Scored {
	if len(items) > n {
		return items[:n]
	}
	return items
}
