package retrieval

import (
	"fmt"
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"empty a", nil, []float32{1, 0}, SimilarityUnknown},
		{"length mismatch", []float32{1, 0}, []float32{1}, SimilarityUnknown},
		{"zero vector", []float32{1, 0}, []float32{0, 0}, SimilarityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

// unit builds a unit vector whose cosine similarity against [1,0] is sim.
func unit(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func TestRankFiltersAndSorts(t *testing.T) {
	r := NewRetriever(DefaultConfig())
	query := []float32{1, 0}

	items := []Item{
		{ID: "weak", Type: ItemProduct, InStock: true, Embedding: unit(0.10)},
		{ID: "good", Type: ItemProduct, InStock: true, Embedding: unit(0.60)},
		{ID: "best", Type: ItemProduct, InStock: true, Embedding: unit(0.95)},
		{ID: "sold-out", Type: ItemProduct, InStock: false, Embedding: unit(0.99)},
		{ID: "broken", Type: ItemProduct, InStock: true, Embedding: []float32{1}},
		{ID: "shipping-page", Type: ItemPage, Embedding: unit(0.80)},
		{ID: "faq-page", Type: ItemPage, Embedding: unit(0.20)},
	}

	ranking := r.Rank(query, items, QueryKind{ProductQuery: true})

	if len(ranking.Products) != 2 {
		t.Fatalf("Products = %d, want 2", len(ranking.Products))
	}
	if ranking.Products[0].Item.ID != "best" || ranking.Products[1].Item.ID != "good" {
		t.Errorf("product order = %s, %s", ranking.Products[0].Item.ID, ranking.Products[1].Item.ID)
	}
	if len(ranking.Pages) != 1 || ranking.Pages[0].Item.ID != "shipping-page" {
		t.Errorf("Pages = %v", ranking.Pages)
	}
	if ranking.LowConfidence {
		t.Error("LowConfidence = true, want false with a strong top hit")
	}
}

func TestRankVisualThreshold(t *testing.T) {
	r := NewRetriever(DefaultConfig())
	query := []float32{1, 0}
	items := []Item{
		{ID: "borderline", Type: ItemProduct, InStock: true, Embedding: unit(0.35)},
	}

	// Below the standard product threshold...
	if got := r.Rank(query, items, QueryKind{ProductQuery: true}); len(got.Products) != 0 {
		t.Errorf("standard query kept %d products, want 0", len(got.Products))
	}
	// ...but within reach of a visual query.
	if got := r.Rank(query, items, QueryKind{Visual: true}); len(got.Products) != 1 {
		t.Errorf("visual query kept %d products, want 1", len(got.Products))
	}
}

func TestRankCaps(t *testing.T) {
	r := NewRetriever(DefaultConfig())
	query := []float32{1, 0}

	var items []Item
	for i := 0; i < 14; i++ {
		items = append(items, Item{
			ID:        fmt.Sprintf("p%d", i),
			Type:      ItemProduct,
			InStock:   true,
			Embedding: unit(0.95 - float64(i)*0.02),
		})
	}

	tests := []struct {
		name string
		kind QueryKind
		want int
	}{
		{"targeted query", QueryKind{ProductQuery: true}, 5},
		{"visual query", QueryKind{Visual: true}, 8},
		{"general info query", QueryKind{GeneralInfo: true}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Rank(query, items, tt.kind)
			if len(got.Products) != tt.want {
				t.Errorf("Products = %d, want %d", len(got.Products), tt.want)
			}
		})
	}
}

func TestRankLowConfidence(t *testing.T) {
	r := NewRetriever(DefaultConfig())
	query := []float32{1, 0}

	// No hits at all on a product query.
	if got := r.Rank(query, nil, QueryKind{ProductQuery: true}); !got.LowConfidence {
		t.Error("LowConfidence = false with no products")
	}

	// A hit that clears the retention threshold but not the confidence floor.
	items := []Item{{ID: "meh", Type: ItemProduct, InStock: true, Embedding: unit(0.40)}}
	got := r.Rank(query, items, QueryKind{ProductQuery: true})
	if len(got.Products) != 1 {
		t.Fatalf("Products = %d, want 1", len(got.Products))
	}
	if !got.LowConfidence {
		t.Error("LowConfidence = false, want true below the confidence floor")
	}

	// Non-product queries never set the flag.
	if got := r.Rank(query, nil, QueryKind{GeneralInfo: true}); got.LowConfidence {
		t.Error("LowConfidence = true on a general info query")
	}
}

func TestEligibleCards(t *testing.T) {
	r := NewRetriever(DefaultConfig())

	products := []Scored{
		{Item: Item{ID: "complete", Link: "https://shop.test/p1", ImageURL: "https://img.test/p1.jpg"}, Similarity: 0.95},
		{Item: Item{ID: "no-image", Link: "https://shop.test/p2"}, Similarity: 0.90},
		{Item: Item{ID: "no-link", ImageURL: "https://img.test/p3.jpg"}, Similarity: 0.88},
		{Item: Item{ID: "below-card-threshold", Link: "https://shop.test/p4", ImageURL: "https://img.test/p4.jpg"}, Similarity: 0.41},
	}

	cards := r.EligibleCards(products)
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	if cards[0].Item.ID != "complete" {
		t.Errorf("card = %s, want complete", cards[0].Item.ID)
	}
}

func TestEligibleCardsCap(t *testing.T) {
	r := NewRetriever(DefaultConfig())

	var products []Scored
	for i := 0; i < 5; i++ {
		products = append(products, Scored{
			Item: Item{
				ID:       fmt.Sprintf("p%d", i),
				Link:     "https://shop.test/p",
				ImageURL: "https://img.test/p.jpg",
			},
			Similarity: 0.9,
		})
	}

	if cards := r.EligibleCards(products); len(cards) != 3 {
		t.Errorf("cards = %d, want 3", len(cards))
	}
}
