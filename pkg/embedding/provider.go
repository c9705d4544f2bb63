package embedding

import "context"

// Task types hint the backend at how the vector will be used.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// MaxBatchSize caps one round trip. Larger inputs are chunked by
// EmbedAll; order is preserved across chunks.
const MaxBatchSize = 100

// EmbeddingProvider defines the interface for generating text embeddings.
type EmbeddingProvider interface {
	// Generate embeds a single text.
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)

	// GenerateBatch embeds up to MaxBatchSize texts in one round trip.
	// The result is order-preserving and has exactly one vector per
	// input text; a partial backend failure surfaces as an error
	// rather than a silently truncated result.
	GenerateBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}

// EmbedAll chunks arbitrarily many texts through GenerateBatch while
// preserving input order.
func EmbedAll(ctx context.Context, p EmbeddingProvider, texts []string, taskType string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := p.GenerateBatch(ctx, texts[start:end], taskType)
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}
