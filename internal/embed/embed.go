package embed

import "context"

// Embedder maps text to fixed-length vectors for semantic similarity.
// Implementations must be deterministic for identical input text and model
// version, and safe for concurrent use: the underlying model is loaded once
// and treated as read-only afterwards.
type Embedder interface {
	// EmbedQuery encodes a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts encodes a batch of texts in one call; the result order
	// matches the input order. Batching is how section encoding stays
	// within the request time budget.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
