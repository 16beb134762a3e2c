/*
Package retrieval implements the embedding index and similarity search over
historical posts.

Posts are embedded once from their concatenated title and body text and
compared to queries by cosine similarity. A Bleve keyword index backs tag
lookup and hybrid fusion for grounding searches.
*/
package retrieval

import (
	"context"
	"errors"
)

// ErrEmbeddingUnavailable indicates the embedding collaborator failed or
// timed out. The index propagates it rather than serving stale or
// zero-vector results.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// Embedder produces a fixed-dimension vector for a piece of text.
// Implementations must be deterministic for identical input.
type Embedder interface {
	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model identifies the embedding model, used to key the cache.
	Model() string
}

// EmbeddingCache persists vectors between engine invocations so rebuilds
// only call the collaborator for new or changed posts.
type EmbeddingCache interface {
	SaveEmbedding(postID string, vector []float32, model string) error
	GetEmbedding(postID string) ([]float32, string, error)
}
