package retrieval

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/postpilot/postpilot/internal/store"
)

// SimilarityResult pairs an indexed post with its similarity to a query.
type SimilarityResult struct {
	Post   store.HistoricalPost `json:"post"`
	Score  float64              `json:"score"`
	Reason string               `json:"reason"`
}

// Index answers similarity queries over embedded historical posts.
//
// Build embeds every post and swaps the finished snapshot in under the
// lock, so a rebuild never leaves the index partially stale: queries see
// either the old snapshot or the new one.
type Index struct {
	mu       sync.RWMutex
	embedder Embedder
	cache    EmbeddingCache

	posts   []store.HistoricalPost
	vectors [][]float32
}

// NewIndex creates an empty index. cache may be nil to disable embedding
// reuse across invocations.
func NewIndex(embedder Embedder, cache EmbeddingCache) *Index {
	return &Index{
		embedder: embedder,
		cache:    cache,
	}
}

// Build embeds the given posts and atomically replaces the index contents.
//
// Cached vectors are reused when they were produced by the current model;
// everything else goes through the collaborator. Any embedding failure
// aborts the build and leaves the previous snapshot serving.
func (idx *Index) Build(ctx context.Context, posts []store.HistoricalPost) error {
	snapshot := make([]store.HistoricalPost, len(posts))
	copy(snapshot, posts)

	vectors := make([][]float32, len(snapshot))
	for i, post := range snapshot {
		vec, err := idx.embedPost(ctx, post)
		if err != nil {
			return fmt.Errorf("embedding post %s: %w", post.ID, err)
		}
		vectors[i] = vec
	}

	idx.mu.Lock()
	idx.posts = snapshot
	idx.vectors = vectors
	idx.mu.Unlock()

	return nil
}

// embedPost returns the vector for one post, consulting the cache first.
func (idx *Index) embedPost(ctx context.Context, post store.HistoricalPost) ([]float32, error) {
	if idx.cache != nil {
		cached, model, err := idx.cache.GetEmbedding(post.ID)
		if err == nil && cached != nil && model == idx.embedder.Model() {
			return cached, nil
		}
	}

	vec, err := idx.embedder.Embed(ctx, embeddingText(post))
	if err != nil {
		return nil, err
	}

	if idx.cache != nil {
		if err := idx.cache.SaveEmbedding(post.ID, vec, idx.embedder.Model()); err != nil {
			log.Printf("Warning: failed to cache embedding for %s: %v", post.ID, err)
		}
	}

	return vec, nil
}

// Query returns the posts most similar to text, sorted by descending
// score. Ties keep ingestion order (stable sort), results below
// minSimilarity are dropped, and the list is truncated to topK.
//
// An empty index or blank query yields an empty result, not an error.
func (idx *Index) Query(ctx context.Context, text string, topK int, minSimilarity float64) ([]SimilarityResult, error) {
	if strings.TrimSpace(text) == "" {
		return []SimilarityResult{}, nil
	}

	idx.mu.RLock()
	posts := idx.posts
	vectors := idx.vectors
	idx.mu.RUnlock()

	if len(posts) == 0 {
		return []SimilarityResult{}, nil
	}

	queryVec, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	results := make([]SimilarityResult, 0, len(posts))
	for i, post := range posts {
		score := cosineSimilarity(queryVec, vectors[i])
		if score < 0 {
			score = 0
		}
		results = append(results, SimilarityResult{
			Post:   post,
			Score:  score,
			Reason: similarityReason(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	filtered := make([]SimilarityResult, 0, topK)
	for _, r := range results {
		if r.Score < minSimilarity {
			continue
		}
		filtered = append(filtered, r)
		if topK > 0 && len(filtered) == topK {
			break
		}
	}

	return filtered, nil
}

// Len returns the number of indexed posts.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.posts)
}

// post looks up an indexed post by id (used by hybrid fusion).
func (idx *Index) post(id string) (store.HistoricalPost, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, p := range idx.posts {
		if p.ID == id {
			return p, true
		}
	}
	return store.HistoricalPost{}, false
}

// embeddingText is the canonical text a post is embedded from.
func embeddingText(post store.HistoricalPost) string {
	return post.Title + " " + post.Body
}

// Similarity reason bands. Fixed design constants, not configurable per
// call.
const (
	verySimilarThreshold = 0.7
	relatedThreshold     = 0.5
	contextualThreshold  = 0.3
)

// similarityReason maps a score to a banded human-readable label.
func similarityReason(score float64) string {
	switch {
	case score > verySimilarThreshold:
		return fmt.Sprintf("Very similar topic and content approach (score: %.2f)", score)
	case score > relatedThreshold:
		return fmt.Sprintf("Related topic with overlapping themes (score: %.2f)", score)
	case score > contextualThreshold:
		return fmt.Sprintf("Similar context or audience interest (score: %.2f)", score)
	default:
		return fmt.Sprintf("Weak similarity (score: %.2f)", score)
	}
}

// cosineSimilarity computes cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct float64
	var normA float64
	var normB float64

	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
