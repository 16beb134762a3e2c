/*
Package insights derives content recommendations from retrieval results.

The analyzer queries the embedding index with a lower threshold and larger
top-K than direct grounding uses, trading precision for a broader signal,
then turns the result set into tag suggestions and a novelty assessment.
*/
package insights

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/postpilot/postpilot/internal/retrieval"
)

const (
	maxCommonTags    = 5
	maxSuggestedTags = 3
	maxRelatedPosts  = 3
)

// Options control the analyzer's retrieval breadth and novelty bands.
// The defaults are empirically chosen values carried over from production
// tuning; they are exposed for configuration rather than hard-coded.
type Options struct {
	// MinSimilarity is the retrieval floor (broad by design).
	MinSimilarity float64

	// TopK is how many similar posts to consider.
	TopK int

	// CoveredGround is the mean similarity above which the topic counts
	// as already covered.
	CoveredGround float64

	// RelatedGround is the mean similarity above which related content
	// exists worth building on.
	RelatedGround float64
}

// DefaultOptions returns the standard analyzer tuning.
func DefaultOptions() Options {
	return Options{
		MinSimilarity: 0.2,
		TopK:          10,
		CoveredGround: 0.6,
		RelatedGround: 0.3,
	}
}

// RelatedPost is a compact reference to a similar historical post.
type RelatedPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// ContentInsights summarizes how a topic relates to past content.
type ContentInsights struct {
	Topic            string        `json:"topic"`
	SimilarPostCount int           `json:"similar_posts_count"`
	Recommendations  []string      `json:"recommendations"`
	CommonTags       []string      `json:"common_tags"`
	AvgSimilarity    float64       `json:"avg_similarity"`
	RelatedPosts     []RelatedPost `json:"related_posts"`
}

// Analyze runs the analyzer with the default tuning.
func Analyze(ctx context.Context, topic string, index *retrieval.Index) (*ContentInsights, error) {
	return AnalyzeWith(ctx, topic, index, DefaultOptions())
}

// AnalyzeWith derives insights about past content related to a topic.
//
// With no similar posts at all the analyzer short-circuits to a single
// "new topic area" recommendation with zeroed stats. Otherwise the
// recommendation ladder is deterministic: covered ground, related ground,
// or novel territory, with a tag suggestion appended when common tags
// exist.
func AnalyzeWith(ctx context.Context, topic string, index *retrieval.Index, opts Options) (*ContentInsights, error) {
	results, err := index.Query(ctx, topic, opts.TopK, opts.MinSimilarity)
	if err != nil {
		return nil, fmt.Errorf("insight query failed: %w", err)
	}

	if len(results) == 0 {
		return &ContentInsights{
			Topic:           topic,
			Recommendations: []string{"This appears to be a new topic area for you"},
			CommonTags:      []string{},
			RelatedPosts:    []RelatedPost{},
		}, nil
	}

	commonTags := topTags(results, maxCommonTags)

	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	avgSimilarity := sum / float64(len(results))

	recommendations := []string{}
	switch {
	case avgSimilarity > opts.CoveredGround:
		recommendations = append(recommendations, "You've covered similar ground before - consider a fresh angle")
	case avgSimilarity > opts.RelatedGround:
		recommendations = append(recommendations, "Some related content exists - build on previous insights")
	default:
		recommendations = append(recommendations, "Relatively new territory - good opportunity for original content")
	}

	if len(commonTags) > 0 {
		suggested := commonTags
		if len(suggested) > maxSuggestedTags {
			suggested = suggested[:maxSuggestedTags]
		}
		recommendations = append(recommendations, fmt.Sprintf("Consider using tags: %s", strings.Join(suggested, ", ")))
	}

	related := make([]RelatedPost, 0, maxRelatedPosts)
	for _, r := range results {
		if len(related) == maxRelatedPosts {
			break
		}
		related = append(related, RelatedPost{
			ID:         r.Post.ID,
			Title:      r.Post.Title,
			Similarity: r.Score,
		})
	}

	return &ContentInsights{
		Topic:            topic,
		SimilarPostCount: len(results),
		Recommendations:  recommendations,
		CommonTags:       commonTags,
		AvgSimilarity:    avgSimilarity,
		RelatedPosts:     related,
	}, nil
}

// topTags returns the most frequent tags across the result set, ties
// broken by first-seen order.
func topTags(results []retrieval.SimilarityResult, limit int) []string {
	counts := make(map[string]int)
	order := []string{}

	for _, r := range results {
		for _, tag := range r.Post.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}

	return order
}
