package retrieval

import (
	"context"
	"sort"
)

// FusionConfig defines weights for hybrid score fusion.
type FusionConfig struct {
	SemanticWeight float64
	KeywordWeight  float64
}

// DefaultFusionConfig provides balanced fusion (70% semantic, 30% keyword).
var DefaultFusionConfig = FusionConfig{
	SemanticWeight: 0.7,
	KeywordWeight:  0.3,
}

// SearchHybrid combines semantic similarity with normalized BM25 keyword
// scores. Used for grounding searches where exact phrasing matters as much
// as meaning. Falls back to pure keyword results when no semantic match
// clears the floor.
func SearchHybrid(ctx context.Context, idx *Index, kw *KeywordIndex, query string, limit int, config FusionConfig) ([]SimilarityResult, error) {
	if limit <= 0 {
		limit = 10
	}

	semanticResults, err := idx.Query(ctx, query, limit*2, 0)
	if err != nil {
		return nil, err
	}

	keywordResults, err := kw.Search(query, limit*2)
	if err != nil {
		// Semantic side still answers the query on its own.
		keywordResults = nil
	}
	keywordResults = normalizeScores(keywordResults)

	fused := fuseScores(idx, semanticResults, keywordResults, config)

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}

	return fused, nil
}

// fuseScores merges the two result sets by post id using weighted fusion.
func fuseScores(idx *Index, semantic []SimilarityResult, keyword []KeywordResult, config FusionConfig) []SimilarityResult {
	semanticByID := make(map[string]SimilarityResult, len(semantic))
	order := make([]string, 0, len(semantic)+len(keyword))

	for _, r := range semantic {
		semanticByID[r.Post.ID] = r
		order = append(order, r.Post.ID)
	}

	keywordByID := make(map[string]KeywordResult, len(keyword))
	for _, r := range keyword {
		if _, seen := keywordByID[r.ID]; seen {
			continue
		}
		keywordByID[r.ID] = r
		if _, seen := semanticByID[r.ID]; !seen {
			order = append(order, r.ID)
		}
	}

	fused := make([]SimilarityResult, 0, len(order))
	for _, id := range order {
		semRes, hasSemantic := semanticByID[id]
		kwRes, hasKeyword := keywordByID[id]

		switch {
		case hasSemantic && hasKeyword:
			semRes.Score = config.SemanticWeight*semRes.Score + config.KeywordWeight*kwRes.Score
			semRes.Reason = similarityReason(semRes.Score)
			fused = append(fused, semRes)
		case hasSemantic:
			semRes.Score = config.SemanticWeight * semRes.Score
			semRes.Reason = similarityReason(semRes.Score)
			fused = append(fused, semRes)
		case hasKeyword:
			post, ok := idx.post(id)
			if !ok {
				continue
			}
			score := config.KeywordWeight * kwRes.Score
			fused = append(fused, SimilarityResult{
				Post:   post,
				Score:  score,
				Reason: similarityReason(score),
			})
		}
	}

	return fused
}

// normalizeScores normalizes keyword scores to the [0, 1] range so they
// are comparable with cosine similarities.
func normalizeScores(results []KeywordResult) []KeywordResult {
	if len(results) == 0 {
		return results
	}

	minScore := results[0].Score
	maxScore := results[0].Score

	for _, result := range results {
		if result.Score < minScore {
			minScore = result.Score
		}
		if result.Score > maxScore {
			maxScore = result.Score
		}
	}

	normalized := make([]KeywordResult, len(results))

	// When all scores are equal, rank them all at 1.0.
	if maxScore == minScore {
		for i, result := range results {
			normalized[i] = result
			normalized[i].Score = 1.0
		}
		return normalized
	}

	for i, result := range results {
		normalized[i] = result
		normalized[i].Score = (result.Score - minScore) / (maxScore - minScore)
	}

	return normalized
}
