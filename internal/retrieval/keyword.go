package retrieval

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/postpilot/postpilot/internal/store"
)

// KeywordResult is a keyword-index hit with its BM25 relevance score.
type KeywordResult struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// KeywordIndex provides BM25 keyword search and tag lookup over posts,
// backed by an in-memory Bleve index.
type KeywordIndex struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewKeywordIndex creates a new in-memory keyword index.
func NewKeywordIndex() (*KeywordIndex, error) {
	index, err := bleve.NewMemOnly(buildPostMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &KeywordIndex{bleveIndex: index}, nil
}

// buildPostMapping creates the Bleve index mapping for post documents.
func buildPostMapping() mapping.IndexMapping {
	postMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	postMapping.AddFieldMappingsAt("title", titleFieldMapping)

	bodyFieldMapping := bleve.NewTextFieldMapping()
	postMapping.AddFieldMappingsAt("body", bodyFieldMapping)

	// Tags are matched whole, not tokenized. Lowercased at index and
	// query time so lookup is case-insensitive.
	tagFieldMapping := bleve.NewTextFieldMapping()
	tagFieldMapping.Analyzer = keyword.Name
	postMapping.AddFieldMappingsAt("tags", tagFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", postMapping)

	return indexMapping
}

// IndexPosts indexes all posts in one batch.
func (k *KeywordIndex) IndexPosts(posts []store.HistoricalPost) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	batch := k.bleveIndex.NewBatch()

	for _, post := range posts {
		tags := make([]string, len(post.Tags))
		for i, tag := range post.Tags {
			tags[i] = strings.ToLower(tag)
		}

		doc := map[string]interface{}{
			"title": post.Title,
			"body":  post.Body,
			"tags":  tags,
		}

		if err := batch.Index(post.ID, doc); err != nil {
			log.Printf("Warning: failed to index post %s: %v", post.ID, err)
		}
	}

	if err := k.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index posts: %w", err)
	}

	return nil
}

// Search performs BM25 keyword search over titles and bodies.
func (k *KeywordIndex) Search(query string, limit int) ([]KeywordResult, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	searchRequest := bleve.NewSearchRequestOptions(matchQuery, limit, 0, false)
	searchRequest.Fields = []string{"title"}

	results, err := k.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// FindByTags returns posts carrying any of the given tags.
func (k *KeywordIndex) FindByTags(tags []string, limit int) ([]KeywordResult, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if len(tags) == 0 {
		return []KeywordResult{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	disjunction := bleve.NewDisjunctionQuery()
	for _, tag := range tags {
		termQuery := bleve.NewTermQuery(strings.ToLower(tag))
		termQuery.SetField("tags")
		disjunction.AddQuery(termQuery)
	}

	searchRequest := bleve.NewSearchRequestOptions(disjunction, limit, 0, false)
	searchRequest.Fields = []string{"title"}

	results, err := k.bleveIndex.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// Count returns the total number of indexed posts.
func (k *KeywordIndex) Count() (uint64, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	docCount, err := k.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (k *KeywordIndex) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.bleveIndex != nil {
		return k.bleveIndex.Close()
	}

	return nil
}

// convertBleveResults converts Bleve hits to KeywordResult.
func convertBleveResults(results *bleve.SearchResult) []KeywordResult {
	keywordResults := make([]KeywordResult, 0, len(results.Hits))

	for _, hit := range results.Hits {
		title, _ := hit.Fields["title"].(string)
		keywordResults = append(keywordResults, KeywordResult{
			ID:    hit.ID,
			Title: title,
			Score: hit.Score,
		})
	}

	return keywordResults
}
