package retrieval

import (
	"testing"
)

func newTestKeywordIndex(t *testing.T) *KeywordIndex {
	t.Helper()
	kw, err := NewKeywordIndex()
	if err != nil {
		t.Fatalf("NewKeywordIndex failed: %v", err)
	}
	t.Cleanup(func() { kw.Close() })

	if err := kw.IndexPosts(testPosts()); err != nil {
		t.Fatalf("IndexPosts failed: %v", err)
	}
	return kw
}

func TestKeywordSearch(t *testing.T) {
	kw := newTestKeywordIndex(t)

	results, err := kw.Search("shipping", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) == 0 {
		t.Fatal("Expected at least one hit for 'shipping'")
	}
	if results[0].ID != "p1" {
		t.Errorf("Expected p1 as top hit, got %s", results[0].ID)
	}
	if results[0].Title != "Shipping fast" {
		t.Errorf("Expected stored title, got %q", results[0].Title)
	}
}

func TestKeywordSearchNoMatches(t *testing.T) {
	kw := newTestKeywordIndex(t)

	results, err := kw.Search("blockchain", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no hits, got %d", len(results))
	}
}

func TestFindByTags(t *testing.T) {
	kw := newTestKeywordIndex(t)

	results, err := kw.FindByTags([]string{"hiring"}, 10)
	if err != nil {
		t.Fatalf("FindByTags failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "p2" {
		t.Errorf("Expected only p2 for tag 'hiring', got %+v", results)
	}

	// Tag matching is case-insensitive.
	results, err = kw.FindByTags([]string{"HIRING"}, 10)
	if err != nil {
		t.Fatalf("FindByTags failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "p2" {
		t.Errorf("Expected case-insensitive tag match, got %+v", results)
	}

	// Multiple tags form a disjunction.
	results, err = kw.FindByTags([]string{"hiring", "product"}, 10)
	if err != nil {
		t.Fatalf("FindByTags failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 hits for two tags, got %d", len(results))
	}
}

func TestFindByTagsEmpty(t *testing.T) {
	kw := newTestKeywordIndex(t)

	results, err := kw.FindByTags(nil, 10)
	if err != nil {
		t.Fatalf("FindByTags failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty result for no tags, got %d", len(results))
	}
}

func TestKeywordCount(t *testing.T) {
	kw := newTestKeywordIndex(t)

	count, err := kw.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 indexed posts, got %d", count)
	}
}
