package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// SavePost upserts a historical post.
//
// Replacing a post drops its cached embedding so the index never serves a
// vector computed from stale text.
func (s *SQLiteStore) SavePost(post HistoricalPost) error {
	if post.ID == "" {
		return &ValidationError{Field: "id", Value: post.ID, Message: "must not be empty"}
	}
	if post.Title == "" && post.Body == "" {
		return &ValidationError{Field: "title", Value: post.Title, Message: "post needs a title or body"}
	}

	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO posts (id, title, body, tags, published_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		post.ID,
		post.Title,
		post.Body,
		tagsToJSON(post.Tags),
		post.PublishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", post.ID, err)
	}

	if _, err := s.db.Exec("DELETE FROM post_embeddings WHERE post_id = ?", post.ID); err != nil {
		log.Printf("Warning: failed to invalidate embedding for %s: %v", post.ID, err)
	}

	return nil
}

// GetPost retrieves one post by id. Returns nil when the post is unknown.
func (s *SQLiteStore) GetPost(id string) (*HistoricalPost, error) {
	if !s.enabled || s.db == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT id, title, body, tags, published_at
		FROM posts
		WHERE id = ?
	`, id)

	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post %s: %w", id, err)
	}

	return post, nil
}

// ListPosts returns all posts in ingestion order. Ingestion order is the
// tie-break contract for similarity ranking, so the ordering matters.
func (s *SQLiteStore) ListPosts() ([]HistoricalPost, error) {
	if !s.enabled || s.db == nil {
		return []HistoricalPost{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, title, body, tags, published_at
		FROM posts
		ORDER BY rowid
	`)
	if err != nil {
		log.Printf("Warning: failed to query posts: %v", err)
		return []HistoricalPost{}, nil
	}
	defer rows.Close()

	posts := []HistoricalPost{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Printf("Warning: failed to scan post row: %v", err)
			continue
		}
		posts = append(posts, *post)
	}

	return posts, nil
}

// TopPerformingPosts returns posts joined with metrics, ranked by
// engagement rate.
func (s *SQLiteStore) TopPerformingPosts(limit int) ([]PostPerformance, error) {
	if !s.enabled || s.db == nil {
		return []PostPerformance{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT p.id, p.title, m.engagement_rate, m.impressions,
		       m.reactions + m.comments + m.shares
		FROM metrics m
		JOIN posts p ON p.id = m.post_id
		ORDER BY m.engagement_rate DESC
		LIMIT ?
	`, limit)
	if err != nil {
		log.Printf("Warning: failed to query top posts: %v", err)
		return []PostPerformance{}, nil
	}
	defer rows.Close()

	result := []PostPerformance{}
	for rows.Next() {
		var p PostPerformance
		if err := rows.Scan(&p.PostID, &p.Title, &p.EngagementRate, &p.Impressions, &p.Interactions); err != nil {
			log.Printf("Warning: failed to scan performance row: %v", err)
			continue
		}
		result = append(result, p)
	}

	return result, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*HistoricalPost, error) {
	var post HistoricalPost
	var tagsJSON, publishedStr string

	if err := row.Scan(&post.ID, &post.Title, &post.Body, &tagsJSON, &publishedStr); err != nil {
		return nil, err
	}

	post.Tags = jsonToTags(tagsJSON)

	published, err := time.Parse(time.RFC3339, publishedStr)
	if err != nil {
		return nil, fmt.Errorf("bad published_at for post %s: %w", post.ID, err)
	}
	post.PublishedAt = published

	return &post, nil
}
