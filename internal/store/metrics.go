package store

import (
	"fmt"
	"log"
	"time"
)

// RecordMetric validates and stores an engagement metric.
//
// The engagement rate is computed here, at ingestion, and never
// recalculated afterwards. Malformed records are rejected with a
// ValidationError naming the offending field.
func (s *SQLiteStore) RecordMetric(metric EngagementMetric) error {
	if err := validateMetric(metric); err != nil {
		return err
	}

	metric.EngagementRate = ComputeEngagementRate(metric)

	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO metrics (post_id, impressions, reactions, comments, shares, clicks, published_at, engagement_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		metric.PostID,
		metric.Impressions,
		metric.Reactions,
		metric.Comments,
		metric.Shares,
		metric.Clicks,
		metric.PublishedAt.Format(time.RFC3339),
		metric.EngagementRate,
	)
	if err != nil {
		return fmt.Errorf("failed to record metric for %s: %w", metric.PostID, err)
	}

	return nil
}

// ListMetrics returns all engagement metrics in ingestion order.
func (s *SQLiteStore) ListMetrics() ([]EngagementMetric, error) {
	if !s.enabled || s.db == nil {
		return []EngagementMetric{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT post_id, impressions, reactions, comments, shares, clicks, published_at, engagement_rate
		FROM metrics
		ORDER BY id
	`)
	if err != nil {
		log.Printf("Warning: failed to query metrics: %v", err)
		return []EngagementMetric{}, nil
	}
	defer rows.Close()

	metrics := []EngagementMetric{}
	for rows.Next() {
		var m EngagementMetric
		var publishedStr string

		if err := rows.Scan(
			&m.PostID,
			&m.Impressions,
			&m.Reactions,
			&m.Comments,
			&m.Shares,
			&m.Clicks,
			&publishedStr,
			&m.EngagementRate,
		); err != nil {
			log.Printf("Warning: failed to scan metric row: %v", err)
			continue
		}

		m.PublishedAt, err = time.Parse(time.RFC3339, publishedStr)
		if err != nil {
			log.Printf("Warning: failed to parse metric timestamp: %v", err)
			continue
		}

		metrics = append(metrics, m)
	}

	return metrics, nil
}

func validateMetric(m EngagementMetric) error {
	if m.PostID == "" {
		return &ValidationError{Field: "post_id", Value: m.PostID, Message: "must not be empty"}
	}
	if m.Impressions < 0 {
		return &ValidationError{Field: "impressions", Value: m.Impressions, Message: "must not be negative"}
	}
	if m.Reactions < 0 {
		return &ValidationError{Field: "reactions", Value: m.Reactions, Message: "must not be negative"}
	}
	if m.Comments < 0 {
		return &ValidationError{Field: "comments", Value: m.Comments, Message: "must not be negative"}
	}
	if m.Shares < 0 {
		return &ValidationError{Field: "shares", Value: m.Shares, Message: "must not be negative"}
	}
	if m.Clicks < 0 {
		return &ValidationError{Field: "clicks", Value: m.Clicks, Message: "must not be negative"}
	}
	if m.PublishedAt.IsZero() {
		return &ValidationError{Field: "published_at", Value: m.PublishedAt, Message: "must be set"}
	}
	return nil
}
