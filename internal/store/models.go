/*
Package store provides data models for historical posts, engagement metrics,
and cached embeddings.

Posts and metrics are append-only facts ingested from external sources;
embeddings are a derived cache keyed by post and model version.
*/
package store

import "time"

// HistoricalPost is a previously published post, immutable once ingested.
type HistoricalPost struct {
	// ID uniquely identifies the post.
	ID string `json:"id"`

	// Title is the post headline.
	Title string `json:"title"`

	// Body is the full post text.
	Body string `json:"body"`

	// Tags are the labels attached to the post.
	Tags []string `json:"tags"`

	// PublishedAt is when the post went live.
	PublishedAt time.Time `json:"published_at"`
}

// EngagementMetric records the observed engagement for one published post.
type EngagementMetric struct {
	// PostID references the post the metric belongs to.
	PostID string `json:"post_id"`

	// Impressions is how many times the post was shown.
	Impressions int `json:"impressions"`

	// Reactions, Comments, Shares, and Clicks are interaction counts.
	Reactions int `json:"reactions"`
	Comments  int `json:"comments"`
	Shares    int `json:"shares"`
	Clicks    int `json:"clicks"`

	// PublishedAt is when the post went live (drives time-window bucketing).
	PublishedAt time.Time `json:"published_at"`

	// EngagementRate is (reactions+comments+shares)/impressions, computed
	// at ingestion and immutable thereafter.
	EngagementRate float64 `json:"engagement_rate"`
}

// PostPerformance pairs a post with its engagement summary.
type PostPerformance struct {
	PostID         string  `json:"post_id"`
	Title          string  `json:"title"`
	EngagementRate float64 `json:"engagement_rate"`
	Impressions    int     `json:"impressions"`
	Interactions   int     `json:"total_interactions"`
}

// ComputeEngagementRate derives the engagement rate from raw counts.
// Impressions below one count as one so the rate is always defined.
func ComputeEngagementRate(m EngagementMetric) float64 {
	impressions := m.Impressions
	if impressions < 1 {
		impressions = 1
	}
	interactions := m.Reactions + m.Comments + m.Shares
	return float64(interactions) / float64(impressions)
}
