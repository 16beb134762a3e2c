/*
Package store implements the persistent corpus behind the scheduling engine.

SQLite-based storage for historical posts, engagement metrics, and cached
embedding vectors, with graceful degradation if the database is unavailable.

The database is stored at ~/.postpilot/postpilot.db and uses
modernc.org/sqlite (a pure Go, CGo-free implementation).
*/
package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store defines the interface for persistent corpus operations.
type Store interface {
	// Init initializes the database and runs migrations.
	Init() error

	// SavePost upserts a historical post and invalidates its cached embedding.
	SavePost(post HistoricalPost) error

	// GetPost retrieves one post by id.
	GetPost(id string) (*HistoricalPost, error)

	// ListPosts returns all posts in ingestion order.
	ListPosts() ([]HistoricalPost, error)

	// RecordMetric validates and stores an engagement metric.
	// The engagement rate is computed here, at ingestion.
	RecordMetric(metric EngagementMetric) error

	// ListMetrics returns all engagement metrics in ingestion order.
	ListMetrics() ([]EngagementMetric, error)

	// TopPerformingPosts returns posts ranked by engagement rate.
	TopPerformingPosts(limit int) ([]PostPerformance, error)

	// SaveEmbedding caches an embedding vector for a post.
	SaveEmbedding(postID string, vector []float32, model string) error

	// GetEmbedding retrieves a cached embedding and the model that made it.
	GetEmbedding(postID string) ([]float32, string, error)

	// Close closes the database connection.
	Close() error
}

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// NewStore creates a store at the default location, ~/.postpilot/postpilot.db.
// If the home directory cannot be resolved the store is disabled but
// operations will not fail.
func NewStore() *SQLiteStore {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: failed to get home directory: %v", err)
		return &SQLiteStore{enabled: false}
	}

	return NewStoreAt(filepath.Join(home, ".postpilot", "postpilot.db"))
}

// NewStoreAt creates a store backed by the given database path.
func NewStoreAt(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath:  dbPath,
		enabled: true,
	}
}

// Init initializes the database and runs migrations.
//
// If initialization fails, the store is disabled and subsequent operations
// become no-ops (graceful degradation).
func (s *SQLiteStore) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}
