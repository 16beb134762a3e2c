package store

import (
	"log"
	"time"
)

// SaveEmbedding caches an embedding vector for a post.
func (s *SQLiteStore) SaveEmbedding(postID string, vector []float32, model string) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO post_embeddings (post_id, vector, model, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		postID,
		vectorToJSON(vector),
		model,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		log.Printf("Warning: failed to save embedding: %v", err)
	}

	return nil
}

// GetEmbedding retrieves a cached embedding and the model that produced it.
// A cache miss returns a nil vector with no error.
func (s *SQLiteStore) GetEmbedding(postID string) ([]float32, string, error) {
	if !s.enabled || s.db == nil {
		return nil, "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT vector, model
		FROM post_embeddings
		WHERE post_id = ?
	`, postID)
	if err != nil {
		log.Printf("Warning: failed to query embedding: %v", err)
		return nil, "", nil
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, "", nil
	}

	var vectorJSON, model string
	if err := rows.Scan(&vectorJSON, &model); err != nil {
		log.Printf("Warning: failed to scan embedding: %v", err)
		return nil, "", nil
	}

	vector, err := jsonToVector(vectorJSON)
	if err != nil {
		log.Printf("Warning: failed to parse embedding vector: %v", err)
		return nil, "", nil
	}

	return vector, model, nil
}
