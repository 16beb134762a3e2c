package retrieval

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// defaultEmbeddingModel is used when no model is configured.
const defaultEmbeddingModel = "gemini-embedding-001"

// GeminiEmbedder computes embeddings via the Google GenAI API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds configuration for the Gemini embedder.
type GeminiConfig struct {
	APIKey string // If empty, uses GEMINI_API_KEY or GOOGLE_API_KEY env vars
	Model  string // e.g., "gemini-embedding-001"
}

// NewGeminiEmbedder creates a new Gemini embedder.
func NewGeminiEmbedder(ctx context.Context, cfg GeminiConfig) (*GeminiEmbedder, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultEmbeddingModel
	}

	return &GeminiEmbedder{
		client: client,
		model:  model,
	}, nil
}

// Embed returns the embedding vector for text. Collaborator failures come
// back wrapped in ErrEmbeddingUnavailable so callers can decide on retries.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding from model %s", ErrEmbeddingUnavailable, g.model)
	}

	return resp.Embeddings[0].Values, nil
}

// Model returns the embedding model name.
func (g *GeminiEmbedder) Model() string {
	return g.model
}
