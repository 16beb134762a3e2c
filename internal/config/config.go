/*
Package config handles loading, saving, and validating postpilot
configuration.

Configuration is stored in ~/.postpilot.json using camelCase keys.

Schema:

	{
	  "topics": ["product", "engineering", "founder"],
	  "experimentSpreadHours": 2,
	  "embeddingModel": "gemini-embedding-001",
	  "dataDir": "/home/user/.postpilot",
	  "thresholds": {
	    "minSimilarity": 0.3,
	    "insightMinSimilarity": 0.2
	  }
	}
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the root configuration structure.
type Config struct {
	// Topics is the content backlog used for weekly planning.
	Topics []string `json:"topics,omitempty"`

	// ExperimentSpreadHours is how far experimental slots may drift from
	// a proven window.
	ExperimentSpreadHours int `json:"experimentSpreadHours,omitempty"`

	// EmbeddingModel selects the Gemini embedding model.
	EmbeddingModel string `json:"embeddingModel,omitempty"`

	// DataDir holds the SQLite store and the plan/schedule JSON files.
	DataDir string `json:"dataDir,omitempty"`

	// Thresholds tunes retrieval and insight scoring.
	Thresholds *Thresholds `json:"thresholds,omitempty"`
}

// Thresholds collects the similarity cut-offs used across the engine.
// All were empirically chosen, so they are configuration rather than law.
type Thresholds struct {
	// MinSimilarity is the floor for direct grounding queries.
	MinSimilarity float64 `json:"minSimilarity,omitempty"`

	// InsightMinSimilarity is the broader floor the insight analyzer uses.
	InsightMinSimilarity float64 `json:"insightMinSimilarity,omitempty"`

	// CoveredGround and RelatedGround band the insight recommendations.
	CoveredGround float64 `json:"coveredGround,omitempty"`
	RelatedGround float64 `json:"relatedGround,omitempty"`
}

// NewConfig creates a configuration with production defaults.
func NewConfig() *Config {
	return &Config{
		Topics:                []string{"product", "engineering", "founder"},
		ExperimentSpreadHours: 2,
		EmbeddingModel:        "gemini-embedding-001",
		DataDir:               defaultDataDir(),
		Thresholds: &Thresholds{
			MinSimilarity:        0.3,
			InsightMinSimilarity: 0.2,
			CoveredGround:        0.6,
			RelatedGround:        0.3,
		},
	}
}

// defaultDataDir returns ~/.postpilot, or a relative fallback when the
// home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".postpilot"
	}
	return filepath.Join(home, ".postpilot")
}

// GetDefaultConfigPath returns the path to ~/.postpilot.json.
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".postpilot.json"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigNotFoundError{
				Path: path,
				Hint: "Run 'postpilot init' to create a default configuration",
			}
		}
		if os.IsPermission(err) {
			return nil, &PermissionError{
				Path: path,
				Op:   "read",
				Fix:  fmt.Sprintf("chmod u+r %s", path),
			}
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: err.Error(),
			Hint:    "Check the file for JSON syntax errors",
		}
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    path,
			Message: err.Error(),
		}
	}

	return &cfg, nil
}

// LoadOrDefault returns the saved configuration, or defaults when no
// config file exists yet.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return NewConfig()
	}
	return cfg
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		if os.IsPermission(err) {
			return &PermissionError{
				Path: path,
				Op:   "write",
				Fix:  fmt.Sprintf("chmod u+w %s", path),
			}
		}
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued fields from the default configuration.
func applyDefaults(cfg *Config) {
	defaults := NewConfig()

	if len(cfg.Topics) == 0 {
		cfg.Topics = defaults.Topics
	}
	if cfg.ExperimentSpreadHours == 0 {
		cfg.ExperimentSpreadHours = defaults.ExperimentSpreadHours
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaults.EmbeddingModel
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaults.DataDir
	}
	if cfg.Thresholds == nil {
		cfg.Thresholds = defaults.Thresholds
	} else {
		if cfg.Thresholds.MinSimilarity == 0 {
			cfg.Thresholds.MinSimilarity = defaults.Thresholds.MinSimilarity
		}
		if cfg.Thresholds.InsightMinSimilarity == 0 {
			cfg.Thresholds.InsightMinSimilarity = defaults.Thresholds.InsightMinSimilarity
		}
		if cfg.Thresholds.CoveredGround == 0 {
			cfg.Thresholds.CoveredGround = defaults.Thresholds.CoveredGround
		}
		if cfg.Thresholds.RelatedGround == 0 {
			cfg.Thresholds.RelatedGround = defaults.Thresholds.RelatedGround
		}
	}
}

// Validate checks a configuration for out-of-range values.
func Validate(cfg *Config) error {
	if cfg.ExperimentSpreadHours < 0 {
		return fmt.Errorf("experimentSpreadHours must not be negative, got %d", cfg.ExperimentSpreadHours)
	}

	t := cfg.Thresholds
	if t == nil {
		return nil
	}
	for name, v := range map[string]float64{
		"minSimilarity":        t.MinSimilarity,
		"insightMinSimilarity": t.InsightMinSimilarity,
		"coveredGround":        t.CoveredGround,
		"relatedGround":        t.RelatedGround,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("threshold %s must be in [0, 1], got %v", name, v)
		}
	}

	return nil
}
