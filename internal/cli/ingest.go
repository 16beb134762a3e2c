package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/store"
)

// NewIngestCmd creates the 'ingest' command group for loading historical
// data into the local store.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load historical posts or engagement metrics into the store",
		Long: `Load JSON records into the local SQLite store.

Each file may contain a single object or an array of objects. Malformed
files are skipped with a warning; malformed records inside a valid file
are rejected individually.`,
	}

	cmd.AddCommand(newIngestPostsCmd())
	cmd.AddCommand(newIngestMetricsCmd())

	return cmd
}

func newIngestPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "posts <path>",
		Short: "Ingest historical posts from a JSON file or directory",
		Example: `  postpilot ingest posts data/posts/
  postpilot ingest posts export.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestPosts(args[0])
		},
	}
}

func newIngestMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <path>",
		Short: "Ingest engagement metrics from a JSON file or directory",
		Example: `  postpilot ingest metrics data/metrics/
  postpilot ingest metrics week34.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestMetrics(args[0])
		},
	}
}

func runIngestPosts(path string) error {
	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	files, err := collectJSONFiles(path)
	if err != nil {
		return err
	}

	saved := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", file, err)
			continue
		}

		posts, err := decodePosts(data)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", file, err)
			continue
		}

		for _, post := range posts {
			if post.ID == "" {
				post.ID = uuid.NewString()
			}
			if err := st.SavePost(post); err != nil {
				log.Printf("Warning: rejected post from %s: %v", file, err)
				continue
			}
			saved++
		}
	}

	fmt.Printf("Ingested %d posts from %d files\n", saved, len(files))
	return nil
}

func runIngestMetrics(path string) error {
	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	files, err := collectJSONFiles(path)
	if err != nil {
		return err
	}

	saved := 0
	rejected := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", file, err)
			continue
		}

		metrics, err := decodeMetrics(data)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", file, err)
			continue
		}

		for _, metric := range metrics {
			if err := st.RecordMetric(metric); err != nil {
				var vErr *store.ValidationError
				if errors.As(err, &vErr) {
					log.Printf("Warning: rejected metric from %s: %v", file, err)
					rejected++
					continue
				}
				return err
			}
			saved++
		}
	}

	fmt.Printf("Ingested %d metrics from %d files", saved, len(files))
	if rejected > 0 {
		fmt.Printf(" (%d rejected)", rejected)
	}
	fmt.Println()
	return nil
}

// collectJSONFiles expands a path into the JSON files it refers to.
func collectJSONFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}

	return files, nil
}

// decodePosts accepts a single post object or an array of them.
func decodePosts(data []byte) ([]store.HistoricalPost, error) {
	var list []store.HistoricalPost
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single store.HistoricalPost
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []store.HistoricalPost{single}, nil
}

// decodeMetrics accepts a single metric object or an array of them.
func decodeMetrics(data []byte) ([]store.EngagementMetric, error) {
	var list []store.EngagementMetric
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single store.EngagementMetric
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []store.EngagementMetric{single}, nil
}
