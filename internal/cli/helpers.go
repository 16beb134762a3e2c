/*
Package cli implements the postpilot command-line interface.

The CLI is the caller around the scheduling engine: it owns persistence of
weekly plans and schedules (JSON files keyed by week under the data dir)
and wires the store, indexes, and embedder together per invocation.
*/
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/retrieval"
	"github.com/postpilot/postpilot/internal/schedule"
	"github.com/postpilot/postpilot/internal/store"
)

// openStore opens the SQLite store under the configured data dir.
func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	st := store.NewStoreAt(filepath.Join(cfg.DataDir, "postpilot.db"))
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// buildSemanticIndex loads all posts and builds the embedding index,
// reusing cached vectors from the store.
func buildSemanticIndex(ctx context.Context, cfg *config.Config, st *store.SQLiteStore) (*retrieval.Index, error) {
	embedder, err := retrieval.NewGeminiEmbedder(ctx, retrieval.GeminiConfig{
		Model: cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, err
	}

	posts, err := st.ListPosts()
	if err != nil {
		return nil, err
	}

	index := retrieval.NewIndex(embedder, st)
	if err := index.Build(ctx, posts); err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	return index, nil
}

// buildKeywordIndex loads all posts into an in-memory Bleve index.
// Needs no embedding collaborator, so it works offline.
func buildKeywordIndex(st *store.SQLiteStore) (*retrieval.KeywordIndex, error) {
	posts, err := st.ListPosts()
	if err != nil {
		return nil, err
	}

	kw, err := retrieval.NewKeywordIndex()
	if err != nil {
		return nil, err
	}
	if err := kw.IndexPosts(posts); err != nil {
		kw.Close()
		return nil, err
	}

	return kw, nil
}

// rankedWindows merges stored metrics into the default windows.
func rankedWindows(st *store.SQLiteStore) ([]schedule.TimeWindow, error) {
	metrics, err := st.ListMetrics()
	if err != nil {
		return nil, err
	}
	return schedule.RankWindows(schedule.DefaultWindows(), metrics), nil
}

// planPath returns the plan file for a week.
func planPath(cfg *config.Config, weekOf string) string {
	return filepath.Join(cfg.DataDir, "plans", fmt.Sprintf("plan_%s.json", weekOf))
}

// schedulePath returns the schedule file for a week.
func schedulePath(cfg *config.Config, weekOf string) string {
	return filepath.Join(cfg.DataDir, "schedules", fmt.Sprintf("schedule_%s.json", weekOf))
}

// loadSchedule reads a schedule JSON file.
func loadSchedule(path string) (*schedule.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sched schedule.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		return nil, fmt.Errorf("failed to parse schedule %s: %w", path, err)
	}

	return &sched, nil
}

// loadOrCreateSchedule reads the week's schedule file, or starts a fresh
// schedule when none exists yet.
func loadOrCreateSchedule(cfg *config.Config, weekOf string) (*schedule.Schedule, error) {
	path := schedulePath(cfg, weekOf)
	sched, err := loadSchedule(path)
	if err != nil {
		if os.IsNotExist(err) {
			return schedule.NewSchedule(weekOf), nil
		}
		return nil, err
	}
	return sched, nil
}

// saveJSON writes v as indented JSON, creating parent directories.
func saveJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	return os.WriteFile(path, data, 0644)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// resolveWeek parses a --week value, defaulting to the next Monday.
func resolveWeek(week string) (time.Time, error) {
	if week == "" {
		return schedule.NextMonday(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", week)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week %q, expected YYYY-MM-DD: %w", week, err)
	}
	return t, nil
}
