package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/retrieval"
	"github.com/postpilot/postpilot/internal/store"
)

// NewGroundCmd creates the 'ground' command for retrieving similar past
// posts before drafting new content.
func NewGroundCmd() *cobra.Command {
	var (
		top        int
		minScore   float64
		hybrid     bool
		tags       []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "ground <query>",
		Short: "Find past posts similar to a draft or topic",
		Long: `Search ingested posts for content similar to the query so new posts
can be grounded in what was written (and what performed) before.

Semantic search needs a Gemini API key (GEMINI_API_KEY). The --tags
path uses the keyword index only and works offline.`,
		Example: `  postpilot ground "shipping culture at early startups"
  postpilot ground "platform teams" --hybrid --top 5
  postpilot ground --tags leadership,hiring ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGround(args[0], top, minScore, hybrid, tags, jsonOutput)
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Maximum results to return")
	cmd.Flags().Float64Var(&minScore, "min", -1, "Minimum similarity score (default from config)")
	cmd.Flags().BoolVar(&hybrid, "hybrid", false, "Fuse semantic and keyword scores")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Match posts by tags instead of text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runGround(query string, top int, minScore float64, hybrid bool, tags []string, jsonOutput bool) error {
	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(tags) > 0 {
		return runGroundByTags(st, tags, top, jsonOutput)
	}

	if minScore < 0 {
		minScore = cfg.Thresholds.MinSimilarity
	}

	ctx := context.Background()
	index, err := buildSemanticIndex(ctx, cfg, st)
	if err != nil {
		return err
	}

	var results []retrieval.SimilarityResult
	if hybrid {
		kw, err := buildKeywordIndex(st)
		if err != nil {
			return err
		}
		defer kw.Close()

		results, err = retrieval.SearchHybrid(ctx, index, kw, query, top, retrieval.DefaultFusionConfig)
		if err != nil {
			return err
		}
	} else {
		results, err = index.Query(ctx, query, top, minScore)
		if err != nil {
			return err
		}
	}

	if jsonOutput {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No similar posts found.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. %s (score %.3f)\n   %s\n", i+1, r.Post.Title, r.Score, r.Reason)
	}
	return nil
}

func runGroundByTags(st *store.SQLiteStore, tags []string, top int, jsonOutput bool) error {
	kw, err := buildKeywordIndex(st)
	if err != nil {
		return err
	}
	defer kw.Close()

	results, err := kw.FindByTags(tags, top)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No posts match those tags.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. %s (score %.3f)\n", i+1, r.Title, r.Score)
	}
	return nil
}
