package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/insights"
)

// NewInsightsCmd creates the 'insights' command analyzing topic coverage.
func NewInsightsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "insights <topic>",
		Short: "Analyze how a topic relates to past content",
		Long: `Compare a topic against ingested posts and report coverage: how many
similar posts exist, which tags they share, and whether the topic is
already covered ground or a fresh opportunity.`,
		Example: `  postpilot insights "engineering management"
  postpilot insights "devtools" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runInsights(topic string, jsonOutput bool) error {
	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	index, err := buildSemanticIndex(ctx, cfg, st)
	if err != nil {
		return err
	}

	opts := insights.DefaultOptions()
	if t := cfg.Thresholds; t != nil {
		opts.MinSimilarity = t.InsightMinSimilarity
		opts.CoveredGround = t.CoveredGround
		opts.RelatedGround = t.RelatedGround
	}

	result, err := insights.AnalyzeWith(ctx, topic, index, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}

	fmt.Printf("Insights for %q\n\n", result.Topic)
	fmt.Printf("Similar posts: %d (avg similarity %.3f)\n", result.SimilarPostCount, result.AvgSimilarity)

	if len(result.CommonTags) > 0 {
		fmt.Printf("Common tags:   %v\n", result.CommonTags)
	}

	fmt.Println("\nRecommendations:")
	for _, rec := range result.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}

	if len(result.RelatedPosts) > 0 {
		fmt.Println("\nRelated posts:")
		for _, p := range result.RelatedPosts {
			fmt.Printf("  %s (%.3f) [%s]\n", p.Title, p.Similarity, p.ID)
		}
	}

	return nil
}
