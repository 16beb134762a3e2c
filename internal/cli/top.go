package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
)

// NewTopCmd creates the 'top' command listing best-performing posts.
func NewTopCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the best-performing posts by engagement rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(limit, jsonOutput)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum posts to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runTop(limit int, jsonOutput bool) error {
	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	performances, err := st.TopPerformingPosts(limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(performances)
	}

	if len(performances) == 0 {
		fmt.Println("No posts with recorded metrics yet. Ingest metrics first.")
		return nil
	}

	fmt.Println("Top performing posts:")
	for i, p := range performances {
		fmt.Printf("%2d. %s  rate %.4f  (%d impressions, %d interactions)\n",
			i+1, p.Title, p.EngagementRate, p.Impressions, p.Interactions)
	}
	return nil
}
