package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/schedule"
)

// NewWindowsCmd creates the 'windows' command showing ranked posting times.
func NewWindowsCmd() *cobra.Command {
	var (
		day        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Show posting windows ranked by observed engagement",
		Long: `Rank the curated posting windows by engagement observed in
ingested metrics. Windows without observed data keep their
best-practice prior score.`,
		Example: `  postpilot windows
  postpilot windows --day Wed --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindows(day, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Prefer a specific day (Mon..Sun) for the suggestion")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runWindows(day string, jsonOutput bool) error {
	if day != "" && !schedule.ValidDay(day) {
		return fmt.Errorf("invalid day %q, expected Mon..Sun", day)
	}

	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ranked, err := rankedWindows(st)
	if err != nil {
		return err
	}

	suggested := schedule.SuggestPostingTime(ranked, day)
	experimental := schedule.ExperimentalWindow(suggested, cfg.ExperimentSpreadHours)

	if jsonOutput {
		return printJSON(struct {
			Windows      []schedule.TimeWindow `json:"windows"`
			Suggested    schedule.TimeWindow   `json:"suggested"`
			Experimental schedule.TimeWindow   `json:"experimental"`
		}{ranked, suggested, experimental})
	}

	fmt.Println("Posting windows (best first):")
	for i, w := range ranked {
		marker := " "
		if w.PostCount > 0 {
			marker = "*"
		}
		fmt.Printf("%2d. %s %02d:00  score %.3f  (%d observed posts) %s\n",
			i+1, w.Day, w.Hour, w.EngagementScore, w.PostCount, marker)
	}
	fmt.Println("\n* = backed by observed engagement data")

	fmt.Printf("\nSuggested slot:     %s %02d:00\n", suggested.Day, suggested.Hour)
	fmt.Printf("Experimental slot:  %s %02d:00 (±%dh exploration)\n",
		experimental.Day, experimental.Hour, cfg.ExperimentSpreadHours)
	return nil
}
