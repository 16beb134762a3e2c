package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/schedule"
)

// NewPlanCmd creates the 'plan' command generating a weekly content plan.
func NewPlanCmd() *cobra.Command {
	var (
		week       string
		topics     []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a Now/Next/Later content plan for a week",
		Long: `Generate a weekly content plan from the configured topic backlog,
pinning high-priority items to the best ranked posting windows.

The plan is saved under the data directory and printed.`,
		Example: `  postpilot plan
  postpilot plan --week 2026-09-07 --topics ai,devtools`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(week, topics, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week start date (YYYY-MM-DD), defaults to next Monday")
	cmd.Flags().StringSliceVar(&topics, "topics", nil, "Override the configured topic backlog")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runPlan(week string, topics []string, jsonOutput bool) error {
	cfg := config.LoadOrDefault()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	weekStart, err := resolveWeek(week)
	if err != nil {
		return err
	}

	ranked, err := rankedWindows(st)
	if err != nil {
		return err
	}

	if len(topics) == 0 {
		topics = cfg.Topics
	}

	plan := schedule.GenerateWeeklyPlan(weekStart, topics, ranked, cfg.ExperimentSpreadHours)

	path := planPath(cfg, plan.WeekOf)
	if err := saveJSON(path, plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	if jsonOutput {
		return printJSON(plan)
	}

	fmt.Printf("Weekly plan for %s (saved to %s)\n\n", plan.WeekOf, path)
	printPlanTier("Now", plan.Now)
	printPlanTier("Next", plan.Next)
	printPlanTier("Later", plan.Later)

	fmt.Println("Recommended windows:")
	for _, w := range plan.RecommendedWindows {
		fmt.Printf("  %s %02d:00  score %.3f\n", w.Day, w.Hour, w.EngagementScore)
	}

	return nil
}

func printPlanTier(name string, items []schedule.PlanItem) {
	fmt.Printf("%s:\n", name)
	if len(items) == 0 {
		fmt.Println("  (empty)")
	}
	for _, item := range items {
		line := fmt.Sprintf("  [%s] %s", item.Priority, item.Topic)
		if item.TargetWindow != nil {
			line += fmt.Sprintf(" @ %s %02d:00", item.TargetWindow.Day, item.TargetWindow.Hour)
		}
		if item.Experiment != "" {
			line += fmt.Sprintf(" (%s)", item.Experiment)
		}
		fmt.Println(line)
	}
	fmt.Println()
}
