/*
Package main is the entry point for the postpilot CLI.

postpilot is a grounded scheduling engine for personal content: it retrieves
similar past posts before you write, ranks posting windows by observed
engagement, and assembles conflict-free weekly schedules.

Usage:
  postpilot [command]

Available Commands:
  init        Create a default configuration file
  ingest      Load historical posts or engagement metrics
  ground      Find past posts similar to a draft or topic
  insights    Analyze how a topic relates to past content
  windows     Show posting windows ranked by engagement
  plan        Generate a Now/Next/Later weekly content plan
  queue       Queue a post into the weekly schedule
  validate    Validate a schedule file
  top         List the best-performing posts
  version     Show version information

Examples:
  # First-time setup
  postpilot init

  # Load exported history
  postpilot ingest posts export/posts/
  postpilot ingest metrics export/metrics/

  # Plan next week
  postpilot plan
  postpilot queue 4f2a1c --time "Tue 10"
*/
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "postpilot",
		Short: "Grounded content scheduling from your own posting history",
		Long: `postpilot turns your posting history into scheduling decisions.

It keeps past posts and their engagement metrics in a local SQLite store,
retrieves similar posts before you draft something new (so content stays
grounded in what you have written and what performed), ranks posting
windows by observed engagement, and assembles conflict-free weekly
schedules around them.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	// Add subcommands
	rootCmd.AddCommand(cli.NewInitCmd())
	rootCmd.AddCommand(cli.NewIngestCmd())
	rootCmd.AddCommand(cli.NewGroundCmd())
	rootCmd.AddCommand(cli.NewInsightsCmd())
	rootCmd.AddCommand(cli.NewWindowsCmd())
	rootCmd.AddCommand(cli.NewPlanCmd())
	rootCmd.AddCommand(cli.NewQueueCmd())
	rootCmd.AddCommand(cli.NewValidateCmd())
	rootCmd.AddCommand(cli.NewTopCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
