package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
)

// NewInitCmd creates the 'init' command that writes a default config.
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Write a default configuration to ~/.postpilot.json and create the data
directory. Refuses to overwrite an existing config unless --force is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(force bool) error {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s, re-run with --force to overwrite", path)
	}

	cfg := config.NewConfig()
	if err := cfg.Save(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	fmt.Printf("Wrote config to %s\n", path)
	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set GEMINI_API_KEY for semantic search")
	fmt.Println("  2. postpilot ingest posts <path>")
	fmt.Println("  3. postpilot ingest metrics <path>")
	fmt.Println("  4. postpilot plan")
	return nil
}
