package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/schedule"
)

// NewValidateCmd creates the 'validate' command for checking schedule files.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schedule.json>",
		Short: "Validate a schedule file",
		Long: `Check a schedule JSON file for structural problems: a malformed week
date, invalid slots, or two posts assigned to the same (day, hour).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func runValidate(path string) error {
	sched, err := loadSchedule(path)
	if err != nil {
		return err
	}

	if !schedule.ValidateSchedule(sched) {
		return fmt.Errorf("schedule %s is invalid", path)
	}

	fmt.Printf("Schedule %s is valid (%d slots, week of %s)\n", path, len(sched.Slots), sched.WeekOf)
	return nil
}
