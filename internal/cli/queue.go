package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/schedule"
)

// NewQueueCmd creates the 'queue' command that assigns a post to a slot.
func NewQueueCmd() *cobra.Command {
	var (
		slotSpec string
		week     string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "queue <post-id>",
		Short: "Queue a post into the weekly schedule",
		Long: `Assign a post to a posting slot in the week's schedule.

Without --time the post goes into the best ranked window that is still
free. A conflicting slot is reported, not overwritten; pass --force to
replace the occupying post.`,
		Example: `  postpilot queue 4f2a1c
  postpilot queue 4f2a1c --time "Tue 10"
  postpilot queue 4f2a1c --time "Tue 10" --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueue(args[0], slotSpec, week, force)
		},
	}

	cmd.Flags().StringVar(&slotSpec, "time", "", "Slot as \"Day Hour\", e.g. \"Tue 10\"")
	cmd.Flags().StringVar(&week, "week", "", "Week start date (YYYY-MM-DD), defaults to next Monday")
	cmd.Flags().BoolVar(&force, "force", false, "Replace the post occupying a conflicting slot")

	return cmd
}

func runQueue(postID, slotSpec, week string, force bool) error {
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
	weekOf := weekStart.Format("2006-01-02")

	sched, err := loadOrCreateSchedule(cfg, weekOf)
	if err != nil {
		return err
	}

	ranked, err := rankedWindows(st)
	if err != nil {
		return err
	}

	var day string
	var hour int
	if slotSpec != "" {
		day, hour, err = parseSlotSpec(slotSpec)
		if err != nil {
			return err
		}
	} else {
		day, hour, err = firstFreeWindow(sched, ranked)
		if err != nil {
			return err
		}
	}

	slot := schedule.ScheduleSlot{
		PostID: postID,
		Day:    day,
		Hour:   hour,
		Status: schedule.StatusScheduled,
	}

	if err := sched.Insert(slot); err != nil {
		var conflict *schedule.ConflictError
		if !errors.As(err, &conflict) {
			return err
		}
		if !force {
			fmt.Println(err)
			printFreeWindows(sched, ranked)
			return fmt.Errorf("slot conflict, re-run with --force to replace")
		}

		sched.Remove(day, hour)
		if err := sched.Insert(slot); err != nil {
			return err
		}
		fmt.Printf("Replaced post %s at %s %02d:00\n", conflict.ExistingPostID, day, hour)
	}

	if err := saveJSON(schedulePath(cfg, weekOf), sched); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	fmt.Printf("Queued post %s for %s %02d:00 (week of %s)\n", postID, day, hour, weekOf)
	return nil
}

// parseSlotSpec parses a "Day Hour" spec like "Tue 10".
func parseSlotSpec(spec string) (string, int, error) {
	fields := strings.Fields(spec)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("invalid --time %q, expected \"Day Hour\" like \"Tue 10\"", spec)
	}

	day := fields[0]
	if !schedule.ValidDay(day) {
		return "", 0, fmt.Errorf("invalid day %q, expected Mon..Sun", day)
	}

	hour, err := strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return "", 0, fmt.Errorf("invalid hour %q, expected 0-23", fields[1])
	}

	return day, hour, nil
}

// firstFreeWindow picks the best ranked window not yet taken.
func firstFreeWindow(sched *schedule.Schedule, ranked []schedule.TimeWindow) (string, int, error) {
	for _, w := range ranked {
		if _, taken := sched.SlotAt(w.Day, w.Hour); !taken {
			return w.Day, w.Hour, nil
		}
	}
	return "", 0, fmt.Errorf("all %d ranked windows are taken this week, pass --time to pick a slot", len(ranked))
}

func printFreeWindows(sched *schedule.Schedule, ranked []schedule.TimeWindow) {
	free := []schedule.TimeWindow{}
	for _, w := range ranked {
		if _, taken := sched.SlotAt(w.Day, w.Hour); !taken {
			free = append(free, w)
		}
	}
	if len(free) == 0 {
		return
	}

	fmt.Println("Free windows:")
	for _, w := range free {
		fmt.Printf("  %s %02d:00  score %.3f\n", w.Day, w.Hour, w.EngagementScore)
	}
}
