package cli

import (
	"testing"

	"github.com/postpilot/postpilot/internal/schedule"
)

func TestNewQueueCmd(t *testing.T) {
	cmd := NewQueueCmd()

	if cmd == nil {
		t.Fatal("NewQueueCmd() returned nil")
	}
	if cmd.Use != "queue <post-id>" {
		t.Errorf("Expected Use='queue <post-id>', got %q", cmd.Use)
	}

	// Verify flags are registered
	for _, flag := range []string{"time", "week", "force"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Flag %q not registered", flag)
		}
	}
}

func TestParseSlotSpec(t *testing.T) {
	tests := []struct {
		spec     string
		wantDay  string
		wantHour int
		wantErr  bool
	}{
		{"Tue 10", "Tue", 10, false},
		{"Mon 0", "Mon", 0, false},
		{"Sun 23", "Sun", 23, false},
		{"Tuesday 10", "", 0, true},
		{"Tue", "", 0, true},
		{"Tue ten", "", 0, true},
		{"Tue 24", "", 0, true},
		{"Tue -1", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			day, hour, err := parseSlotSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if day != tt.wantDay || hour != tt.wantHour {
				t.Errorf("Expected %s %d, got %s %d", tt.wantDay, tt.wantHour, day, hour)
			}
		})
	}
}

func TestFirstFreeWindow(t *testing.T) {
	ranked := schedule.DefaultWindows()
	sched := schedule.NewSchedule("2025-08-18")

	day, hour, err := firstFreeWindow(sched, ranked)
	if err != nil {
		t.Fatalf("firstFreeWindow failed: %v", err)
	}
	if day != "Tue" || hour != 10 {
		t.Errorf("Expected best window Tue 10, got %s %d", day, hour)
	}

	// Occupy the best window; the next ranked one should be picked.
	if err := sched.Insert(schedule.ScheduleSlot{PostID: "p1", Day: "Tue", Hour: 10}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	day, hour, err = firstFreeWindow(sched, ranked)
	if err != nil {
		t.Fatalf("firstFreeWindow failed: %v", err)
	}
	if day != "Thu" || hour != 11 {
		t.Errorf("Expected Thu 11, got %s %d", day, hour)
	}
}

func TestFirstFreeWindowAllTaken(t *testing.T) {
	ranked := schedule.DefaultWindows()
	sched := schedule.NewSchedule("2025-08-18")

	for i, w := range ranked {
		slot := schedule.ScheduleSlot{PostID: "p", Day: w.Day, Hour: w.Hour}
		slot.PostID = slot.PostID + string(rune('0'+i))
		if err := sched.Insert(slot); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	if _, _, err := firstFreeWindow(sched, ranked); err == nil {
		t.Error("Expected error when every ranked window is taken")
	}
}
