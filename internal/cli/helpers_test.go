package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/postpilot/postpilot/internal/config"
	"github.com/postpilot/postpilot/internal/schedule"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestResolveWeekExplicit(t *testing.T) {
	got, err := resolveWeek("2025-08-18")
	if err != nil {
		t.Fatalf("resolveWeek failed: %v", err)
	}
	if got.Format("2006-01-02") != "2025-08-18" {
		t.Errorf("Expected 2025-08-18, got %s", got.Format("2006-01-02"))
	}
}

func TestResolveWeekDefaultsToNextMonday(t *testing.T) {
	got, err := resolveWeek("")
	if err != nil {
		t.Fatalf("resolveWeek failed: %v", err)
	}
	if got.Weekday() != time.Monday {
		t.Errorf("Expected a Monday, got %s", got.Weekday())
	}
	if !got.After(time.Now()) {
		t.Errorf("Expected a future date, got %s", got)
	}
}

func TestResolveWeekInvalid(t *testing.T) {
	if _, err := resolveWeek("next tuesday"); err == nil {
		t.Error("Expected error for unparseable week")
	}
}

func TestScheduleRoundTripThroughDisk(t *testing.T) {
	cfg := testConfig(t)

	sched := schedule.NewSchedule("2025-08-18")
	if err := sched.Insert(schedule.ScheduleSlot{PostID: "p1", Day: "Tue", Hour: 10}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	path := schedulePath(cfg, "2025-08-18")
	if err := saveJSON(path, sched); err != nil {
		t.Fatalf("saveJSON failed: %v", err)
	}

	loaded, err := loadSchedule(path)
	if err != nil {
		t.Fatalf("loadSchedule failed: %v", err)
	}
	if loaded.WeekOf != "2025-08-18" || len(loaded.Slots) != 1 {
		t.Errorf("Unexpected loaded schedule: %+v", loaded)
	}
	if !schedule.ValidateSchedule(loaded) {
		t.Error("Loaded schedule failed validation")
	}
}

func TestLoadOrCreateScheduleFresh(t *testing.T) {
	cfg := testConfig(t)

	sched, err := loadOrCreateSchedule(cfg, "2025-08-18")
	if err != nil {
		t.Fatalf("loadOrCreateSchedule failed: %v", err)
	}
	if sched.WeekOf != "2025-08-18" {
		t.Errorf("Expected fresh schedule for 2025-08-18, got %s", sched.WeekOf)
	}
	if len(sched.Slots) != 0 {
		t.Errorf("Expected empty slots, got %d", len(sched.Slots))
	}
}

func TestLoadOrCreateScheduleExisting(t *testing.T) {
	cfg := testConfig(t)

	existing := schedule.NewSchedule("2025-08-18")
	if err := existing.Insert(schedule.ScheduleSlot{PostID: "p1", Day: "Wed", Hour: 9}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := saveJSON(schedulePath(cfg, "2025-08-18"), existing); err != nil {
		t.Fatalf("saveJSON failed: %v", err)
	}

	sched, err := loadOrCreateSchedule(cfg, "2025-08-18")
	if err != nil {
		t.Fatalf("loadOrCreateSchedule failed: %v", err)
	}
	if len(sched.Slots) != 1 || sched.Slots[0].PostID != "p1" {
		t.Errorf("Existing schedule not loaded: %+v", sched)
	}
}

func TestPlanAndSchedulePaths(t *testing.T) {
	cfg := testConfig(t)

	plan := planPath(cfg, "2025-08-18")
	want := filepath.Join(cfg.DataDir, "plans", "plan_2025-08-18.json")
	if plan != want {
		t.Errorf("Expected %s, got %s", want, plan)
	}

	sched := schedulePath(cfg, "2025-08-18")
	want = filepath.Join(cfg.DataDir, "schedules", "schedule_2025-08-18.json")
	if sched != want {
		t.Errorf("Expected %s, got %s", want, sched)
	}
}
