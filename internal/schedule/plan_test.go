package schedule

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestNextMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		// 2025-08-13 is a Wednesday.
		{"midweek", time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC), "2025-08-18"},
		// 2025-08-17 is a Sunday.
		{"sunday", time.Date(2025, 8, 17, 9, 0, 0, 0, time.UTC), "2025-08-18"},
		// A Monday targets the following week, never the same day.
		{"monday", time.Date(2025, 8, 18, 9, 0, 0, 0, time.UTC), "2025-08-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMonday(tt.now).Format("2006-01-02")
			if got != tt.want {
				t.Errorf("NextMonday(%s) = %s, want %s", tt.now.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestGenerateWeeklyPlan(t *testing.T) {
	weekStart := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	topics := []string{"ai", "devtools", "hiring", "culture", "growth"}
	ranked := DefaultWindows()

	plan := GenerateWeeklyPlan(weekStart, topics, ranked, 2)

	if plan.WeekOf != "2025-08-18" {
		t.Errorf("Expected week_of 2025-08-18, got %s", plan.WeekOf)
	}

	if len(plan.Now) != 2 {
		t.Fatalf("Expected 2 Now items, got %d", len(plan.Now))
	}
	if plan.Now[0].Topic != "Latest insights on ai" {
		t.Errorf("Unexpected Now topic: %q", plan.Now[0].Topic)
	}
	if plan.Now[0].Priority != PriorityHigh {
		t.Errorf("Expected high priority, got %s", plan.Now[0].Priority)
	}
	if plan.Now[0].TargetWindow == nil {
		t.Fatal("Now item missing target window")
	}
	if plan.Now[0].TargetWindow.Day != "Tue" || plan.Now[0].TargetWindow.Hour != 10 {
		t.Errorf("Expected first Now item at Tue 10, got %s %d",
			plan.Now[0].TargetWindow.Day, plan.Now[0].TargetWindow.Hour)
	}

	if len(plan.Next) != 2 {
		t.Fatalf("Expected 2 Next items, got %d", len(plan.Next))
	}
	if plan.Next[0].Topic != "Deep dive into hiring best practices" {
		t.Errorf("Unexpected Next topic: %q", plan.Next[0].Topic)
	}
	// Next windows are offset by two positions past the Now assignments.
	if plan.Next[0].TargetWindow.Day != "Wed" || plan.Next[0].TargetWindow.Hour != 14 {
		t.Errorf("Expected first Next item at Wed 14, got %s %d",
			plan.Next[0].TargetWindow.Day, plan.Next[0].TargetWindow.Hour)
	}

	if len(plan.Later) != len(topics) {
		t.Errorf("Expected %d Later items, got %d", len(topics), len(plan.Later))
	}
	if plan.Later[0].Experiment != "Test ±2h from optimal window" {
		t.Errorf("Unexpected experiment text: %q", plan.Later[0].Experiment)
	}
	if plan.Later[0].TargetWindow != nil {
		t.Error("Later items must not have assigned windows")
	}

	if len(plan.RecommendedWindows) != 5 {
		t.Errorf("Expected 5 recommended windows, got %d", len(plan.RecommendedWindows))
	}
}

func TestGenerateWeeklyPlanShortBacklog(t *testing.T) {
	weekStart := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	plan := GenerateWeeklyPlan(weekStart, []string{"ai"}, DefaultWindows(), 2)

	if len(plan.Now) != 1 {
		t.Errorf("Expected 1 Now item, got %d", len(plan.Now))
	}
	// With fewer topics than the Now tier, Next reuses the same topics.
	if len(plan.Next) != 1 {
		t.Errorf("Expected 1 Next item, got %d", len(plan.Next))
	}
	if plan.Next[0].Topic != "Deep dive into ai best practices" {
		t.Errorf("Unexpected Next topic: %q", plan.Next[0].Topic)
	}
}

func TestGenerateWeeklyPlanNoWindows(t *testing.T) {
	weekStart := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	plan := GenerateWeeklyPlan(weekStart, []string{"ai", "devtools"}, nil, 2)

	for _, item := range plan.Now {
		if item.TargetWindow != nil {
			t.Errorf("Item has a window with no ranked list: %+v", item)
		}
	}
	if len(plan.RecommendedWindows) != 0 {
		t.Errorf("Expected no recommended windows, got %d", len(plan.RecommendedWindows))
	}
}

func TestGenerateWeeklyPlanDeterministic(t *testing.T) {
	weekStart := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	topics := []string{"ai", "devtools", "hiring"}
	ranked := DefaultWindows()

	first := GenerateWeeklyPlan(weekStart, topics, ranked, 2)
	second := GenerateWeeklyPlan(weekStart, topics, ranked, 2)

	if !reflect.DeepEqual(first, second) {
		t.Error("Identical inputs produced different plans")
	}
}

func TestGenerateWeeklyPlanZeroWeekStart(t *testing.T) {
	plan := GenerateWeeklyPlan(time.Time{}, []string{"ai"}, DefaultWindows(), 2)

	weekOf, err := time.Parse("2006-01-02", plan.WeekOf)
	if err != nil {
		t.Fatalf("Unparseable week_of %q: %v", plan.WeekOf, err)
	}
	if weekOf.Weekday() != time.Monday {
		t.Errorf("Expected a Monday, got %s", weekOf.Weekday())
	}
	if !weekOf.After(time.Now()) {
		t.Errorf("Expected a future week start, got %s", plan.WeekOf)
	}
}

func TestWeeklyPlanJSONRoundTrip(t *testing.T) {
	weekStart := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	plan := GenerateWeeklyPlan(weekStart, []string{"ai", "devtools"}, DefaultWindows(), 2)

	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded WeeklyPlan
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(*plan, decoded) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", decoded, *plan)
	}
}
