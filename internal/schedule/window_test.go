package schedule

import (
	"testing"
	"time"

	"github.com/postpilot/postpilot/internal/store"
)

func TestRankWindowsNoMetrics(t *testing.T) {
	ranked := RankWindows(DefaultWindows(), nil)

	if len(ranked) != len(defaultWindows) {
		t.Fatalf("Expected %d windows, got %d", len(defaultWindows), len(ranked))
	}

	// With no observed data the seed ordering must come back unchanged.
	for i, w := range ranked {
		if w.Day != defaultWindows[i].Day || w.Hour != defaultWindows[i].Hour {
			t.Errorf("Window %d: expected %s %d, got %s %d",
				i, defaultWindows[i].Day, defaultWindows[i].Hour, w.Day, w.Hour)
		}
		if w.EngagementScore != defaultWindows[i].EngagementScore {
			t.Errorf("Window %d: prior score changed from %v to %v",
				i, defaultWindows[i].EngagementScore, w.EngagementScore)
		}
		if w.PostCount != 0 {
			t.Errorf("Window %d: expected zero post count, got %d", i, w.PostCount)
		}
	}
}

func TestRankWindowsObservedDataOverridesPrior(t *testing.T) {
	// 2025-08-12 is a Tuesday; published at 10:00 it lands in the Tue-10
	// bucket, which exists in the seed list.
	publishedAt := time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC)
	metrics := []store.EngagementMetric{
		{
			PostID:         "p1",
			Impressions:    1000,
			Reactions:      80,
			Comments:       10,
			Shares:         5,
			PublishedAt:    publishedAt,
			EngagementRate: 0.095,
		},
	}

	ranked := RankWindows(DefaultWindows(), metrics)

	var tue10 *TimeWindow
	for i := range ranked {
		if ranked[i].Day == "Tue" && ranked[i].Hour == 10 {
			tue10 = &ranked[i]
		}
	}
	if tue10 == nil {
		t.Fatal("Tue 10 window missing from ranked output")
	}

	if tue10.EngagementScore != 0.095 {
		t.Errorf("Expected observed score 0.095, got %v", tue10.EngagementScore)
	}
	if tue10.PostCount != 1 {
		t.Errorf("Expected post count 1, got %d", tue10.PostCount)
	}

	// Observed 0.095 is below every prior, so Tue 10 should rank last.
	if ranked[len(ranked)-1].Day != "Tue" || ranked[len(ranked)-1].Hour != 10 {
		t.Errorf("Expected Tue 10 ranked last, got %s %d",
			ranked[len(ranked)-1].Day, ranked[len(ranked)-1].Hour)
	}
}

func TestRankWindowsAveragesMultipleMetrics(t *testing.T) {
	publishedAt := time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC)
	metrics := []store.EngagementMetric{
		{PostID: "p1", PublishedAt: publishedAt, EngagementRate: 0.10},
		{PostID: "p2", PublishedAt: publishedAt, EngagementRate: 0.30},
	}

	ranked := RankWindows(DefaultWindows(), metrics)

	for _, w := range ranked {
		if w.Day == "Tue" && w.Hour == 10 {
			if w.EngagementScore != 0.20 {
				t.Errorf("Expected mean score 0.20, got %v", w.EngagementScore)
			}
			if w.PostCount != 2 {
				t.Errorf("Expected post count 2, got %d", w.PostCount)
			}
			return
		}
	}
	t.Fatal("Tue 10 window missing from ranked output")
}

func TestRankWindowsIgnoresMetricsOutsideSeedSlots(t *testing.T) {
	// Saturday 03:00 is not a curated window and must not create one.
	publishedAt := time.Date(2025, 8, 16, 3, 0, 0, 0, time.UTC)
	metrics := []store.EngagementMetric{
		{PostID: "p1", PublishedAt: publishedAt, EngagementRate: 0.99},
	}

	ranked := RankWindows(DefaultWindows(), metrics)

	for _, w := range ranked {
		if w.Day == "Sat" {
			t.Errorf("Unexpected Sat window in ranked output: %+v", w)
		}
	}
	if len(ranked) > 7 {
		t.Errorf("Expected at most 7 windows, got %d", len(ranked))
	}
}

func TestRankWindowsSkipsZeroPublishedAt(t *testing.T) {
	metrics := []store.EngagementMetric{
		{PostID: "p1", EngagementRate: 0.5},
	}

	ranked := RankWindows(DefaultWindows(), metrics)

	for i, w := range ranked {
		if w.PostCount != 0 {
			t.Errorf("Window %d: metric without timestamp was bucketed: %+v", i, w)
		}
	}
}

func TestRankWindowsNoDuplicateSlots(t *testing.T) {
	publishedAt := time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC)
	metrics := []store.EngagementMetric{
		{PostID: "p1", PublishedAt: publishedAt, EngagementRate: 0.9},
	}

	ranked := RankWindows(DefaultWindows(), metrics)

	seen := map[string]bool{}
	for _, w := range ranked {
		key := slotKey(w.Day, w.Hour)
		if seen[key] {
			t.Errorf("Duplicate slot %s in ranked output", key)
		}
		seen[key] = true
	}
}

func TestSuggestPostingTime(t *testing.T) {
	ranked := DefaultWindows()

	best := SuggestPostingTime(ranked, "")
	if best.Day != "Tue" || best.Hour != 10 {
		t.Errorf("Expected top window Tue 10, got %s %d", best.Day, best.Hour)
	}

	wed := SuggestPostingTime(ranked, "Wed")
	if wed.Day != "Wed" || wed.Hour != 14 {
		t.Errorf("Expected best Wed window Wed 14, got %s %d", wed.Day, wed.Hour)
	}

	// No window on the preferred day falls back to the overall best.
	sat := SuggestPostingTime(ranked, "Sat")
	if sat.Day != "Tue" || sat.Hour != 10 {
		t.Errorf("Expected fallback Tue 10, got %s %d", sat.Day, sat.Hour)
	}

	empty := SuggestPostingTime(nil, "")
	if empty.Day != "Tue" || empty.Hour != 10 {
		t.Errorf("Expected seed fallback Tue 10, got %s %d", empty.Day, empty.Hour)
	}
}

func TestExperimentalWindow(t *testing.T) {
	tests := []struct {
		name     string
		base     TimeWindow
		spread   int
		wantHour int
	}{
		{"shift forward", TimeWindow{Day: "Tue", Hour: 10}, 2, 12},
		{"shift backward", TimeWindow{Day: "Tue", Hour: 10}, -2, 8},
		{"clamp to morning floor", TimeWindow{Day: "Wed", Hour: 7}, -4, 6},
		{"clamp to evening ceiling", TimeWindow{Day: "Fri", Hour: 21}, 3, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExperimentalWindow(tt.base, tt.spread)
			if got.Hour != tt.wantHour {
				t.Errorf("Expected hour %d, got %d", tt.wantHour, got.Hour)
			}
			if got.Day != tt.base.Day {
				t.Errorf("Day changed from %s to %s", tt.base.Day, got.Day)
			}
			if got.EngagementScore != 0 {
				t.Errorf("Experimental window carries a score: %v", got.EngagementScore)
			}
		})
	}
}

func TestExperimentalWindowDeterministic(t *testing.T) {
	base := TimeWindow{Day: "Thu", Hour: 11}
	first := ExperimentalWindow(base, 2)
	for i := 0; i < 10; i++ {
		if got := ExperimentalWindow(base, 2); got != first {
			t.Fatalf("Non-deterministic result: %+v vs %+v", got, first)
		}
	}
}

func TestDefaultWindowsReturnsCopy(t *testing.T) {
	windows := DefaultWindows()
	windows[0].EngagementScore = 0

	if defaultWindows[0].EngagementScore == 0 {
		t.Error("Mutating the returned slice changed the seed list")
	}
}
