/*
Package schedule implements posting-time ranking and weekly schedule assembly.

Ranking starts from a curated list of best-practice posting windows and
overlays observed engagement per (day, hour) slot. Slots outside the curated
list are never recommended, which keeps suggestions inside explainable,
pre-vetted posting times. Schedules enforce a no-collision invariant on
(day, hour) at insertion time.
*/
package schedule

import (
	"fmt"
	"sort"

	"github.com/postpilot/postpilot/internal/store"
)

const (
	// maxRankedWindows is how many windows RankWindows returns.
	maxRankedWindows = 7

	// minExperimentHour and maxExperimentHour bound experimental windows
	// to waking hours.
	minExperimentHour = 6
	maxExperimentHour = 22
)

// TimeWindow represents a candidate posting slot with engagement data.
type TimeWindow struct {
	Day             string  `json:"day"`
	Hour            int     `json:"hour"`
	EngagementScore float64 `json:"engagement_score"`
	PostCount       int     `json:"post_count"`
}

// defaultWindows is the best-practice seed list (weekday work-hours bias).
// List order encodes the prior ranking and is the tie-break between equal
// scores, so keep it sorted by prior score.
var defaultWindows = []TimeWindow{
	{Day: "Tue", Hour: 10, EngagementScore: 0.8},
	{Day: "Thu", Hour: 11, EngagementScore: 0.75},
	{Day: "Wed", Hour: 14, EngagementScore: 0.7},
	{Day: "Tue", Hour: 15, EngagementScore: 0.65},
	{Day: "Fri", Hour: 12, EngagementScore: 0.6},
	{Day: "Mon", Hour: 16, EngagementScore: 0.55},
	{Day: "Wed", Hour: 9, EngagementScore: 0.5},
}

// DefaultWindows returns a fresh copy of the seed windows.
func DefaultWindows() []TimeWindow {
	windows := make([]TimeWindow, len(defaultWindows))
	copy(windows, defaultWindows)
	return windows
}

// validDays maps weekday codes used across windows, slots, and plans.
var validDays = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

// ValidDay reports whether day is one of the seven weekday codes.
func ValidDay(day string) bool {
	return validDays[day]
}

// slotKey identifies a (day, hour) bucket.
func slotKey(day string, hour int) string {
	return fmt.Sprintf("%s-%d", day, hour)
}

// RankWindows merges observed engagement into the default windows and
// returns the top windows sorted by engagement score.
//
// Every metric is bucketed by the weekday and hour it was published.
// Windows whose bucket has observed data take the bucket's mean engagement
// rate and sample count; the rest keep their prior score and a zero count.
// The sort is stable so equal scores preserve the seed ordering. With no
// metrics at all the defaults come back unchanged.
func RankWindows(defaults []TimeWindow, metrics []store.EngagementMetric) []TimeWindow {
	type bucket struct {
		sum   float64
		count int
	}

	performance := make(map[string]*bucket)
	for _, m := range metrics {
		if m.PublishedAt.IsZero() {
			continue
		}
		key := slotKey(m.PublishedAt.Format("Mon"), m.PublishedAt.Hour())
		b, ok := performance[key]
		if !ok {
			b = &bucket{}
			performance[key] = b
		}
		b.sum += m.EngagementRate
		b.count++
	}

	ranked := make([]TimeWindow, len(defaults))
	copy(ranked, defaults)

	for i := range ranked {
		if b, ok := performance[slotKey(ranked[i].Day, ranked[i].Hour)]; ok {
			ranked[i].EngagementScore = b.sum / float64(b.count)
			ranked[i].PostCount = b.count
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EngagementScore > ranked[j].EngagementScore
	})

	if len(ranked) > maxRankedWindows {
		ranked = ranked[:maxRankedWindows]
	}

	return ranked
}

// SuggestPostingTime returns the best window, preferring preferredDay when
// a window exists on that day. Falls back to the top seed slot when the
// ranked list is empty.
func SuggestPostingTime(ranked []TimeWindow, preferredDay string) TimeWindow {
	if preferredDay != "" {
		for _, w := range ranked {
			if w.Day == preferredDay {
				return w
			}
		}
	}

	if len(ranked) > 0 {
		return ranked[0]
	}
	return TimeWindow{Day: "Tue", Hour: 10}
}

// ExperimentalWindow derives an exploratory window around a proven one.
// The hour is shifted by spreadHours and clamped to waking hours; the
// derivation is deterministic so schedules stay reproducible.
func ExperimentalWindow(base TimeWindow, spreadHours int) TimeWindow {
	hour := base.Hour + spreadHours
	if hour < minExperimentHour {
		hour = minExperimentHour
	}
	if hour > maxExperimentHour {
		hour = maxExperimentHour
	}

	return TimeWindow{
		Day:  base.Day,
		Hour: hour,
		// Unknown performance for an experimental slot.
		EngagementScore: 0.0,
	}
}
