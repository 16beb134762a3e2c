package schedule

import (
	"fmt"
	"time"
)

// Plan item priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	// nowItemCount is how many topics go into the Now tier.
	nowItemCount = 2

	// recommendedWindowCount is how many ranked windows a plan exposes.
	recommendedWindowCount = 5
)

// TargetWindow is the (day, hour) a plan item should publish in.
type TargetWindow struct {
	Day  string `json:"day"`
	Hour int    `json:"hour"`
}

// PlanItem is one content idea inside a weekly plan tier.
type PlanItem struct {
	Topic        string        `json:"topic"`
	Priority     string        `json:"priority"`
	TargetWindow *TargetWindow `json:"target_window,omitempty"`
	Experiment   string        `json:"experiment,omitempty"`
}

// WeeklyPlan is a Now/Next/Later content plan for one week.
type WeeklyPlan struct {
	WeekOf             string       `json:"week_of"`
	Now                []PlanItem   `json:"now"`
	Next               []PlanItem   `json:"next"`
	Later              []PlanItem   `json:"later"`
	RecommendedWindows []TimeWindow `json:"recommended_windows"`
}

// NextMonday returns the upcoming Monday strictly after now. When now is
// already a Monday the plan targets the following week, never the current
// day.
func NextMonday(now time.Time) time.Time {
	daysAhead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return now.AddDate(0, 0, daysAhead)
}

// GenerateWeeklyPlan builds a Now/Next/Later plan from a topic backlog and
// ranked posting windows.
//
// The first two topics land in Now, each pinned to a ranked window by
// position. Next takes topics three and four (reusing the first two when
// the backlog is short) with windows offset by two positions. Every topic
// also gets a Later experiment without an assigned window. The assignment
// contains no randomness: identical inputs produce an identical plan.
//
// A zero weekStart targets the next upcoming Monday.
func GenerateWeeklyPlan(weekStart time.Time, topics []string, ranked []TimeWindow, spreadHours int) *WeeklyPlan {
	if weekStart.IsZero() {
		weekStart = NextMonday(time.Now())
	}

	plan := &WeeklyPlan{
		WeekOf: weekStart.Format("2006-01-02"),
		Now:    []PlanItem{},
		Next:   []PlanItem{},
		Later:  []PlanItem{},
	}

	nowTopics := topics
	if len(nowTopics) > nowItemCount {
		nowTopics = nowTopics[:nowItemCount]
	}
	for i, topic := range nowTopics {
		item := PlanItem{
			Topic:    fmt.Sprintf("Latest insights on %s", topic),
			Priority: PriorityHigh,
		}
		if len(ranked) > 0 {
			w := ranked[i%len(ranked)]
			item.TargetWindow = &TargetWindow{Day: w.Day, Hour: w.Hour}
		}
		plan.Now = append(plan.Now, item)
	}

	nextTopics := nowTopics
	if len(topics) > nowItemCount {
		end := len(topics)
		if end > 4 {
			end = 4
		}
		nextTopics = topics[nowItemCount:end]
	}
	for i, topic := range nextTopics {
		item := PlanItem{
			Topic:    fmt.Sprintf("Deep dive into %s best practices", topic),
			Priority: PriorityMedium,
		}
		if len(ranked) > 0 {
			w := ranked[(i+2)%len(ranked)]
			item.TargetWindow = &TargetWindow{Day: w.Day, Hour: w.Hour}
		}
		plan.Next = append(plan.Next, item)
	}

	for _, topic := range topics {
		plan.Later = append(plan.Later, PlanItem{
			Topic:      fmt.Sprintf("Personal story about %s journey", topic),
			Priority:   PriorityLow,
			Experiment: fmt.Sprintf("Test ±%dh from optimal window", spreadHours),
		})
	}

	recommended := ranked
	if len(recommended) > recommendedWindowCount {
		recommended = recommended[:recommendedWindowCount]
	}
	plan.RecommendedWindows = make([]TimeWindow, len(recommended))
	copy(plan.RecommendedWindows, recommended)

	return plan
}
