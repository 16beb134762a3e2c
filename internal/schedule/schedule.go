package schedule

import "time"

// Slot statuses.
const (
	StatusPlanned   = "planned"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// ScheduleSlot assigns a post to a (day, hour) within one week.
type ScheduleSlot struct {
	PostID string `json:"post_id"`
	Day    string `json:"day"`
	Hour   int    `json:"hour"`
	Status string `json:"status"`
}

// Schedule holds the conflict-free posting slots for one week.
type Schedule struct {
	WeekOf string         `json:"week_of"`
	Slots  []ScheduleSlot `json:"slots"`
}

// NewSchedule creates an empty schedule for the given week (YYYY-MM-DD).
func NewSchedule(weekOf string) *Schedule {
	return &Schedule{
		WeekOf: weekOf,
		Slots:  []ScheduleSlot{},
	}
}

// Insert appends a slot after checking for a (day, hour) collision.
//
// A collision returns a ConflictError naming the occupying post; the
// schedule is left unchanged and the caller decides whether to override.
// An empty status defaults to planned. The no-collision invariant is
// re-verified as a postcondition before Insert returns.
func (s *Schedule) Insert(slot ScheduleSlot) error {
	if slot.Status == "" {
		slot.Status = StatusPlanned
	}
	if err := ValidateSlot(slot); err != nil {
		return err
	}

	for _, existing := range s.Slots {
		if existing.Day == slot.Day && existing.Hour == slot.Hour {
			return &ConflictError{
				Day:            slot.Day,
				Hour:           slot.Hour,
				ExistingPostID: existing.PostID,
			}
		}
	}

	s.Slots = append(s.Slots, slot)

	if !ValidateSchedule(s) {
		s.Slots = s.Slots[:len(s.Slots)-1]
		return &ValidationError{
			Field:   "slots",
			Value:   slotKey(slot.Day, slot.Hour),
			Message: "insertion would leave the schedule invalid",
		}
	}

	return nil
}

// Remove deletes the slot at (day, hour) and reports whether one existed.
// Used by callers that choose to override a surfaced conflict.
func (s *Schedule) Remove(day string, hour int) bool {
	for i, slot := range s.Slots {
		if slot.Day == day && slot.Hour == hour {
			s.Slots = append(s.Slots[:i], s.Slots[i+1:]...)
			return true
		}
	}
	return false
}

// SlotAt returns the slot occupying (day, hour), if any.
func (s *Schedule) SlotAt(day string, hour int) (ScheduleSlot, bool) {
	for _, slot := range s.Slots {
		if slot.Day == day && slot.Hour == hour {
			return slot, true
		}
	}
	return ScheduleSlot{}, false
}

// ValidateSlot checks a single slot's fields.
func ValidateSlot(slot ScheduleSlot) error {
	if slot.PostID == "" {
		return &ValidationError{Field: "post_id", Value: slot.PostID, Message: "must not be empty"}
	}
	if !ValidDay(slot.Day) {
		return &ValidationError{Field: "day", Value: slot.Day, Message: "must be a weekday code (Mon..Sun)"}
	}
	if slot.Hour < 0 || slot.Hour > 23 {
		return &ValidationError{Field: "hour", Value: slot.Hour, Message: "must be in range 0-23"}
	}
	switch slot.Status {
	case StatusPlanned, StatusScheduled, StatusPublished:
	default:
		return &ValidationError{Field: "status", Value: slot.Status, Message: "must be planned, scheduled, or published"}
	}
	return nil
}

// ValidateSchedule reports whether a schedule is structurally sound: a
// parseable week date, a slot list, well-formed slots, and no two slots
// sharing (day, hour).
//
// The check is pure and usable on externally constructed schedules, e.g.
// loaded from disk, independently of Insert.
func ValidateSchedule(s *Schedule) bool {
	if s == nil || s.Slots == nil {
		return false
	}
	if _, err := time.Parse("2006-01-02", s.WeekOf); err != nil {
		return false
	}

	seen := make(map[string]bool, len(s.Slots))
	for _, slot := range s.Slots {
		if ValidateSlot(slot) != nil {
			return false
		}
		key := slotKey(slot.Day, slot.Hour)
		if seen[key] {
			return false
		}
		seen[key] = true
	}

	return true
}
