package task

import (
	"time"
)

// DueBucket selects a due-date-relative slice of a task collection.
type DueBucket string

// Due date buckets. All comparisons truncate to the start of day in the
// reference instant's location; tasks without a due date only ever match
// DueNone.
const (
	DueToday    DueBucket = "today"
	DueUpcoming DueBucket = "upcoming"
	DueOverdue  DueBucket = "overdue"
	DueNone     DueBucket = "no_date"
)

// Valid reports whether b is a known due bucket.
func (b DueBucket) Valid() bool {
	switch b {
	case DueToday, DueUpcoming, DueOverdue, DueNone:
		return true
	}
	return false
}

// upcomingWindowDays is the inclusive horizon of the upcoming bucket.
const upcomingWindowDays = 7

// Filter narrows a task collection. Zero-valued fields impose no
// constraint; set fields are combined with logical AND.
type Filter struct {
	ProjectID  string    `json:"project_id,omitempty"`
	Priority   Priority  `json:"priority,omitempty"`
	Status     Status    `json:"status,omitempty"`
	Due        DueBucket `json:"due,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	AssignedTo string    `json:"assigned_to,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f Filter) IsZero() bool {
	return f.ProjectID == "" && f.Priority == "" && f.Status == "" &&
		f.Due == "" && len(f.Tags) == 0 && f.AssignedTo == ""
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FilterTasks returns the subsequence of tasks satisfying every set field
// of f, evaluated against "today" derived from now. The result preserves
// input order; an empty filter returns all tasks.
func FilterTasks(tasks []Task, f Filter, now time.Time) []Task {
	today := StartOfDay(now)

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !matches(t, f, today) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// matches reports whether t satisfies every set field of f.
func matches(t Task, f Filter, today time.Time) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Due != "" && !matchesDue(t, f.Due, today) {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	for _, tag := range f.Tags {
		if !hasTag(t, tag) {
			return false
		}
	}
	return true
}

// matchesDue reports whether t falls in bucket b relative to today
// (already truncated to start of day).
func matchesDue(t Task, b DueBucket, today time.Time) bool {
	if t.DueDate == nil {
		return b == DueNone
	}

	due := StartOfDay(*t.DueDate)
	switch b {
	case DueToday:
		return due.Equal(today)
	case DueUpcoming:
		return due.After(today) && !due.After(today.AddDate(0, 0, upcomingWindowDays))
	case DueOverdue:
		return due.Before(today) && t.Status != StatusCompleted
	default:
		return false
	}
}

// hasTag reports whether t carries the given tag.
func hasTag(t Task, tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Categorized partitions actionable tasks into four disjoint due-date
// buckets. Completed tasks appear in no bucket; so do tasks due beyond
// the upcoming window.
type Categorized struct {
	Overdue  []Task `json:"overdue"`
	DueToday []Task `json:"due_today"`
	Upcoming []Task `json:"upcoming"`
	NoDate   []Task `json:"no_date"`
}

// CategorizeByDueDate partitions tasks relative to "today" derived from
// now. Each task lands in at most one bucket; relative order within each
// bucket follows input order.
func CategorizeByDueDate(tasks []Task, now time.Time) Categorized {
	today := StartOfDay(now)
	horizon := today.AddDate(0, 0, upcomingWindowDays)

	var c Categorized
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			continue
		}
		if t.DueDate == nil {
			c.NoDate = append(c.NoDate, t)
			continue
		}

		due := StartOfDay(*t.DueDate)
		switch {
		case due.Before(today):
			c.Overdue = append(c.Overdue, t)
		case due.Equal(today):
			c.DueToday = append(c.DueToday, t)
		case !due.After(horizon):
			c.Upcoming = append(c.Upcoming, t)
		}
	}
	return c
}

// Stats holds the quick-overview counters for a task collection.
type Stats struct {
	CompletedToday   int `json:"completed_today"`
	Overdue          int `json:"overdue"`
	DueToday         int `json:"due_today"`
	HighPriorityOpen int `json:"high_priority_open"`
}

// ComputeStats computes aggregate counters relative to "today" derived
// from now. The four counters are independent: a task may contribute to
// none or several of them.
func ComputeStats(tasks []Task, now time.Time) Stats {
	today := StartOfDay(now)

	var s Stats
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			if t.CompletedAt != nil && StartOfDay(*t.CompletedAt).Equal(today) {
				s.CompletedToday++
			}
			continue
		}

		if t.DueDate != nil {
			due := StartOfDay(*t.DueDate)
			if due.Before(today) {
				s.Overdue++
			} else if due.Equal(today) {
				s.DueToday++
			}
		}
		if t.Priority == PriorityHigh || t.Priority == PriorityUrgent {
			s.HighPriorityOpen++
		}
	}
	return s
}

// ToggleCompletion returns a copy of t with its completion state flipped.
// Completing a task stamps CompletedAt with now; reopening clears it and
// resets the status to pending. The input is never mutated.
func ToggleCompletion(t Task, now time.Time) Task {
	if t.Status == StatusCompleted {
		t.Status = StatusPending
		t.CompletedAt = nil
		return t
	}

	completedAt := now
	t.Status = StatusCompleted
	t.CompletedAt = &completedAt
	return t
}
