package store

import (
	"sort"

	"github.com/stefanpenner/dayplan/pkg/clock"
)

// Task is a time-boxed activity scheduled on a single calendar day.
// StartTime/EndTime are 24-hour "HH:MM" wall-clock strings with EndTime
// strictly after StartTime; Date is "YYYY-MM-DD". Time ordering and title
// presence are validated by the caller before the task reaches the store.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Completed   bool   `json:"completed"`
}

// ConflictsWith reports whether t and other occupy intersecting [start, end)
// intervals on the same day. Tasks on different dates never conflict.
func (t Task) ConflictsWith(other Task) bool {
	if t.Date != other.Date {
		return false
	}
	return clock.Overlaps(t.StartTime, t.EndTime, other.StartTime, other.EndTime)
}

// DurationMinutes returns the task's length in minutes.
func (t Task) DurationMinutes() int {
	return clock.Duration(t.StartTime, t.EndTime)
}

// Category is a label for grouping tasks. Color is an opaque display token;
// tasks reference categories by ID and the reference may dangle after a
// category is deleted.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultCategories seeds a fresh installation.
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#4285F4"},
		{ID: "personal", Name: "Personal", Color: "#25A065"},
		{ID: "health", Name: "Health", Color: "#E05252"},
		{ID: "errands", Name: "Errands", Color: "#E5C07B"},
	}
}

// SortByStart returns tasks ordered ascending by start time without mutating
// the input. The sort is stable, so equal starts keep insertion order.
func SortByStart(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return clock.TimeToMinutes(sorted[i].StartTime) < clock.TimeToMinutes(sorted[j].StartTime)
	})
	return sorted
}

// FilterByDate returns the tasks scheduled on date, preserving order.
func FilterByDate(tasks []Task, date string) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}
