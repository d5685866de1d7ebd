package tui

import (
	"github.com/stefanpenner/dayplan/pkg/clock"
	"github.com/stefanpenner/dayplan/pkg/store"
)

// TimelineRow is one rendered line of the day view: either an hour gridline
// or a task positioned under the hour its start time falls in.
type TimelineRow struct {
	HourLabel string // "09:00" for gridline rows, empty for task rows
	Task      store.Task
	TaskIndex int // index into the day's sorted tasks, -1 for gridlines
}

// IsGridline reports whether the row is an hour gridline.
func (r TimelineRow) IsGridline() bool {
	return r.TaskIndex < 0
}

// BuildTimeline flattens a day's tasks onto the 24-hour grid. Tasks must
// already be sorted by start time; each lands under the gridline of its
// start hour.
func BuildTimeline(tasks []store.Task) []TimelineRow {
	var rows []TimelineRow
	next := 0
	for _, slot := range clock.HourSlots() {
		rows = append(rows, TimelineRow{HourLabel: slot, TaskIndex: -1})
		hourEnd := clock.TimeToMinutes(slot) + 60
		for next < len(tasks) && clock.TimeToMinutes(tasks[next].StartTime) < hourEnd {
			rows = append(rows, TimelineRow{Task: tasks[next], TaskIndex: next})
			next++
		}
	}
	return rows
}

// RowForTask returns the row index holding the task at taskIndex, or 0.
func RowForTask(rows []TimelineRow, taskIndex int) int {
	for i, r := range rows {
		if r.TaskIndex == taskIndex {
			return i
		}
	}
	return 0
}
