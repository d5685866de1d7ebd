// Package clock provides pure wall-clock time and calendar-date helpers for
// the scheduler. Times are "HH:MM" strings, dates are "YYYY-MM-DD" strings;
// all arithmetic is local wall-clock, no timezone handling.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used throughout dayplan.
const DateLayout = "2006-01-02"

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Malformed input is a caller error and yields 0 for the broken field.
func TimeToMinutes(t string) int {
	hh, mm, _ := strings.Cut(t, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	return hours*60 + minutes
}

// IsValidTime reports whether t is a well-formed 24-hour "HH:MM" string in
// 00:00–23:59. Callers gate user input on this before handing times to the
// rest of the package.
func IsValidTime(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return false
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	minutes := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours <= 23 && minutes <= 59
}

// IsValidDate reports whether date is a well-formed "YYYY-MM-DD" calendar
// date.
func IsValidDate(date string) bool {
	_, err := time.ParseInLocation(DateLayout, date, time.Local)
	return err == nil
}

// MinutesToTime converts minutes since midnight back to "HH:MM".
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Back-to-back ranges (endA == startB) do not
// overlap; the strict < on both sides is load-bearing.
func Overlaps(startA, endA, startB, endB string) bool {
	return TimeToMinutes(startA) < TimeToMinutes(endB) &&
		TimeToMinutes(startB) < TimeToMinutes(endA)
}

// Duration returns end minus start in minutes. Inverted inputs produce a
// negative result; ordering validation is the caller's job.
func Duration(start, end string) int {
	return TimeToMinutes(end) - TimeToMinutes(start)
}

// FormatDuration renders minutes as "1h 30m", "2h", or "45m".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	rem := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
}

// Today returns the current local date as "YYYY-MM-DD".
func Today() string {
	return time.Now().Format(DateLayout)
}

// IsToday reports whether date is the current local date.
func IsToday(date string) bool {
	return date == Today()
}

// NextDay returns the calendar day after date, rolling over months and years.
func NextDay(date string) string {
	return shiftDay(date, 1)
}

// PrevDay returns the calendar day before date.
func PrevDay(date string) string {
	return shiftDay(date, -1)
}

func shiftDay(date string, days int) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// HourSlots returns the 24 hour gridline labels "00:00" through "23:00".
func HourSlots() []string {
	slots := make([]string, 24)
	for h := range slots {
		slots[h] = fmt.Sprintf("%02d:00", h)
	}
	return slots
}
