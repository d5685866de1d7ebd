package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeToMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeToMinutes("00:00"))
	assert.Equal(t, 540, TimeToMinutes("09:00"))
	assert.Equal(t, 630, TimeToMinutes("10:30"))
	assert.Equal(t, 1439, TimeToMinutes("23:59"))
}

func TestIsValidTime(t *testing.T) {
	assert.True(t, IsValidTime("00:00"))
	assert.True(t, IsValidTime("23:59"))
	assert.True(t, IsValidTime("09:30"))
	assert.False(t, IsValidTime("24:00"))
	assert.False(t, IsValidTime("12:60"))
	assert.False(t, IsValidTime("9:30"))
	assert.False(t, IsValidTime("09-30"))
	assert.False(t, IsValidTime(""))
	assert.False(t, IsValidTime("ab:cd"))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("2024-13-01"))
	assert.False(t, IsValidDate("yesterday"))
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		formatted := MinutesToTime(m)
		assert.Equal(t, m, TimeToMinutes(formatted))
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                         string
		startA, endA, startB, endB   string
		want                         bool
	}{
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"back-to-back", "09:00", "10:00", "10:00", "11:00", false},
		{"back-to-back reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "08:00", "09:00", "13:00", "14:00", false},
		{"one minute overlap", "09:00", "10:01", "10:00", "11:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
			// Overlap is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.startB, tt.endB, tt.startA, tt.endA))
		})
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 90, Duration("09:00", "10:30"))
	assert.Equal(t, 60, Duration("23:00", "00:00")+24*60)
	// Inverted inputs are not clamped
	assert.Equal(t, -90, Duration("10:30", "09:00"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1h 30m", FormatDuration(90))
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "0m", FormatDuration(0))
}

func TestNextDay(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"leap year february", "2024-02-28", "2024-02-29"},
		{"non-leap february", "2023-02-28", "2023-03-01"},
		{"month rollover", "2024-04-30", "2024-05-01"},
		{"year rollover", "2024-12-31", "2025-01-01"},
		{"plain day", "2024-05-01", "2024-05-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDay(tt.date))
		})
	}
}

func TestPrevDay(t *testing.T) {
	assert.Equal(t, "2024-02-29", PrevDay("2024-03-01"))
	assert.Equal(t, "2023-02-28", PrevDay("2023-03-01"))
	assert.Equal(t, "2023-12-31", PrevDay("2024-01-01"))
}

func TestNextPrevRoundTrip(t *testing.T) {
	date := "2024-02-28"
	for i := 0; i < 400; i++ {
		date = NextDay(date)
	}
	for i := 0; i < 400; i++ {
		date = PrevDay(date)
	}
	assert.Equal(t, "2024-02-28", date)
}

func TestToday(t *testing.T) {
	assert.Equal(t, time.Now().Format(DateLayout), Today())
	assert.True(t, IsToday(Today()))
	assert.False(t, IsToday("1999-01-01"))
}

func TestHourSlots(t *testing.T) {
	slots := HourSlots()
	assert.Len(t, slots, 24)
	assert.Equal(t, "00:00", slots[0])
	assert.Equal(t, "09:00", slots[9])
	assert.Equal(t, "23:00", slots[23])
}
