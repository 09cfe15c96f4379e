package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

func at(hour, min int) time.Time {
	// 2026-03-09 is a Monday.
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func TestOverlaps_HalfOpenIntervals(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"partial overlap", at(10, 0), at(10, 30), at(10, 15), at(10, 45), true},
		{"contained", at(10, 0), at(11, 0), at(10, 15), at(10, 30), true},
		{"back to back", at(10, 0), at(10, 30), at(10, 30), at(11, 0), false},
		{"back to back reversed", at(10, 30), at(11, 0), at(10, 0), at(10, 30), false},
		{"disjoint", at(9, 0), at(9, 30), at(10, 0), at(10, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd), "overlap must be symmetric")
		})
	}
}

func TestWithinWindows(t *testing.T) {
	monday := []models.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "17:00", IsAvailable: true},
	}

	assert.True(t, WithinWindows(monday, at(9, 0), at(9, 30)))
	assert.True(t, WithinWindows(monday, at(11, 30), at(12, 0)), "slot may end exactly at window end")
	assert.True(t, WithinWindows(monday, at(14, 0), at(15, 0)))

	assert.False(t, WithinWindows(monday, at(8, 30), at(9, 0)), "before opening")
	assert.False(t, WithinWindows(monday, at(11, 45), at(12, 15)), "spills past window end")
	assert.False(t, WithinWindows(monday, at(12, 30), at(13, 0)), "lunch gap")
	assert.False(t, WithinWindows(monday, at(11, 30), at(14, 30)), "spans two windows")
}

func TestWithinWindows_WrongWeekday(t *testing.T) {
	tuesdayOnly := []models.AvailabilityWindow{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}

	// at() falls on a Monday.
	assert.False(t, WithinWindows(tuesdayOnly, at(10, 0), at(10, 30)))
}

func TestWithinWindows_BlockedWindowDoesNotCount(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: false},
	}

	assert.False(t, WithinWindows(windows, at(10, 0), at(10, 30)))
}

func TestWithinWindows_NoWindowsAtAll(t *testing.T) {
	assert.False(t, WithinWindows(nil, at(10, 0), at(10, 30)))
}

func TestHasWindowsForDay(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: false},
	}

	assert.True(t, HasWindowsForDay(windows, at(10, 0)), "blocked windows still count as declared")
	assert.False(t, HasWindowsForDay(nil, at(10, 0)))
}

func TestValidWindow(t *testing.T) {
	assert.True(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"}))
	assert.True(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: 6, StartTime: "00:00", EndTime: "23:59"}))

	assert.False(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}))
	assert.False(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}))
	assert.False(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}), "inverted bounds")
	assert.False(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}), "empty window")
	assert.False(t, ValidWindow(models.AvailabilityWindow{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"}), "malformed time")
}
