package appointment

import (
	"time"

	"github.com/careconnect/clinic-scheduler/internal/models"
)

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back slots do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// WithinWindows reports whether [start, end) lies fully inside one of
// the physician's isAvailable windows for that weekday. Window times
// are wall-clock "HH:MM" interpreted in start's location.
func WithinWindows(windows []models.AvailabilityWindow, start, end time.Time) bool {
	weekday := int(start.Weekday())
	loc := start.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	for _, w := range windows {
		if w.DayOfWeek != weekday || !w.IsAvailable {
			continue
		}

		winStart, ok1 := parseHM(w.StartTime)
		winEnd, ok2 := parseHM(w.EndTime)
		if !ok1 || !ok2 {
			continue
		}

		if !start.Before(winStart) && !end.After(winEnd) {
			return true
		}
	}

	return false
}

// HasWindowsForDay reports whether the physician declared any window at
// all for start's weekday, available or not.
func HasWindowsForDay(windows []models.AvailabilityWindow, start time.Time) bool {
	weekday := int(start.Weekday())
	for _, w := range windows {
		if w.DayOfWeek == weekday {
			return true
		}
	}
	return false
}

// ValidWindow checks the per-window invariant: well-formed "HH:MM"
// bounds with start strictly before end, on a real weekday.
func ValidWindow(w models.AvailabilityWindow) bool {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return false
	}

	s, err := time.Parse("15:04", w.StartTime)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", w.EndTime)
	if err != nil {
		return false
	}

	return s.Before(e)
}
