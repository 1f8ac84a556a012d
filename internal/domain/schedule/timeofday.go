package schedule

import (
	"fmt"
	"time"
)

// ===============================
// TimeOfDay
// ===============================

// TimeOfDay is a clock time expressed in minutes since midnight.
// Rounding a late slot up can push it past 24h; such a value is never
// clamped back to zero, callers treat it as outside any session.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, min int) TimeOfDay {
	return TimeOfDay(hour*60 + min)
}

// FromClock extracts the time-of-day from a wall-clock instant,
// at minute resolution.
func FromClock(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseTimeOfDay accepts "15:04" or "15:04:05" (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders the store key format "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute())
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// At combines the time-of-day with a calendar date, carrying values
// past midnight into the following day.
func (t TimeOfDay) At(date time.Time) time.Time {
	day := int(t) / minutesPerDay
	rem := int(t) % minutesPerDay
	return time.Date(
		date.Year(), date.Month(), date.Day()+day,
		rem/60, rem%60, 0, 0,
		date.Location(),
	)
}

// DateKey renders the store key format for a calendar date.
func DateKey(d time.Time) string {
	return d.Format("2006-01-02")
}

// ParseDateKey parses a stored "2006-01-02" date in the given location.
func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}
