package schedule

import "time"

// ===============================
// Sessions
// ===============================

type Session int

const (
	SessionNone Session = iota
	SessionMorning
	SessionAfternoon
)

func (s Session) String() string {
	switch s {
	case SessionMorning:
		return "morning"
	case SessionAfternoon:
		return "afternoon"
	default:
		return "none"
	}
}

// ===============================
// Config
// ===============================

// Config carries the clinic-wide working-hour windows. The windows are
// half-open: a slot starting exactly at a session end is outside it.
type Config struct {
	MorningStart   TimeOfDay
	MorningEnd     TimeOfDay
	AfternoonStart TimeOfDay
	AfternoonEnd   TimeOfDay

	SlotDuration time.Duration

	DayOff  time.Weekday
	HalfDay time.Weekday
}

func DefaultConfig() Config {
	return Config{
		MorningStart:   NewTimeOfDay(9, 0),
		MorningEnd:     NewTimeOfDay(12, 0),
		AfternoonStart: NewTimeOfDay(15, 0),
		AfternoonEnd:   NewTimeOfDay(18, 0),
		SlotDuration:   20 * time.Minute,
		DayOff:         time.Sunday,
		HalfDay:        time.Saturday,
	}
}

// ===============================
// Calendar rules
// ===============================

func (c Config) SessionOf(t TimeOfDay) Session {
	switch {
	case !t.Before(c.MorningStart) && t.Before(c.MorningEnd):
		return SessionMorning
	case !t.Before(c.AfternoonStart) && t.Before(c.AfternoonEnd):
		return SessionAfternoon
	default:
		return SessionNone
	}
}

// NextWorkingDay returns the day after d, skipping the weekly day off.
func (c Config) NextWorkingDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for next.Weekday() == c.DayOff {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RoundUpToSlot returns the smallest slot boundary strictly after t.
// A boundary-aligned input moves a full slot forward. The result can
// exceed 24h, FindNextFreeSlot treats such values as out-of-session.
func (c Config) RoundUpToSlot(t TimeOfDay) TimeOfDay {
	slot := TimeOfDay(c.SlotDuration / time.Minute)
	rem := t % slot
	if rem == 0 {
		return t + slot
	}
	return t + slot - rem
}

// NextSlotStart maps an arbitrary clock time onto the first slot start
// at or after it. Rolling past the afternoon end yields the morning
// start; the caller is responsible for also rolling the date forward.
func (c Config) NextSlotStart(t TimeOfDay) TimeOfDay {
	if t.Before(c.MorningStart) {
		return c.MorningStart
	}

	if c.SessionOf(t) == SessionMorning {
		next := c.RoundUpToSlot(t)
		if next.Before(c.MorningEnd) {
			return next
		}
		return c.AfternoonStart
	}

	if c.SessionOf(t) == SessionAfternoon {
		next := c.RoundUpToSlot(t)
		if next.Before(c.AfternoonEnd) {
			return next
		}
		return c.MorningStart
	}

	// lunch gap or past the afternoon end
	return c.MorningStart
}
