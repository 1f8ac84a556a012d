package schedule

import (
	"context"
	"errors"
	"time"
)

// ===============================
// Slot scanning
// ===============================

// Occupancy answers whether a doctor already holds an appointment at an
// exact (date, time) slot. Date and time use the store key formats
// (DateKey / TimeOfDay.String).
type Occupancy interface {
	SlotTaken(ctx context.Context, doctorID uint, date string, timeOfDay string) (bool, error)
}

// Slot is a free candidate found by a scan. Skipped counts the occupied
// slots passed over before it.
type Slot struct {
	Date    time.Time
	Time    TimeOfDay
	Skipped int
}

// Ordinal is the 1-based position of the slot within its scan, used as
// the queue number when a session's numbering starts fresh.
func (s Slot) Ordinal() int { return 1 + s.Skipped }

const maxScanAttempts = 500

// ErrNoFreeSlot means the scan bound was exhausted. With sane working
// hours this cannot happen and indicates a config or data anomaly.
var ErrNoFreeSlot = errors.New("schedule: no free slot within scan bound")

type Scanner struct {
	cfg       Config
	occupancy Occupancy
}

func NewScanner(cfg Config, occupancy Occupancy) *Scanner {
	return &Scanner{cfg: cfg, occupancy: occupancy}
}

func (s *Scanner) Config() Config { return s.cfg }

// FindNextFreeSlot walks forward from (startDate, startTime) in slot
// increments until it finds a slot the doctor does not hold, snapping
// over non-working periods, the half-day afternoon and the day off.
func (s *Scanner) FindNextFreeSlot(
	ctx context.Context,
	doctorID uint,
	startDate time.Time,
	startTime TimeOfDay,
) (Slot, error) {

	date := startDate
	tod := startTime
	skipped := 0

	for attempt := 0; attempt < maxScanAttempts; attempt++ {

		if s.cfg.SessionOf(tod) == SessionNone {
			switch {
			case tod.Before(s.cfg.MorningStart):
				tod = s.cfg.MorningStart
			case tod.Before(s.cfg.AfternoonStart):
				tod = s.cfg.AfternoonStart
			default:
				date = s.cfg.NextWorkingDay(date)
				tod = s.cfg.MorningStart
			}
			continue
		}

		// the half day has no afternoon session
		if date.Weekday() == s.cfg.HalfDay && !tod.Before(s.cfg.AfternoonStart) {
			date = s.cfg.NextWorkingDay(date)
			tod = s.cfg.MorningStart
			continue
		}

		taken, err := s.occupancy.SlotTaken(ctx, doctorID, DateKey(date), tod.String())
		if err != nil {
			return Slot{}, err
		}
		if !taken {
			return Slot{Date: date, Time: tod, Skipped: skipped}, nil
		}

		date, tod = Advance(date, tod, s.cfg.SlotDuration)
		skipped++
	}

	return Slot{}, ErrNoFreeSlot
}

// FirstAvailableToday finds the first free slot a walk-in request at
// instant now could take, rolling past the day off and, when now is
// already beyond the afternoon end, past today entirely.
func (s *Scanner) FirstAvailableToday(
	ctx context.Context,
	doctorID uint,
	now time.Time,
) (Slot, error) {

	date := now
	if date.Weekday() == s.cfg.DayOff {
		date = s.cfg.NextWorkingDay(date)
	}

	clock := FromClock(now)
	start := s.cfg.NextSlotStart(clock)

	// NextSlotStart collapses a post-afternoon time back to the morning
	// start; that morning belongs to the next working day.
	if start == s.cfg.MorningStart && !clock.Before(s.cfg.AfternoonEnd) {
		date = s.cfg.NextWorkingDay(date)
	}

	return s.FindNextFreeSlot(ctx, doctorID, date, start)
}

// Advance moves one slot forward, carrying into the next date when the
// increment crosses midnight.
func Advance(date time.Time, tod TimeOfDay, slot time.Duration) (time.Time, TimeOfDay) {
	next := tod.Add(slot)
	for next >= minutesPerDay {
		next -= minutesPerDay
		date = date.AddDate(0, 0, 1)
	}
	return date, next
}
