package schedule

import (
	"testing"
	"time"
)

func TestSessionOf(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		tod  TimeOfDay
		want Session
	}{
		{"before morning", NewTimeOfDay(8, 59), SessionNone},
		{"morning start", NewTimeOfDay(9, 0), SessionMorning},
		{"mid morning", NewTimeOfDay(11, 40), SessionMorning},
		{"morning end is exclusive", NewTimeOfDay(12, 0), SessionNone},
		{"lunch gap", NewTimeOfDay(13, 30), SessionNone},
		{"afternoon start", NewTimeOfDay(15, 0), SessionAfternoon},
		{"last afternoon slot", NewTimeOfDay(17, 40), SessionAfternoon},
		{"afternoon end is exclusive", NewTimeOfDay(18, 0), SessionNone},
		{"late evening", NewTimeOfDay(22, 15), SessionNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.SessionOf(tc.tod); got != tc.want {
				t.Fatalf("SessionOf(%s) = %v, want %v", tc.tod, got, tc.want)
			}
		})
	}
}

func TestRoundUpToSlot(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		in   TimeOfDay
		want TimeOfDay
	}{
		{NewTimeOfDay(9, 0), NewTimeOfDay(9, 20)},   // aligned moves a full slot
		{NewTimeOfDay(9, 1), NewTimeOfDay(9, 20)},
		{NewTimeOfDay(9, 19), NewTimeOfDay(9, 20)},
		{NewTimeOfDay(9, 20), NewTimeOfDay(9, 40)},
		{NewTimeOfDay(11, 55), NewTimeOfDay(12, 0)},
		{NewTimeOfDay(23, 50), NewTimeOfDay(24, 0)}, // not wrapped back to midnight
	}

	for _, tc := range cases {
		if got := cfg.RoundUpToSlot(tc.in); got != tc.want {
			t.Errorf("RoundUpToSlot(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

// Aligned times advance exactly one slot, and feeding the output back
// in advances exactly one more.
func TestRoundUpToSlot_AlignedProgression(t *testing.T) {
	cfg := DefaultConfig()
	slot := TimeOfDay(cfg.SlotDuration / time.Minute)

	for tod := cfg.MorningStart; tod.Before(cfg.AfternoonEnd); tod += slot {
		next := cfg.RoundUpToSlot(tod)
		if next != tod+slot {
			t.Fatalf("RoundUpToSlot(%s) = %s, want %s", tod, next, tod+slot)
		}
		if again := cfg.RoundUpToSlot(next); again != next+slot {
			t.Fatalf("RoundUpToSlot(%s) = %s, want %s", next, again, next+slot)
		}
	}
}

func TestNextWorkingDay_SkipsDayOff(t *testing.T) {
	cfg := DefaultConfig()

	// a full week of start days
	start := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC) // Monday
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		next := cfg.NextWorkingDay(d)

		if next.Weekday() == cfg.DayOff {
			t.Fatalf("NextWorkingDay(%s) landed on the day off", d.Format("2006-01-02"))
		}
		if !next.After(d) {
			t.Fatalf("NextWorkingDay(%s) = %s did not move forward", d.Format("2006-01-02"), next.Format("2006-01-02"))
		}
	}

	// Saturday jumps over Sunday to Monday
	sat := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := cfg.NextWorkingDay(sat); got.Weekday() != time.Monday {
		t.Fatalf("NextWorkingDay(Saturday) = %s, want Monday", got.Weekday())
	}
}

func TestNextSlotStart(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		in   TimeOfDay
		want TimeOfDay
	}{
		{"before morning", NewTimeOfDay(8, 0), cfg.MorningStart},
		{"inside morning rounds up", NewTimeOfDay(9, 5), NewTimeOfDay(9, 20)},
		{"end of morning rolls to afternoon", NewTimeOfDay(11, 45), cfg.AfternoonStart},
		{"lunch gap returns morning start", NewTimeOfDay(13, 0), cfg.MorningStart},
		{"inside afternoon rounds up", NewTimeOfDay(16, 0), NewTimeOfDay(16, 20)},
		{"end of afternoon returns morning start", NewTimeOfDay(17, 55), cfg.MorningStart},
		{"past closing returns morning start", NewTimeOfDay(19, 0), cfg.MorningStart},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.NextSlotStart(tc.in); got != tc.want {
				t.Fatalf("NextSlotStart(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	if got := NewTimeOfDay(9, 20).String(); got != "09:20:00" {
		t.Fatalf("String() = %q, want 09:20:00", got)
	}

	parsed, err := ParseTimeOfDay("15:40:00")
	if err != nil {
		t.Fatal(err)
	}
	if parsed != NewTimeOfDay(15, 40) {
		t.Fatalf("ParseTimeOfDay = %s, want 15:40:00", parsed)
	}

	if _, err := ParseTimeOfDay("9h30"); err == nil {
		t.Fatal("expected error for malformed time")
	}

	// combining past midnight carries the date
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	at := NewTimeOfDay(24, 20).At(day)
	if at.Day() != 29 || at.Hour() != 0 || at.Minute() != 20 {
		t.Fatalf("At carried to %s", at)
	}
}

func TestAdvance_CarriesDate(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

	d, tod := Advance(day, NewTimeOfDay(23, 50), 20*time.Minute)
	if d.Day() != 29 || tod != NewTimeOfDay(0, 10) {
		t.Fatalf("Advance = (%s, %s)", d.Format("2006-01-02"), tod)
	}

	d, tod = Advance(day, NewTimeOfDay(9, 0), 20*time.Minute)
	if d.Day() != 28 || tod != NewTimeOfDay(9, 20) {
		t.Fatalf("Advance = (%s, %s)", d.Format("2006-01-02"), tod)
	}
}
