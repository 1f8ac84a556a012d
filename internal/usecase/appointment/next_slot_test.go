package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
)

func newNextSlotUseCase(repo *fakeRepo, now time.Time) *GetNextSlot {
	scanner := schedule.NewScanner(schedule.DefaultConfig(), repo)
	return NewGetNextSlot(repo, scanner, fixedClock{t: now})
}

func TestGetNextSlot(t *testing.T) {
	cases := []struct {
		name        string
		now         time.Time
		taken       []string
		wantDate    string
		wantTime    string
		wantSession string
	}{
		{
			name:        "before opening",
			now:         at(2026, time.January, 28, 8, 0),
			wantDate:    "2026-01-28",
			wantTime:    "09:00:00",
			wantSession: "morning",
		},
		{
			name:        "mid morning with the first slots taken",
			now:         at(2026, time.January, 28, 9, 10),
			taken:       []string{"2026-01-28 09:20:00"},
			wantDate:    "2026-01-28",
			wantTime:    "09:40:00",
			wantSession: "morning",
		},
		{
			name:        "lunch gap rolls to the next working day",
			now:         at(2026, time.January, 28, 13, 0),
			wantDate:    "2026-01-29",
			wantTime:    "09:00:00",
			wantSession: "morning",
		},
		{
			name:        "after closing",
			now:         at(2026, time.January, 28, 19, 0),
			wantDate:    "2026-01-29",
			wantTime:    "09:00:00",
			wantSession: "morning",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			for _, key := range tc.taken {
				repo.taken[key] = true
			}

			uc := newNextSlotUseCase(repo, tc.now)
			out, err := uc.Execute(context.Background(), 7)
			if err != nil {
				t.Fatal(err)
			}

			if out.Date != tc.wantDate || out.Time != tc.wantTime {
				t.Errorf("slot = %s %s, want %s %s", out.Date, out.Time, tc.wantDate, tc.wantTime)
			}
			if out.Session != tc.wantSession {
				t.Errorf("session = %s, want %s", out.Session, tc.wantSession)
			}
			if out.DoctorName != "Dr. Lima" {
				t.Errorf("doctor name = %s", out.DoctorName)
			}
		})
	}
}

func TestGetNextSlot_UnknownDoctor(t *testing.T) {
	uc := newNextSlotUseCase(newFakeRepo(), at(2026, time.January, 28, 8, 0))

	_, err := uc.Execute(context.Background(), 99)
	if code := httperr.BusinessCode(err); code != "doctor_not_found" {
		t.Fatalf("code = %q, want doctor_not_found", code)
	}
}
