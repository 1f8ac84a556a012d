package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeRepo backs the booking flow in memory. Slot keys are
// "date time"; raceKeys report free on the first occupancy query and
// taken afterwards, standing in for a concurrent writer landing
// between the scan and the pre-insert re-check.
type fakeRepo struct {
	patients map[string]*models.Patient
	doctors  map[uint]*models.Doctor

	last         *models.Appointment
	appointments map[string]*models.Appointment
	taken        map[string]bool
	raceKeys     map[string]bool
	patientDays  map[string]bool

	slotQueries map[string]int
	created     []*models.Appointment
	updates     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patients: map[string]*models.Patient{
			"ana@example.com": {ID: 1, Name: "Ana Souza", Email: "ana@example.com"},
		},
		doctors: map[uint]*models.Doctor{
			7: {ID: 7, Name: "Dr. Lima", Email: "lima@example.com"},
		},
		appointments: map[string]*models.Appointment{},
		taken:        map[string]bool{},
		raceKeys:     map[string]bool{},
		patientDays:  map[string]bool{},
		slotQueries:  map[string]int{},
	}
}

func (r *fakeRepo) GetPatientByEmail(_ context.Context, email string) (*models.Patient, error) {
	p, ok := r.patients[email]
	if !ok {
		return nil, httperr.ErrBusiness("patient_not_found")
	}
	return p, nil
}

func (r *fakeRepo) GetDoctorByID(_ context.Context, id uint) (*models.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}
	return d, nil
}

func (r *fakeRepo) GetDoctorByEmail(_ context.Context, email string) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, httperr.ErrBusiness("doctor_not_found")
}

func (r *fakeRepo) SlotTaken(_ context.Context, _ uint, date, tod string) (bool, error) {
	key := date + " " + tod
	r.slotQueries[key]++
	if r.raceKeys[key] && r.slotQueries[key] > 1 {
		return true, nil
	}
	return r.taken[key], nil
}

func (r *fakeRepo) LastAppointmentForDoctor(context.Context, uint) (*models.Appointment, error) {
	return r.last, nil
}

func (r *fakeRepo) PatientHasAppointmentOn(_ context.Context, _ uint, date string) (bool, error) {
	return r.patientDays[date], nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.created = append(r.created, ap)
	return nil
}

func (r *fakeRepo) GetAppointmentByReference(_ context.Context, reference string) (*models.Appointment, error) {
	ap, ok := r.appointments[reference]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (r *fakeRepo) UpdateAppointment(context.Context, *models.Appointment) error {
	r.updates++
	return nil
}

func (r *fakeRepo) ListForPatient(context.Context, uint) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeRepo) ListForDoctor(context.Context, uint) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeRepo) ListAll(context.Context) ([]models.Appointment, error) { return nil, nil }

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

func newBookingUseCase(repo *fakeRepo, now time.Time) *CreateAppointment {
	scanner := schedule.NewScanner(schedule.DefaultConfig(), repo)
	return NewCreateAppointment(repo, scanner, fixedClock{t: now}, nil)
}

func lastAppointment(date, tod string, queue int) *models.Appointment {
	return &models.Appointment{
		ID:          42,
		DoctorID:    7,
		Date:        date,
		Time:        tod,
		QueueNumber: queue,
		Status:      "pending",
	}
}

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

var bookingInput = CreateAppointmentInput{
	PatientEmail: "ana@example.com",
	DoctorID:     7,
	Reason:       "checkup",
}

// ======================================================
// TESTS
// ======================================================

func TestCreateAppointment_Booking(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		last      *models.Appointment
		taken     []string
		wantDate  string
		wantTime  string
		wantQueue int
	}{
		{
			name:      "empty calendar books the first morning slot",
			now:       at(2026, time.January, 28, 8, 0), // Wednesday
			wantDate:  "2026-01-28",
			wantTime:  "09:00:00",
			wantQueue: 1,
		},
		{
			name:      "numbering continues within the same session",
			now:       at(2026, time.January, 28, 8, 0),
			last:      lastAppointment("2026-01-28", "09:00:00", 1),
			wantDate:  "2026-01-28",
			wantTime:  "09:20:00",
			wantQueue: 2,
		},
		{
			name:      "numbering resets when crossing into the afternoon",
			now:       at(2026, time.January, 28, 8, 0),
			last:      lastAppointment("2026-01-28", "11:40:00", 3),
			wantDate:  "2026-01-28",
			wantTime:  "15:00:00",
			wantQueue: 1,
		},
		{
			name:      "occupied slots are skipped and counted",
			now:       at(2026, time.January, 28, 8, 0),
			last:      lastAppointment("2026-01-28", "09:00:00", 1),
			taken:     []string{"2026-01-28 09:20:00", "2026-01-28 09:40:00"},
			wantDate:  "2026-01-28",
			wantTime:  "10:00:00",
			wantQueue: 4, // continues from 1, two slots skipped
		},
		{
			name:      "slot already in the past rolls to the next working day",
			now:       at(2026, time.January, 28, 10, 0),
			last:      lastAppointment("2026-01-28", "09:00:00", 1),
			wantDate:  "2026-01-29",
			wantTime:  "09:00:00",
			wantQueue: 1,
		},
		{
			name:      "stale last appointment starts a fresh scan from now",
			now:       at(2026, time.January, 28, 8, 0),
			last:      lastAppointment("2026-01-27", "15:00:00", 5),
			wantDate:  "2026-01-28",
			wantTime:  "09:00:00",
			wantQueue: 1,
		},
		{
			name:      "saturday has no afternoon so overflow lands on monday",
			now:       at(2026, time.January, 31, 8, 0), // Saturday
			last:      lastAppointment("2026-01-31", "11:40:00", 6),
			wantDate:  "2026-02-02",
			wantTime:  "09:00:00",
			wantQueue: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.last = tc.last
			for _, key := range tc.taken {
				repo.taken[key] = true
			}

			uc := newBookingUseCase(repo, tc.now)
			ap, err := uc.Execute(context.Background(), bookingInput)
			if err != nil {
				t.Fatal(err)
			}

			if ap.Date != tc.wantDate {
				t.Errorf("date = %s, want %s", ap.Date, tc.wantDate)
			}
			if ap.Time != tc.wantTime {
				t.Errorf("time = %s, want %s", ap.Time, tc.wantTime)
			}
			if ap.QueueNumber != tc.wantQueue {
				t.Errorf("queue number = %d, want %d", ap.QueueNumber, tc.wantQueue)
			}
			if ap.Status != "pending" {
				t.Errorf("status = %s, want pending", ap.Status)
			}
			if ap.Reference == "" {
				t.Error("reference not set")
			}
			if ap.DoctorName != "Dr. Lima" || ap.PatientName != "Ana Souza" {
				t.Errorf("names = %q / %q", ap.DoctorName, ap.PatientName)
			}
			if len(repo.created) != 1 {
				t.Fatalf("created %d appointments, want 1", len(repo.created))
			}
		})
	}
}

func TestCreateAppointment_SecondBookingSameDayRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.patientDays["2026-01-28"] = true

	uc := newBookingUseCase(repo, at(2026, time.January, 28, 8, 0))
	_, err := uc.Execute(context.Background(), bookingInput)

	if code := httperr.BusinessCode(err); code != "already_booked_that_day" {
		t.Fatalf("code = %q, want already_booked_that_day", code)
	}
	if len(repo.created) != 0 {
		t.Fatalf("created %d appointments, want none", len(repo.created))
	}
}

func TestCreateAppointment_RaceRecheckAdvancesOneSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.last = lastAppointment("2026-01-28", "09:00:00", 1)
	// a concurrent writer grabs 09:20 between the scan and the re-check
	repo.raceKeys["2026-01-28 09:20:00"] = true

	uc := newBookingUseCase(repo, at(2026, time.January, 28, 8, 0))
	ap, err := uc.Execute(context.Background(), bookingInput)
	if err != nil {
		t.Fatal(err)
	}

	if ap.Date != "2026-01-28" || ap.Time != "09:40:00" {
		t.Fatalf("slot = %s %s, want 2026-01-28 09:40:00", ap.Date, ap.Time)
	}
	// still the same morning session, so numbering continues
	if ap.QueueNumber != 2 {
		t.Errorf("queue number = %d, want 2", ap.QueueNumber)
	}
}

func TestCreateAppointment_UnknownActors(t *testing.T) {
	repo := newFakeRepo()
	uc := newBookingUseCase(repo, at(2026, time.January, 28, 8, 0))

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientEmail: "nobody@example.com",
		DoctorID:     7,
	})
	if code := httperr.BusinessCode(err); code != "patient_not_found" {
		t.Errorf("code = %q, want patient_not_found", code)
	}

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		PatientEmail: "ana@example.com",
		DoctorID:     99,
	})
	if code := httperr.BusinessCode(err); code != "doctor_not_found" {
		t.Errorf("code = %q, want doctor_not_found", code)
	}
}
