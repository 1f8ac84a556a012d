package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PatientEmail string
	DoctorID     uint
	Reason       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	scanner *schedule.Scanner
	clock   Clock
	audit   *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	scanner *schedule.Scanner,
	clock Clock,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		scanner: scanner,
		clock:   clock,
		audit:   audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Patient and doctor
	// --------------------------------------------------
	patient, err := uc.repo.GetPatientByEmail(ctx, in.PatientEmail)
	if err != nil {
		return nil, httperr.ErrBusiness("patient_not_found")
	}

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	// --------------------------------------------------
	// 2. Doctor's most recent appointment (nil when none)
	// --------------------------------------------------
	last, err := uc.repo.LastAppointmentForDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Slot allocation
	// --------------------------------------------------
	booked, err := uc.bookSlot(ctx, last, doctor.ID, patient.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Commit (single insert, backed by the partial
	//    unique index on the doctor slot)
	// --------------------------------------------------
	ap := &models.Appointment{
		Reference:   uuid.NewString(),
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		Date:        schedule.DateKey(booked.date),
		Time:        booked.tod.String(),
		QueueNumber: booked.queueNumber,
		Reason:      in.Reason,
		DoctorName:  doctor.Name,
		PatientName: patient.Name,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorEmail: patient.Email,
		ActorRole:  "patient",
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// ======================================================
// SLOT ALLOCATION
// ======================================================

type bookedSlot struct {
	date        time.Time
	tod         schedule.TimeOfDay
	queueNumber int
}

// bookSlot picks the next slot on the doctor's calendar. Numbering
// continues from the doctor's last appointment only while the new slot
// stays on the same date and session; any session or day change resets
// it to 1 plus the occupied slots skipped on the way.
func (uc *CreateAppointment) bookSlot(
	ctx context.Context,
	last *models.Appointment,
	doctorID uint,
	patientID uint,
) (bookedSlot, error) {

	cfg := uc.scanner.Config()
	now := uc.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		lastDate    time.Time
		lastSession = schedule.SessionNone
	)

	if last != nil {
		var err error
		lastDate, err = schedule.ParseDateKey(last.Date, now.Location())
		if err != nil {
			return bookedSlot{}, fmt.Errorf("appointment %d: %w", last.ID, err)
		}
		lastTime, err := schedule.ParseTimeOfDay(last.Time)
		if err != nil {
			return bookedSlot{}, fmt.Errorf("appointment %d: %w", last.ID, err)
		}
		lastSession = cfg.SessionOf(lastTime)

		if !lastDate.Before(today) {
			// continue scanning right after the last appointment
			candDate, candTime := schedule.Advance(lastDate, lastTime, cfg.SlotDuration)
			slot, err := uc.scanner.FindNextFreeSlot(ctx, doctorID, candDate, candTime)
			if err != nil {
				return bookedSlot{}, err
			}

			chosen := bookedSlot{
				date:        slot.Date,
				tod:         slot.Time,
				queueNumber: uc.queueBase(last, lastDate, lastSession, slot) + slot.Ordinal(),
			}
			return uc.finalize(ctx, chosen, last, lastDate, lastSession, doctorID, patientID, now, today)
		}
		// the last appointment is stale; fall through to a fresh scan
	}

	slot, err := uc.scanner.FirstAvailableToday(ctx, doctorID, now)
	if err != nil {
		return bookedSlot{}, err
	}

	chosen := bookedSlot{
		date:        slot.Date,
		tod:         slot.Time,
		queueNumber: slot.Ordinal(),
	}
	return uc.finalize(ctx, chosen, last, lastDate, lastSession, doctorID, patientID, now, today)
}

// finalize applies the invariants every booking passes through before
// the commit: future-only, one appointment per patient per day, and
// the defensive re-check against concurrent writers.
func (uc *CreateAppointment) finalize(
	ctx context.Context,
	chosen bookedSlot,
	last *models.Appointment,
	lastDate time.Time,
	lastSession schedule.Session,
	doctorID uint,
	patientID uint,
	now time.Time,
	today time.Time,
) (bookedSlot, error) {

	cfg := uc.scanner.Config()

	// the slot must lie strictly in the future
	if !chosen.tod.At(chosen.date).After(now) {
		slot, err := uc.scanner.FindNextFreeSlot(
			ctx,
			doctorID,
			cfg.NextWorkingDay(today),
			cfg.MorningStart,
		)
		if err != nil {
			return bookedSlot{}, err
		}
		chosen = bookedSlot{date: slot.Date, tod: slot.Time, queueNumber: slot.Ordinal()}
	}

	if err := uc.assertNoSameDayBooking(ctx, patientID, chosen.date); err != nil {
		return bookedSlot{}, err
	}

	// defensive re-check: another writer may have taken the slot
	// between the scan and here
	taken, err := uc.repo.SlotTaken(ctx, doctorID, schedule.DateKey(chosen.date), chosen.tod.String())
	if err != nil {
		return bookedSlot{}, err
	}
	if taken {
		nextDate, nextTime := schedule.Advance(chosen.date, chosen.tod, cfg.SlotDuration)
		slot, err := uc.scanner.FindNextFreeSlot(ctx, doctorID, nextDate, nextTime)
		if err != nil {
			return bookedSlot{}, err
		}

		chosen = bookedSlot{
			date:        slot.Date,
			tod:         slot.Time,
			queueNumber: uc.queueBase(last, lastDate, lastSession, slot) + slot.Ordinal(),
		}

		// the re-scan may have moved to another date
		if err := uc.assertNoSameDayBooking(ctx, patientID, chosen.date); err != nil {
			return bookedSlot{}, err
		}
	}

	return chosen, nil
}

// queueBase returns the last queue number when numbering continues,
// zero when it resets.
func (uc *CreateAppointment) queueBase(
	last *models.Appointment,
	lastDate time.Time,
	lastSession schedule.Session,
	slot schedule.Slot,
) int {

	if last == nil || lastSession == schedule.SessionNone {
		return 0
	}
	if schedule.DateKey(slot.Date) != schedule.DateKey(lastDate) {
		return 0
	}

	newSession := uc.scanner.Config().SessionOf(slot.Time)
	if newSession == schedule.SessionNone || newSession != lastSession {
		return 0
	}

	return last.QueueNumber
}

func (uc *CreateAppointment) assertNoSameDayBooking(
	ctx context.Context,
	patientID uint,
	date time.Time,
) error {

	exists, err := uc.repo.PatientHasAppointmentOn(ctx, patientID, schedule.DateKey(date))
	if err != nil {
		return err
	}
	if exists {
		return httperr.ErrBusiness("already_booked_that_day")
	}
	return nil
}
