package appointment

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Patient / Doctor --------
	GetPatientByEmail(
		ctx context.Context,
		email string,
	) (*models.Patient, error)

	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetDoctorByEmail(
		ctx context.Context,
		email string,
	) (*models.Doctor, error)

	// -------- Scheduling reads --------

	// SlotTaken reports whether the doctor holds an appointment at the
	// exact (date, time) key. Also satisfies schedule.Occupancy.
	SlotTaken(
		ctx context.Context,
		doctorID uint,
		date string,
		timeOfDay string,
	) (bool, error)

	// LastAppointmentForDoctor returns the doctor's latest appointment
	// by (date desc, time desc), or nil when the doctor has none.
	LastAppointmentForDoctor(
		ctx context.Context,
		doctorID uint,
	) (*models.Appointment, error)

	PatientHasAppointmentOn(
		ctx context.Context,
		patientID uint,
		date string,
	) (bool, error)

	// -------- Appointment (create / state change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentByReference(
		ctx context.Context,
		reference string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListForPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	ListForDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
	) ([]models.Appointment, error)
}
