package appointment

import (
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CancelByPatient lets a patient withdraw their own pending appointment.
func CancelByPatient(ap *models.Appointment, patientID uint) error {
	if ap.PatientID != patientID {
		return httperr.ErrBusiness("not_your_appointment")
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelledByPatient)
	return nil
}

// CancelByDoctor lets a doctor cancel an appointment on their own calendar.
func CancelByDoctor(ap *models.Appointment, doctorID uint) error {
	if ap.DoctorID != doctorID {
		return httperr.ErrBusiness("not_your_appointment")
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

// CancelByStaff lets staff cancel any appointment.
func CancelByStaff(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

// CompleteByDoctor marks a doctor's own appointment as done.
func CompleteByDoctor(ap *models.Appointment, doctorID uint) error {
	if ap.DoctorID != doctorID {
		return httperr.ErrBusiness("not_your_appointment")
	}
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// CompleteByStaff marks any appointment as done.
func CompleteByStaff(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}
