package appointment

import "github.com/clinicdesk/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending            Status = "pending"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
	StatusCancelledByPatient Status = "cancelled_by_patient"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanCancel rejects appointments already out of the pending state.
func CanCancel(current Status) error {
	switch current {
	case StatusCompleted:
		return httperr.ErrBusiness("already_completed")
	case StatusCancelled, StatusCancelledByPatient:
		return httperr.ErrBusiness("already_cancelled")
	}
	return nil
}

// CanComplete rejects appointments that can no longer be acted on. An
// appointment the patient cancelled must never be marked completed.
func CanComplete(current Status) error {
	switch current {
	case StatusCompleted:
		return httperr.ErrBusiness("already_completed")
	case StatusCancelledByPatient:
		return httperr.ErrBusiness("cancelled_by_patient")
	case StatusCancelled:
		return httperr.ErrBusiness("already_cancelled")
	}
	return nil
}
