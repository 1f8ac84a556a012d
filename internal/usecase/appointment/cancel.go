package appointment

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels per the caller's role: patients withdraw their own
// appointment, doctors cancel their own calendar, staff cancel any.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	reference string,
	actorEmail string,
	actorRole string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	switch actorRole {
	case "patient":
		patient, err := uc.repo.GetPatientByEmail(ctx, actorEmail)
		if err != nil {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
		if err := domain.CancelByPatient(ap, patient.ID); err != nil {
			return nil, err
		}

	case "doctor":
		doctor, err := uc.repo.GetDoctorByEmail(ctx, actorEmail)
		if err != nil {
			return nil, httperr.ErrBusiness("doctor_not_found")
		}
		if err := domain.CancelByDoctor(ap, doctor.ID); err != nil {
			return nil, err
		}

	case "staff":
		if err := domain.CancelByStaff(ap); err != nil {
			return nil, err
		}

	default:
		return nil, httperr.ErrBusiness("invalid_role")
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorEmail: actorEmail,
		ActorRole:  actorRole,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
