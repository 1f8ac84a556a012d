package appointment

import (
	"context"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute marks an appointment done. Doctors may complete their own,
// staff may complete any, patients never complete appointments.
func (uc *CompleteAppointment) Execute(
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
	case "doctor":
		doctor, err := uc.repo.GetDoctorByEmail(ctx, actorEmail)
		if err != nil {
			return nil, httperr.ErrBusiness("doctor_not_found")
		}
		if err := domain.CompleteByDoctor(ap, doctor.ID); err != nil {
			return nil, err
		}

	case "staff":
		if err := domain.CompleteByStaff(ap); err != nil {
			return nil, err
		}

	default:
		return nil, httperr.ErrBusiness("patients_cannot_complete")
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorEmail: actorEmail,
		ActorRole:  actorRole,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
