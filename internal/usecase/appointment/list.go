package appointment

import (
	"context"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/dto"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(
	repo domain.Repository,
) *ListMyAppointments {
	return &ListMyAppointments{
		repo: repo,
	}
}

// Execute lists by role: patients and doctors see their own bookings,
// staff see the whole schedule in date/time order.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	actorEmail string,
	actorRole string,
) ([]dto.AppointmentListDTO, error) {

	var (
		appointments []models.Appointment
		err          error
	)

	switch actorRole {
	case "patient":
		patient, perr := uc.repo.GetPatientByEmail(ctx, actorEmail)
		if perr != nil {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
		appointments, err = uc.repo.ListForPatient(ctx, patient.ID)

	case "doctor":
		doctor, derr := uc.repo.GetDoctorByEmail(ctx, actorEmail)
		if derr != nil {
			return nil, httperr.ErrBusiness("doctor_not_found")
		}
		appointments, err = uc.repo.ListForDoctor(ctx, doctor.ID)

	case "staff":
		appointments, err = uc.repo.ListAll(ctx)

	default:
		return nil, httperr.ErrBusiness("invalid_role")
	}

	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			Reference:   ap.Reference,
			Date:        ap.Date,
			Time:        ap.Time,
			QueueNumber: ap.QueueNumber,
			Status:      ap.Status,
			Reason:      ap.Reason,
			DoctorName:  ap.DoctorName,
			PatientName: ap.PatientName,
		})
	}

	return out, nil
}
