package appointment

import (
	"context"
	"time"

	domain "github.com/clinicdesk/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/dto"
	"github.com/clinicdesk/clinic-scheduler/internal/httperr"
)

type GetNextSlot struct {
	repo    domain.Repository
	scanner *schedule.Scanner
	clock   Clock
}

func NewGetNextSlot(
	repo domain.Repository,
	scanner *schedule.Scanner,
	clock Clock,
) *GetNextSlot {
	return &GetNextSlot{
		repo:    repo,
		scanner: scanner,
		clock:   clock,
	}
}

// Execute previews the first slot a booking made right now would get.
// Purely informational: nothing is reserved until the booking call.
func (uc *GetNextSlot) Execute(
	ctx context.Context,
	doctorID uint,
) (*dto.NextSlotDTO, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	now := uc.clock.Now()

	slot, err := uc.scanner.FirstAvailableToday(ctx, doctor.ID, now)
	if err != nil {
		return nil, err
	}

	// same rule the booking applies: a slot that is not strictly in
	// the future rolls to the next working day's morning
	if !slot.Time.At(slot.Date).After(now) {
		cfg := uc.scanner.Config()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		slot, err = uc.scanner.FindNextFreeSlot(ctx, doctor.ID, cfg.NextWorkingDay(today), cfg.MorningStart)
		if err != nil {
			return nil, err
		}
	}

	return &dto.NextSlotDTO{
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Date:       schedule.DateKey(slot.Date),
		Time:       slot.Time.String(),
		Session:    uc.scanner.Config().SessionOf(slot.Time).String(),
	}, nil
}
