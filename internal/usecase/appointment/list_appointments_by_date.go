package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/dto"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists every appointment, cancelled ones included, starting on
// the local day of date.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	start, end := timezone.DayBounds(date)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
