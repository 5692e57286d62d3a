package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/dto"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	professionalID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrInvalidInput("invalid_month")
	}

	if _, err := uc.repo.GetProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

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
