package appointment

import (
	"context"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache BusyCache
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	cache BusyCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CancelAppointment {
	if cache == nil {
		cache = noCache{}
	}
	return &CancelAppointment{
		repo:  repo,
		cache: cache,
		clock: clock,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// the slot is free again; cache keys are local calendar days
	loc := now.Location()
	uc.cache.Invalidate(ctx, professionalID, ap.StartTime.In(loc), ap.EndTime.In(loc))

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		Action:         "appointment_cancelled",
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	return ap, nil
}
