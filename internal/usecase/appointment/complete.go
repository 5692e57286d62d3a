package appointment

import (
	"context"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, uc.clock()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		Action:         "appointment_completed",
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	return ap, nil
}
