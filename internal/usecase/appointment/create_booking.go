package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/metrics"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ProfessionalID uint
	ServiceID      uint

	// SlotStart must already be expressed in the local timezone.
	SlotStart time.Time

	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	availability *GetAvailability
	repo         domain.Repository
	cache        BusyCache
	audit        *audit.Dispatcher
	metrics      *metrics.SchedulingMetrics
	log          *logrus.Logger
}

// NewCreateBooking shares the store, cache and clock of getAvailability so
// a booking is checked against exactly what a client was offered.
func NewCreateBooking(
	getAvailability *GetAvailability,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		availability: getAvailability,
		repo:         getAvailability.repo,
		cache:        getAvailability.cache,
		audit:        audit,
		metrics:      getAvailability.metrics,
		log:          getAvailability.log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	ap, err := uc.execute(ctx, in)
	if err != nil {
		uc.metrics.ObserveBooking(outcome(err))
		return nil, err
	}

	uc.metrics.ObserveBooking("created")
	return ap, nil
}

func (uc *CreateBooking) execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = strings.ToLower(strings.TrimSpace(in.ClientEmail))
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)

	if in.ProfessionalID == 0 || in.ServiceID == 0 ||
		in.ClientName == "" || in.ClientEmail == "" {
		return nil, httperr.ErrInvalidInput("missing_params")
	}
	if in.SlotStart.IsZero() {
		return nil, httperr.ErrInvalidInput("invalid_slot")
	}

	// --------------------------------------------------
	// Only a start the engine offers right now is bookable
	// --------------------------------------------------
	day, err := uc.availability.compute(ctx, domain.AvailabilityInput{
		ProfessionalID: in.ProfessionalID,
		ServiceID:      in.ServiceID,
		Date:           timezone.StartOfDay(in.SlotStart),
	})
	if err != nil {
		return nil, err
	}

	if !availability.Contains(day.slots, in.SlotStart) {
		return nil, httperr.ErrConflict("slot_unavailable")
	}

	// --------------------------------------------------
	// Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientName,
		in.ClientEmail,
		in.ClientPhone,
	)
	if err != nil {
		return nil, err
	}

	end := in.SlotStart.Add(time.Duration(day.service.DurationMin) * time.Minute)

	ap := &models.Appointment{
		ProfessionalID:   day.professional.ID,
		ClientID:         client.ID,
		ServiceID:        day.service.ID,
		StartTime:        in.SlotStart,
		EndTime:          end,
		Status:           string(domain.InitialStatus()),
		ConfirmationCode: uuid.NewString(),
		Notes:            in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				ProfessionalID: in.ProfessionalID,
				Action:         "appointment_conflict",
				Entity:         "appointment",
				Metadata: map[string]any{
					"start": in.SlotStart,
					"end":   end,
				},
			})
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.ProfessionalID, ap.StartTime, ap.EndTime)

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: ap.ProfessionalID,
		Action:         "appointment_created",
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata: map[string]any{
			"confirmation_code": ap.ConfirmationCode,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"professional_id": ap.ProfessionalID,
		"appointment_id":  ap.ID,
		"start":           ap.StartTime.Format(time.RFC3339),
	}).Info("appointment booked")

	ap.Client = *client
	ap.Service = *day.service
	return ap, nil
}
