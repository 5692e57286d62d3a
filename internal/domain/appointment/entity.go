package appointment

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Cancel frees the appointment's slot. Only scheduled appointments can be
// cancelled; the time is recorded in CancelledAt.
func Cancel(ap *models.Appointment, now time.Time) error {
	return transition(ap, CanCancel, StatusCancelled, &ap.CancelledAt, now)
}

// Complete marks a scheduled appointment as attended.
func Complete(ap *models.Appointment, now time.Time) error {
	return transition(ap, CanComplete, StatusCompleted, &ap.CompletedAt, now)
}

func transition(
	ap *models.Appointment,
	guard func(Status) error,
	to Status,
	stamp **time.Time,
	now time.Time,
) error {
	if err := guard(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(to)
	*stamp = &now
	return nil
}
