package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Repository is the data store behind the appointment use cases.
// Lookups that find nothing return httperr NotFound errors.
type Repository interface {
	// -------- Professional / Service --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	GetService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		email string,
		phone string,
	) (*models.Client, error)

	FindClientByEmail(
		ctx context.Context,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment inserts ap unless a non-cancelled appointment of
	// the same professional overlaps it, in which case it returns a
	// time_conflict Conflict error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListBusyAppointments(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListTimeBlocks(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeBlock, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
