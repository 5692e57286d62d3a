package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// --------------------------------------------------
// Professional / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Preload("WorkDays.Breaks").
		First(&prof, id).Error; err != nil {
		return nil, notFound(err, "professional_not_found")
	}
	return &prof, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ? AND active = ?", serviceID, professionalID, true).
		First(&service).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) FindClientByEmail(
	ctx context.Context,
	email string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&client).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &client, nil
}

// GetOrCreateClient upserts on email so concurrent first bookings of the
// same client converge on one row. Name and phone follow the latest booking.
func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	email string,
	phone string,
) (*models.Client, error) {

	client := models.Client{
		Name:  name,
		Email: strings.ToLower(strings.TrimSpace(email)),
		Phone: phone,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "updated_at"}),
		}).
		Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment inserts ap unless it overlaps a live appointment or a
// time block. The professional row is locked first, so bookings and block
// creation for one professional are serialised even when no overlapping
// row exists yet to lock.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := LockProfessional(tx, ap.ProfessionalID); err != nil {
			return err
		}

		var conflicts int64
		if err := tx.Model(&models.Appointment{}).
			Where(
				"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.ProfessionalID, string(domain.StatusCancelled), ap.EndTime, ap.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		var blocked int64
		if err := tx.Model(&models.TimeBlock{}).
			Where(
				"professional_id = ? AND start_time < ? AND end_time > ?",
				ap.ProfessionalID, ap.EndTime, ap.StartTime,
			).
			Count(&blocked).Error; err != nil {
			return err
		}
		if blocked > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// LockProfessional takes a row lock on the professional for the rest of
// tx. Writers that change a professional's busy time go through it.
func LockProfessional(tx *gorm.DB, professionalID uint) error {
	var prof models.Professional
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&prof, professionalID).Error
	return notFound(err, "professional_not_found")
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBusyAppointments(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			professionalID, string(domain.StatusCancelled), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListTimeBlocks(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.TimeBlock, error) {

	var blocks []models.TimeBlock
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND start_time < ? AND end_time > ?",
			professionalID, end, start,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"professional_id = ? AND start_time >= ? AND start_time < ?",
			professionalID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
