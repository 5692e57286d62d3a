package appointment

import (
	"context"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// memRepo is an in-memory domain.Repository. It is safe for the
// concurrent lookups the use cases issue.
type memRepo struct {
	mu sync.Mutex

	professionals map[uint]*models.Professional
	services      map[uint]*models.Service
	clients       map[string]*models.Client
	appointments  []*models.Appointment
	blocks        []models.TimeBlock

	busyCalls int
	nextID    uint

	// onBusyRead runs once, right after the next ListBusyAppointments
	// has taken its snapshot.
	onBusyRead func()
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		professionals: map[uint]*models.Professional{},
		services:      map[uint]*models.Service{},
		clients:       map[string]*models.Client{},
		nextID:        100,
	}
}

func (r *memRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *memRepo) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.professionals[id]
	if !ok {
		return nil, httperr.ErrNotFound("professional_not_found")
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) GetService(_ context.Context, professionalID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceID]
	if !ok || s.ProfessionalID != professionalID || !s.Active {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) GetOrCreateClient(_ context.Context, name, email, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	c, ok := r.clients[email]
	if !ok {
		c = &models.Client{ID: r.id(), Email: email}
		r.clients[email] = c
	}
	c.Name = name
	c.Phone = phone
	cp := *c
	return &cp, nil
}

func (r *memRepo) FindClientByEmail(_ context.Context, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, httperr.ErrNotFound("client_not_found")
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.appointments {
		if other.ProfessionalID != ap.ProfessionalID || !domain.Status(other.Status).Busy() {
			continue
		}
		if ap.StartTime.Before(other.EndTime) && ap.EndTime.After(other.StartTime) {
			return httperr.ErrConflict("time_conflict")
		}
	}

	ap.ID = r.id()
	cp := *ap
	r.appointments = append(r.appointments, &cp)
	return nil
}

func (r *memRepo) GetAppointmentForProfessional(_ context.Context, appointmentID, professionalID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.ProfessionalID == professionalID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.appointments {
		if stored.ID == ap.ID {
			cp := *ap
			r.appointments[i] = &cp
			return nil
		}
	}
	return httperr.ErrNotFound("appointment_not_found")
}

// ListBusyAppointments returns cancelled rows too; callers must filter.
func (r *memRepo) ListBusyAppointments(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	r.busyCalls++
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID == professionalID && ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, *ap)
		}
	}
	hook := r.onBusyRead
	r.onBusyRead = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memRepo) ListTimeBlocks(_ context.Context, professionalID uint, start, end time.Time) ([]models.TimeBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.TimeBlock
	for _, b := range r.blocks {
		if b.ProfessionalID == professionalID && b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID == professionalID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			cp := *ap
			for _, c := range r.clients {
				if c.ID == ap.ClientID {
					cp.Client = *c
				}
			}
			if s, ok := r.services[ap.ServiceID]; ok {
				cp.Service = *s
			}
			out = append(out, cp)
		}
	}
	return out, nil
}
