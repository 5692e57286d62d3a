package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	validators.Register()
}

var clt = time.FixedZone("CLT", -3*60*60)

// sunday 2026-03-01 noon local: every slot of Monday 2026-03-02 is ahead.
var sundayNoon = time.Date(2026, 3, 1, 12, 0, 0, 0, clt)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubRepo serves professional 1 (Monday 09:00-11:00, service 1 of 60
// minutes) and records created appointments.
type stubRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
	clients      map[string]models.Client
}

var _ domain.Repository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{clients: map[string]models.Client{}}
}

func (r *stubRepo) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	if id != 1 {
		return nil, httperr.ErrNotFound("professional_not_found")
	}
	return &models.Professional{
		ID: 1,
		WorkDays: []models.WorkDay{
			{Weekday: 1, Active: true, StartTime: "09:00", EndTime: "11:00"},
		},
	}, nil
}

func (r *stubRepo) GetService(_ context.Context, _ uint, serviceID uint) (*models.Service, error) {
	if serviceID != 1 {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &models.Service{ID: 1, ProfessionalID: 1, Name: "Consulta", DurationMin: 60, Active: true}, nil
}

func (r *stubRepo) GetOrCreateClient(_ context.Context, name, email, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := models.Client{ID: uint(len(r.clients) + 1), Name: name, Email: email, Phone: phone}
	r.clients[email] = c
	return &c, nil
}

func (r *stubRepo) FindClientByEmail(_ context.Context, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[email]
	if !ok {
		return nil, httperr.ErrNotFound("client_not_found")
	}
	return &c, nil
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = uint(len(r.appointments) + 1)
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *stubRepo) GetAppointmentForProfessional(_ context.Context, appointmentID, professionalID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.ProfessionalID == professionalID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
		}
	}
	return nil
}

func (r *stubRepo) ListBusyAppointments(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status != "cancelled" && ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *stubRepo) ListTimeBlocks(context.Context, uint, time.Time, time.Time) ([]models.TimeBlock, error) {
	return nil, nil
}

func (r *stubRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		for _, c := range r.clients {
			if c.ID == ap.ClientID {
				ap.Client = c
			}
		}
		out = append(out, ap)
	}
	return out, nil
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var out httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
