package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/pro-scheduler/internal/cache"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

func newCatalogRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	log := quietLogger()

	ph := NewProfessionalHandler(gdb, nil, log)
	sh := NewServiceHandler(gdb, log)
	ch := NewClientHandler(gdb, log)
	tb := NewTimeBlockHandler(gdb, cache.NewBusyCache(nil, time.Minute, log), nil, clt, log)

	r := gin.New()
	r.GET("/api/professionals", ph.Search)
	r.POST("/api/professionals", ph.Create)
	r.PUT("/api/professionals/:id/photo", ph.UploadPhoto)
	r.POST("/api/professionals/:id/services", sh.Create)
	r.PATCH("/api/professionals/:id/services/:serviceId", sh.Update)
	r.GET("/api/professionals/:id/clients", ch.List)
	r.POST("/api/professionals/:id/time-blocks", tb.Create)
	return r, mock
}

// ------------------------------------------------------
// services
// ------------------------------------------------------

func TestServiceCreateRejectsDuration(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		message  string
	}{
		{"zero", 0, "campo obrigatório"},
		{"negative", -5, "deve ser no mínimo 1"},
		{"longer than a day", 1441, "deve ser no máximo 1440"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, mock := newCatalogRouter(t)

			w := doJSON(t, r, http.MethodPost, "/api/professionals/1/services", map[string]any{
				"name":         "Consulta",
				"duration_min": tc.duration,
			})

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, "invalid_request", body.Code)
			assert.Equal(t, tc.message, body.Fields["duration_min"])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestServiceUpdateRejectsNegativeDuration(t *testing.T) {
	r, mock := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/professionals/1/services/3", map[string]any{
		"duration_min": -5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "deve ser no mínimo 1", decodeError(t, w).Fields["duration_min"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceCreateUnknownProfessional(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectQuery(`SELECT "id" FROM "professionals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(t, r, http.MethodPost, "/api/professionals/9/services", map[string]any{
		"name":         "Consulta",
		"duration_min": 30,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "professional_not_found", decodeError(t, w).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceUpdateOfAnotherProfessional(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "services" WHERE id = \$1 AND professional_id = \$2`).
		WithArgs(3, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(t, r, http.MethodPatch, "/api/professionals/9/services/3", map[string]any{
		"duration_min": 45,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "service_not_found", decodeError(t, w).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceCreate(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectQuery(`SELECT "id" FROM "professionals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	w := doJSON(t, r, http.MethodPost, "/api/professionals/1/services", map[string]any{
		"name":         "  Retorno ",
		"duration_min": 45,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":5`)
	assert.Contains(t, w.Body.String(), `"name":"Retorno"`)
	assert.Contains(t, w.Body.String(), `"duration_min":45`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ------------------------------------------------------
// professionals
// ------------------------------------------------------

func TestProfessionalSearchIsCaseInsensitive(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "professionals" WHERE \(?LOWER\(display_name\) LIKE \$1 OR LOWER\(email\) LIKE \$2`).
		WithArgs("%ana%", "%ana%", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "email"}).
			AddRow(1, "Dra. Ana", "ana@example.com"))

	w := doJSON(t, r, http.MethodGet, "/api/professionals?query=%20ANA%20", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Dra. Ana"`)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessionalCreateDuplicateEmail(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "professionals"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	w := doJSON(t, r, http.MethodPost, "/api/professionals", map[string]any{
		"display_name": "Dra. Ana",
		"email":        "ana@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", decodeError(t, w).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessionalCreateRejectsBadEmail(t *testing.T) {
	r, mock := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/professionals", map[string]any{
		"display_name": "Dra. Ana",
		"email":        "ana-at-example",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "e-mail inválido", decodeError(t, w).Fields["email"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	r, mock := newCatalogRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/professionals/1/photo", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "photo_storage_disabled", decodeError(t, w).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ------------------------------------------------------
// clients
// ------------------------------------------------------

func TestClientListEmptyIsArray(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id IN \(SELECT .*client_id.* FROM "appointments" WHERE professional_id = \$1\)`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	w := doJSON(t, r, http.MethodGet, "/api/professionals/4/clients", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ------------------------------------------------------
// time blocks
// ------------------------------------------------------

func TestTimeBlockCreateLocksProfessional(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "professionals" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "time_blocks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	w := doJSON(t, r, http.MethodPost, "/api/professionals/1/time-blocks", map[string]any{
		"start_time": "2026-03-02T12:00:00-03:00",
		"end_time":   "2026-03-02T13:00:00-03:00",
		"reason":     "médico",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":12`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeBlockCreateUnknownProfessional(t *testing.T) {
	r, mock := newCatalogRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "professionals" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	w := doJSON(t, r, http.MethodPost, "/api/professionals/8/time-blocks", map[string]any{
		"start_time": "2026-03-02T12:00:00-03:00",
		"end_time":   "2026-03-02T13:00:00-03:00",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "professional_not_found", decodeError(t, w).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ------------------------------------------------------
// agenda
// ------------------------------------------------------

func TestAgendaRejectsBadDates(t *testing.T) {
	repo := newStubRepo()
	h := NewAppointmentHandler(
		appointment.NewListAppointmentsByDate(repo),
		appointment.NewListAppointmentsByMonth(repo, clt),
		nil,
		nil,
		clt,
		quietLogger(),
	)
	r := gin.New()
	r.GET("/api/professionals/:id/appointments", h.ListByDate)
	r.GET("/api/professionals/:id/appointments/month", h.ListByMonth)

	cases := []struct {
		path string
		code string
	}{
		{"/api/professionals/1/appointments?date=02/03/2026", "invalid_date"},
		{"/api/professionals/1/appointments/month?year=2026&month=13", "invalid_month"},
		{"/api/professionals/1/appointments/month?year=2026&month=0", "invalid_month"},
		{"/api/professionals/1/appointments/month?year=2026&month=mar", "invalid_month"},
		{"/api/professionals/1/appointments/month?year=1999&month=3", "invalid_month"},
		{"/api/professionals/1/appointments/month?year=2026", "missing_year_or_month"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, tc.path, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}

	w := doJSON(t, r, http.MethodGet, "/api/professionals/1/appointments/month?year=2026&month=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"month":3`)
}
