package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

func bookedRepo(t *testing.T) (*memRepo, *models.Appointment) {
	t.Helper()
	repo := seededRepo()
	uc := NewCreateBooking(newAvailability(repo, nil, monday.AddDate(0, 0, -1)), nil)
	ap, err := uc.Execute(context.Background(), validBooking())
	require.NoError(t, err)
	return repo, ap
}

func TestCancelAppointmentFreesSlot(t *testing.T) {
	repo, ap := bookedRepo(t)
	busyCache, _ := newRedisBusyCache(t)
	ga := newAvailability(repo, busyCache, monday.AddDate(0, 0, -1))
	in := domain.AvailabilityInput{ProfessionalID: 1, ServiceID: 1, Date: monday}

	before, err := ga.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.NotContains(t, hhmm(before), "09:15")

	cancelledAt := at(8, 0)
	uc := NewCancelAppointment(repo, busyCache, timezone.FixedClock(cancelledAt), nil)

	got, err := uc.Execute(context.Background(), 1, ap.ID)

	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, got.CancelledAt.Equal(cancelledAt))

	after, err := ga.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, hhmm(after), "09:15")
}

func TestCancelAppointmentTwice(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewCancelAppointment(repo, nil, timezone.FixedClock(at(8, 0)), nil)

	_, err := uc.Execute(context.Background(), 1, ap.ID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, ap.ID)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindBusiness, kind)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelAppointmentOfAnotherProfessional(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewCancelAppointment(repo, nil, timezone.FixedClock(at(8, 0)), nil)

	_, err := uc.Execute(context.Background(), 2, ap.ID)

	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestCompleteAppointment(t *testing.T) {
	repo, ap := bookedRepo(t)
	doneAt := at(9, 50)
	uc := NewCompleteAppointment(repo, timezone.FixedClock(doneAt), nil)

	got, err := uc.Execute(context.Background(), 1, ap.ID)

	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(doneAt))

	cancel := NewCancelAppointment(repo, nil, timezone.FixedClock(doneAt), nil)
	_, err = cancel.Execute(context.Background(), 1, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestListAppointmentsByDate(t *testing.T) {
	repo, ap := bookedRepo(t)
	uc := NewListAppointmentsByDate(repo)

	list, err := uc.Execute(context.Background(), 1, at(15, 0))

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ap.ID, list[0].ID)
	assert.Equal(t, "Joana Silva", list[0].ClientName)
	assert.Equal(t, "Consulta", list[0].ServiceName)
	assert.Equal(t, ap.ConfirmationCode, list[0].ConfirmationCode)

	empty, err := uc.Execute(context.Background(), 1, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = uc.Execute(context.Background(), 42, monday)
	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))
}

func TestListAppointmentsByMonth(t *testing.T) {
	repo, _ := bookedRepo(t)
	uc := NewListAppointmentsByMonth(repo, clt)

	list, err := uc.Execute(context.Background(), 1, 2026, int(time.March))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.Execute(context.Background(), 1, 2026, int(time.April))
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Execute(context.Background(), 1, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}

func TestLookupClient(t *testing.T) {
	repo := seededRepo()
	repo.clients["joana@example.com"] = &models.Client{ID: 7, Name: "Joana", Email: "joana@example.com", Phone: "123"}
	uc := NewLookupClient(repo)

	got, err := uc.Execute(context.Background(), " JOANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, ClientContact{Name: "Joana", Phone: "123"}, got)

	for _, email := range []string{"", "   ", "nobody@example.com"} {
		got, err := uc.Execute(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, ClientContact{}, got)
	}
}
