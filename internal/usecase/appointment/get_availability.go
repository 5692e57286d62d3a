package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/metrics"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo    domain.Repository
	cache   BusyCache
	clock   timezone.Clock
	metrics *metrics.SchedulingMetrics
	log     *logrus.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	cache BusyCache,
	clock timezone.Clock,
	m *metrics.SchedulingMetrics,
	log *logrus.Logger,
) *GetAvailability {
	if cache == nil {
		cache = noCache{}
	}
	return &GetAvailability{
		repo:    repo,
		cache:   cache,
		clock:   clock,
		metrics: m,
		log:     log,
	}
}

// dayAvailability is what one availability computation resolved.
type dayAvailability struct {
	professional *models.Professional
	service      *models.Service
	slots        []time.Time
}

// Execute returns the bookable start instants of in.Date in ascending
// order. A day without an active schedule yields an empty slice.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]time.Time, error) {

	res, err := uc.compute(ctx, in)
	if err != nil {
		uc.metrics.ObserveAvailability(outcome(err), 0)
		return nil, err
	}

	uc.metrics.ObserveAvailability("ok", len(res.slots))
	return res.slots, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*dayAvailability, error) {

	if in.ProfessionalID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrInvalidInput("missing_params")
	}
	if in.Date.IsZero() {
		return nil, httperr.ErrInvalidInput("invalid_date")
	}

	prof, svc, err := uc.load(ctx, in.ProfessionalID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	schedule, err := domain.WeeklySchedule(prof.WorkDays)
	if err != nil {
		return nil, fmt.Errorf("invalid_schedule: professional %d: %w", prof.ID, err)
	}

	busy, err := uc.busyIntervals(ctx, prof.ID, in.Date)
	if err != nil {
		return nil, err
	}

	slots, err := availability.ComputeSlots(availability.Query{
		Date:        in.Date,
		Schedule:    schedule,
		DurationMin: svc.DurationMin,
		Busy:        busy,
		Now:         uc.clock(),
	})
	if err != nil {
		return nil, err
	}

	return &dayAvailability{
		professional: prof,
		service:      svc,
		slots:        slots,
	}, nil
}

func (uc *GetAvailability) load(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.Professional, *models.Service, error) {

	var (
		prof *models.Professional
		svc  *models.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prof, err = uc.repo.GetProfessional(gctx, professionalID)
		return err
	})
	g.Go(func() error {
		var err error
		svc, err = uc.repo.GetService(gctx, professionalID, serviceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return prof, svc, nil
}

// busyIntervals returns the non-cancelled appointments and the time
// blocks touching the local day of date.
func (uc *GetAvailability) busyIntervals(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]availability.Interval, error) {

	start, end := timezone.DayBounds(date)

	cached, gen, ok := uc.cache.Get(ctx, professionalID, start)
	if ok {
		return cached, nil
	}

	var (
		appointments []models.Appointment
		blocks       []models.TimeBlock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		appointments, err = uc.repo.ListBusyAppointments(gctx, professionalID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.repo.ListTimeBlocks(gctx, professionalID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	busy := make([]availability.Interval, 0, len(appointments)+len(blocks))
	for _, ap := range appointments {
		if !domain.Status(ap.Status).Busy() {
			continue
		}
		busy = append(busy, availability.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	for _, b := range blocks {
		busy = append(busy, availability.Interval{Start: b.StartTime, End: b.EndTime})
	}

	uc.cache.Set(ctx, professionalID, start, gen, busy)

	uc.log.WithFields(logrus.Fields{
		"professional_id": professionalID,
		"date":            start.Format("2006-01-02"),
		"busy":            len(busy),
	}).Debug("busy intervals loaded")

	return busy, nil
}
