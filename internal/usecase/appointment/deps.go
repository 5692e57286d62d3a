package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

// BusyCache stores the busy intervals of one professional for one day.
// Implementations must treat failures as misses. Get reports the
// generation of the day; Set stores under the generation the caller saw
// before reading the store, so writes that raced with Invalidate are
// never served.
type BusyCache interface {
	Get(ctx context.Context, professionalID uint, day time.Time) ([]availability.Interval, int64, bool)
	Set(ctx context.Context, professionalID uint, day time.Time, gen int64, intervals []availability.Interval)
	Invalidate(ctx context.Context, professionalID uint, start, end time.Time)
}

type noCache struct{}

func (noCache) Get(context.Context, uint, time.Time) ([]availability.Interval, int64, bool) {
	return nil, -1, false
}

func (noCache) Set(context.Context, uint, time.Time, int64, []availability.Interval) {}

func (noCache) Invalidate(context.Context, uint, time.Time, time.Time) {}

// outcome labels an error for the scheduling metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	kind, ok := httperr.KindOf(err)
	if !ok {
		return "error"
	}

	switch kind {
	case httperr.KindInvalidInput:
		return "invalid_input"
	case httperr.KindNotFound:
		return "not_found"
	case httperr.KindConflict:
		return "conflict"
	default:
		return "rejected"
	}
}
