package availability

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

// ProbeStep is the granularity at which candidate starts are generated,
// relative to the start of the work day.
const ProbeStep = 15 * time.Minute

type Query struct {
	Date        time.Time
	Schedule    WeeklySchedule
	DurationMin int
	Busy        []Interval
	Now         time.Time
}

// ComputeSlots returns the bookable start instants for q.Date in
// ascending order. An inactive or unscheduled day yields an empty,
// non-nil slice.
func ComputeSlots(q Query) ([]time.Time, error) {
	if q.DurationMin <= 0 {
		return nil, httperr.ErrInvalidInput("invalid_duration")
	}
	if q.Date.IsZero() {
		return nil, httperr.ErrInvalidInput("invalid_date")
	}

	slots := []time.Time{}

	day, ok := q.Schedule[WeekdayOf(q.Date)]
	if !ok || !day.IsActive {
		return slots, nil
	}

	windowStart := day.WorkStart.On(q.Date)
	windowEnd := day.WorkEnd.On(q.Date)
	if !windowStart.Before(windowEnd) {
		return slots, nil
	}

	busy := make([]Interval, 0, len(q.Busy)+len(day.Breaks))
	busy = append(busy, q.Busy...)
	for _, b := range day.Breaks {
		busy = append(busy, Interval{
			Start: b.Start.On(q.Date),
			End:   b.End.On(q.Date),
		})
	}

	duration := time.Duration(q.DurationMin) * time.Minute

	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(ProbeStep) {
		slotEnd := cursor.Add(duration)
		if slotEnd.After(windowEnd) {
			break
		}

		if !cursor.After(q.Now) {
			continue
		}

		if overlapsAny(busy, cursor, slotEnd) {
			continue
		}

		slots = append(slots, cursor)
	}

	return slots, nil
}

func overlapsAny(busy []Interval, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// Contains reports whether start is one of the computed slots.
func Contains(slots []time.Time, start time.Time) bool {
	for _, s := range slots {
		if s.Equal(start) {
			return true
		}
	}
	return false
}
