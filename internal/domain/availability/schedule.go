package availability

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time encoded as "HH:MM".
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(hm string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func MustTimeOfDay(hm string) TimeOfDay {
	t, err := ParseTimeOfDay(hm)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Hour < o.Hour || (t.Hour == o.Hour && t.Minute < o.Minute)
}

// On anchors t to the local midnight of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour, t.Minute, 0, 0,
		date.Location(),
	)
}

type BreakPeriod struct {
	Start TimeOfDay
	End   TimeOfDay
}

type DaySchedule struct {
	IsActive  bool
	WorkStart TimeOfDay
	WorkEnd   TimeOfDay
	Breaks    []BreakPeriod
}

type WeeklySchedule map[Weekday]DaySchedule

// Interval is a half-open busy range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether [start, end) intersects the interval.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}
