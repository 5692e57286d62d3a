package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Santiago"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock returns the current instant. Use cases receive one so tests can
// pin "now".
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// ParseDate accepts "2006-01-02" or an RFC 3339 instant and returns the
// local midnight of that calendar day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if d, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return d, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t.In(loc)), nil
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds returns [start of day, start of next day).
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}
