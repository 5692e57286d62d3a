package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// WeeklySchedule converts stored work days into the availability
// engine's schedule. Inactive days are kept so the engine can tell an
// inactive day from a missing one; their hours are not parsed.
func WeeklySchedule(days []models.WorkDay) (availability.WeeklySchedule, error) {
	schedule := make(availability.WeeklySchedule, len(days))

	for _, wd := range days {
		weekday := availability.Weekday(wd.Weekday)
		if !weekday.Valid() {
			return nil, fmt.Errorf("work day %d: invalid weekday %d", wd.ID, wd.Weekday)
		}

		if !wd.Active {
			schedule[weekday] = availability.DaySchedule{IsActive: false}
			continue
		}

		start, err := availability.ParseTimeOfDay(wd.StartTime)
		if err != nil {
			return nil, fmt.Errorf("work day %s: %w", weekday, err)
		}
		end, err := availability.ParseTimeOfDay(wd.EndTime)
		if err != nil {
			return nil, fmt.Errorf("work day %s: %w", weekday, err)
		}

		day := availability.DaySchedule{
			IsActive:  true,
			WorkStart: start,
			WorkEnd:   end,
		}

		for _, b := range wd.Breaks {
			bs, err := availability.ParseTimeOfDay(b.StartTime)
			if err != nil {
				return nil, fmt.Errorf("break on %s: %w", weekday, err)
			}
			be, err := availability.ParseTimeOfDay(b.EndTime)
			if err != nil {
				return nil, fmt.Errorf("break on %s: %w", weekday, err)
			}
			day.Breaks = append(day.Breaks, availability.BreakPeriod{Start: bs, End: be})
		}

		schedule[weekday] = day
	}

	return schedule, nil
}

// ValidateWorkDays rejects a schedule before it is stored: one row per
// weekday, and on active days well-formed hours with start before end.
func ValidateWorkDays(days []models.WorkDay) error {
	seen := make(map[int]bool, len(days))

	for _, wd := range days {
		if !availability.Weekday(wd.Weekday).Valid() || seen[wd.Weekday] {
			return httperr.ErrInvalidInput("invalid_weekday")
		}
		seen[wd.Weekday] = true

		if !wd.Active {
			continue
		}

		if err := validRange(wd.StartTime, wd.EndTime); err != nil {
			return err
		}
		for _, b := range wd.Breaks {
			if err := validRange(b.StartTime, b.EndTime); err != nil {
				return err
			}
		}
	}

	return nil
}

func validRange(from, to string) error {
	start, err := availability.ParseTimeOfDay(from)
	if err != nil {
		return httperr.ErrInvalidInput("invalid_time_range")
	}
	end, err := availability.ParseTimeOfDay(to)
	if err != nil {
		return httperr.ErrInvalidInput("invalid_time_range")
	}
	if !start.Before(end) {
		return httperr.ErrInvalidInput("invalid_time_range")
	}
	return nil
}
