package appointment

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

var clt = time.FixedZone("CLT", -3*60*60)

// monday is 2026-03-02 00:00 local.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, clt)

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// seededRepo holds professional 1 working Monday 09:00-12:00 with a
// 10:00-10:30 break, offering service 1 (30 min). Tuesday is inactive.
func seededRepo() *memRepo {
	repo := newMemRepo()
	repo.professionals[1] = &models.Professional{
		ID:          1,
		DisplayName: "Dra. Ana",
		Email:       "ana@example.com",
		WorkDays: []models.WorkDay{
			{
				ID: 1, ProfessionalID: 1, Weekday: 1, Active: true,
				StartTime: "09:00", EndTime: "12:00",
				Breaks: []models.WorkBreak{{StartTime: "10:00", EndTime: "10:30"}},
			},
			{ID: 2, ProfessionalID: 1, Weekday: 2, Active: false},
		},
	}
	repo.services[1] = &models.Service{
		ID: 1, ProfessionalID: 1, Name: "Consulta", DurationMin: 30, Active: true,
	}
	return repo
}

func hhmm(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format("15:04"))
	}
	return out
}
