package dto

import (
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ConfirmationCode string    `json:"confirmation_code"`
	ClientName       string    `json:"client_name"`
	ClientEmail      string    `json:"client_email"`
	ClientPhone      string    `json:"client_phone"`
	ServiceName      string    `json:"service_name"`
	Notes            string    `json:"notes"`
}

// AppointmentList expects Client and Service to be preloaded.
func AppointmentList(appointments []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			ConfirmationCode: ap.ConfirmationCode,
			ClientName:       ap.Client.Name,
			ClientEmail:      ap.Client.Email,
			ClientPhone:      ap.Client.Phone,
			ServiceName:      ap.Service.Name,
			Notes:            ap.Notes,
		})
	}
	return out
}
