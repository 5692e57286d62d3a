package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	listByDate  *appointment.ListAppointmentsByDate
	listByMonth *appointment.ListAppointmentsByMonth
	cancel      *appointment.CancelAppointment
	complete    *appointment.CompleteAppointment
	loc         *time.Location
	log         *logrus.Logger
}

func NewAppointmentHandler(
	listByDate *appointment.ListAppointmentsByDate,
	listByMonth *appointment.ListAppointmentsByMonth,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	loc *time.Location,
	log *logrus.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cancel:      cancel,
		complete:    complete,
		loc:         loc,
		log:         log,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := timezone.ParseDate(dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), professionalID, date)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, errY := strconv.Atoi(yearStr)
	month, errM := strconv.Atoi(monthStr)
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), professionalID, year, month)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	appointmentID, ok := uintParam(c, "appointmentId")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), professionalID, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_cancel_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	appointmentID, ok := uintParam(c, "appointmentId")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), professionalID, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_complete_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}
