package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
	"github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the client-facing booking flow.
type PublicHandler struct {
	availability  *appointment.GetAvailability
	createBooking *appointment.CreateBooking
	lookupClient  *appointment.LookupClient
	loc           *time.Location
	log           *logrus.Logger
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	createBooking *appointment.CreateBooking,
	lookupClient *appointment.LookupClient,
	loc *time.Location,
	log *logrus.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability:  availability,
		createBooking: createBooking,
		lookupClient:  lookupClient,
		loc:           loc,
		log:           log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type AvailabilityRequest struct {
	Date           string `json:"date"`
	ProfessionalID flexID `json:"professionalId"`
	ServiceID      flexID `json:"serviceId"`
}

type CreateBookingRequest struct {
	ProfessionalID flexID `json:"professionalId"`
	ServiceID      flexID `json:"serviceId"`
	SlotStart      string `json:"slotStart" binding:"required"` // RFC 3339
	ClientName     string `json:"clientName" binding:"required,max=100"`
	ClientEmail    string `json:"clientEmail" binding:"required,email,max=100"`
	ClientPhone    string `json:"clientPhone" binding:"max=20"`
	Notes          string `json:"notes" binding:"max=255"`
}

type ClientLookupRequest struct {
	Email string `json:"email"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Date == "" || req.ProfessionalID == "" || req.ServiceID == "" {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviço são obrigatórios.")
		return
	}

	professionalID, ok := req.ProfessionalID.Uint()
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}
	serviceID, ok := req.ServiceID.Uint()
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	date, err := timezone.ParseDate(req.Date, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ProfessionalID: professionalID,
			ServiceID:      serviceID,
			Date:           date,
		},
	)
	if err != nil {
		httperr.Respond(c, h.log, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, slots)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	professionalID, okP := req.ProfessionalID.Uint()
	serviceID, okS := req.ServiceID.Uint()
	if !okP || !okS {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviço são obrigatórios.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.SlotStart)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot", "Horário inválido.")
		return
	}

	ap, err := h.createBooking.Execute(
		c.Request.Context(),
		appointment.CreateBookingInput{
			ProfessionalID: professionalID,
			ServiceID:      serviceID,
			SlotStart:      start.In(h.loc),
			ClientName:     req.ClientName,
			ClientEmail:    req.ClientEmail,
			ClientPhone:    req.ClientPhone,
			Notes:          req.Notes,
		},
	)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_create_booking")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// CLIENT LOOKUP
////////////////////////////////////////////////////////

func (h *PublicHandler) LookupClient(c *gin.Context) {
	var req ClientLookupRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.lookupClient.Execute(c.Request.Context(), req.Email)
	if err != nil {
		httperr.Respond(c, h.log, err, "client_lookup_failed")
		return
	}

	c.JSON(http.StatusOK, contact)
}
