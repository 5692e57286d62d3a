package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type ClientHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewClientHandler(db *gorm.DB, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{db: db, log: log}
}

// ======================================================
// LIST CLIENTS OF A PROFESSIONAL
// ======================================================

// List returns the clients that booked with the professional at least
// once, optionally filtered by name, phone or email.
func (h *ClientHandler) List(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Where("id IN (?)", h.db.
			Model(&models.Appointment{}).
			Select("client_id").
			Where("professional_id = ?", professionalID),
		)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {

		h.log.WithError(err).Error("failed_to_list_clients")
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}
