package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
	log *logrus.Logger
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location, log *logrus.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	professionalID := c.Query("professional_id")
	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if professionalID != "" {
		id, err := strconv.ParseUint(professionalID, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
			return
		}
		q = q.Where("professional_id = ?", id)
	}

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := timezone.ParseDate(fromStr, h.loc); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := timezone.ParseDate(toStr, h.loc); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.log.WithError(err).Error("audit_count_failed")
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		h.log.WithError(err).Error("audit_list_failed")
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
