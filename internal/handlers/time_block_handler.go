package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/cache"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
)

// TimeBlockHandler manages the ad-hoc periods a professional is away.
// Every write drops the cached busy intervals of the days it touches.
type TimeBlockHandler struct {
	db    *gorm.DB
	cache *cache.BusyCache
	audit *audit.Dispatcher
	loc   *time.Location
	log   *logrus.Logger
}

func NewTimeBlockHandler(
	db *gorm.DB,
	cache *cache.BusyCache,
	audit *audit.Dispatcher,
	loc *time.Location,
	log *logrus.Logger,
) *TimeBlockHandler {
	return &TimeBlockHandler{
		db:    db,
		cache: cache,
		audit: audit,
		loc:   loc,
		log:   log,
	}
}

type CreateTimeBlockRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason" binding:"max=255"`
}

func (h *TimeBlockHandler) List(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	date, err := timezone.ParseDate(c.Query("date"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	start, end := timezone.DayBounds(date)

	var blocks []models.TimeBlock
	if err := h.db.
		Where(
			"professional_id = ? AND start_time < ? AND end_time > ?",
			professionalID, end, start,
		).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {

		h.log.WithError(err).Error("failed_to_list_time_blocks")
		httperr.Internal(c, "failed_to_list_time_blocks", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *TimeBlockHandler) Create(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateTimeBlockRequest
	if !bindJSON(c, &req) {
		return
	}

	if !req.StartTime.Before(req.EndTime) {
		httperr.BadRequest(c, "invalid_time_range", "O início deve ser anterior ao fim.")
		return
	}

	block := models.TimeBlock{
		ProfessionalID: professionalID,
		StartTime:      req.StartTime.In(h.loc),
		EndTime:        req.EndTime.In(h.loc),
		Reason:         req.Reason,
	}

	// same lock as bookings, so a block and an appointment cannot both
	// claim the same time
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := repository.LockProfessional(tx, professionalID); err != nil {
			return err
		}
		return tx.Create(&block).Error
	})
	if err != nil {
		if httperr.IsBusiness(err, "professional_not_found") {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		h.log.WithError(err).Error("failed_to_create_time_block")
		httperr.Internal(c, "failed_to_create_time_block", "Erro ao criar bloqueio.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), professionalID, block.StartTime, block.EndTime)
	h.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		Action:         "time_block_created",
		Entity:         "time_block",
		EntityID:       &block.ID,
	})

	c.JSON(http.StatusCreated, block)
}

func (h *TimeBlockHandler) Delete(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	blockID, ok := uintParam(c, "blockId")
	if !ok {
		return
	}

	var block models.TimeBlock
	if err := h.db.
		Where("id = ? AND professional_id = ?", blockID, professionalID).
		First(&block).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "time_block_not_found", "Bloqueio não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_time_block", "Erro ao buscar bloqueio.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		h.log.WithError(err).Error("failed_to_delete_time_block")
		httperr.Internal(c, "failed_to_delete_time_block", "Erro ao remover bloqueio.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), professionalID, block.StartTime.In(h.loc), block.EndTime.In(h.loc))
	h.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		Action:         "time_block_deleted",
		Entity:         "time_block",
		EntityID:       &block.ID,
	})

	c.Status(http.StatusNoContent)
}
