package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewWorkingHoursHandler(db *gorm.DB, log *logrus.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, log: log}
}

type BreakConfig struct {
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type WorkingDayConfig struct {
	Weekday   string        `json:"weekday" binding:"required"`
	Active    bool          `json:"active"`
	StartTime string        `json:"start_time" binding:"hhmm"`
	EndTime   string        `json:"end_time" binding:"hhmm"`
	Breaks    []BreakConfig `json:"breaks" binding:"omitempty,dive"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

func toWorkingDayConfig(wd models.WorkDay) WorkingDayConfig {
	cfg := WorkingDayConfig{
		Weekday:   availability.Weekday(wd.Weekday).String(),
		Active:    wd.Active,
		StartTime: wd.StartTime,
		EndTime:   wd.EndTime,
		Breaks:    make([]BreakConfig, 0, len(wd.Breaks)),
	}
	for _, b := range wd.Breaks {
		cfg.Breaks = append(cfg.Breaks, BreakConfig{StartTime: b.StartTime, EndTime: b.EndTime})
	}
	return cfg
}

func (h *WorkingHoursHandler) professionalExists(c *gin.Context, id uint) bool {
	var prof models.Professional
	if err := h.db.Select("id").First(&prof, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return false
		}
		h.log.WithError(err).Error("failed_to_get_professional")
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return false
	}
	return true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok || !h.professionalExists(c, professionalID) {
		return
	}

	var days []models.WorkDay
	if err := h.db.
		Preload("Breaks", func(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC") }).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {

		h.log.WithError(err).Error("failed_to_get_working_hours")
		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	out := make([]WorkingDayConfig, 0, len(days))
	for _, wd := range days {
		out = append(out, toWorkingDayConfig(wd))
	}

	c.JSON(http.StatusOK, gin.H{"days": out})
}

// Update replaces the whole weekly schedule. Weekdays left out of the
// request end up without a schedule, which books nothing.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	toCreate := make([]models.WorkDay, 0, len(req.Days))
	for _, d := range req.Days {
		weekday, err := availability.ParseWeekday(d.Weekday)
		if err != nil {
			httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido.")
			return
		}

		wd := models.WorkDay{
			ProfessionalID: professionalID,
			Weekday:        int(weekday),
			Active:         d.Active,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
		}
		for _, b := range d.Breaks {
			wd.Breaks = append(wd.Breaks, models.WorkBreak{StartTime: b.StartTime, EndTime: b.EndTime})
		}
		toCreate = append(toCreate, wd)
	}

	if err := domain.ValidateWorkDays(toCreate); err != nil {
		httperr.Respond(c, h.log, err, "invalid_working_hours")
		return
	}

	if !h.professionalExists(c, professionalID) {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("professional_id = ?", professionalID).Delete(&models.WorkDay{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		h.log.WithError(err).
			WithField("professional_id", professionalID).
			Error("failed_to_save_working_hours")
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	out := make([]WorkingDayConfig, 0, len(toCreate))
	for _, wd := range toCreate {
		out = append(out, toWorkingDayConfig(wd))
	}

	c.JSON(http.StatusOK, gin.H{"days": out})
}
