package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type ServiceHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewServiceHandler(db *gorm.DB, log *logrus.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=255"`
	DurationMin int     `json:"duration_min" binding:"required,min=1,max=1440"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=1,max=1440"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("professional_id = ?", professionalID)

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		h.log.WithError(err).Error("failed_to_list_services")
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	var prof models.Professional
	if err := h.db.Select("id").First(&prof, professionalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	service := models.Service{
		ProfessionalID: professionalID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		DurationMin:    req.DurationMin,
		Price:          req.Price,
		Active:         true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		h.log.WithError(err).Error("failed_to_create_service")
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintParam(c, "serviceId")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND professional_id = ?", serviceID, professionalID).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		h.log.WithError(err).Error("failed_to_update_service")
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}
