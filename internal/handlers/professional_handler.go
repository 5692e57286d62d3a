package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/pro-scheduler/internal/imaging"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/storage"
)

const maxPhotoBytes = 5 << 20

type ProfessionalHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore
	log    *logrus.Logger
}

func NewProfessionalHandler(db *gorm.DB, photos *storage.PhotoStore, log *logrus.Logger) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, photos: photos, log: log}
}

type CreateProfessionalRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Title       string `json:"title" binding:"max=100"`
}

// Search matches display name or email, case-insensitively.
func (h *ProfessionalHandler) Search(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Professional{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var professionals []models.Professional
	if err := q.Order("display_name ASC").Limit(50).Find(&professionals).Error; err != nil {
		h.log.WithError(err).Error("failed_to_search_professionals")
		httperr.Internal(c, "failed_to_search_professionals", "Erro ao buscar profissionais.")
		return
	}

	httpresp.List(c, professionals)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	prof, ok := h.load(c, id, true)
	if !ok {
		return
	}

	httpresp.OK(c, prof)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if !bindJSON(c, &req) {
		return
	}

	prof := models.Professional{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Title:       strings.TrimSpace(req.Title),
	}

	if err := h.db.Create(&prof).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "email_taken", "E-mail já cadastrado.")
			return
		}
		h.log.WithError(err).Error("failed_to_create_professional")
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, prof)
}

// UploadPhoto takes a multipart "photo" field, normalises it to a WebP
// of at most imaging.MaxPhotoSide pixels and stores it in the bucket.
func (h *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if !h.photos.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "photo_storage_disabled", "Armazenamento de fotos não configurado.")
		return
	}

	prof, ok := h.load(c, id, false)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Imagem inválida.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Imagem inválida.")
		return
	}
	defer f.Close()

	webp, err := imaging.ToWebP(f)
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidImage) {
			httperr.BadRequest(c, "invalid_photo", "Imagem inválida.")
			return
		}
		h.log.WithError(err).Error("failed_to_convert_photo")
		httperr.Internal(c, "failed_to_convert_photo", "Erro ao processar imagem.")
		return
	}

	url, err := h.photos.PutProfessionalPhoto(c.Request.Context(), prof.ID, webp)
	if err != nil {
		h.log.WithError(err).
			WithField("professional_id", prof.ID).
			Error("failed_to_upload_photo")
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao enviar imagem.")
		return
	}

	if err := h.db.Model(prof).Update("photo_url", url).Error; err != nil {
		h.log.WithError(err).Error("failed_to_save_photo_url")
		httperr.Internal(c, "failed_to_save_photo_url", "Erro ao salvar imagem.")
		return
	}

	httpresp.OK(c, prof)
}

func (h *ProfessionalHandler) load(c *gin.Context, id uint, withServices bool) (*models.Professional, bool) {
	q := h.db
	if withServices {
		q = q.Preload("Services", "active = ?", true)
	}

	var prof models.Professional
	if err := q.First(&prof, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return nil, false
		}
		h.log.WithError(err).Error("failed_to_get_professional")
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return nil, false
	}
	return &prof, true
}
