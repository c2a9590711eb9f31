package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/upload"
)

// ImageUploader é satisfeito por *upload.Store.
type ImageUploader interface {
	Enabled() bool
	Upload(ctx context.Context, professionalID uint, kind upload.Kind, r io.Reader) (string, error)
}

type UploadHandler struct {
	db       *gorm.DB
	uploader ImageUploader
	audit    *audit.Dispatcher
}

func NewUploadHandler(db *gorm.DB, uploader ImageUploader, dispatcher *audit.Dispatcher) *UploadHandler {
	return &UploadHandler{db: db, uploader: uploader, audit: dispatcher}
}

// UploadImage recebe multipart "file" e troca o avatar ou a capa.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)
	userID := c.GetUint(middleware.ContextUserID)

	kind, ok := upload.ParseKind(c.Param("kind"))
	if !ok {
		httperr.BadRequest(c, "invalid_image_kind", "Tipo de imagem inválido.")
		return
	}

	if h.uploader == nil || !h.uploader.Enabled() {
		httperr.Unavailable(c, "uploads_disabled", "Envio de imagens indisponível.")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}
	if fh.Size > upload.MaxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Imagem maior que 5 MB.")
		return
	}

	file, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), professionalID, kind, file)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidImage) {
			httperr.BadRequest(c, "invalid_image", "Envie uma imagem JPG, PNG ou WebP.")
			return
		}
		httperr.Internal(c, "upload_failed", "Erro ao enviar imagem.")
		return
	}

	column := "avatar_url"
	if kind == upload.KindCover {
		column = "cover_url"
	}

	if err := h.db.Model(&models.Professional{}).
		Where("id = ?", professionalID).
		Update(column, url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar imagem.")
		return
	}

	writeAudit(h.audit, professionalID, &userID, "image_uploaded", "professional", &professionalID,
		map[string]any{"kind": kind})

	c.JSON(http.StatusOK, gin.H{"kind": kind, "url": url})
}
