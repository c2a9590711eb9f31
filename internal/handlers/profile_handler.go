package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/validators"
)

type ProfileHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProfileHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ProfileHandler {
	return &ProfileHandler{db: db, audit: dispatcher}
}

// Campos nil ficam como estão. Slug e status não mudam por aqui.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Profession *string `json:"profession"`
	Bio        *string `json:"bio"`

	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
}

func (h *ProfileHandler) load(c *gin.Context) (*models.Professional, bool) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

	var professional models.Professional
	if err := h.db.First(&professional, professionalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar dados do profissional.")
		return nil, false
	}
	return &professional, true
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	professional, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, professional)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	professional, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		professional.Name = name
	}
	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if phone != "" && !validators.IsPhoneValid(phone) {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return
		}
		professional.Phone = phone
	}
	if req.State != nil {
		state := strings.ToUpper(strings.TrimSpace(*req.State))
		if state != "" && len(state) != 2 {
			httperr.BadRequest(c, "invalid_state_code", "UF deve ter duas letras.")
			return
		}
		professional.State = state
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&professional.Profession, req.Profession)
	assign(&professional.Bio, req.Bio)
	assign(&professional.Street, req.Street)
	assign(&professional.Number, req.Number)
	assign(&professional.Complement, req.Complement)
	assign(&professional.Neighborhood, req.Neighborhood)
	assign(&professional.City, req.City)
	assign(&professional.ZipCode, req.ZipCode)

	if err := h.db.Save(professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar os dados do profissional.")
		return
	}

	writeAudit(h.audit, professional.ID, &userID, "profile_updated", "professional", &professional.ID, nil)

	c.JSON(http.StatusOK, professional)
}
