package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/httpresp"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: dispatcher}
}

type RejectProfessionalRequest struct {
	Reason string `json:"reason"`
}

var professionalStatuses = map[string]bool{
	models.ProfessionalPending:  true,
	models.ProfessionalApproved: true,
	models.ProfessionalRejected: true,
	models.ProfessionalBlocked:  true,
}

// ======================================================
// LIST
// ======================================================

func (h *AdminHandler) ListProfessionals(c *gin.Context) {
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	q := h.db.Model(&models.Professional{})
	if status != "" {
		if !professionalStatuses[status] {
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
			return
		}
		q = q.Where("status = ?", status)
	}

	var professionals []models.Professional
	if err := q.Order("created_at DESC").Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, professionals)
}

// ======================================================
// TRANSIÇÕES
// ======================================================

func (h *AdminHandler) Approve(c *gin.Context) {
	h.transition(c, "professional_approved", func(p *models.Professional) bool {
		if p.Status != models.ProfessionalPending && p.Status != models.ProfessionalRejected {
			return false
		}
		p.Status = models.ProfessionalApproved
		p.RejectionReason = ""
		return true
	})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	var req RejectProfessionalRequest
	// corpo opcional
	_ = c.ShouldBindJSON(&req)

	h.transition(c, "professional_rejected", func(p *models.Professional) bool {
		if p.Status != models.ProfessionalPending {
			return false
		}
		p.Status = models.ProfessionalRejected
		p.RejectionReason = strings.TrimSpace(req.Reason)
		return true
	})
}

func (h *AdminHandler) Block(c *gin.Context) {
	h.transition(c, "professional_blocked", func(p *models.Professional) bool {
		if p.Status == models.ProfessionalBlocked {
			return false
		}
		p.Status = models.ProfessionalBlocked
		return true
	})
}

func (h *AdminHandler) Unblock(c *gin.Context) {
	h.transition(c, "professional_unblocked", func(p *models.Professional) bool {
		if p.Status != models.ProfessionalBlocked {
			return false
		}
		p.Status = models.ProfessionalApproved
		return true
	})
}

// transition carrega o profissional, aplica a mudança e audita.
// apply devolve false quando a transição não vale para o status atual.
func (h *AdminHandler) transition(
	c *gin.Context,
	action string,
	apply func(p *models.Professional) bool,
) {
	adminID := c.GetUint(middleware.ContextUserID)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var professional models.Professional
	if err := h.db.First(&professional, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	previous := professional.Status
	if !apply(&professional) {
		httperr.BadRequest(c, "invalid_state", "Ação não permitida para o status atual.")
		return
	}

	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	writeAudit(h.audit, professional.ID, &adminID, action, "professional", &professional.ID,
		map[string]any{"from": previous, "to": professional.Status})

	c.JSON(http.StatusOK, professional)
}
