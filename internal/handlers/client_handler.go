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
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: dispatcher}
}

type BlockClientRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// ======================================================
// LIST CLIENTS (PROFISSIONAL)
// ======================================================

// List traz só quem já agendou com o profissional.
func (h *ClientHandler) List(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Model(&models.Client{}).
		Joins("JOIN client_professionals cp ON cp.client_id = clients.id").
		Where("cp.professional_id = ?", professionalID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(clients.name) LIKE ? OR clients.phone LIKE ? OR LOWER(clients.email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("clients.created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	c.JSON(http.StatusOK, clients)
}

// ======================================================
// BLOQUEIO
// ======================================================

// SetBlocked bloqueia ou libera o cliente. O bloqueio vale para qualquer
// novo agendamento feito com o email ou telefone dele.
func (h *ClientHandler) SetBlocked(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)
	userID := c.GetUint(middleware.ContextUserID)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req BlockClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Joins("JOIN client_professionals cp ON cp.client_id = clients.id").
		Where("clients.id = ? AND cp.professional_id = ?", id, professionalID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	status := models.ClientActive
	action := "client_unblocked"
	if *req.Blocked {
		status = models.ClientBlocked
		action = "client_blocked"
	}

	if err := h.db.Model(&client).Update("status", status).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}
	client.Status = status

	writeAudit(h.audit, professionalID, &userID, action, "client", &client.ID, nil)

	c.JSON(http.StatusOK, client)
}
