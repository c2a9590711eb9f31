package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	clock *timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock *timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

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

	// --------------------------------------------------
	// Query base (sempre restrita ao profissional)
	// --------------------------------------------------

	q := h.db.
		Model(&models.AuditLog{}).
		Where("professional_id = ?", professionalID)

	// --------------------------------------------------
	// Filtros opcionais (datas no fuso da plataforma)
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		from, err := parseDate(h.clock, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr != "" {
		to, err := parseDate(h.clock, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data final inválida.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

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
