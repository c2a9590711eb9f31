package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/httpresp"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe devolve o usuário do token e, para profissionais, o cadastro com status.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	if userID == 0 {
		httperr.Unauthorized(c, "user_not_in_context", "Sessão inválida.")
		return
	}

	var user models.User
	if err := h.db.Preload("Professional").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar usuário.")
		return
	}

	// admin não tem profissional
	httpresp.OK(c, gin.H{
		"user":         userJSON(&user),
		"professional": user.Professional,
	})
}
