package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/httpresp"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/usecase/appointment"
)

type DashboardHandler struct {
	dashboard *appointment.Dashboard
}

func NewDashboardHandler(dashboard *appointment.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

	out, err := h.dashboard.Execute(c.Request.Context(), professionalID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao carregar o painel.")
		return
	}

	httpresp.OK(c, out)
}
