package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/httpresp"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *appointment.CreateAppointment
	complete *appointment.CompleteAppointment
	cancel   *appointment.CancelAppointment
	list     *appointment.ListAppointments
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	complete *appointment.CompleteAppointment,
	cancel *appointment.CancelAppointment,
	list *appointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		complete: complete,
		cancel:   cancel,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason       string `json:"reason"`
	CustomReason string `json:"custom_reason"`
}

// ======================================================
// CREATE
// ======================================================

// Create agenda em nome do cliente, pelo mesmo fluxo da página pública.
func (h *AppointmentHandler) Create(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)
	userID := c.GetUint(middleware.ContextUserID)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		appointment.CreateAppointmentInput{
			ProfessionalID: professionalID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
			ActorUserID:    &userID,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

// ListByDate usa hoje quando ?date não vem.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

	appointments, err := h.list.ByDate(c.Request.Context(), professionalID, c.Query("date"))
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	appointments, err := h.list.ByMonth(c.Request.Context(), professionalID, year, month)
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": appointments,
	})
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)
	userID := c.GetUint(middleware.ContextUserID)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), professionalID, userID, id)
	if err != nil {
		writeBusinessError(c, err, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	professionalID := c.GetUint(middleware.ContextProfessionalID)
	userID := c.GetUint(middleware.ContextUserID)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	// corpo opcional: sem motivo vira "outro"
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.ByProfessional(c.Request.Context(), appointment.ProfessionalCancelInput{
		ProfessionalID: professionalID,
		UserID:         userID,
		AppointmentID:  id,
		Reason:         req.Reason,
		CustomReason:   req.CustomReason,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}
