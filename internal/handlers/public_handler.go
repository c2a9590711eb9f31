package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/httpresp"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	"github.com/BruksfildServices01/reserva-top/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	clock *timezone.Clock

	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
	list         *appointment.ListAppointments
	cancel       *appointment.CancelAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	clock *timezone.Clock,
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	list *appointment.ListAppointments,
	cancel *appointment.CancelAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		clock:        clock,
		availability: availability,
		create:       create,
		list:         list,
		cancel:       cancel,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type PublicCancelRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

////////////////////////////////////////////////////////
// PERFIL
////////////////////////////////////////////////////////

// publicProfessional resolve o slug; só profissionais aprovados são públicos.
func (h *PublicHandler) publicProfessional(c *gin.Context) (*models.Professional, bool) {
	professional, err := h.repo.GetProfessionalBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return nil, false
	}

	if !professional.IsPublic() {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return nil, false
	}
	return professional, true
}

func (h *PublicHandler) Profile(c *gin.Context) {
	professional, ok := h.publicProfessional(c)
	if !ok {
		return
	}
	httpresp.OK(c, professional)
}

////////////////////////////////////////////////////////
// SERVIÇOS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	professional, ok := h.publicProfessional(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.Where("professional_id = ? AND active = true", professional.ID)
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDate(h.clock, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	professional, ok := h.publicProfessional(c)
	if !ok {
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ProfessionalID: professional.ID,
			ServiceID:      uint(serviceID),
			Date:           date,
		},
	)
	if err != nil {
		writeBusinessError(c, err, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professional, ok := h.publicProfessional(c)
	if !ok {
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		appointment.CreateAppointmentInput{
			ProfessionalID: professional.ID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

////////////////////////////////////////////////////////
// ÁREA DO CLIENTE
////////////////////////////////////////////////////////

func (h *PublicHandler) LookupAppointments(c *gin.Context) {
	appointments, err := h.list.ByContact(
		c.Request.Context(),
		c.Query("email"),
		strings.TrimSpace(c.Query("phone")),
	)
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_appointments", "Erro ao buscar agendamentos.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Email == "" && req.Phone == "") {
		httperr.BadRequest(c, "invalid_request", "Informe o email ou telefone usado no agendamento.")
		return
	}

	ap, err := h.cancel.ByClient(c.Request.Context(), id, req.Email, req.Phone)
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}
