package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
)

type businessMapping struct {
	status  int
	message string
}

// ======================================================
// CÓDIGO DE NEGÓCIO → HTTP
// ======================================================

var businessErrors = map[string]businessMapping{
	domain.CodeClientBlocked: {
		http.StatusForbidden,
		"Não foi possível realizar o agendamento. Entre em contato com o profissional.",
	},
	domain.CodeSlotUnavailable:      {http.StatusConflict, "Este horário não está mais disponível. Escolha outro horário."},
	domain.CodeSlotInPast:           {http.StatusBadRequest, "Não é possível agendar em um horário que já passou."},
	domain.CodeOutsideWorkingHours:  {http.StatusBadRequest, "Fora do horário de atendimento."},
	domain.CodeInvalidDateOrTime:    {http.StatusBadRequest, "Data ou hora inválida."},
	domain.CodeInvalidDuration:      {http.StatusBadRequest, "Duração do serviço inválida."},
	domain.CodeInvalidWorkingHours:  {http.StatusBadRequest, "Horário de atendimento inválido."},
	domain.CodeInvalidState:         {http.StatusBadRequest, "Agendamento não pode ser alterado."},
	domain.CodeInvalidClient:        {http.StatusBadRequest, "Informe nome e email ou telefone."},
	domain.CodeInvalidCancelReason:  {http.StatusBadRequest, "Motivo de cancelamento inválido."},
	domain.CodeServiceNotFound:      {http.StatusNotFound, "Serviço não encontrado."},
	domain.CodeProfessionalNotFound: {http.StatusNotFound, "Profissional não encontrado."},
	domain.CodeAppointmentNotFound:  {http.StatusNotFound, "Agendamento não encontrado."},
}

// writeBusinessError responde com o mapeamento do código ou, se o erro não
// for de negócio, com 500 e o código de fallback.
func writeBusinessError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := httperr.BusinessCode(err); ok {
		if m, found := businessErrors[code]; found {
			httperr.Write(c, m.status, code, m.message)
			return
		}
	}
	httperr.Internal(c, fallbackCode, fallbackMessage)
}

func mapCreateErrors(c *gin.Context, err error) {
	writeBusinessError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento. Tente novamente.")
}

// uintParam lê um id de rota; responde 400 quando inválido.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}
