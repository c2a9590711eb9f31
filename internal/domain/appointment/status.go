package appointment

import "github.com/BruksfildServices01/reserva-top/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BlocksSlot reports whether an appointment in this status occupies its time.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

// InitialStatus: agendamentos são confirmados automaticamente
func InitialStatus() Status {
	return StatusConfirmed
}
