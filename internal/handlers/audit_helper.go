package handlers

import (
	"github.com/BruksfildServices01/reserva-top/internal/audit"
)

// writeAudit enfileira o evento; nunca bloqueia a resposta.
func writeAudit(
	d *audit.Dispatcher,
	professionalID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {
	d.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		UserID:         userID,
		Action:         action,
		Entity:         entity,
		EntityID:       entityID,
		Metadata:       meta,
	})
}
