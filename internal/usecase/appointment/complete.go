package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	clock *timezone.Clock
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	clock *timezone.Clock,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	professionalID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProfessional(ctx, appointmentID, professionalID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
		}
		return nil, err
	}

	if err := domain.Complete(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		UserID:         &userID,
		Action:         "appointment_completed",
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	return ap, nil
}
