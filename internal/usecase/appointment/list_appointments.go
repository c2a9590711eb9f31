package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/dto"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	"github.com/BruksfildServices01/reserva-top/internal/validators"
)

type ListAppointments struct {
	repo   domain.Repository
	clock  *timezone.Clock
	sweep  *SweepCompleted
	logger *logging.Logger
}

func NewListAppointments(
	repo domain.Repository,
	clock *timezone.Clock,
	sweep *SweepCompleted,
	logger *logging.Logger,
) *ListAppointments {
	if logger == nil {
		logger = logging.Default()
	}
	return &ListAppointments{
		repo:   repo,
		clock:  clock,
		sweep:  sweep,
		logger: logger,
	}
}

// ByDate lists one day of the agenda. The completion sweep runs first; its
// failure only costs freshness.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	professionalID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if date == "" {
		date = uc.clock.Today().Format(timezone.DateLayout)
	}
	if _, err := uc.clock.ParseDate(date); err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	uc.runSweep(ctx, professionalID)

	appointments, err := uc.repo.ListAppointments(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	return dto.ToAppointmentLists(appointments), nil
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	professionalID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 2000 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}

	uc.runSweep(ctx, professionalID)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.clock.Location())
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsBetween(
		ctx,
		professionalID,
		start.Format(timezone.DateLayout),
		end.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	return dto.ToAppointmentLists(appointments), nil
}

// ByContact is the client-side lookup; cancelled bookings are left out.
func (uc *ListAppointments) ByContact(
	ctx context.Context,
	email string,
	phone string,
) ([]dto.AppointmentListDTO, error) {

	email = validators.NormalizeEmail(email)
	phone = validators.NormalizePhone(phone)
	if email == "" && phone == "" {
		return nil, httperr.ErrBusiness(domain.CodeInvalidClient)
	}

	appointments, err := uc.repo.ListAppointmentsByContact(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("list by contact: %w", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		if domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		out = append(out, dto.ToAppointmentList(ap))
	}
	return out, nil
}

func (uc *ListAppointments) runSweep(ctx context.Context, professionalID uint) {
	if uc.sweep == nil {
		return
	}
	if _, err := uc.sweep.Execute(ctx, professionalID); err != nil {
		uc.logger.Warn("completion sweep failed", "professional_id", professionalID, "error", err)
	}
}
