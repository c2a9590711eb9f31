package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/dto"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

type Dashboard struct {
	repo   domain.Repository
	clock  *timezone.Clock
	sweep  *SweepCompleted
	logger *logging.Logger
}

func NewDashboard(
	repo domain.Repository,
	clock *timezone.Clock,
	sweep *SweepCompleted,
	logger *logging.Logger,
) *Dashboard {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dashboard{repo: repo, clock: clock, sweep: sweep, logger: logger}
}

func (uc *Dashboard) Execute(ctx context.Context, professionalID uint) (*dto.DashboardDTO, error) {
	ctx, span := tracer.Start(ctx, "appointment.dashboard")
	defer span.End()

	// sweep preguiçoso: roda ao abrir o painel. Se falhar, o painel sai com
	// o que já está gravado.
	swept, err := uc.sweep.Execute(ctx, professionalID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("completion sweep failed", "professional_id", professionalID, "error", err)
	}

	today := uc.clock.Today()
	monthStart := today.AddDate(0, 0, 1-today.Day())
	monthEnd := monthStart.AddDate(0, 1, 0)

	out := &dto.DashboardDTO{
		Date:          today.Format(timezone.DateLayout),
		Today:         []dto.AppointmentListDTO{},
		AutoCompleted: swept,
	}

	// --------------------------------------------------
	// Hoje
	// --------------------------------------------------
	todays, err := uc.repo.ListAppointments(ctx, professionalID, out.Date)
	if err != nil {
		return nil, err
	}
	for _, ap := range todays {
		if domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		out.Today = append(out.Today, dto.ToAppointmentList(ap))
	}
	out.TodayCount = len(out.Today)

	// --------------------------------------------------
	// Mês: receita de concluídos
	// --------------------------------------------------
	month, err := uc.repo.ListAppointmentsBetween(
		ctx,
		professionalID,
		monthStart.Format(timezone.DateLayout),
		monthEnd.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	for _, ap := range month {
		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			out.MonthCompleted++
			out.MonthRevenue += ap.Price
		case domain.StatusCancelled:
			out.MonthCancelled++
		}
	}

	// --------------------------------------------------
	// Previsão: confirmados / pendentes futuros
	// --------------------------------------------------
	for _, st := range []domain.Status{domain.StatusConfirmed, domain.StatusPending} {
		upcoming, err := uc.repo.ListAppointmentsByStatus(ctx, professionalID, st)
		if err != nil {
			return nil, err
		}
		for i := range upcoming {
			if !isFuture(&upcoming[i], uc.clock) {
				continue
			}
			out.UpcomingCount++
			out.ExpectedIncome += upcoming[i].Price
		}
	}

	return out, nil
}

func isFuture(ap *models.Appointment, clock *timezone.Clock) bool {
	start, err := domain.StartsAt(ap, clock.Location())
	if err != nil {
		return false
	}
	return !start.Before(clock.Now())
}
