package appointment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

type GetAvailability struct {
	repo    domain.Repository
	clock   *timezone.Clock
	cache   AvailabilityCache
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	step    int
}

func NewGetAvailability(
	repo domain.Repository,
	clock *timezone.Clock,
	cache AvailabilityCache,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
	step int,
) *GetAvailability {
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GetAvailability{
		repo:    repo,
		clock:   clock,
		cache:   cache,
		logger:  logger,
		metrics: m,
		step:    step,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	ctx, span := tracer.Start(ctx, "appointment.get_availability",
		trace.WithAttributes(
			attribute.Int("professional.id", int(in.ProfessionalID)),
			attribute.Int("service.id", int(in.ServiceID)),
		),
	)
	defer span.End()

	began := time.Now()

	// --------------------------------------------------
	// Duração (serviço ou informada)
	// --------------------------------------------------
	duration := in.DurationMin
	if in.ServiceID != 0 {
		svc, err := uc.repo.GetService(ctx, in.ProfessionalID, in.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
			}
			span.RecordError(err)
			return nil, err
		}
		if !svc.Active {
			return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
		}
		duration = svc.DurationMin
	}
	if duration <= 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDuration)
	}

	// --------------------------------------------------
	// Datas passadas não têm horários
	// --------------------------------------------------
	loc := uc.clock.Location()
	day := calendarDay(in.Date, loc)
	now := uc.clock.Now()
	if day.Before(uc.clock.Today()) {
		return []domain.TimeSlot{}, nil
	}

	date := day.Format(timezone.DateLayout)
	span.SetAttributes(attribute.String("date", date))

	// --------------------------------------------------
	// Cache
	// --------------------------------------------------
	cached, version, ok := uc.cache.Get(ctx, in.ProfessionalID, date, duration)
	if ok {
		uc.metrics.ObserveAvailability("cache", time.Since(began).Seconds())
		return domain.DropPast(cached, day, now), nil
	}

	// --------------------------------------------------
	// Cálculo
	// --------------------------------------------------
	slots, err := daySlots(ctx, uc.repo, in.ProfessionalID, day, duration, uc.step, now)
	if errors.Is(err, domain.ErrInvalidConfiguration) {
		uc.logger.Warn("invalid working hours configuration",
			"professional_id", in.ProfessionalID,
			"date", date,
			"error", err,
		)
		return []domain.TimeSlot{}, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.cache.Set(ctx, in.ProfessionalID, date, duration, version, slots)
	uc.metrics.ObserveAvailability("store", time.Since(began).Seconds())

	return slots, nil
}
