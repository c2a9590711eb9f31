package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

// SweepCompleted flips confirmed appointments whose end has passed to
// completed. Running it again is a no-op.
type SweepCompleted struct {
	repo    domain.Repository
	clock   *timezone.Clock
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

func NewSweepCompleted(
	repo domain.Repository,
	clock *timezone.Clock,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
) *SweepCompleted {
	if logger == nil {
		logger = logging.Default()
	}
	return &SweepCompleted{repo: repo, clock: clock, logger: logger, metrics: m}
}

func (uc *SweepCompleted) Execute(ctx context.Context, professionalID uint) (int, error) {
	ctx, span := tracer.Start(ctx, "appointment.sweep_completed")
	defer span.End()

	confirmed, err := uc.repo.ListAppointmentsByStatus(ctx, professionalID, domain.StatusConfirmed)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	now := uc.clock.Now()
	swept := 0

	for i := range confirmed {
		ap := &confirmed[i]
		if !domain.IsDueForCompletion(ap, now) {
			continue
		}
		if err := domain.Complete(ap, now); err != nil {
			continue
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			span.RecordError(err)
			return swept, err
		}
		swept++
	}

	span.SetAttributes(attribute.Int("swept", swept))
	if swept > 0 {
		uc.metrics.ObserveSwept(swept)
		uc.logger.Info("appointments auto-completed",
			"professional_id", professionalID,
			"count", swept,
		)
	}

	return swept, nil
}
