package appointment

import (
	"context"

	"go.opentelemetry.io/otel"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/notify"
)

var tracer = otel.Tracer("reserva-top/usecase/appointment")

// AvailabilityCache is implemented by infra/cache. Implementations fail open.
type AvailabilityCache interface {
	Get(ctx context.Context, professionalID uint, date string, duration int) ([]domain.TimeSlot, int64, bool)
	Set(ctx context.Context, professionalID uint, date string, duration int, version int64, slots []domain.TimeSlot)
	Invalidate(ctx context.Context, professionalID uint, date string)
}

// Notifier is fire-and-forget.
type Notifier interface {
	Notify(kind notify.Kind, phone string, data notify.TemplateData)
}

type noopCache struct{}

func (noopCache) Get(context.Context, uint, string, int) ([]domain.TimeSlot, int64, bool) {
	return nil, 0, false
}
func (noopCache) Set(context.Context, uint, string, int, int64, []domain.TimeSlot) {}
func (noopCache) Invalidate(context.Context, uint, string)                         {}

type noopNotifier struct{}

func (noopNotifier) Notify(notify.Kind, string, notify.TemplateData) {}

func templateData(clientName, serviceName, date, hm string) notify.TemplateData {
	return notify.TemplateData{
		ClientName:  clientName,
		ServiceName: serviceName,
		Date:        notify.DisplayDate(date),
		Time:        hm,
	}
}
