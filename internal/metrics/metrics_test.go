package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the samples of a family whose labels contain label=value.
func counterValue(t *testing.T, reg *prometheus.Registry, family, label, value string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := label == ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					match = true
				}
			}
			if match {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking("created")
	m.ObserveBooking("created")
	m.ObserveBooking("slot_unavailable")
	m.ObserveAvailability("cache", 0.01)
	m.ObserveCache("get", "hit")
	m.ObserveNotification("confirmation", "sent")
	m.ObserveRateLimited()
	m.ObserveSwept(3)
	m.ObserveSwept(0)

	assert.Equal(t, 2.0, counterValue(t, reg, "reserva_booking_appointments_total", "result", "created"))
	assert.Equal(t, 1.0, counterValue(t, reg, "reserva_booking_appointments_total", "result", "slot_unavailable"))
	assert.Equal(t, 1.0, counterValue(t, reg, "reserva_http_rate_limited_total", "", ""))
	assert.Equal(t, 3.0, counterValue(t, reg, "reserva_booking_auto_completed_total", "", ""))
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveBooking("created")
	m.ObserveAvailability("store", 0.1)
	m.ObserveCache("get", "miss")
	m.ObserveNotification("cancellation", "failed")
	m.ObserveRateLimited()
	m.ObserveSwept(1)
}
