package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	bookingsTotal       *prometheus.CounterVec
	availabilityLatency *prometheus.HistogramVec
	cacheTotal          *prometheus.CounterVec
	notificationsTotal  *prometheus.CounterVec
	rateLimitedTotal    prometheus.Counter
	sweptTotal          prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reserva",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Booking attempts by result",
		}, []string{"result"}),
		availabilityLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reserva",
			Subsystem: "booking",
			Name:      "availability_latency_seconds",
			Help:      "Latency of availability queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reserva",
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Availability cache operations",
		}, []string{"op", "result"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reserva",
			Subsystem: "notify",
			Name:      "messages_total",
			Help:      "WhatsApp notifications by kind and outcome",
		}, []string{"kind", "status"}),
		rateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reserva",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Public booking requests rejected by the rate limiter",
		}),
		sweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reserva",
			Subsystem: "booking",
			Name:      "auto_completed_total",
			Help:      "Appointments flipped to completed by the sweep",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.bookingsTotal,
		m.availabilityLatency,
		m.cacheTotal,
		m.notificationsTotal,
		m.rateLimitedTotal,
		m.sweptTotal,
	)
	return m
}

// ObserveBooking records "created" or the business error code.
func (m *BookingMetrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveAvailability(source string, seconds float64) {
	if m == nil {
		return
	}
	m.availabilityLatency.WithLabelValues(source).Observe(seconds)
}

func (m *BookingMetrics) ObserveCache(op, result string) {
	if m == nil {
		return
	}
	m.cacheTotal.WithLabelValues(op, result).Inc()
}

func (m *BookingMetrics) ObserveNotification(kind, status string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(kind, status).Inc()
}

func (m *BookingMetrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Inc()
}

func (m *BookingMetrics) ObserveSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sweptTotal.Add(float64(n))
}
