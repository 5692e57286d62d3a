package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for availability and
// booking flows.
type SchedulingMetrics struct {
	availabilityTotal *prometheus.CounterVec
	slotsReturned     prometheus.Histogram
	bookingsTotal     *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "availability",
			Name:      "requests_total",
			Help:      "Availability computations by outcome",
		}, []string{"outcome"}),
		slotsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "availability",
			Name:      "slots_returned",
			Help:      "Number of slots offered per availability request",
			Buckets:   []float64{0, 1, 4, 8, 16, 32, 64},
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityTotal, m.slotsReturned, m.bookingsTotal)
	return m
}

func (m *SchedulingMetrics) ObserveAvailability(outcome string, slots int) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.slotsReturned.Observe(float64(slots))
	}
}

func (m *SchedulingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}
