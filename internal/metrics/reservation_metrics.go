package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"seatkeeper/internal/domain"
)

const outcomeReserved = "RESERVED"

// ReservationMetrics counts pipeline outcomes by failure code.
type ReservationMetrics struct {
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewReservationMetrics(registerer prometheus.Registerer) *ReservationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ReservationMetrics{
		outcomes: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "seatkeeper_reservation_outcomes_total",
			Help: "Reservation attempts by outcome (RESERVED or failure code)",
		}, []string{"outcome"}),
		duration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "seatkeeper_reservation_duration_seconds",
			Help:    "Duration of a reservation attempt in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
	}
}

func (m *ReservationMetrics) RecordReserved(elapsed time.Duration) {
	m.outcomes.WithLabelValues(outcomeReserved).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *ReservationMetrics) RecordFailure(code domain.FailureCode, elapsed time.Duration) {
	m.outcomes.WithLabelValues(code.String()).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
