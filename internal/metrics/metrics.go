package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "bookings_total",
			Help:      "Booking commit attempts by outcome.",
		},
		[]string{"outcome"},
	)

	availabilityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "availability_requests_total",
			Help:      "Public availability listings served.",
		},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsTotal, availabilityRequests)
	})
}

// ObserveBooking records a commit attempt. Outcome is "created" or a
// rejection code (slot_taken, usage_limit_reached, ...); contended outcomes
// are expected under concurrency and worth watching separately from faults.
func ObserveBooking(outcome string) {
	bookingsTotal.WithLabelValues(outcome).Inc()
}

func IncAvailabilityRequests() {
	availabilityRequests.Inc()
}
