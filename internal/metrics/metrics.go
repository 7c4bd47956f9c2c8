package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "randevu",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "randevu",
			Name:      "bookings_total",
			Help:      "Booking submissions by outcome.",
		},
		[]string{"outcome"},
	)

	slotsOffered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "randevu",
			Name:      "slots_offered_total",
			Help:      "Slots returned by availability queries.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookings, slotsOffered)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBooking counts a booking outcome: created, rejected, conflict, error.
func IncBooking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

// AddSlotsOffered counts slots returned to clients.
func AddSlotsOffered(n int) {
	slotsOffered.Add(float64(n))
}
