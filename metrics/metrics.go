package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItinerariesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itineraries_generated_total",
			Help: "Total number of generated itineraries",
		},
		[]string{"within_budget"},
	)

	ItineraryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itinerary_generation_seconds",
			Help:    "Time spent generating an itinerary",
			Buckets: prometheus.DefBuckets,
		},
	)

	ItineraryDays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_days_total",
			Help: "Generated days by what filled them",
		},
		[]string{"selection"}, // event, attraction, none
	)

	TransportModes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_transport_total",
			Help: "Transport legs by mode",
		},
		[]string{"mode"},
	)

	BudgetRescues = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itinerary_budget_rescues_total",
			Help: "Days swapped to a free alternative because they exceeded the remaining budget",
		},
	)

	RideJoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_joins_total",
			Help: "Ride join attempts by result",
		},
		[]string{"result"}, // ok, no_seats, not_found, error
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// RecordItinerary records one generated itinerary.
func RecordItinerary(withinBudget bool, duration time.Duration) {
	ItinerariesGenerated.WithLabelValues(strconv.FormatBool(withinBudget)).Inc()
	ItineraryDuration.Observe(duration.Seconds())
}

func RecordDay(selection, mode string, rescued bool) {
	ItineraryDays.WithLabelValues(selection).Inc()
	TransportModes.WithLabelValues(mode).Inc()
	if rescued {
		BudgetRescues.Inc()
	}
}

func RecordAPIRequest(method string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
