package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riobook_http_requests_total",
		Help: "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riobook_bookings_created_total",
		Help: "Bookings successfully created.",
	})

	BookingsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riobook_bookings_cancelled_total",
		Help: "Bookings cancelled by their owner.",
	})

	MilesAccruedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riobook_miles_accrued_total",
		Help: "Loyalty miles accrued across all users.",
	})
)
