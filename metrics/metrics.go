package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "checkout",
		Name:      "created_total",
		Help:      "Total number of checkouts created.",
	})
	CheckoutsReleased = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "checkout",
		Name:      "released_total",
		Help:      "Total number of checkouts released (cancelled or expired).",
	})
	CheckoutsFinalized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "checkout",
		Name:      "finalized_total",
		Help:      "Total number of checkouts converted into orders.",
	})
	SweepFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "checkout",
		Name:      "sweep_failures_total",
		Help:      "Total number of checkouts the expiry sweeper failed to release.",
	})
)

// Register installs the collectors into the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(CheckoutsCreated, CheckoutsReleased, CheckoutsFinalized, SweepFailures)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
