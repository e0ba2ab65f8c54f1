package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// operations counts and times named calls to one backend.
type operations struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newOperations(subsystem, backend string, buckets []float64) operations {
	labels := []string{"operation", "coin", "network", "status"}
	return operations{
		total: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockinsight7000",
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Count of " + backend + " operations.",
		}, labels),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blockinsight7000",
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Duration of " + backend + " operations.",
			Buckets:   buckets,
		}, labels),
	}
}

func (o operations) observe(operation, coin, network, status string, started time.Time) {
	o.total.WithLabelValues(operation, coin, network, status).Inc()
	o.duration.WithLabelValues(operation, coin, network, status).Observe(time.Since(started).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
