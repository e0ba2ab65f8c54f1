package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	relationsPhaseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "relations_builder",
		Name:      "phase_total",
		Help:      "Count of relation building phases executed.",
	}, []string{"coin", "network", "phase", "status"})

	relationsPhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "relations_builder",
		Name:      "phase_duration_seconds",
		Help:      "Duration of relation building phases.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "phase", "status"})

	relationsSelfHealTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "relations_builder",
		Name:      "self_heal_total",
		Help:      "Count of funding transaction repairs attempted.",
	}, []string{"coin", "network", "status"})
)

// Relations tracks metrics for the relations builder stage.
type Relations struct {
	coin    string
	network string
}

// NewRelations constructs a Relations collector.
func NewRelations(coin model.Coin, network model.Network) *Relations {
	return &Relations{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

// ObservePhase records outcome and duration of a single phase.
func (m Relations) ObservePhase(phase string, err error, started time.Time) {
	status := outcome(err)
	relationsPhaseTotal.WithLabelValues(m.coin, m.network, phase, status).Inc()
	relationsPhaseDuration.WithLabelValues(m.coin, m.network, phase, status).
		Observe(time.Since(started).Seconds())
}

// ObserveSelfHeal records a repair attempt of a funding transaction.
func (m Relations) ObserveSelfHeal(err error) {
	relationsSelfHealTotal.WithLabelValues(m.coin, m.network, outcome(err)).Inc()
}
