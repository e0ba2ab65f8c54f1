package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageSelectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stage_driver",
		Name:      "select_total",
		Help:      "Count of attempts to select the next eligible block.",
	}, []string{"coin", "network", "stage", "status"})

	stageSelectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stage_driver",
		Name:      "select_duration_seconds",
		Help:      "Duration of selecting the next eligible block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "stage", "status"})

	stageProcessTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stage_driver",
		Name:      "process_total",
		Help:      "Count of blocks processed by a stage.",
	}, []string{"coin", "network", "stage", "status"})

	stageProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stage_driver",
		Name:      "process_duration_seconds",
		Help:      "Duration of processing one block.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"coin", "network", "stage", "status"})

	stageLagBlocks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stage_driver",
		Name:      "lag_blocks",
		Help:      "Number of blocks between the chain tip and the last processed height.",
	}, []string{"coin", "network", "stage"})
)

// StageDriver tracks metrics for a pipeline stage driver.
type StageDriver struct {
	coin    string
	network string
}

// NewStageDriver constructs a StageDriver collector.
func NewStageDriver(coin model.Coin, network model.Network) *StageDriver {
	return &StageDriver{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

// ObserveSelect records a selection attempt outcome and duration.
func (m StageDriver) ObserveSelect(stage string, err error, started time.Time) {
	status := outcome(err)
	stageSelectTotal.WithLabelValues(m.coin, m.network, stage, status).Inc()
	stageSelectDuration.WithLabelValues(m.coin, m.network, stage, status).
		Observe(time.Since(started).Seconds())
}

// ObserveProcess records processing of a single block.
func (m StageDriver) ObserveProcess(stage string, err error, started time.Time) {
	status := outcome(err)
	stageProcessTotal.WithLabelValues(m.coin, m.network, stage, status).Inc()
	stageProcessDuration.WithLabelValues(m.coin, m.network, stage, status).
		Observe(time.Since(started).Seconds())
}

// ObserveLag sets the current lag of stage behind the chain tip.
func (m StageDriver) ObserveLag(stage string, lag uint64) {
	stageLagBlocks.WithLabelValues(m.coin, m.network, stage).Set(float64(lag))
}
