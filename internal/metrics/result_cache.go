package metrics

import (
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resultCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "blockinsight7000",
	Subsystem: "result_cache",
	Name:      "lookups_total",
	Help:      "Count of node result cache lookups by key space.",
}, []string{"coin", "network", "keyspace", "result"})

// ResultCache tracks hit and miss counts of the node result cache.
type ResultCache struct {
	coin    string
	network string
}

// NewResultCache constructs a ResultCache collector.
func NewResultCache(coin model.Coin, network model.Network) *ResultCache {
	return &ResultCache{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

// ObserveLookup counts one lookup in keyspace.
func (m ResultCache) ObserveLookup(keyspace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	resultCacheLookupsTotal.WithLabelValues(m.coin, m.network, keyspace, result).Inc()
}
