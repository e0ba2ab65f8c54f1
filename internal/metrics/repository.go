package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

var repositoryOperations = newOperations(
	"clickhouse_repository",
	"graph repository",
	[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
)

// ClickhouseRepository tracks metrics for ClickHouse repository operations.
type ClickhouseRepository struct{}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of a repository operation. Lookups that miss are
// counted as not_found rather than error.
func (ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	status := outcome(err)
	if errors.Is(err, model.ErrNotFound) {
		status = "not_found"
	}
	repositoryOperations.observe(operation, orUnknown(string(coin)), orUnknown(string(network)), status, started)
}

var rpcOperations = newOperations("rpc_client", "node RPC", []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10})

// RPCClient tracks metrics for RPC calls to blockchain nodes.
type RPCClient struct {
	coin    string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	return &RPCClient{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	rpcOperations.observe(operation, m.coin, m.network, outcome(err), started)
}
