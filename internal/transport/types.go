package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// StageHealth reports liveness of a running pipeline stage.
	StageHealth interface {
		Name() string
		Healthy() bool
		LastError() error
		LastHeight() (uint64, bool)
	}
	// ProgressReader reports how far the graph is contiguously built.
	ProgressReader interface {
		MaxContiguousBlockHeightByStatuses(ctx context.Context, coin model.Coin, network model.Network, statuses []model.BlockStatus) (uint64, error)
	}
)
