package pipeline

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -source=../chain/stage.go -destination=stage_mocks_test.go -package=$GOPACKAGE

type (
	// StatusRepository persists the lifecycle status of a processed block.
	StatusRepository interface {
		SaveBlockStatus(ctx context.Context, block model.Block) error
	}
	// HeightSource reports the current chain height.
	HeightSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
	}
	// Metrics records driver iterations per stage.
	Metrics interface {
		ObserveSelect(stage string, err error, started time.Time)
		ObserveProcess(stage string, err error, started time.Time)
		ObserveLag(stage string, lag uint64)
	}
)
