package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

// Stage is one step of the block pipeline driven by a pipeline.Driver.
type Stage interface {
	// Name identifies the stage in logs and metrics.
	Name() string
	// SelectNext returns the next eligible block height; ok is false when nothing is eligible.
	SelectNext(ctx context.Context) (height uint64, ok bool, err error)
	// Process runs the stage for one block and returns the block as processed.
	Process(ctx context.Context, height uint64) (model.Block, error)
	// NextState is the status a successfully processed block moves to.
	NextState() model.BlockStatus
}
