// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	blockinsight7000v1 "github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExplorerHandler implements ExplorerServiceServer.
type ExplorerHandler struct {
	blockinsight7000v1.UnimplementedExplorerServiceServer

	stages   []StageHealth
	progress ProgressReader
	coin     model.Coin
	network  model.Network
	logger   *zap.Logger
}

// NewExplorerHandler returns an ExplorerHandler reporting the health of stages.
// progress is optional.
func NewExplorerHandler(stages []StageHealth, progress ProgressReader, coin model.Coin, network model.Network, logger *zap.Logger) *ExplorerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplorerHandler{
		stages:   stages,
		progress: progress,
		coin:     coin,
		network:  network,
		logger:   logger,
	}
}

// Health reports server health. Any failing stage makes the server unavailable.
func (h *ExplorerHandler) Health(ctx context.Context, _ *blockinsight7000v1.HealthRequest) (*blockinsight7000v1.HealthResponse, error) {
	parts := make([]string, 0, len(h.stages)+1)
	for _, stage := range h.stages {
		if !stage.Healthy() {
			return nil, status.Errorf(codes.Unavailable, "stage %s: %v", stage.Name(), stage.LastError())
		}
		if height, ok := stage.LastHeight(); ok {
			parts = append(parts, fmt.Sprintf("%s: last height %d", stage.Name(), height))
		} else {
			parts = append(parts, fmt.Sprintf("%s: idle", stage.Name()))
		}
	}

	if h.progress != nil {
		height, err := h.progress.MaxContiguousBlockHeightByStatuses(ctx, h.coin, h.network, []model.BlockStatus{model.BlockImported})
		if err != nil {
			h.logger.Warn("failed to read graph progress", zap.Error(err))
		} else {
			parts = append(parts, fmt.Sprintf("contiguous imported height %d", height))
		}
	}

	return &blockinsight7000v1.HealthResponse{
		Status:      blockinsight7000v1.HealthStatus_HEALTH_STATUS_HEALTHY,
		Description: strings.Join(parts, "; "),
	}, nil
}
