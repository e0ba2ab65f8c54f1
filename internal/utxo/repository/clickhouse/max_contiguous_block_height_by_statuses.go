package clickhouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

// MaxContiguousBlockHeightByStatuses returns the highest height h such that every block from 0 to h
// is in one of statuses.
func (r *Repository) MaxContiguousBlockHeightByStatuses(ctx context.Context, coin model.Coin, network model.Network, statuses []model.BlockStatus) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_contiguous_block_height_by_status", coin, network, err, start)
	}()

	if len(statuses) == 0 {
		err = fmt.Errorf("statuses is required")
		return 0, err
	}

	statusPlaceholders := strings.Repeat("?,", len(statuses))
	statusPlaceholders = statusPlaceholders[:len(statusPlaceholders)-1]

	query := fmt.Sprintf(`WITH data AS (
    SELECT
        height,
        row_number() OVER (ORDER BY height) - 1 AS rn
    FROM utxo_blocks FINAL
    WHERE coin = ? AND network = ? AND status IN (%s)
)
SELECT max(height) AS max_contiguous_height
FROM data
WHERE rn = height LIMIT 1`, statusPlaceholders)

	args := []any{string(coin), string(network)}
	for _, s := range statuses {
		args = append(args, string(s))
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query max contiguous block height by status: %w", err)
	}
	defer closeRows(rows, &err)

	var height uint64
	if !rows.Next() {
		err = fmt.Errorf("not found max contiguous block height by status")
		return 0, err
	}

	if err = rows.Scan(&height); err != nil {
		return 0, fmt.Errorf("scan max contiguous block height by status: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max contiguous block height by status: %w", err)
	}

	return height, nil
}
