package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

const blockSelectQuery = `
SELECT
	height,
	hash,
	previous_hash,
	timestamp,
	tx_ids,
	status
FROM utxo_blocks FINAL
WHERE coin = ? AND network = ?`

const blockLinksQuery = `
SELECT
	previous_height,
	next_height,
	transactions
FROM utxo_block_links FINAL
WHERE coin = ? AND network = ? AND height = ?`

// FirstBlockByStatus returns the lowest block currently in status.
func (r *Repository) FirstBlockByStatus(ctx context.Context, coin model.Coin, network model.Network, status model.BlockStatus) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("first_block_by_status", coin, network, err, start)
	}()

	const query = blockSelectQuery + ` AND status = ?
ORDER BY height ASC
LIMIT 1`

	block, err := r.queryBlock(ctx, coin, network, query, string(coin), string(network), string(status))
	return block, err
}

// BlockByHeight returns the block at height with its relations.
func (r *Repository) BlockByHeight(ctx context.Context, coin model.Coin, network model.Network, height uint64) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_height", coin, network, err, start)
	}()

	const query = blockSelectQuery + ` AND height = ?`

	block, err := r.queryBlock(ctx, coin, network, query, string(coin), string(network), height)
	return block, err
}

// BlockByHash returns the block with hash with its relations.
func (r *Repository) BlockByHash(ctx context.Context, coin model.Coin, network model.Network, hash string) (model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_hash", coin, network, err, start)
	}()

	const query = blockSelectQuery + ` AND hash = ?
LIMIT 1`

	block, err := r.queryBlock(ctx, coin, network, query, string(coin), string(network), hash)
	return block, err
}

func (r *Repository) queryBlock(ctx context.Context, coin model.Coin, network model.Network, query string, args ...any) (block model.Block, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Block{}, fmt.Errorf("query block: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Block{}, fmt.Errorf("iterate block: %w", err)
		}
		return model.Block{}, model.ErrNotFound
	}

	var status string
	if err = rows.Scan(
		&block.Height,
		&block.Hash,
		&block.PreviousHash,
		&block.Timestamp,
		&block.TxIDs,
		&status,
	); err != nil {
		return model.Block{}, fmt.Errorf("scan block: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Block{}, fmt.Errorf("iterate block: %w", err)
	}
	block.Coin = coin
	block.Network = network
	block.Status = model.BlockStatus(status)

	if err = r.loadLinks(ctx, &block); err != nil {
		return model.Block{}, err
	}
	return block, nil
}

func (r *Repository) loadLinks(ctx context.Context, block *model.Block) (err error) {
	rows, err := r.conn.Query(ctx, blockLinksQuery, string(block.Coin), string(block.Network), block.Height)
	if err != nil {
		return fmt.Errorf("query block links: %w", err)
	}
	defer closeRows(rows, &err)

	if rows.Next() {
		if err = rows.Scan(&block.PreviousHeight, &block.NextHeight, &block.Transactions); err != nil {
			return fmt.Errorf("scan block links: %w", err)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate block links: %w", err)
	}
	return nil
}

// SaveBlock stores the relations of a block: chain edges and attached transactions.
// Header and status are written by SaveBlockStatus.
func (r *Repository) SaveBlock(ctx context.Context, block model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_block", block.Coin, block.Network, err, start)
	}()

	const query = `
INSERT INTO utxo_block_links (
	coin,
	network,
	height,
	previous_height,
	next_height,
	transactions,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare block links batch: %w", err)
	}

	transactions := block.Transactions
	if transactions == nil {
		transactions = []string{}
	}
	if err = batch.Append(
		string(block.Coin),
		string(block.Network),
		block.Height,
		block.PreviousHeight,
		block.NextHeight,
		transactions,
		r.version(),
	); err != nil {
		return fmt.Errorf("append block links: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block links: %w", err)
	}
	return nil
}

// SaveBlockStatus stores block header rows with their lifecycle status.
func (r *Repository) SaveBlockStatus(ctx context.Context, block model.Block) error {
	return r.SaveBlocks(ctx, []model.Block{block})
}

// SaveBlocks stores block header rows with their lifecycle status.
func (r *Repository) SaveBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_blocks", firstCoin(blocks), firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}
	if err = validateBlocks(blocks); err != nil {
		return err
	}

	const query = `
INSERT INTO utxo_blocks (
	coin,
	network,
	height,
	hash,
	previous_hash,
	timestamp,
	tx_ids,
	status,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	version := r.version()
	for _, block := range blocks {
		txids := block.TxIDs
		if txids == nil {
			txids = []string{}
		}
		if err = batch.Append(
			string(block.Coin),
			string(block.Network),
			block.Height,
			block.Hash,
			block.PreviousHash,
			block.Timestamp,
			txids,
			string(block.Status),
			version,
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

func validateBlocks(blocks []model.Block) error {
	for _, block := range blocks {
		if block.Status == "" {
			return fmt.Errorf("block %d: %w", block.Height, errEmptyStatus)
		}
	}
	return nil
}

var errEmptyStatus = errors.New("block status is required")
