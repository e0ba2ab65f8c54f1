package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-graph/pkg/safe"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	keyspaceBlocks       = "blocks"
	keyspaceTransactions = "transactions"
	keyspaceHeight       = "height"
)

// DataSource reads blocks and transactions from the node through a result cache,
// throttling every RPC call.
type DataSource struct {
	rpc     RPCClient
	cache   ResultCache
	limiter ratelimit.Limiter
	metrics CacheMetrics
	logger  *zap.Logger
}

// NewDataSource builds a DataSource allowing at most rps node calls per second; rps <= 0 disables throttling.
func NewDataSource(rpc RPCClient, cache ResultCache, rps int, metrics CacheMetrics, logger *zap.Logger) *DataSource {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &DataSource{
		rpc:     rpc,
		cache:   cache,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// LatestHeight returns the chain height, asking the node only when the cached value is stale.
func (s *DataSource) LatestHeight(ctx context.Context) (uint64, error) {
	if !s.cache.IsHeightStale() {
		s.observe(keyspaceHeight, true)
		return s.cache.Height(), nil
	}
	s.observe(keyspaceHeight, false)

	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	s.cache.UpdateHeight(height)
	return height, nil
}

// FetchBlockData returns the verbose block at height with its transactions.
func (s *DataSource) FetchBlockData(ctx context.Context, height uint64) (*chain.BlockData, error) {
	if block, ok := s.cache.Block(height); ok {
		s.observe(keyspaceBlocks, true)
		return &chain.BlockData{Height: height, Raw: block}, nil
	}
	s.observe(keyspaceBlocks, false)

	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height: %w", err)
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	block, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	if block == nil {
		return nil, fmt.Errorf("get block %s: empty result", hash)
	}

	s.cache.PutBlock(height, block)
	if s.logger != nil {
		s.logger.Debug("fetched block", zap.Uint64("height", height), zap.Int("tx_count", len(block.Tx)))
	}
	return &chain.BlockData{Height: height, Raw: block}, nil
}

// FetchTransaction returns the raw transaction with txid.
func (s *DataSource) FetchTransaction(ctx context.Context, txid string) (btcjson.TxRawResult, error) {
	if tx, ok := s.cache.Transaction(txid); ok {
		s.observe(keyspaceTransactions, true)
		return *tx, nil
	}
	s.observe(keyspaceTransactions, false)

	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return btcjson.TxRawResult{}, fmt.Errorf("parse txid %s: %w", txid, err)
	}
	if err := s.wait(ctx); err != nil {
		return btcjson.TxRawResult{}, err
	}
	tx, err := s.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return btcjson.TxRawResult{}, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	if tx == nil {
		return btcjson.TxRawResult{}, fmt.Errorf("get raw transaction %s: empty result", txid)
	}

	s.cache.PutTransaction(txid, tx)
	return *tx, nil
}

// Evict drops the cached block at height and the cached transactions with txids.
func (s *DataSource) Evict(height uint64, txids ...string) {
	s.cache.RemoveBlock(height)
	for _, txid := range txids {
		s.cache.RemoveTransaction(txid)
	}
}

func (s *DataSource) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.limiter.Take()
	return ctx.Err()
}

func (s *DataSource) observe(keyspace string, hit bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveLookup(keyspace, hit)
}
