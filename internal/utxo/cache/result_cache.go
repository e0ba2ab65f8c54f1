// Package cache memoizes results of remote node lookups.
package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/btcsuite/btcd/btcjson"
)

// DefaultStaleAfter matches the expected block production cadence.
const DefaultStaleAfter = 10 * time.Minute

// ResultCache keeps block and transaction RPC results until they are removed and
// gates the chain height behind a staleness interval.
//
// The three key spaces are guarded independently; a reader may see a fresh height
// while the block it implies is not cached yet.
type ResultCache struct {
	clock      clock.Clock
	staleAfter time.Duration

	blocks *keyspace[uint64, *btcjson.GetBlockVerboseTxResult]
	txs    *keyspace[string, *btcjson.TxRawResult]

	heightMu      sync.RWMutex
	height        uint64
	heightUpdated time.Time
}

// New builds a ResultCache. A nil clock uses wall time, a non-positive interval uses DefaultStaleAfter.
func New(staleAfter time.Duration, clk clock.Clock) *ResultCache {
	if clk == nil {
		clk = clock.New()
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &ResultCache{
		clock:      clk,
		staleAfter: staleAfter,
		blocks:     newKeyspace[uint64, *btcjson.GetBlockVerboseTxResult](),
		txs:        newKeyspace[string, *btcjson.TxRawResult](),
	}
}

// PutBlock stores the block result for height.
func (c *ResultCache) PutBlock(height uint64, block *btcjson.GetBlockVerboseTxResult) {
	c.blocks.put(height, block)
}

// Block returns the cached block result for height.
func (c *ResultCache) Block(height uint64) (*btcjson.GetBlockVerboseTxResult, bool) {
	return c.blocks.get(height)
}

// RemoveBlock drops the cached block result for height.
func (c *ResultCache) RemoveBlock(height uint64) {
	c.blocks.remove(height)
}

// PutTransaction stores the raw transaction result for txid.
func (c *ResultCache) PutTransaction(txid string, tx *btcjson.TxRawResult) {
	c.txs.put(txid, tx)
}

// Transaction returns the cached raw transaction result for txid.
func (c *ResultCache) Transaction(txid string) (*btcjson.TxRawResult, bool) {
	return c.txs.get(txid)
}

// RemoveTransaction drops the cached raw transaction result for txid.
func (c *ResultCache) RemoveTransaction(txid string) {
	c.txs.remove(txid)
}

// UpdateHeight records the current chain height and the time of the update.
func (c *ResultCache) UpdateHeight(height uint64) {
	c.heightMu.Lock()
	defer c.heightMu.Unlock()
	c.height = height
	c.heightUpdated = c.clock.Now()
}

// IsHeightStale reports whether the height was never updated or is older than the staleness interval.
func (c *ResultCache) IsHeightStale() bool {
	c.heightMu.RLock()
	defer c.heightMu.RUnlock()
	if c.heightUpdated.IsZero() {
		return true
	}
	return c.clock.Since(c.heightUpdated) > c.staleAfter
}

// Height returns the cached chain height. Callers check IsHeightStale first.
func (c *ResultCache) Height() uint64 {
	c.heightMu.RLock()
	defer c.heightMu.RUnlock()
	return c.height
}

// Len returns the number of cached blocks and transactions.
func (c *ResultCache) Len() (blocks, txs int) {
	return c.blocks.len(), c.txs.len()
}

// Clear drops every cached entry and marks the height as never updated.
func (c *ResultCache) Clear() {
	c.blocks.mu.Lock()
	c.txs.mu.Lock()
	c.heightMu.Lock()
	defer func() {
		c.heightMu.Unlock()
		c.txs.mu.Unlock()
		c.blocks.mu.Unlock()
	}()

	c.blocks.resetLocked()
	c.txs.resetLocked()
	c.height = 0
	c.heightUpdated = time.Time{}
}
