// Package chain defines interfaces and structs shared between UTXO pipeline components.
package chain

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
)

// BlockData wraps a verbose block (with transactions) fetched from a node.
type BlockData struct {
	Height uint64
	Raw    *btcjson.GetBlockVerboseTxResult
}

// Timestamp returns the block time.
func (d *BlockData) Timestamp() time.Time {
	if d == nil || d.Raw == nil {
		return time.Time{}
	}
	return time.Unix(d.Raw.Time, 0).UTC()
}

// RawTransaction returns the raw transaction with txid contained in the block.
func (d *BlockData) RawTransaction(txid string) (btcjson.TxRawResult, bool) {
	if d == nil || d.Raw == nil {
		return btcjson.TxRawResult{}, false
	}
	for _, tx := range d.Raw.Tx {
		if tx.Txid == txid {
			return tx, true
		}
	}
	return btcjson.TxRawResult{}, false
}
