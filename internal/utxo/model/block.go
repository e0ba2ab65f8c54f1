// Package model defines domain models for the UTXO graph.
package model

import (
	"slices"
	"time"
)

// BlockStatus describes the lifecycle state of a block record.
type BlockStatus string

var (
	// BlockNew marks a placeholder inserted for a height seen on the chain tip.
	BlockNew BlockStatus = "new"
	// BlockUnprocessed marks a block whose header is stored but whose transactions are not.
	BlockUnprocessed BlockStatus = "unprocessed"
	// BlockTransactionsImported marks a block whose transactions are stored but not linked.
	BlockTransactionsImported BlockStatus = "transactions_imported"
	// BlockImported marks a block whose relationships are fully built.
	BlockImported BlockStatus = "imported"
)

// Block represents a blockchain block node and its chain/containment edges.
type Block struct {
	Coin         Coin
	Network      Network
	Height       uint64
	Hash         string
	PreviousHash string
	Timestamp    time.Time
	// TxIDs lists the transactions the block references, in block order.
	TxIDs []string
	// Transactions holds the transactions attached to the block by the relations stage.
	Transactions []string
	// PreviousHeight and NextHeight are the chain edges; nil when unset.
	PreviousHeight *uint64
	NextHeight     *uint64
	Status         BlockStatus
}

// AttachTransaction adds txid to the block's transaction collection once.
func (b *Block) AttachTransaction(txid string) bool {
	if slices.Contains(b.Transactions, txid) {
		return false
	}
	b.Transactions = append(b.Transactions, txid)
	return true
}

// LinkPrevious sets the chain edges between prev and b on both sides.
func (b *Block) LinkPrevious(prev *Block) {
	prevHeight, height := prev.Height, b.Height
	b.PreviousHeight = &prevHeight
	prev.NextHeight = &height
}
