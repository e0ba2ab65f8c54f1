package model

import "time"

// OutputRef points at a single output of a transaction.
type OutputRef struct {
	TxID  string
	Index uint32
}

// InputRef points at a single input of a transaction.
type InputRef struct {
	TxID  string
	Index uint32
}

// Transaction represents a blockchain transaction node with its inputs and outputs.
type Transaction struct {
	Coin    Coin
	Network Network
	TxID    string
	// BlockHeight is the height recorded by the import stage.
	BlockHeight uint64
	// OwningHeight is the owning-block edge set by the relations stage.
	OwningHeight *uint64
	Timestamp    time.Time
	Size         uint32
	VSize        uint32
	Version      uint32
	LockTime     uint32
	Inputs       []TransactionInput
	Outputs      []TransactionOutput
}

// Owner returns the height of the block owning the transaction, preferring the linked edge.
func (t Transaction) Owner() uint64 {
	if t.OwningHeight != nil {
		return *t.OwningHeight
	}
	return t.BlockHeight
}

// Output returns the output at index, or false when the transaction has no such output.
func (t Transaction) Output(index uint32) (TransactionOutput, bool) {
	for _, out := range t.Outputs {
		if out.Index == index {
			return out, true
		}
	}
	return TransactionOutput{}, false
}

// TransactionInput describes a reference to a previous transaction output.
type TransactionInput struct {
	TxID       string
	Index      uint32
	PrevTxID   string
	PrevVout   uint32
	Sequence   uint32
	IsCoinbase bool
	// Funding is the resolved funding output; nil until resolved and always nil for coinbase inputs.
	Funding *OutputRef
}

// Ref returns the edge reference of the input.
func (in TransactionInput) Ref() InputRef {
	return InputRef{TxID: in.TxID, Index: in.Index}
}

// TransactionOutput represents an output produced by a transaction.
type TransactionOutput struct {
	TxID       string
	Index      uint32
	Value      uint64
	ScriptType string
	// Addresses may contain empty entries for scripts that do not decode to an address.
	Addresses []string
}

// Ref returns the edge reference of the output.
func (out TransactionOutput) Ref() OutputRef {
	return OutputRef{TxID: out.TxID, Index: out.Index}
}

// OwnerAddresses returns the non-empty owner addresses of the output.
func (out TransactionOutput) OwnerAddresses() []string {
	owners := make([]string, 0, len(out.Addresses))
	for _, addr := range out.Addresses {
		if addr == "" {
			continue
		}
		owners = append(owners, addr)
	}
	return owners
}
