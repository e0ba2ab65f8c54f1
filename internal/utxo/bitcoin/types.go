package bitcoin

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCClient is the subset of the node RPC used by the data source.
	RPCClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
	// ResultCache memoizes node results between calls.
	ResultCache interface {
		PutBlock(height uint64, block *btcjson.GetBlockVerboseTxResult)
		Block(height uint64) (*btcjson.GetBlockVerboseTxResult, bool)
		PutTransaction(txid string, tx *btcjson.TxRawResult)
		Transaction(txid string) (*btcjson.TxRawResult, bool)
		RemoveBlock(height uint64)
		RemoveTransaction(txid string)
		UpdateHeight(height uint64)
		IsHeightStale() bool
		Height() uint64
	}
	// CacheMetrics records cache lookups by key space.
	CacheMetrics interface {
		ObserveLookup(keyspace string, hit bool)
	}
	// ScriptDecoder extracts addresses from an output script.
	ScriptDecoder interface {
		DecodeAddresses(vout btcjson.Vout) ([]string, error)
	}
)
