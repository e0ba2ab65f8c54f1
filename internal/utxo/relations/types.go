package relations

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// GraphRepository reads graph nodes and persists their edges.
	// Lookups return model.ErrNotFound when the entity does not exist.
	GraphRepository interface {
		FirstBlockByStatus(ctx context.Context, coin model.Coin, network model.Network, status model.BlockStatus) (model.Block, error)
		BlockByHeight(ctx context.Context, coin model.Coin, network model.Network, height uint64) (model.Block, error)
		BlockByHash(ctx context.Context, coin model.Coin, network model.Network, hash string) (model.Block, error)
		SaveBlock(ctx context.Context, block model.Block) error
		TransactionByID(ctx context.Context, coin model.Coin, network model.Network, txid string) (model.Transaction, error)
		SaveTransactions(ctx context.Context, txs []model.Transaction) error
		DeleteTransaction(ctx context.Context, coin model.Coin, network model.Network, txid string) error
		AddressByKey(ctx context.Context, coin model.Coin, network model.Network, address string) (model.Address, error)
		SaveAddresses(ctx context.Context, addresses []model.Address) error
	}
	// RepairSource serves authoritative chain data for rebuilding a stored transaction.
	RepairSource interface {
		FetchBlockData(ctx context.Context, height uint64) (*chain.BlockData, error)
		FetchTransaction(ctx context.Context, txid string) (btcjson.TxRawResult, error)
		Evict(height uint64, txids ...string)
	}
	// TransactionMapper turns a raw node transaction into a transaction entity.
	TransactionMapper interface {
		Map(raw btcjson.TxRawResult, blockHeight uint64, blockTime time.Time) (model.Transaction, error)
	}
	// Metrics records relations stage activity.
	Metrics interface {
		ObservePhase(phase string, err error, started time.Time)
		ObserveSelfHeal(err error)
	}
)
