// Package relations builds the graph edges of imported blocks: block containment, chain
// ordering and address participation.
package relations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	stageName = "relations"

	phaseAttach    = "attach_transactions"
	phaseLink      = "link_chain"
	phaseAddresses = "link_addresses"
	phasePersist   = "persist_block"
)

// Builder is the relations pipeline stage. It moves blocks from
// model.BlockTransactionsImported to model.BlockImported.
type Builder struct {
	repo        GraphRepository
	source      RepairSource
	mapper      TransactionMapper
	metrics     Metrics
	logger      *zap.Logger
	coin        model.Coin
	network     model.Network
	genesisTxID string
}

// NewBuilder constructs a Builder. genesisTxID is the placeholder transaction of the genesis
// block that is never attached.
func NewBuilder(
	repo GraphRepository,
	source RepairSource,
	mapper TransactionMapper,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	genesisTxID string,
	logger *zap.Logger,
) (*Builder, error) {
	if repo == nil {
		return nil, errors.New("relations repository is required")
	}
	if source == nil {
		return nil, errors.New("relations repair source is required")
	}
	if mapper == nil {
		return nil, errors.New("relations transaction mapper is required")
	}
	if metrics == nil {
		return nil, errors.New("relations metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		repo:        repo,
		source:      source,
		mapper:      mapper,
		metrics:     metrics,
		logger:      logger.Named(stageName),
		coin:        coin,
		network:     network,
		genesisTxID: genesisTxID,
	}, nil
}

// Name identifies the stage.
func (b *Builder) Name() string {
	return stageName
}

// SelectNext returns the lowest block whose transactions are imported but not yet linked.
func (b *Builder) SelectNext(ctx context.Context) (uint64, bool, error) {
	block, err := b.repo.FirstBlockByStatus(ctx, b.coin, b.network, model.BlockTransactionsImported)
	if errors.Is(err, model.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("select block: %w", err)
	}
	return block.Height, true, nil
}

// NextState is the status of a block once all its relations are built.
func (b *Builder) NextState() model.BlockStatus {
	return model.BlockImported
}

// Process builds every edge of the block at height. Each phase is persisted before the next
// one starts, so a failure keeps the work of earlier phases and a retry does not duplicate edges.
func (b *Builder) Process(ctx context.Context, height uint64) (model.Block, error) {
	var block model.Block

	err := b.phase(ctx, phaseAttach, func(ctx context.Context, ws *workingSet) error {
		var err error
		block, err = b.attachTransactions(ctx, ws, height)
		return err
	})
	if err != nil {
		return model.Block{}, err
	}

	err = b.phase(ctx, phaseLink, func(ctx context.Context, _ *workingSet) error {
		return b.linkPrevious(ctx, &block)
	})
	if err != nil {
		return model.Block{}, err
	}

	err = b.phase(ctx, phaseAddresses, func(ctx context.Context, ws *workingSet) error {
		return b.linkAddresses(ctx, ws, block)
	})
	if err != nil {
		return model.Block{}, err
	}

	err = b.phase(ctx, phasePersist, func(ctx context.Context, _ *workingSet) error {
		if err := b.repo.SaveBlock(ctx, block); err != nil {
			return fmt.Errorf("save block %d: %w", block.Height, err)
		}
		return nil
	})
	if err != nil {
		return model.Block{}, err
	}
	return block, nil
}

// phase runs fn against a fresh working set, flushes it when fn succeeds and resets it on every path.
func (b *Builder) phase(ctx context.Context, name string, fn func(context.Context, *workingSet) error) (err error) {
	started := time.Now()
	ws := newWorkingSet(b.repo, b.coin, b.network)
	defer func() {
		ws.reset()
		b.metrics.ObservePhase(name, err, started)
	}()

	if err = fn(ctx, ws); err != nil {
		return err
	}
	return ws.flush(ctx)
}

func (b *Builder) attachTransactions(ctx context.Context, ws *workingSet, height uint64) (model.Block, error) {
	block, err := b.repo.BlockByHeight(ctx, b.coin, b.network, height)
	if err != nil {
		return model.Block{}, fmt.Errorf("load block %d: %w", height, err)
	}

	for _, txid := range block.TxIDs {
		if txid == b.genesisTxID {
			continue
		}
		tx, err := ws.transaction(ctx, txid)
		if err != nil {
			return model.Block{}, fmt.Errorf("load transaction %s of block %d: %w", txid, height, err)
		}
		if tx.OwningHeight == nil || *tx.OwningHeight != height {
			owner := height
			tx.OwningHeight = &owner
			ws.updateTransaction(tx)
		}
		block.AttachTransaction(txid)
	}

	if err := ws.flush(ctx); err != nil {
		return model.Block{}, err
	}
	if err := b.repo.SaveBlock(ctx, block); err != nil {
		return model.Block{}, fmt.Errorf("save block %d: %w", height, err)
	}
	b.logger.Debug("transactions attached",
		zap.Uint64("height", height),
		zap.Int("transactions", len(block.Transactions)),
	)
	return block, nil
}

func (b *Builder) linkPrevious(ctx context.Context, block *model.Block) error {
	if block.PreviousHash == "" {
		return nil
	}
	prev, err := b.repo.BlockByHash(ctx, b.coin, b.network, block.PreviousHash)
	if errors.Is(err, model.ErrNotFound) {
		b.logger.Debug("previous block not stored",
			zap.Uint64("height", block.Height),
			zap.String("previous_hash", block.PreviousHash),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load previous block %s: %w", block.PreviousHash, err)
	}

	block.LinkPrevious(&prev)
	if err := b.repo.SaveBlock(ctx, prev); err != nil {
		return fmt.Errorf("save block %d: %w", prev.Height, err)
	}
	if err := b.repo.SaveBlock(ctx, *block); err != nil {
		return fmt.Errorf("save block %d: %w", block.Height, err)
	}
	return nil
}

func (b *Builder) linkAddresses(ctx context.Context, ws *workingSet, block model.Block) error {
	for _, txid := range block.Transactions {
		tx, err := ws.transaction(ctx, txid)
		if err != nil {
			return fmt.Errorf("load transaction %s of block %d: %w", txid, block.Height, err)
		}

		for i := range tx.Inputs {
			in := &tx.Inputs[i]
			if in.IsCoinbase {
				continue
			}
			if err := b.linkInput(ctx, ws, block.Height, in); err != nil {
				return err
			}
		}

		for _, out := range tx.Outputs {
			for _, key := range out.OwnerAddresses() {
				addr, err := ws.address(ctx, key)
				if err != nil {
					return err
				}
				addr.AddReceived(out.Ref())
				ws.touchAddress(addr)
			}
		}

		ws.updateTransaction(tx)
	}
	return nil
}

func (b *Builder) linkInput(ctx context.Context, ws *workingSet, height uint64, in *model.TransactionInput) error {
	funding, err := ws.transaction(ctx, in.PrevTxID)
	if errors.Is(err, model.ErrNotFound) {
		b.logger.Error("funding transaction not found",
			zap.Uint64("height", height),
			zap.String("txid", in.TxID),
			zap.String("funding_txid", in.PrevTxID),
		)
		return &MissingFundingTransactionError{TxID: in.PrevTxID}
	}
	if err != nil {
		return fmt.Errorf("load funding transaction %s: %w", in.PrevTxID, err)
	}

	out, ok := funding.Output(in.PrevVout)
	if !ok {
		b.logger.Error("funding output not found, repairing funding transaction",
			zap.Uint64("height", height),
			zap.String("txid", in.TxID),
			zap.String("funding_txid", in.PrevTxID),
			zap.Uint32("vout", in.PrevVout),
			zap.Int("outputs", len(funding.Outputs)),
		)
		return &MissingFundingOutputError{
			TxID:      in.PrevTxID,
			Index:     in.PrevVout,
			RepairErr: b.repair(ctx, funding),
		}
	}

	ref := out.Ref()
	in.Funding = &ref
	for _, key := range out.OwnerAddresses() {
		addr, err := ws.address(ctx, key)
		if err != nil {
			return err
		}
		addr.AddSpentFrom(in.Ref())
		ws.touchAddress(addr)
	}
	return nil
}

// repair rebuilds a stored transaction from the node and replaces it, keeping its owning block.
// The replacement is written directly to the store so it survives the failure of the current block.
func (b *Builder) repair(ctx context.Context, stored model.Transaction) (err error) {
	owner := stored.Owner()
	defer func() {
		b.source.Evict(owner, stored.TxID)
		b.metrics.ObserveSelfHeal(err)
	}()

	data, err := b.source.FetchBlockData(ctx, owner)
	if err != nil {
		return fmt.Errorf("fetch block %d: %w", owner, err)
	}
	raw, ok := data.RawTransaction(stored.TxID)
	if !ok {
		raw, err = b.source.FetchTransaction(ctx, stored.TxID)
		if err != nil {
			return fmt.Errorf("fetch transaction %s: %w", stored.TxID, err)
		}
	}

	rebuilt, err := b.mapper.Map(raw, owner, data.Timestamp())
	if err != nil {
		return fmt.Errorf("map transaction %s: %w", stored.TxID, err)
	}
	rebuilt.OwningHeight = &owner

	if err := b.repo.DeleteTransaction(ctx, b.coin, b.network, stored.TxID); err != nil {
		return fmt.Errorf("delete transaction %s: %w", stored.TxID, err)
	}
	if err := b.repo.SaveTransactions(ctx, []model.Transaction{rebuilt}); err != nil {
		return fmt.Errorf("save transaction %s: %w", stored.TxID, err)
	}

	b.logger.Info("funding transaction repaired",
		zap.String("txid", stored.TxID),
		zap.Uint64("owning_height", owner),
		zap.Int("outputs", len(rebuilt.Outputs)),
	)
	return nil
}
