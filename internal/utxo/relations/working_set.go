package relations

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

// workingSet is the identity map of one phase: entities are loaded once, mutated in place
// and written in one flush. It must be reset when the phase ends.
type workingSet struct {
	repo    GraphRepository
	coin    model.Coin
	network model.Network

	txs        map[string]model.Transaction
	addresses  map[string]*model.Address
	dirtyTxs   map[string]struct{}
	dirtyAddrs map[string]struct{}
}

func newWorkingSet(repo GraphRepository, coin model.Coin, network model.Network) *workingSet {
	ws := &workingSet{repo: repo, coin: coin, network: network}
	ws.reset()
	return ws
}

func (w *workingSet) transaction(ctx context.Context, txid string) (model.Transaction, error) {
	if tx, ok := w.txs[txid]; ok {
		return tx, nil
	}
	tx, err := w.repo.TransactionByID(ctx, w.coin, w.network, txid)
	if err != nil {
		return model.Transaction{}, err
	}
	w.txs[txid] = tx
	return tx, nil
}

func (w *workingSet) updateTransaction(tx model.Transaction) {
	w.txs[tx.TxID] = tx
	w.dirtyTxs[tx.TxID] = struct{}{}
}

// address returns the tracked address node, creating it when the store has none.
func (w *workingSet) address(ctx context.Context, key string) (*model.Address, error) {
	if addr, ok := w.addresses[key]; ok {
		return addr, nil
	}
	addr, err := w.repo.AddressByKey(ctx, w.coin, w.network, key)
	switch {
	case errors.Is(err, model.ErrNotFound):
		addr = model.NewAddress(w.coin, w.network, key)
	case err != nil:
		return nil, fmt.Errorf("load address %s: %w", key, err)
	}
	w.addresses[key] = &addr
	return &addr, nil
}

func (w *workingSet) touchAddress(addr *model.Address) {
	w.dirtyAddrs[addr.Address] = struct{}{}
}

// flush writes every dirty entity, transactions first.
func (w *workingSet) flush(ctx context.Context) error {
	if len(w.dirtyTxs) > 0 {
		txs := make([]model.Transaction, 0, len(w.dirtyTxs))
		for _, txid := range sortedKeys(w.dirtyTxs) {
			txs = append(txs, w.txs[txid])
		}
		if err := w.repo.SaveTransactions(ctx, txs); err != nil {
			return fmt.Errorf("save transactions: %w", err)
		}
	}
	if len(w.dirtyAddrs) > 0 {
		addrs := make([]model.Address, 0, len(w.dirtyAddrs))
		for _, key := range sortedKeys(w.dirtyAddrs) {
			addrs = append(addrs, *w.addresses[key])
		}
		if err := w.repo.SaveAddresses(ctx, addrs); err != nil {
			return fmt.Errorf("save addresses: %w", err)
		}
	}
	w.dirtyTxs = make(map[string]struct{})
	w.dirtyAddrs = make(map[string]struct{})
	return nil
}

func (w *workingSet) reset() {
	w.txs = make(map[string]model.Transaction)
	w.addresses = make(map[string]*model.Address)
	w.dirtyTxs = make(map[string]struct{})
	w.dirtyAddrs = make(map[string]struct{})
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
