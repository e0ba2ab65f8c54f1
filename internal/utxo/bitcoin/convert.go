// Package bitcoin implements Bitcoin-specific chain logic.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-graph/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// GenesisTransactionID returns the coinbase txid of the genesis block of coin on network.
// Nodes do not serve it through getrawtransaction, so it is never imported.
func GenesisTransactionID(coin model.Coin, network model.Network) (string, error) {
	params, err := CoinChainParams(coin, network)
	if err != nil {
		return "", err
	}
	if params.GenesisBlock == nil || len(params.GenesisBlock.Transactions) == 0 {
		return "", fmt.Errorf("%s/%s has no genesis transaction", coin, network)
	}
	return params.GenesisBlock.Transactions[0].TxHash().String(), nil
}
