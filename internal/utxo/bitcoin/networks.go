package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

var networkParams = map[string]*chaincfg.Params{
	"mainnet":  &chaincfg.MainNetParams,
	"main":     &chaincfg.MainNetParams,
	"bitcoin":  &chaincfg.MainNetParams,
	"testnet":  &chaincfg.TestNet3Params,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
}

// ChainParams resolves the btcd parameters of network. Names are matched case-insensitively.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	params, ok := networkParams[strings.ToLower(string(network))]
	if !ok {
		return nil, fmt.Errorf("unsupported network %q", network)
	}
	return params, nil
}

// CoinChainParams resolves the btcd parameters of network for coin. Only BTC carries a params table.
func CoinChainParams(coin model.Coin, network model.Network) (*chaincfg.Params, error) {
	if !strings.EqualFold(string(coin), string(model.BTC)) {
		return nil, fmt.Errorf("unsupported coin %q", coin)
	}
	return ChainParams(network)
}
