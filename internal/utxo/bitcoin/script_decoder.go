package bitcoin

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

// OwnerDecoder resolves the addresses owning an output.
type OwnerDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder builds an OwnerDecoder for network.
func NewScriptDecoder(network model.Network) (*OwnerDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &OwnerDecoder{params: params}, nil
}

// DecodeAddresses returns the owners of vout. Addresses decoded by the node win over parsing
// the script. Bare multisig is owned by every listed key; data carriers and nonstandard scripts
// have no owner and yield nil.
func (d *OwnerDecoder) DecodeAddresses(vout btcjson.Vout) ([]string, error) {
	spk := vout.ScriptPubKey
	switch {
	case len(spk.Addresses) > 0:
		return slices.Clone(spk.Addresses), nil
	case spk.Address != "":
		return []string{spk.Address}, nil
	case spk.Hex == "":
		return nil, nil
	}

	script, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return nil, fmt.Errorf("decode script hex: %w", err)
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return nil, fmt.Errorf("extract %s owners: %w", class, err)
	}
	if len(addrs) == 0 {
		return nil, nil
	}

	owners := make([]string, len(addrs))
	for i, addr := range addrs {
		owners[i] = addr.EncodeAddress()
	}
	return owners, nil
}
