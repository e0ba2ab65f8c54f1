package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-graph/pkg/safe"
)

// TransactionMapper rebuilds transaction entities from raw node results.
type TransactionMapper struct {
	coin    model.Coin
	network model.Network
	decoder ScriptDecoder
}

// NewTransactionMapper constructs a mapper for a coin/network using decoder for output addresses.
func NewTransactionMapper(decoder ScriptDecoder, coin model.Coin, network model.Network) *TransactionMapper {
	return &TransactionMapper{
		coin:    coin,
		network: network,
		decoder: decoder,
	}
}

// Map converts a raw transaction of the block at blockHeight into a transaction entity.
// The owning-block edge is left unset.
func (m *TransactionMapper) Map(raw btcjson.TxRawResult, blockHeight uint64, blockTime time.Time) (model.Transaction, error) {
	if raw.Txid == "" {
		return model.Transaction{}, fmt.Errorf("raw transaction at height %d has no txid", blockHeight)
	}
	size, err := safe.Uint32(raw.Size)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s size overflow: %w", raw.Txid, err)
	}
	vsize, err := safe.Uint32(raw.Vsize)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s vsize overflow: %w", raw.Txid, err)
	}
	version, err := safe.Uint32(raw.Version)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s version overflow: %w", raw.Txid, err)
	}

	inputs, err := mapInputs(raw)
	if err != nil {
		return model.Transaction{}, err
	}
	outputs, err := m.mapOutputs(raw)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		Coin:        m.coin,
		Network:     m.network,
		TxID:        raw.Txid,
		BlockHeight: blockHeight,
		Timestamp:   blockTime,
		Size:        size,
		VSize:       vsize,
		Version:     version,
		LockTime:    raw.LockTime,
		Inputs:      inputs,
		Outputs:     outputs,
	}, nil
}

// mapInputs keeps the funding reference of every non-coinbase input unresolved; the relations
// stage links it to the funding output.
func mapInputs(raw btcjson.TxRawResult) ([]model.TransactionInput, error) {
	inputs := make([]model.TransactionInput, 0, len(raw.Vin))
	for idx, vin := range raw.Vin {
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s input index overflow: %w", raw.Txid, err)
		}
		input := model.TransactionInput{
			TxID:       raw.Txid,
			Index:      index,
			Sequence:   vin.Sequence,
			IsCoinbase: vin.IsCoinBase(),
		}
		if !input.IsCoinbase {
			input.PrevTxID = vin.Txid
			input.PrevVout = vin.Vout
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (m *TransactionMapper) mapOutputs(raw btcjson.TxRawResult) ([]model.TransactionOutput, error) {
	outputs := make([]model.TransactionOutput, 0, len(raw.Vout))
	for idx, vout := range raw.Vout {
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", raw.Txid, err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value: %w", raw.Txid, idx, err)
		}
		owners, err := m.decoder.DecodeAddresses(vout)
		if err != nil {
			return nil, fmt.Errorf("decode owners of tx %s output %d: %w", raw.Txid, idx, err)
		}
		outputs = append(outputs, model.TransactionOutput{
			TxID:       raw.Txid,
			Index:      index,
			Value:      value,
			ScriptType: vout.ScriptPubKey.Type,
			Addresses:  owners,
		})
	}
	return outputs, nil
}
