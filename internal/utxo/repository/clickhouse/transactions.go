package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

const transactionQuery = `
SELECT
	block_height,
	owning_height,
	timestamp,
	size,
	vsize,
	version,
	locktime
FROM utxo_transactions FINAL
WHERE coin = ? AND network = ? AND txid = ?
LIMIT 1`

const transactionInputsQuery = `
SELECT
	input_index,
	prev_txid,
	prev_vout,
	sequence,
	is_coinbase,
	funding_txid,
	funding_index
FROM utxo_transaction_inputs FINAL
WHERE coin = ? AND network = ? AND txid = ?
ORDER BY input_index ASC`

const transactionOutputsQuery = `
SELECT
	output_index,
	value,
	script_type,
	addresses
FROM utxo_transaction_outputs FINAL
WHERE coin = ? AND network = ? AND txid = ?
ORDER BY output_index ASC`

// TransactionByID returns the transaction with its inputs and outputs.
func (r *Repository) TransactionByID(ctx context.Context, coin model.Coin, network model.Network, txid string) (model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transaction_by_id", coin, network, err, start)
	}()

	tx, err := r.queryTransaction(ctx, coin, network, txid)
	if err != nil {
		return model.Transaction{}, err
	}
	if tx.Inputs, err = r.queryInputs(ctx, coin, network, txid); err != nil {
		return model.Transaction{}, err
	}
	if tx.Outputs, err = r.queryOutputs(ctx, coin, network, txid); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

func (r *Repository) queryTransaction(ctx context.Context, coin model.Coin, network model.Network, txid string) (tx model.Transaction, err error) {
	rows, err := r.conn.Query(ctx, transactionQuery, string(coin), string(network), txid)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("query transaction: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Transaction{}, fmt.Errorf("iterate transaction: %w", err)
		}
		return model.Transaction{}, model.ErrNotFound
	}
	if err = rows.Scan(
		&tx.BlockHeight,
		&tx.OwningHeight,
		&tx.Timestamp,
		&tx.Size,
		&tx.VSize,
		&tx.Version,
		&tx.LockTime,
	); err != nil {
		return model.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Transaction{}, fmt.Errorf("iterate transaction: %w", err)
	}

	tx.Coin = coin
	tx.Network = network
	tx.TxID = txid
	return tx, nil
}

func (r *Repository) queryInputs(ctx context.Context, coin model.Coin, network model.Network, txid string) (inputs []model.TransactionInput, err error) {
	rows, err := r.conn.Query(ctx, transactionInputsQuery, string(coin), string(network), txid)
	if err != nil {
		return nil, fmt.Errorf("query transaction inputs: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var (
			input        model.TransactionInput
			fundingTxID  *string
			fundingIndex *uint32
		)
		if err = rows.Scan(
			&input.Index,
			&input.PrevTxID,
			&input.PrevVout,
			&input.Sequence,
			&input.IsCoinbase,
			&fundingTxID,
			&fundingIndex,
		); err != nil {
			return nil, fmt.Errorf("scan transaction input: %w", err)
		}
		input.TxID = txid
		if fundingTxID != nil && fundingIndex != nil {
			input.Funding = &model.OutputRef{TxID: *fundingTxID, Index: *fundingIndex}
		}
		inputs = append(inputs, input)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction inputs: %w", err)
	}
	return inputs, nil
}

func (r *Repository) queryOutputs(ctx context.Context, coin model.Coin, network model.Network, txid string) (outputs []model.TransactionOutput, err error) {
	rows, err := r.conn.Query(ctx, transactionOutputsQuery, string(coin), string(network), txid)
	if err != nil {
		return nil, fmt.Errorf("query transaction outputs: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var output model.TransactionOutput
		if err = rows.Scan(
			&output.Index,
			&output.Value,
			&output.ScriptType,
			&output.Addresses,
		); err != nil {
			return nil, fmt.Errorf("scan transaction output: %w", err)
		}
		output.TxID = txid
		outputs = append(outputs, output)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction outputs: %w", err)
	}
	return outputs, nil
}

// SaveTransactions stores transactions with their inputs and outputs.
func (r *Repository) SaveTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_transactions", firstCoin(txs), firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	version := r.version()
	if err = r.insertTransactions(ctx, txs, version); err != nil {
		return err
	}
	if err = r.insertInputs(ctx, txs, version); err != nil {
		return err
	}
	return r.insertOutputs(ctx, txs, version)
}

func (r *Repository) insertTransactions(ctx context.Context, txs []model.Transaction, version time.Time) error {
	const query = `
INSERT INTO utxo_transactions (
	coin,
	network,
	txid,
	block_height,
	owning_height,
	timestamp,
	size,
	vsize,
	version,
	locktime,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}
	for _, tx := range txs {
		if err = batch.Append(
			string(tx.Coin),
			string(tx.Network),
			tx.TxID,
			tx.BlockHeight,
			tx.OwningHeight,
			tx.Timestamp,
			tx.Size,
			tx.VSize,
			tx.Version,
			tx.LockTime,
			version,
		); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (r *Repository) insertInputs(ctx context.Context, txs []model.Transaction, version time.Time) error {
	const query = `
INSERT INTO utxo_transaction_inputs (
	coin,
	network,
	txid,
	input_index,
	prev_txid,
	prev_vout,
	sequence,
	is_coinbase,
	funding_txid,
	funding_index,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction inputs batch: %w", err)
	}
	for _, tx := range txs {
		for _, input := range tx.Inputs {
			var (
				fundingTxID  *string
				fundingIndex *uint32
			)
			if input.Funding != nil {
				fundingTxID = &input.Funding.TxID
				fundingIndex = &input.Funding.Index
			}
			if err = batch.Append(
				string(tx.Coin),
				string(tx.Network),
				tx.TxID,
				input.Index,
				input.PrevTxID,
				input.PrevVout,
				input.Sequence,
				input.IsCoinbase,
				fundingTxID,
				fundingIndex,
				version,
			); err != nil {
				return fmt.Errorf("append transaction input: %w", err)
			}
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction inputs: %w", err)
	}
	return nil
}

func (r *Repository) insertOutputs(ctx context.Context, txs []model.Transaction, version time.Time) error {
	const query = `
INSERT INTO utxo_transaction_outputs (
	coin,
	network,
	txid,
	output_index,
	value,
	script_type,
	addresses,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction outputs batch: %w", err)
	}
	for _, tx := range txs {
		for _, output := range tx.Outputs {
			addresses := output.Addresses
			if addresses == nil {
				addresses = []string{}
			}
			if err = batch.Append(
				string(tx.Coin),
				string(tx.Network),
				tx.TxID,
				output.Index,
				output.Value,
				output.ScriptType,
				addresses,
				version,
			); err != nil {
				return fmt.Errorf("append transaction output: %w", err)
			}
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction outputs: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction with its inputs and outputs.
func (r *Repository) DeleteTransaction(ctx context.Context, coin model.Coin, network model.Network, txid string) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_transaction", coin, network, err, start)
	}()

	for _, table := range []string{"utxo_transaction_inputs", "utxo_transaction_outputs", "utxo_transactions"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE coin = ? AND network = ? AND txid = ?", table)
		if err = r.conn.Exec(ctx, query, string(coin), string(network), txid); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}
