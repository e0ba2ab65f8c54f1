package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
)

const (
	edgeSpent    = "spent"
	edgeReceived = "received"
)

const addressQuery = `
SELECT address
FROM utxo_addresses FINAL
WHERE coin = ? AND network = ? AND address = ?
LIMIT 1`

const addressEdgesQuery = `
SELECT
	direction,
	txid,
	io_index
FROM utxo_address_edges FINAL
WHERE coin = ? AND network = ? AND address = ?
ORDER BY direction ASC, txid ASC, io_index ASC`

// AddressByKey returns the address node. Its edge sets are left empty: edges are append-only
// rows and SaveAddresses only writes the edges of the given value. Use AddressEdges to read them.
func (r *Repository) AddressByKey(ctx context.Context, coin model.Coin, network model.Network, address string) (model.Address, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("address_by_key", coin, network, err, start)
	}()

	addr, err := r.queryAddress(ctx, coin, network, address)
	return addr, err
}

func (r *Repository) queryAddress(ctx context.Context, coin model.Coin, network model.Network, address string) (addr model.Address, err error) {
	rows, err := r.conn.Query(ctx, addressQuery, string(coin), string(network), address)
	if err != nil {
		return model.Address{}, fmt.Errorf("query address: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Address{}, fmt.Errorf("iterate address: %w", err)
		}
		return model.Address{}, model.ErrNotFound
	}
	var key string
	if err = rows.Scan(&key); err != nil {
		return model.Address{}, fmt.Errorf("scan address: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Address{}, fmt.Errorf("iterate address: %w", err)
	}
	return model.NewAddress(coin, network, key), nil
}

// AddressEdges returns the address node with every stored spent-from and received edge.
func (r *Repository) AddressEdges(ctx context.Context, coin model.Coin, network model.Network, address string) (model.Address, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("address_edges", coin, network, err, start)
	}()

	addr, err := r.queryAddress(ctx, coin, network, address)
	if err != nil {
		return model.Address{}, err
	}
	err = r.queryEdges(ctx, &addr)
	return addr, err
}

func (r *Repository) queryEdges(ctx context.Context, addr *model.Address) (err error) {
	rows, err := r.conn.Query(ctx, addressEdgesQuery, string(addr.Coin), string(addr.Network), addr.Address)
	if err != nil {
		return fmt.Errorf("query address edges: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var (
			direction string
			txid      string
			index     uint32
		)
		if err = rows.Scan(&direction, &txid, &index); err != nil {
			return fmt.Errorf("scan address edge: %w", err)
		}
		switch direction {
		case edgeSpent:
			addr.AddSpentFrom(model.InputRef{TxID: txid, Index: index})
		case edgeReceived:
			addr.AddReceived(model.OutputRef{TxID: txid, Index: index})
		default:
			return fmt.Errorf("unknown address edge direction %q", direction)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate address edges: %w", err)
	}
	return nil
}

// SaveAddresses stores address nodes and their edges. Stored edges are never removed.
func (r *Repository) SaveAddresses(ctx context.Context, addresses []model.Address) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_addresses", firstCoin(addresses), firstNetwork(addresses), err, start)
	}()

	if len(addresses) == 0 {
		return nil
	}

	version := r.version()
	if err = r.insertAddresses(ctx, addresses, version); err != nil {
		return err
	}
	return r.insertEdges(ctx, addresses, version)
}

func (r *Repository) insertAddresses(ctx context.Context, addresses []model.Address, version time.Time) error {
	const query = `
INSERT INTO utxo_addresses (
	coin,
	network,
	address,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare addresses batch: %w", err)
	}
	for _, addr := range addresses {
		if err = batch.Append(string(addr.Coin), string(addr.Network), addr.Address, version); err != nil {
			return fmt.Errorf("append address: %w", err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert addresses: %w", err)
	}
	return nil
}

func (r *Repository) insertEdges(ctx context.Context, addresses []model.Address, version time.Time) error {
	const query = `
INSERT INTO utxo_address_edges (
	coin,
	network,
	address,
	direction,
	txid,
	io_index,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare address edges batch: %w", err)
	}
	for _, addr := range addresses {
		for ref := range addr.SpentFrom {
			if err = batch.Append(string(addr.Coin), string(addr.Network), addr.Address, edgeSpent, ref.TxID, ref.Index, version); err != nil {
				return fmt.Errorf("append spent edge: %w", err)
			}
		}
		for ref := range addr.Received {
			if err = batch.Append(string(addr.Coin), string(addr.Network), addr.Address, edgeReceived, ref.TxID, ref.Index, version); err != nil {
				return fmt.Errorf("append received edge: %w", err)
			}
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert address edges: %w", err)
	}
	return nil
}
