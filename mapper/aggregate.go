package mapper

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/types"
)

// MaxAggregateDepth is the deepest aggregate nesting a conversion follows
const MaxAggregateDepth = 3

func (in *inbound) aggregate(tx *types.Transaction) (*canonical.Aggregate, error) {
	if in.depth >= MaxAggregateDepth {
		return nil, fmt.Errorf("%w: nested deeper than %d levels", ErrMalformedAggregate, MaxAggregateDepth)
	}
	if len(tx.Transactions) == 0 {
		return nil, fmt.Errorf("%w: no inner transactions", ErrMalformedAggregate)
	}

	if tx.PayloadSize != 0 {
		size, err := types.InnerPayloadSize(tx.Transactions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedAggregate, err)
		}
		if size != tx.PayloadSize {
			return nil, fmt.Errorf("%w: declared payload size %d, inner transactions take %d", ErrMalformedAggregate, tx.PayloadSize, size)
		}
	}

	child := &inbound{logger: in.logger, scope: in.scope, depth: in.depth + 1}
	inner := make([]*canonical.Transaction, 0, len(tx.Transactions))
	for i, rec := range tx.Transactions {
		converted, err := child.record(rec, true)
		if err != nil {
			return nil, fmt.Errorf("%w: inner transaction %d: %w", ErrMalformedAggregate, i, err)
		}
		inner = append(inner, converted)
	}

	agg := &canonical.Aggregate{
		Bonded:                tx.Type == types.TypeAggregateBonded,
		InnerTransactions:     inner,
		CosignaturePublicKeys: cosigners(tx),
		TransactionsHash:      strings.ToUpper(tx.TransactionsHash),
		NetAmount:             in.netAmount(inner),
	}

	if agg.Bonded {
		received, err := in.receivedCosignatures(tx.Cosignatures)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedAggregate, err)
		}
		agg.ReceivedCosignatures = received
		agg.Signable = tx
	}

	return agg, nil
}

// cosigners lists the aggregate signer first, then every cosigner once, in order
func cosigners(tx *types.Transaction) []string {
	seen := map[string]bool{}
	keys := make([]string, 0, 1+len(tx.Cosignatures))
	add := func(key string) {
		key = strings.ToUpper(key)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		keys = append(keys, key)
	}

	add(tx.SignerPublicKey)
	for _, c := range tx.Cosignatures {
		add(c.SignerPublicKey)
	}
	return keys
}

func (in *inbound) receivedCosignatures(cosignatures []types.Cosignature) ([]string, error) {
	var received []string
	seen := map[string]bool{}
	for _, c := range cosignatures {
		addr, err := address.FromPublicKey(c.SignerPublicKey, in.scope.Network.Type)
		if err != nil {
			return nil, fmt.Errorf("cosignature: %w", err)
		}
		if seen[addr] {
			continue
		}
		seen[addr] = true
		received = append(received, addr)
	}
	return received, nil
}

// netAmount sums the network currency the inner transfers move to (+) or
// from (-) the scope account. Transfers from the account to itself and
// other kinds count for zero; nested aggregates add their own net amount.
func (in *inbound) netAmount(inner []*canonical.Transaction) *decimal.Decimal {
	account := normalizeAddress(in.scope.Account)
	if account == "" {
		return nil
	}

	net := decimal.Zero
	for _, tx := range inner {
		switch body := tx.Body.(type) {
		case *canonical.Transfer:
			incoming := body.Recipient.Resolved() && normalizeAddress(body.Recipient.Address) == account
			outgoing := tx.SignerAddress == account
			if incoming == outgoing {
				continue
			}
			for _, mosaic := range body.Mosaics {
				if mosaic.Amount == nil || !in.scope.Network.IsCurrency(mosaic.MosaicRef) {
					continue
				}
				if incoming {
					net = net.Add(*mosaic.Amount)
				} else {
					net = net.Sub(*mosaic.Amount)
				}
			}
		case *canonical.Aggregate:
			if body.NetAmount != nil {
				net = net.Add(*body.NetAmount)
			}
		}
	}
	return &net
}

func (out *outbound) aggregate(b *canonical.Aggregate, tx *types.Transaction) error {
	if out.depth >= MaxAggregateDepth {
		return fmt.Errorf("%w: nested deeper than %d levels", ErrMalformedAggregate, MaxAggregateDepth)
	}
	if len(b.InnerTransactions) == 0 {
		return fmt.Errorf("%w: no inner transactions", ErrMalformedAggregate)
	}

	child := &outbound{logger: out.logger, params: out.params, signer: out.signer, depth: out.depth + 1}
	records := make([]*types.Record, 0, len(b.InnerTransactions))
	for i, inner := range b.InnerTransactions {
		wire, err := child.record(inner, true)
		if err != nil {
			return fmt.Errorf("%w: inner transaction %d: %w", ErrMalformedAggregate, i, err)
		}
		records = append(records, &types.Record{Transaction: wire})
	}

	size, err := types.InnerPayloadSize(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedAggregate, err)
	}

	// the signer recomputes the transactions hash and collects cosignatures
	tx.TransactionsHash = b.TransactionsHash
	tx.PayloadSize = size
	tx.Transactions = records
	return nil
}
