package mapper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/network"
	"github.com/symbol-commons/symbolmap/types"
)

func TestAggregateNetAmount(t *testing.T) {
	m := newTestMapper()
	me := newAccount(t, signerKey)
	other := newAccount(t, otherKey)

	alias := embedded(signerKey, types.TypeMosaicAlias)
	alias.NamespaceID = tokenNS
	alias.MosaicID = tokenID
	alias.AliasAction = 1

	wire := header(signerKey, types.TypeAggregateComplete)
	wire.Transactions = []*types.Record{
		transferTo(otherKey, me.raw, "100000000"),
		transferTo(signerKey, other.raw, "40000000"),
		{Transaction: alias},
	}
	wire.Cosignatures = []types.Cosignature{
		{SignerPublicKey: cosignerKey},
		{SignerPublicKey: signerKey},
		{SignerPublicKey: cosignerKey},
	}

	scope := Scope{Network: network.TestNet, Account: me.address}
	tx, err := m.FromWire(&types.Record{Transaction: wire}, scope)
	require.NoError(t, err)

	agg := tx.Aggregate()
	require.NotNil(t, agg)
	assert.False(t, agg.Bonded)
	assert.Len(t, agg.InnerTransactions, 3)
	require.NotNil(t, agg.NetAmount)
	assert.True(t, agg.NetAmount.Equal(decimal.NewFromInt(60)), agg.NetAmount.String())
	assert.Equal(t, []string{signerKey, cosignerKey}, agg.CosignaturePublicKeys)

	inner := agg.InnerTransactions[0]
	assert.Nil(t, inner.Fee)
	assert.Nil(t, inner.Deadline)
	assert.Equal(t, other.address, inner.SignerAddress)
	assert.Equal(t, canonical.KindMosaicAlias, agg.InnerTransactions[2].Kind)

	// seen from the other side of both transfers
	scope.Account = other.address
	tx, err = m.FromWire(&types.Record{Transaction: wire}, scope)
	require.NoError(t, err)
	assert.True(t, tx.Aggregate().NetAmount.Equal(decimal.NewFromInt(-60)))

	scope.Account = ""
	tx, err = m.FromWire(&types.Record{Transaction: wire}, scope)
	require.NoError(t, err)
	assert.Nil(t, tx.Aggregate().NetAmount)
}

func TestAggregateBonded(t *testing.T) {
	m := newTestMapper()
	cosigner := newAccount(t, cosignerKey)

	wire := fixtures(t)["aggregate bonded"]
	wire.Cosignatures = []types.Cosignature{{SignerPublicKey: cosignerKey, Signature: "00"}}

	tx, err := m.FromWire(&types.Record{Transaction: wire}, testScope())
	require.NoError(t, err)

	agg := tx.Aggregate()
	require.NotNil(t, agg)
	assert.Equal(t, canonical.KindAggregateBonded, tx.Kind)
	assert.True(t, agg.Bonded)
	assert.Equal(t, []string{cosigner.address}, agg.ReceivedCosignatures)
	assert.Same(t, wire, agg.Signable)

	encoded, err := m.ToWire(tx, network.TestNet, Signer{})
	require.NoError(t, err)
	assert.Equal(t, types.TypeAggregateBonded, encoded.Type)
	assert.Empty(t, encoded.Cosignatures)
	payload, err := types.InnerPayloadSize(encoded.Transactions)
	require.NoError(t, err)
	assert.Equal(t, payload, encoded.PayloadSize)
}

func TestMalformedAggregate(t *testing.T) {
	m := newTestMapper()
	other := newAccount(t, otherKey)

	cases := map[string]func(tx *types.Transaction){
		"nil inner entry": func(tx *types.Transaction) {
			tx.Transactions = append(tx.Transactions, nil)
		},
		"no inner transactions": func(tx *types.Transaction) {
			tx.Transactions = nil
		},
		"declared size disagrees": func(tx *types.Transaction) {
			tx.PayloadSize = 8
		},
		"unsupported inner kind": func(tx *types.Transaction) {
			tx.Transactions = append(tx.Transactions, &types.Record{Transaction: embedded(signerKey, 0x4999)})
		},
		"invalid inner amount": func(tx *types.Transaction) {
			tx.Transactions = append(tx.Transactions, transferTo(signerKey, other.raw, "-1"))
		},
	}

	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			wire := fixtures(t)["aggregate complete"]
			corrupt(wire)

			tx, err := m.FromWire(&types.Record{Transaction: wire}, testScope())
			assert.ErrorIs(t, err, ErrMalformedAggregate)
			assert.Nil(t, tx)
		})
	}

	wire := fixtures(t)["aggregate complete"]
	wire.Transactions = append(wire.Transactions, &types.Record{Transaction: embedded(signerKey, 0x4999)})
	_, err := m.FromWire(&types.Record{Transaction: wire}, testScope())
	assert.ErrorIs(t, err, ErrUnsupportedTransactionKind)

	wire = fixtures(t)["aggregate complete"]
	size, err := types.InnerPayloadSize(wire.Transactions)
	require.NoError(t, err)
	wire.PayloadSize = size
	_, err = m.FromWire(&types.Record{Transaction: wire}, testScope())
	assert.NoError(t, err)
}

func TestAggregateDepth(t *testing.T) {
	m := newTestMapper()
	other := newAccount(t, otherKey)

	nest := func(levels int) *types.Transaction {
		inner := transferTo(signerKey, other.raw, "1")
		var tx *types.Transaction
		for i := 0; i < levels; i++ {
			tx = embedded(signerKey, types.TypeAggregateComplete)
			tx.Transactions = []*types.Record{inner}
			inner = &types.Record{Transaction: tx}
		}
		tx.MaxFee = "0"
		tx.Deadline = testDeadline
		return tx
	}

	tx, err := m.FromWire(&types.Record{Transaction: nest(MaxAggregateDepth)}, testScope())
	require.NoError(t, err)
	_, err = m.ToWire(tx, network.TestNet, Signer{})
	assert.NoError(t, err)

	_, err = m.FromWire(&types.Record{Transaction: nest(MaxAggregateDepth + 1)}, testScope())
	assert.ErrorIs(t, err, ErrMalformedAggregate)

	// the same bound applies when building the wire object
	deep := &canonical.Transaction{Kind: canonical.KindTransfer, SignerPublicKey: signerKey, Body: &canonical.Transfer{
		Recipient: canonical.AddressRef{Address: other.address},
		Mosaics:   []canonical.Mosaic{},
	}}
	for i := 0; i <= MaxAggregateDepth; i++ {
		deep = &canonical.Transaction{SignerPublicKey: signerKey, Body: &canonical.Aggregate{InnerTransactions: []*canonical.Transaction{deep}}}
	}
	deep.Deadline = tx.Deadline
	_, err = m.ToWire(deep, network.TestNet, Signer{})
	assert.ErrorIs(t, err, ErrMalformedAggregate)
}
