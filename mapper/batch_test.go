package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/types"
)

func TestConvertBatch(t *testing.T) {
	m := newTestMapper()
	f := fixtures(t)

	records := []*types.Record{
		{Transaction: f["transfer"]},
		{Transaction: header(signerKey, 0x4999)},
		{Transaction: f["hash lock"]},
	}

	results := m.ConvertBatch(context.Background(), records, testScope(), 2)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}

	assert.NoError(t, results[0].Err)
	assert.Equal(t, canonical.KindTransfer, results[0].Transaction.Kind)

	assert.ErrorIs(t, results[1].Err, ErrUnsupportedTransactionKind)
	assert.Nil(t, results[1].Transaction)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, canonical.KindHashLock, results[2].Transaction.Kind)
}

func TestConvertBatchCanceled(t *testing.T) {
	m := newTestMapper()
	f := fixtures(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := m.ConvertBatch(ctx, []*types.Record{{Transaction: f["transfer"]}, {Transaction: f["hash lock"]}}, testScope(), 0)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Transaction)
	}
}
