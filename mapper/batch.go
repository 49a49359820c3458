package mapper

import (
	"context"
	"runtime"

	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one record of a batch
type Result struct {
	Index       int
	Transaction *canonical.Transaction
	Err         error
}

// ConvertBatch converts records concurrently with the same scope. A failed
// record never stops the batch; results come back in input order. Once ctx
// is done no new record is started and the remaining ones report ctx.Err().
func (m *Mapper) ConvertBatch(ctx context.Context, records []*types.Record, scope Scope, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(records))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, rec := range records {
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			tx, err := m.FromWire(rec, scope)
			if err != nil {
				m.logger.Debug("failed to convert record", zap.Int("index", i), zap.Error(err))
			}
			results[i].Transaction = tx
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results
}
