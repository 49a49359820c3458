package rpc

import (
	"context"
	"fmt"

	"github.com/symbol-commons/symbolmap/mapper"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
)

// Fetcher fetches transactions from a node and converts them to canonical records
type Fetcher struct {
	client      *Client
	mapper      *mapper.Mapper
	concurrency int

	logger *zap.Logger
}

// NewFetcher creates a new fetcher
func NewFetcher(client *Client, concurrency int, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:      client,
		mapper:      mapper.NewMapper(logger),
		concurrency: concurrency,
		logger:      logger,
	}
}

// FetchPage fetches one page of transactions and converts every record.
// The resolution context of scope is completed with the aliases and mosaics
// the page references before converting.
func (f *Fetcher) FetchPage(ctx context.Context, q types.TransactionQuery, scope mapper.Scope) ([]mapper.Result, error) {
	page, err := f.client.GetTransactions(ctx, q)
	if err != nil {
		return nil, err
	}

	results, err := f.convert(ctx, page.Data, scope)
	if err != nil {
		return nil, err
	}

	f.logger.Info("fetched transactions",
		zap.String("address", q.Address),
		zap.Int("page_number", page.Pagination.PageNumber),
		zap.Int("tx_count", len(page.Data)))

	return results, nil
}

// FetchTransaction fetches and converts one transaction
func (f *Fetcher) FetchTransaction(ctx context.Context, group, hashOrID string, scope mapper.Scope) (mapper.Result, error) {
	rec, err := f.client.GetTransaction(ctx, group, hashOrID)
	if err != nil {
		return mapper.Result{}, err
	}

	results, err := f.convert(ctx, []*types.Record{rec}, scope)
	if err != nil {
		return mapper.Result{}, err
	}
	return results[0], nil
}

func (f *Fetcher) convert(ctx context.Context, records []*types.Record, scope mapper.Scope) ([]mapper.Result, error) {
	resolved, err := f.client.BuildContext(ctx, records, scope.Context)
	if err != nil {
		return nil, fmt.Errorf("building resolution context: %w", err)
	}
	scope.Context = resolved

	return f.mapper.ConvertBatch(ctx, records, scope, f.concurrency), nil
}
