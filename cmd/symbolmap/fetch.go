package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/streamingfast/logging"
	"github.com/symbol-commons/symbolmap/mapper"
	"github.com/symbol-commons/symbolmap/rpc"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
)

func NewFetchCmd(logger *zap.Logger, tracer logging.Tracer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions [hash-or-id]",
		Short: "Fetch transactions from a node and print them as canonical records",
		Long: `Fetches transactions from a node REST endpoint, resolves the namespace
aliases and mosaics they reference against the same node and prints the
canonical records.

Without argument, one page of transactions is fetched, optionally filtered
by --address. With a hash or id, that single transaction is fetched.

Examples:
  symbolmap fetch transactions --endpoint $NODE --address TBIL6D6RURP45YQRWV6Q7YVWIIPLQGLZQFHWFEQ
  symbolmap fetch transactions 5E8C27A4B5B3D1A0F6E29A1D7B5A1A7E6A2B0D1F9A34C61B6AE07C3E1BB0D2F1 --endpoint $NODE
`,
		Args: cobra.MaximumNArgs(1),
		RunE: fetchRunE(logger, tracer),
	}

	addNetworkFlags(cmd)
	cmd.Flags().String("address", "", "Only fetch transactions of this address")
	cmd.Flags().String("account", "", "Address aggregate net amounts are computed for, defaults to --address")
	cmd.Flags().String("group", rpc.GroupConfirmed, "Transaction group: confirmed, unconfirmed or partial")
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 10, "Page size")
	cmd.Flags().Int("concurrency", 0, "Number of records converted concurrently (0 = number of CPUs)")

	return cmd
}

func fetchRunE(logger *zap.Logger, tracer logging.Tracer) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		params, client, err := loadNetwork(cmd, logger)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("--endpoint must be provided")
		}

		addr := sflags.MustGetString(cmd, "address")
		account := sflags.MustGetString(cmd, "account")
		if account == "" {
			account = addr
		}
		group := sflags.MustGetString(cmd, "group")

		scope := mapper.Scope{Network: params, Account: account}
		fetcher := rpc.NewFetcher(client, sflags.MustGetInt(cmd, "concurrency"), logger)

		var results []mapper.Result
		if len(args) == 1 {
			result, err := fetcher.FetchTransaction(cmd.Context(), group, args[0], scope)
			if err != nil {
				return err
			}
			results = []mapper.Result{result}
		} else {
			results, err = fetcher.FetchPage(cmd.Context(), types.TransactionQuery{
				Address:    addr,
				Group:      group,
				PageNumber: sflags.MustGetInt(cmd, "page"),
				PageSize:   sflags.MustGetInt(cmd, "page-size"),
			}, scope)
			if err != nil {
				return err
			}
		}

		out := make([]decodeResult, len(results))
		for i, r := range results {
			out[i] = decodeResult{Index: r.Index, Transaction: r.Transaction}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
			if tracer.Enabled() && r.Transaction != nil {
				logger.Debug("converted transaction",
					zap.Int("index", r.Index),
					zap.Stringer("kind", r.Transaction.Kind),
					zap.String("hash", r.Transaction.Hash))
			}
		}
		return printJSON(out)
	}
}
