package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/mapper"
	"go.uber.org/zap"
)

type decodeResult struct {
	Index       int                    `json:"index"`
	Transaction *canonical.Transaction `json:"transaction,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

func NewDecodeCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode wire transactions into canonical records",
		Long: `Reads wire transactions as returned by the node REST API (a single record,
an array of records or a transaction page) and prints the canonical records.

Records that cannot be converted are reported with their error; the other
records of the input are still converted. Use '-' to read from stdin.

Examples:
  symbolmap decode page.json --network testnet --context context.json
  curl -s $NODE/transactions/confirmed | symbolmap decode - --endpoint $NODE
`,
		Args: cobra.ExactArgs(1),
		RunE: decodeRunE(logger),
	}

	addNetworkFlags(cmd)
	addContextFlags(cmd)
	cmd.Flags().Bool("strict", false, "Exit with an error when any record fails to convert")

	return cmd
}

func decodeRunE(logger *zap.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		records, err := readRecords(data)
		if err != nil {
			return err
		}

		params, client, err := loadNetwork(cmd, logger)
		if err != nil {
			return err
		}
		resolved, err := loadContext(sflags.MustGetString(cmd, "context"))
		if err != nil {
			return err
		}
		if client != nil {
			if resolved, err = client.BuildContext(cmd.Context(), records, resolved); err != nil {
				return fmt.Errorf("building resolution context: %w", err)
			}
		}

		scope := mapper.Scope{
			Network: params,
			Context: resolved,
			Account: sflags.MustGetString(cmd, "account"),
		}
		results := mapper.NewMapper(logger).ConvertBatch(cmd.Context(), records, scope, sflags.MustGetInt(cmd, "concurrency"))

		out := make([]decodeResult, len(results))
		failed := 0
		for i, r := range results {
			out[i] = decodeResult{Index: r.Index, Transaction: r.Transaction}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
				failed++
			}
		}

		logger.Info("decoded transactions",
			zap.Int("tx_count", len(records)),
			zap.Int("failed", failed))

		if err := printJSON(out); err != nil {
			return err
		}
		if failed > 0 && sflags.MustGetBool(cmd, "strict") {
			return fmt.Errorf("%d of %d records failed to convert", failed, len(records))
		}
		return nil
	}
}
