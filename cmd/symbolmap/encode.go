package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/fee"
	"github.com/symbol-commons/symbolmap/mapper"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
)

func NewEncodeCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <file>",
		Short: "Build unsigned wire transactions from canonical records",
		Long: `Reads one canonical record or an array of them and prints the unsigned
wire transactions a signer expects, with the serialized size of each.

A record without a deadline gets the network default deadline from now; a
record without a fee gets multiplier x size, where the multiplier is either
--fee-multiplier or the --fee-speed preset of the node at --endpoint.

Examples:
  symbolmap encode transfer.json --network testnet --signer-public-key <hex>
  symbolmap encode transfer.json --endpoint $NODE --fee-speed fast
`,
		Args: cobra.ExactArgs(1),
		RunE: encodeRunE(logger),
	}

	addNetworkFlags(cmd)
	cmd.Flags().String("signer-public-key", "", "Signer public key used when a record has none")
	cmd.Flags().Uint64("fee-multiplier", 0, "Fee multiplier used when a record has no fee")
	cmd.Flags().String("fee-speed", "", "Fee preset (slow, average or fast) fetched from --endpoint, overrides --fee-multiplier")

	return cmd
}

func encodeRunE(logger *zap.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		txs, err := readCanonical(data)
		if err != nil {
			return err
		}

		params, client, err := loadNetwork(cmd, logger)
		if err != nil {
			return err
		}

		signer := mapper.Signer{
			PublicKey:     sflags.MustGetString(cmd, "signer-public-key"),
			Now:           time.Now(),
			FeeMultiplier: sflags.MustGetUint64(cmd, "fee-multiplier"),
		}
		if speed := sflags.MustGetString(cmd, "fee-speed"); speed != "" {
			if client == nil {
				return fmt.Errorf("--fee-speed requires --endpoint")
			}
			multipliers, err := client.GetFeeMultipliers(cmd.Context())
			if err != nil {
				return err
			}
			if signer.FeeMultiplier, err = fee.Presets(*multipliers).Multiplier(fee.Speed(speed)); err != nil {
				return err
			}
		}

		m := mapper.NewMapper(logger)
		out := make([]*types.Transaction, len(txs))
		for i, tx := range txs {
			wire, err := m.ToWire(tx, params, signer)
			if err != nil {
				return fmt.Errorf("encoding record %d: %w", i, err)
			}
			out[i] = wire
		}

		logger.Info("encoded transactions",
			zap.Int("tx_count", len(out)),
			zap.Uint64("fee_multiplier", signer.FeeMultiplier))

		return printJSON(out)
	}
}

func readCanonical(data []byte) ([]*canonical.Transaction, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var txs []*canonical.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			return nil, fmt.Errorf("parsing canonical records: %w", err)
		}
		return txs, nil
	}

	var tx canonical.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("parsing canonical record: %w", err)
	}
	return []*canonical.Transaction{&tx}, nil
}
