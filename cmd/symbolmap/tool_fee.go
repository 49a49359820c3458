package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/symbol-commons/symbolmap/fee"
	"github.com/symbol-commons/symbolmap/network"
	"github.com/symbol-commons/symbolmap/rpc"
	"go.uber.org/zap"
)

func NewToolFeeCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool-fee",
		Short: "Compute a transaction fee in the network currency",
		Long: `Computes the fee of a transaction, either from an explicit max fee or from
a fee multiplier and the serialized size. With --endpoint, the node fee
statistics are fetched and the slow/average/fast presets are displayed.

Examples:
  symbolmap tool-fee --max-fee 20000
  symbolmap tool-fee --multiplier 100 --size 176
  symbolmap tool-fee --endpoint $NODE --size 176
`,
		RunE: toolFeeRunE(logger),
	}

	cmd.Flags().String("network", "mainnet", "Network profile name")
	cmd.Flags().String("endpoint", "", "Node REST endpoint to fetch fee multipliers from")
	cmd.Flags().Uint64("max-fee", 0, "Explicit max fee in absolute units")
	cmd.Flags().Uint64("multiplier", 0, "Fee multiplier")
	cmd.Flags().Uint64("size", 0, "Serialized transaction size in bytes")

	return cmd
}

func toolFeeRunE(logger *zap.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		params, ok := network.Builtin(sflags.MustGetString(cmd, "network"))
		if !ok {
			return fmt.Errorf("unknown network %q", sflags.MustGetString(cmd, "network"))
		}
		size := sflags.MustGetUint64(cmd, "size")

		if endpoint := sflags.MustGetString(cmd, "endpoint"); endpoint != "" {
			client, err := rpc.NewClient(endpoint, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			multipliers, err := client.GetFeeMultipliers(ctx)
			if err != nil {
				return err
			}
			speeds := fee.Presets(*multipliers)

			fmt.Printf("Fee multipliers from %s\n", endpoint)
			for _, speed := range []fee.Speed{fee.Slow, fee.Average, fee.Fast} {
				multiplier, _ := speeds.Multiplier(speed)
				line := fmt.Sprintf("  %-8s %d", speed, multiplier)
				if size > 0 {
					amount, err := fee.Calculate(fee.Input{Multiplier: multiplier, Size: size}, params)
					if err != nil {
						return err
					}
					line += fmt.Sprintf("  %s", amount.StringFixed(int32(params.Divisibility)))
				}
				fmt.Println(line)
			}
			return nil
		}

		in := fee.Input{
			Multiplier: sflags.MustGetUint64(cmd, "multiplier"),
			Size:       size,
		}
		if maxFee := sflags.MustGetUint64(cmd, "max-fee"); maxFee > 0 {
			in.MaxFee = &maxFee
		}

		amount, err := fee.Calculate(in, params)
		if err != nil {
			return err
		}
		fmt.Println(amount.StringFixed(int32(params.Divisibility)))
		return nil
	}
}
