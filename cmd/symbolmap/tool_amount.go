package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/streamingfast/cli/sflags"
	"github.com/symbol-commons/symbolmap/utils"
)

func NewToolAmountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool-amount <value>",
		Short: "Convert an amount between relative and absolute units",
		Long: `Converts an amount between its relative form (as displayed, e.g. 1.5) and
its absolute form (smallest unit, e.g. 1500000 with divisibility 6).

Examples:
  symbolmap tool-amount 1.5 --divisibility 6
  symbolmap tool-amount 1500000 --divisibility 6 --absolute
`,
		Args: cobra.ExactArgs(1),
		RunE: runToolAmount,
	}

	cmd.Flags().Int("divisibility", 6, "Mosaic divisibility")
	cmd.Flags().Bool("absolute", false, "Input is an absolute amount, print it as relative")

	return cmd
}

func runToolAmount(cmd *cobra.Command, args []string) error {
	divisibility := sflags.MustGetInt(cmd, "divisibility")
	if divisibility < 0 || divisibility > utils.MaxDivisibility {
		return fmt.Errorf("%w: %d", utils.ErrInvalidDivisibility, divisibility)
	}

	if sflags.MustGetBool(cmd, "absolute") {
		absolute, err := utils.ParseUint64(args[0])
		if err != nil {
			return err
		}
		relative, err := utils.ToRelative(absolute, uint8(divisibility))
		if err != nil {
			return err
		}
		fmt.Println(relative.StringFixed(int32(divisibility)))
		return nil
	}

	relative, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", utils.ErrInvalidAmount, args[0])
	}
	absolute, err := utils.ToAbsolute(relative, uint8(divisibility))
	if err != nil {
		return err
	}
	fmt.Println(utils.FormatUint64(absolute))
	return nil
}
