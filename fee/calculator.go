package fee

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/shopspring/decimal"
	"github.com/symbol-commons/symbolmap/network"
	"github.com/symbol-commons/symbolmap/types"
	"github.com/symbol-commons/symbolmap/utils"
)

var ErrNoFeeInput = errors.New("fee needs a max fee or a multiplier and a size")

// Speed selects a fee multiplier preset
type Speed string

const (
	Slow    Speed = "slow"
	Average Speed = "average"
	Fast    Speed = "fast"
)

// Input is either an explicit maximum fee or a multiplier and a serialized size
type Input struct {
	MaxFee     *uint64
	Multiplier uint64
	Size       uint64
}

// Absolute returns the fee in the smallest unit of the network currency
func (in Input) Absolute() (uint64, error) {
	if in.MaxFee != nil {
		return *in.MaxFee, nil
	}
	if in.Multiplier == 0 || in.Size == 0 {
		return 0, ErrNoFeeInput
	}
	hi, lo := bits.Mul64(in.Multiplier, in.Size)
	if hi != 0 {
		return 0, fmt.Errorf("%w: fee %d x %d overflows", utils.ErrInvalidAmount, in.Multiplier, in.Size)
	}
	return lo, nil
}

// Calculate returns the displayable fee in the network currency. For the
// multiplier path the value is advisory; the fee the network enforces is the
// max fee serialized in the transaction.
func Calculate(in Input, params network.Parameters) (decimal.Decimal, error) {
	abs, err := in.Absolute()
	if err != nil {
		return decimal.Zero, err
	}
	return utils.ToRelative(abs, params.Divisibility)
}

// Speeds are the multipliers offered for slow, average and fast inclusion
type Speeds struct {
	Slow    uint64 `json:"slow"`
	Average uint64 `json:"average"`
	Fast    uint64 `json:"fast"`
}

// Presets derives slow/average/fast multipliers from the node fee statistics.
// Every preset is at least the node minimum.
func Presets(m types.FeeMultipliers) Speeds {
	floor := func(v uint64) uint64 {
		if v < m.MinFeeMultiplier {
			return m.MinFeeMultiplier
		}
		return v
	}
	return Speeds{
		Slow:    floor(m.MedianFeeMultiplier / 2),
		Average: floor(m.MedianFeeMultiplier),
		Fast:    floor(m.AverageFeeMultiplier),
	}
}

// Multiplier returns the multiplier of a speed
func (s Speeds) Multiplier(speed Speed) (uint64, error) {
	switch speed {
	case Slow:
		return s.Slow, nil
	case Average, "":
		return s.Average, nil
	case Fast:
		return s.Fast, nil
	}
	return 0, fmt.Errorf("unknown fee speed %q", speed)
}

// ForTransaction computes the max fee to set on a wire transaction for the
// chosen speed. Aggregates that still expect cosignatures should be sized
// with placeholder cosignatures by the caller.
func ForTransaction(tx *types.Transaction, speed Speed, speeds Speeds) (uint64, error) {
	multiplier, err := speeds.Multiplier(speed)
	if err != nil {
		return 0, err
	}
	size, err := types.Size(tx)
	if err != nil {
		return 0, err
	}
	return Input{Multiplier: multiplier, Size: uint64(size)}.Absolute()
}
