package utils

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxDivisibility is the largest divisibility a mosaic can be defined with
const MaxDivisibility = 6

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDivisibility = errors.New("invalid divisibility")
)

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// ToRelative converts an absolute amount (smallest unit) to its relative decimal value
func ToRelative(amount uint64, divisibility uint8) (decimal.Decimal, error) {
	if divisibility > MaxDivisibility {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidDivisibility, divisibility)
	}

	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(divisibility)), nil
}

// ToAbsolute converts a relative decimal amount back to the smallest unit.
// It never rounds: sub-unit remainders, negative values and values above
// the uint64 range are rejected.
func ToAbsolute(relative decimal.Decimal, divisibility uint8) (uint64, error) {
	if divisibility > MaxDivisibility {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDivisibility, divisibility)
	}

	if relative.Sign() < 0 {
		return 0, fmt.Errorf("%w: negative value %s", ErrInvalidAmount, relative.String())
	}

	scaled := relative.Shift(int32(divisibility))
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, relative.String(), divisibility)
	}

	value := scaled.BigInt()
	if value.Cmp(maxUint64) > 0 {
		return 0, fmt.Errorf("%w: %s exceeds the 64-bit range", ErrInvalidAmount, relative.String())
	}

	return value.Uint64(), nil
}

// ParseRelative parses a user supplied relative amount and converts it to the smallest unit
func ParseRelative(s string, divisibility uint8) (uint64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "", "nan", "inf", "infinity":
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}

	return ToAbsolute(d, divisibility)
}

// ParseUint64 parses an unsigned 64-bit value as the node encodes it (decimal
// string). A missing value is an error; callers check optional fields first.
func ParseUint64(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: missing value", ErrInvalidAmount)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatUint64 formats an unsigned 64-bit value the way the node encodes it
func FormatUint64(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// NetworkTimeToTime converts milliseconds since the network epoch to Go time.Time.
// epochAdjustment is the network epoch expressed in Unix seconds.
func NetworkTimeToTime(networkMillis uint64, epochAdjustment int64) time.Time {
	return time.UnixMilli(int64(networkMillis) + epochAdjustment*1000).UTC()
}

// TimeToNetworkTime converts Go time.Time to milliseconds since the network epoch
func TimeToNetworkTime(t time.Time, epochAdjustment int64) uint64 {
	millis := t.UnixMilli() - epochAdjustment*1000
	if millis < 0 {
		return 0
	}
	return uint64(millis)
}
