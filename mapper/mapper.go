package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/fee"
	"github.com/symbol-commons/symbolmap/network"
	"github.com/symbol-commons/symbolmap/resolver"
	"github.com/symbol-commons/symbolmap/types"
	"github.com/symbol-commons/symbolmap/utils"
	"go.uber.org/zap"
)

// Scope is everything an inbound conversion may read besides the record itself
type Scope struct {
	Network network.Parameters
	Context *resolver.Context
	// Account is the base32 address aggregate net amounts are computed for.
	// Net amounts are left empty when it is not set.
	Account string
}

// Signer supplies the header values an outbound transaction needs when the
// canonical record does not carry them
type Signer struct {
	PublicKey string
	// Now is the creation time the default deadline is computed from
	Now time.Time
	// FeeMultiplier sets maxFee to multiplier x size when the record has no fee
	FeeMultiplier uint64
}

// Mapper converts node wire records to canonical transactions and back
type Mapper struct {
	logger *zap.Logger
}

// NewMapper creates a new mapper
func NewMapper(logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{
		logger: logger,
	}
}

// FromWire converts a node record to its canonical form. Unresolved aliases
// and unknown divisibilities do not fail the conversion; they surface as the
// Unresolved sentinel and a nil amount.
func (m *Mapper) FromWire(rec *types.Record, scope Scope) (*canonical.Transaction, error) {
	if err := scope.Network.Validate(); err != nil {
		return nil, err
	}

	in := &inbound{logger: m.logger, scope: scope}
	return in.record(rec, false)
}

// ToWire converts a canonical transaction to the unsigned wire object the
// signer expects. Nothing is returned unless every field converted.
func (m *Mapper) ToWire(tx *canonical.Transaction, params network.Parameters, signer Signer) (*types.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	out := &outbound{logger: m.logger, params: params, signer: signer}
	return out.record(tx, false)
}

type inbound struct {
	logger *zap.Logger
	scope  Scope
	depth  int
}

func (in *inbound) record(rec *types.Record, embedded bool) (*canonical.Transaction, error) {
	if rec == nil || rec.Transaction == nil {
		return nil, ErrMalformedRecord
	}
	wire := rec.Transaction

	kind := canonical.Kind(wire.Type)
	conv, ok := converters[kind]
	if !ok {
		return nil, &KindError{Type: wire.Type}
	}

	if wire.Network != 0 && address.NetworkType(wire.Network) != in.scope.Network.Type {
		return nil, fmt.Errorf("%w: record network %d, expected %d", ErrNetworkMismatch, wire.Network, in.scope.Network.Type)
	}

	tx := &canonical.Transaction{
		Kind: kind,
		ID:   rec.ID,
		Size: wire.Size,
	}

	if err := in.provenance(tx, rec.Meta); err != nil {
		return nil, err
	}
	if err := in.signer(tx, wire); err != nil {
		return nil, err
	}

	if !embedded {
		if wire.Deadline != "" {
			ms, err := utils.ParseUint64(wire.Deadline)
			if err != nil {
				return nil, fmt.Errorf("deadline: %w", err)
			}
			deadline := utils.NetworkTimeToTime(ms, in.scope.Network.EpochAdjustment)
			tx.Deadline = &deadline
		}

		maxFee, err := utils.ParseUint64(wire.MaxFee)
		if err != nil {
			return nil, fmt.Errorf("max fee: %w", err)
		}
		relative, err := fee.Calculate(fee.Input{MaxFee: &maxFee}, in.scope.Network)
		if err != nil {
			return nil, fmt.Errorf("max fee: %w", err)
		}
		tx.Fee = &relative
	}

	body, err := conv.fromWire(in, wire)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	tx.Body = body

	return tx, nil
}

func (in *inbound) provenance(tx *canonical.Transaction, meta *types.Meta) error {
	if meta == nil {
		return nil
	}

	if meta.Height != "" {
		height, err := utils.ParseUint64(meta.Height)
		if err != nil {
			return fmt.Errorf("height: %w", err)
		}
		tx.Height = &height
	}
	tx.Hash = strings.ToUpper(meta.Hash)
	return nil
}

func (in *inbound) signer(tx *canonical.Transaction, wire *types.Transaction) error {
	if wire.SignerPublicKey == "" {
		return ErrMissingSigner
	}

	derived, err := address.FromPublicKey(wire.SignerPublicKey, in.scope.Network.Type)
	if err != nil {
		return fmt.Errorf("signer: %w", err)
	}

	if wire.SignerAddress != "" {
		explicit, err := concreteAddress(wire.SignerAddress)
		if err != nil {
			return fmt.Errorf("signer: %w", err)
		}
		if explicit != derived {
			return fmt.Errorf("%w: %s, derived %s", ErrSignerMismatch, explicit, derived)
		}
	}

	tx.SignerPublicKey = strings.ToUpper(wire.SignerPublicKey)
	tx.SignerAddress = derived
	return nil
}

type outbound struct {
	logger *zap.Logger
	params network.Parameters
	signer Signer
	depth  int
}

func (out *outbound) record(tx *canonical.Transaction, embedded bool) (*types.Transaction, error) {
	if tx == nil || tx.Body == nil {
		return nil, ErrMalformedRecord
	}

	kind := tx.Body.Kind()
	if tx.Kind != 0 && tx.Kind != kind {
		return nil, invalidField("kind", fmt.Sprintf("%s carries a %s body", tx.Kind, kind))
	}
	conv, ok := converters[kind]
	if !ok {
		return nil, &KindError{Type: uint16(kind)}
	}

	publicKey := tx.SignerPublicKey
	if publicKey == "" {
		publicKey = out.signer.PublicKey
	}
	if publicKey == "" {
		return nil, ErrMissingSigner
	}

	derived, err := address.FromPublicKey(publicKey, out.params.Type)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}
	if tx.SignerAddress != "" && normalizeAddress(tx.SignerAddress) != derived {
		return nil, fmt.Errorf("%w: %s, derived %s", ErrSignerMismatch, tx.SignerAddress, derived)
	}

	wire := &types.Transaction{
		SignerPublicKey: strings.ToUpper(publicKey),
		Version:         conv.version,
		Network:         uint8(out.params.Type),
		Type:            uint16(kind),
	}

	if err := conv.toWire(out, tx.Body, wire); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", kind, err)
	}

	if embedded {
		size, err := types.EmbeddedSize(wire)
		if err != nil {
			return nil, err
		}
		wire.Size = size
		return wire, nil
	}

	var deadline time.Time
	switch {
	case tx.Deadline != nil:
		deadline = *tx.Deadline
	case !out.signer.Now.IsZero():
		deadline = out.params.DeadlineFrom(out.signer.Now)
	default:
		return nil, ErrMissingDeadline
	}
	wire.Deadline = utils.FormatUint64(utils.TimeToNetworkTime(deadline, out.params.EpochAdjustment))

	size, err := types.Size(wire)
	if err != nil {
		return nil, err
	}
	wire.Size = size

	maxFee, err := out.maxFee(tx, size)
	if err != nil {
		return nil, fmt.Errorf("max fee: %w", err)
	}
	wire.MaxFee = utils.FormatUint64(maxFee)

	return wire, nil
}

func (out *outbound) maxFee(tx *canonical.Transaction, size uint32) (uint64, error) {
	if tx.Fee != nil {
		return utils.ToAbsolute(*tx.Fee, out.params.Divisibility)
	}
	if out.signer.FeeMultiplier == 0 {
		return 0, nil
	}
	return fee.Input{Multiplier: out.signer.FeeMultiplier, Size: uint64(size)}.Absolute()
}

// concreteAddress accepts a base32 or raw hex address and returns its base32 form
func concreteAddress(s string) (string, error) {
	if address.IsValid(s) {
		return normalizeAddress(s), nil
	}
	return address.FromRaw(s)
}

func normalizeAddress(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", ""))
}
