package mapper

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/message"
	"github.com/symbol-commons/symbolmap/types"
	"github.com/symbol-commons/symbolmap/utils"
	"go.uber.org/zap"
)

// Mosaic definition flags
const (
	flagSupplyMutable uint8 = 0x01
	flagTransferable  uint8 = 0x02
	flagRestrictable  uint8 = 0x04
	flagRevokable     uint8 = 0x08
)

// Account restriction flags. The low bits name the restricted value type.
const (
	restrictionAddress   uint16 = 0x0001
	restrictionMosaicID  uint16 = 0x0002
	restrictionOperation uint16 = 0x0004
	restrictionOutgoing  uint16 = 0x4000
	restrictionBlock     uint16 = 0x8000
)

const keyHexSize = 64

// Inbound helpers

func (in *inbound) address(raw string) (canonical.AddressRef, error) {
	ref, err := in.scope.Context.ResolveAddress(raw)
	if err != nil {
		return canonical.AddressRef{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	if !ref.Resolved() {
		in.logger.Debug("unresolved namespace alias", zap.String("namespace_id", ref.NamespaceID))
	}
	return ref, nil
}

func (in *inbound) addresses(raws []string) ([]canonical.AddressRef, error) {
	refs := make([]canonical.AddressRef, 0, len(raws))
	for _, raw := range raws {
		ref, err := in.address(raw)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (in *inbound) mosaicRef(id string) (canonical.MosaicRef, error) {
	ref, err := in.scope.Context.ResolveMosaic(id)
	if err != nil {
		return canonical.MosaicRef{}, fmt.Errorf("%w: mosaic id: %v", ErrInvalidField, err)
	}
	if !ref.Resolved() {
		in.logger.Debug("unresolved mosaic alias", zap.String("namespace_id", ref.NamespaceID))
	}
	return ref, nil
}

func (in *inbound) mosaic(id, amount string) (canonical.Mosaic, error) {
	ref, err := in.mosaicRef(id)
	if err != nil {
		return canonical.Mosaic{}, err
	}
	absolute, err := utils.ParseUint64(amount)
	if err != nil {
		return canonical.Mosaic{}, err
	}

	mosaic := canonical.Mosaic{MosaicRef: ref, AbsoluteAmount: absolute}

	var divisibility *uint8
	if in.scope.Network.IsCurrency(ref) {
		d := in.scope.Network.Divisibility
		divisibility = &d
	}

	key := ref.ID
	if !ref.Resolved() {
		key = ref.NamespaceID
	}
	if info, ok := in.scope.Context.Asset(key); ok {
		if divisibility == nil {
			d := info.Divisibility
			divisibility = &d
		}
		if len(info.Names) > 0 {
			mosaic.Name = info.Names[0]
		}
	}

	if divisibility == nil {
		in.logger.Debug("unknown mosaic divisibility", zap.String("mosaic_id", key))
		return mosaic, nil
	}

	relative, err := utils.ToRelative(absolute, *divisibility)
	if err != nil {
		return canonical.Mosaic{}, err
	}
	mosaic.Amount = &relative
	mosaic.Divisibility = divisibility
	return mosaic, nil
}

func (in *inbound) message(m *types.Message) *canonical.Message {
	decoded := message.Decode(m)
	if m != nil && decoded == nil {
		in.logger.Debug("dropping message with unknown type", zap.Uint8("type", m.Type))
	}
	return decoded
}

func identifier(name, v string) (string, error) {
	id, err := address.NormalizeID(v)
	if err != nil {
		return "", invalidField(name, v)
	}
	return id, nil
}

func hexBytes(name, v string) ([]byte, error) {
	b, err := hex.DecodeString(v)
	if err != nil {
		return nil, invalidField(name, v)
	}
	return b, nil
}

// hexKey checks a 32 byte key, hash or secret
func hexKey(name, v string) (string, error) {
	if len(v) != keyHexSize {
		return "", invalidField(name, v)
	}
	if _, err := hexBytes(name, v); err != nil {
		return "", err
	}
	return strings.ToUpper(v), nil
}

func upperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Outbound helpers

func (out *outbound) address(ref canonical.AddressRef) (string, error) {
	if ref.NamespaceID != "" {
		raw, err := address.AliasToRaw(ref.NamespaceID, out.params.Type)
		if err != nil {
			return "", invalidField("namespace id", ref.NamespaceID)
		}
		return raw, nil
	}

	network, err := address.Network(ref.Address)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	if network != out.params.Type {
		return "", fmt.Errorf("%w: address %s belongs to network %d", ErrNetworkMismatch, ref.Address, network)
	}
	return address.ToRaw(ref.Address)
}

func (out *outbound) addresses(refs []canonical.AddressRef) ([]string, error) {
	raws := make([]string, 0, len(refs))
	for _, ref := range refs {
		raw, err := out.address(ref)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// mosaicID keeps aliases on the wire: the node resolves them at execution
func (out *outbound) mosaicID(ref canonical.MosaicRef) (string, error) {
	if ref.NamespaceID != "" {
		return identifier("namespace id", ref.NamespaceID)
	}
	if !ref.Resolved() {
		return "", invalidField("mosaic id", ref.ID)
	}
	return identifier("mosaic id", ref.ID)
}

func (out *outbound) mosaic(m canonical.Mosaic) (types.Mosaic, error) {
	id, err := out.mosaicID(m.MosaicRef)
	if err != nil {
		return types.Mosaic{}, err
	}
	absolute, err := out.absolute(m)
	if err != nil {
		return types.Mosaic{}, fmt.Errorf("mosaic %s: %w", id, err)
	}
	return types.Mosaic{ID: id, Amount: utils.FormatUint64(absolute)}, nil
}

// absolute scales the network currency with the target network divisibility
// and other mosaics with the divisibility they carry
func (out *outbound) absolute(m canonical.Mosaic) (uint64, error) {
	if m.Amount == nil {
		return m.AbsoluteAmount, nil
	}

	switch {
	case out.params.IsCurrency(m.MosaicRef):
		return utils.ToAbsolute(*m.Amount, out.params.Divisibility)
	case m.Divisibility != nil:
		return utils.ToAbsolute(*m.Amount, *m.Divisibility)
	}

	out.logger.Debug("no divisibility for mosaic amount, using absolute amount", zap.String("mosaic_id", m.ID))
	return m.AbsoluteAmount, nil
}

// Transfer

func (in *inbound) transfer(tx *types.Transaction) (*canonical.Transfer, error) {
	recipient, err := in.address(tx.RecipientAddress)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}

	mosaics := make([]canonical.Mosaic, 0, len(tx.Mosaics))
	for _, wm := range tx.Mosaics {
		mosaic, err := in.mosaic(wm.ID, wm.Amount)
		if err != nil {
			return nil, err
		}
		mosaics = append(mosaics, mosaic)
	}

	return &canonical.Transfer{
		Recipient: recipient,
		Mosaics:   mosaics,
		Message:   in.message(tx.Message),
	}, nil
}

func (out *outbound) transfer(b *canonical.Transfer, tx *types.Transaction) error {
	recipient, err := out.address(b.Recipient)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}

	mosaics := make([]types.Mosaic, 0, len(b.Mosaics))
	for _, m := range b.Mosaics {
		wm, err := out.mosaic(m)
		if err != nil {
			return err
		}
		mosaics = append(mosaics, wm)
	}

	msg, err := message.Encode(b.Message)
	if err != nil {
		return err
	}

	tx.RecipientAddress = recipient
	tx.Mosaics = mosaics
	tx.Message = msg
	return nil
}

// Mosaics

func (in *inbound) mosaicDefinition(tx *types.Transaction) (*canonical.MosaicDefinition, error) {
	id, err := identifier("id", tx.ID)
	if err != nil {
		return nil, err
	}
	duration, err := utils.ParseUint64(tx.Duration)
	if err != nil {
		return nil, err
	}
	if tx.Divisibility > utils.MaxDivisibility {
		return nil, invalidField("divisibility", tx.Divisibility)
	}
	if tx.Flags&^(flagSupplyMutable|flagTransferable|flagRestrictable|flagRevokable) != 0 {
		return nil, invalidField("flags", tx.Flags)
	}

	return &canonical.MosaicDefinition{
		MosaicID:      id,
		Nonce:         tx.Nonce,
		Divisibility:  tx.Divisibility,
		Duration:      duration,
		SupplyMutable: tx.Flags&flagSupplyMutable != 0,
		Transferable:  tx.Flags&flagTransferable != 0,
		Restrictable:  tx.Flags&flagRestrictable != 0,
		Revokable:     tx.Flags&flagRevokable != 0,
	}, nil
}

func (out *outbound) mosaicDefinition(b *canonical.MosaicDefinition, tx *types.Transaction) error {
	id, err := identifier("mosaic id", b.MosaicID)
	if err != nil {
		return err
	}
	if b.Divisibility > utils.MaxDivisibility {
		return invalidField("divisibility", b.Divisibility)
	}

	var flags uint8
	if b.SupplyMutable {
		flags |= flagSupplyMutable
	}
	if b.Transferable {
		flags |= flagTransferable
	}
	if b.Restrictable {
		flags |= flagRestrictable
	}
	if b.Revokable {
		flags |= flagRevokable
	}

	tx.ID = id
	tx.Nonce = b.Nonce
	tx.Divisibility = b.Divisibility
	tx.Duration = utils.FormatUint64(b.Duration)
	tx.Flags = flags
	return nil
}

func (in *inbound) mosaicSupplyChange(tx *types.Transaction) (*canonical.MosaicSupplyChange, error) {
	action, err := supplyActions.fromWire("action", tx.Action)
	if err != nil {
		return nil, err
	}
	delta, err := in.mosaic(tx.MosaicID, tx.Delta)
	if err != nil {
		return nil, err
	}
	return &canonical.MosaicSupplyChange{Action: action, Delta: delta}, nil
}

func (out *outbound) mosaicSupplyChange(b *canonical.MosaicSupplyChange, tx *types.Transaction) error {
	action, err := supplyActions.toWire("action", b.Action)
	if err != nil {
		return err
	}
	delta, err := out.mosaic(b.Delta)
	if err != nil {
		return err
	}

	tx.Action = action
	tx.MosaicID = delta.ID
	tx.Delta = delta.Amount
	return nil
}

func (in *inbound) mosaicSupplyRevocation(tx *types.Transaction) (*canonical.MosaicSupplyRevocation, error) {
	source, err := in.address(tx.SourceAddress)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	mosaic, err := in.mosaic(tx.MosaicID, tx.Amount)
	if err != nil {
		return nil, err
	}
	return &canonical.MosaicSupplyRevocation{Source: source, Mosaic: mosaic}, nil
}

func (out *outbound) mosaicSupplyRevocation(b *canonical.MosaicSupplyRevocation, tx *types.Transaction) error {
	source, err := out.address(b.Source)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	mosaic, err := out.mosaic(b.Mosaic)
	if err != nil {
		return err
	}

	tx.SourceAddress = source
	tx.MosaicID = mosaic.ID
	tx.Amount = mosaic.Amount
	return nil
}

// Namespaces

func (in *inbound) namespaceRegistration(tx *types.Transaction) (*canonical.NamespaceRegistration, error) {
	registrationType, err := registrationTypes.fromWire("registration type", tx.RegistrationType)
	if err != nil {
		return nil, err
	}
	id, err := identifier("id", tx.ID)
	if err != nil {
		return nil, err
	}
	name, err := hexBytes("name", tx.Name)
	if err != nil {
		return nil, err
	}

	body := &canonical.NamespaceRegistration{
		RegistrationType: registrationType,
		Name:             string(name),
		NamespaceID:      id,
	}

	if registrationType == canonical.RootNamespace {
		if body.Duration, err = utils.ParseUint64(tx.Duration); err != nil {
			return nil, err
		}
		return body, nil
	}

	if body.ParentID, err = identifier("parent id", tx.ParentID); err != nil {
		return nil, err
	}
	return body, nil
}

func (out *outbound) namespaceRegistration(b *canonical.NamespaceRegistration, tx *types.Transaction) error {
	registrationType, err := registrationTypes.toWire("registration type", b.RegistrationType)
	if err != nil {
		return err
	}
	id, err := identifier("namespace id", b.NamespaceID)
	if err != nil {
		return err
	}
	if b.Name == "" {
		return invalidField("name", b.Name)
	}

	tx.RegistrationType = registrationType
	tx.ID = id
	tx.Name = upperHex([]byte(b.Name))

	if b.RegistrationType == canonical.RootNamespace {
		tx.Duration = utils.FormatUint64(b.Duration)
		return nil
	}
	tx.ParentID, err = identifier("parent id", b.ParentID)
	return err
}

func (in *inbound) addressAlias(tx *types.Transaction) (*canonical.AddressAlias, error) {
	action, err := linkActions.fromWire("alias action", tx.AliasAction)
	if err != nil {
		return nil, err
	}
	namespaceID, err := identifier("namespace id", tx.NamespaceID)
	if err != nil {
		return nil, err
	}
	addr, err := concreteAddress(tx.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return &canonical.AddressAlias{Action: action, NamespaceID: namespaceID, Address: addr}, nil
}

func (out *outbound) addressAlias(b *canonical.AddressAlias, tx *types.Transaction) error {
	action, err := linkActions.toWire("alias action", b.Action)
	if err != nil {
		return err
	}
	namespaceID, err := identifier("namespace id", b.NamespaceID)
	if err != nil {
		return err
	}
	raw, err := out.address(canonical.AddressRef{Address: b.Address})
	if err != nil {
		return err
	}

	tx.AliasAction = action
	tx.NamespaceID = namespaceID
	tx.Address = raw
	return nil
}

func (in *inbound) mosaicAlias(tx *types.Transaction) (*canonical.MosaicAlias, error) {
	action, err := linkActions.fromWire("alias action", tx.AliasAction)
	if err != nil {
		return nil, err
	}
	namespaceID, err := identifier("namespace id", tx.NamespaceID)
	if err != nil {
		return nil, err
	}
	mosaicID, err := identifier("mosaic id", tx.MosaicID)
	if err != nil {
		return nil, err
	}
	return &canonical.MosaicAlias{Action: action, NamespaceID: namespaceID, MosaicID: mosaicID}, nil
}

func (out *outbound) mosaicAlias(b *canonical.MosaicAlias, tx *types.Transaction) error {
	action, err := linkActions.toWire("alias action", b.Action)
	if err != nil {
		return err
	}
	if tx.NamespaceID, err = identifier("namespace id", b.NamespaceID); err != nil {
		return err
	}
	if tx.MosaicID, err = identifier("mosaic id", b.MosaicID); err != nil {
		return err
	}
	tx.AliasAction = action
	return nil
}

// Metadata

func (in *inbound) metadataEntry(tx *types.Transaction) (canonical.MetadataEntry, error) {
	target, err := in.address(tx.TargetAddress)
	if err != nil {
		return canonical.MetadataEntry{}, fmt.Errorf("target: %w", err)
	}
	key, err := identifier("scoped metadata key", tx.ScopedMetadataKey)
	if err != nil {
		return canonical.MetadataEntry{}, err
	}
	value, err := hexBytes("value", tx.Value)
	if err != nil {
		return canonical.MetadataEntry{}, err
	}

	entry := canonical.MetadataEntry{
		Target:            target,
		ScopedMetadataKey: key,
		ValueSizeDelta:    tx.ValueSizeDelta,
		ValueSize:         tx.ValueSize,
		ValueHex:          upperHex(value),
	}
	if utf8.Valid(value) {
		entry.Value = string(value)
	}
	return entry, nil
}

func (out *outbound) metadataEntry(e canonical.MetadataEntry, tx *types.Transaction) error {
	target, err := out.address(e.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	key, err := identifier("scoped metadata key", e.ScopedMetadataKey)
	if err != nil {
		return err
	}

	value := []byte(e.Value)
	if e.ValueHex != "" || e.Value == "" {
		if value, err = hexBytes("value", e.ValueHex); err != nil {
			return err
		}
	}

	tx.TargetAddress = target
	tx.ScopedMetadataKey = key
	tx.ValueSizeDelta = e.ValueSizeDelta
	tx.ValueSize = e.ValueSize
	if tx.ValueSize == 0 {
		tx.ValueSize = uint16(len(value))
	}
	tx.Value = upperHex(value)
	return nil
}

func (in *inbound) accountMetadata(tx *types.Transaction) (*canonical.AccountMetadata, error) {
	entry, err := in.metadataEntry(tx)
	if err != nil {
		return nil, err
	}
	return &canonical.AccountMetadata{MetadataEntry: entry}, nil
}

func (out *outbound) accountMetadata(b *canonical.AccountMetadata, tx *types.Transaction) error {
	return out.metadataEntry(b.MetadataEntry, tx)
}

func (in *inbound) mosaicMetadata(tx *types.Transaction) (*canonical.MosaicMetadata, error) {
	entry, err := in.metadataEntry(tx)
	if err != nil {
		return nil, err
	}
	target, err := in.mosaicRef(tx.TargetMosaicID)
	if err != nil {
		return nil, err
	}
	return &canonical.MosaicMetadata{MetadataEntry: entry, TargetMosaic: target}, nil
}

func (out *outbound) mosaicMetadata(b *canonical.MosaicMetadata, tx *types.Transaction) error {
	if err := out.metadataEntry(b.MetadataEntry, tx); err != nil {
		return err
	}
	var err error
	tx.TargetMosaicID, err = out.mosaicID(b.TargetMosaic)
	return err
}

func (in *inbound) namespaceMetadata(tx *types.Transaction) (*canonical.NamespaceMetadata, error) {
	entry, err := in.metadataEntry(tx)
	if err != nil {
		return nil, err
	}
	target, err := identifier("target namespace id", tx.TargetNamespaceID)
	if err != nil {
		return nil, err
	}
	return &canonical.NamespaceMetadata{MetadataEntry: entry, TargetNamespaceID: target}, nil
}

func (out *outbound) namespaceMetadata(b *canonical.NamespaceMetadata, tx *types.Transaction) error {
	if err := out.metadataEntry(b.MetadataEntry, tx); err != nil {
		return err
	}
	var err error
	tx.TargetNamespaceID, err = identifier("target namespace id", b.TargetNamespaceID)
	return err
}

// Multisig

func (in *inbound) multisigAccountModification(tx *types.Transaction) (*canonical.MultisigAccountModification, error) {
	additions, err := in.addresses(tx.AddressAdditions)
	if err != nil {
		return nil, fmt.Errorf("address additions: %w", err)
	}
	deletions, err := in.addresses(tx.AddressDeletions)
	if err != nil {
		return nil, fmt.Errorf("address deletions: %w", err)
	}
	return &canonical.MultisigAccountModification{
		MinApprovalDelta: tx.MinApprovalDelta,
		MinRemovalDelta:  tx.MinRemovalDelta,
		AddressAdditions: additions,
		AddressDeletions: deletions,
	}, nil
}

func (out *outbound) multisigAccountModification(b *canonical.MultisigAccountModification, tx *types.Transaction) error {
	additions, err := out.addresses(b.AddressAdditions)
	if err != nil {
		return fmt.Errorf("address additions: %w", err)
	}
	deletions, err := out.addresses(b.AddressDeletions)
	if err != nil {
		return fmt.Errorf("address deletions: %w", err)
	}

	tx.MinApprovalDelta = b.MinApprovalDelta
	tx.MinRemovalDelta = b.MinRemovalDelta
	tx.AddressAdditions = additions
	tx.AddressDeletions = deletions
	return nil
}

// Key links

func keyLinkFromWire(tx *types.Transaction) (canonical.KeyLink, error) {
	key, err := hexKey("linked public key", tx.LinkedPublicKey)
	if err != nil {
		return canonical.KeyLink{}, err
	}
	action, err := linkActions.fromWire("link action", tx.LinkAction)
	if err != nil {
		return canonical.KeyLink{}, err
	}
	return canonical.KeyLink{LinkedPublicKey: key, Action: action}, nil
}

func keyLinkToWire(link canonical.KeyLink, tx *types.Transaction) error {
	key, err := hexKey("linked public key", link.LinkedPublicKey)
	if err != nil {
		return err
	}
	action, err := linkActions.toWire("link action", link.Action)
	if err != nil {
		return err
	}
	tx.LinkedPublicKey = key
	tx.LinkAction = action
	return nil
}

func (in *inbound) accountKeyLink(tx *types.Transaction) (*canonical.AccountKeyLink, error) {
	link, err := keyLinkFromWire(tx)
	if err != nil {
		return nil, err
	}
	return &canonical.AccountKeyLink{KeyLink: link}, nil
}

func (out *outbound) accountKeyLink(b *canonical.AccountKeyLink, tx *types.Transaction) error {
	return keyLinkToWire(b.KeyLink, tx)
}

func (in *inbound) nodeKeyLink(tx *types.Transaction) (*canonical.NodeKeyLink, error) {
	link, err := keyLinkFromWire(tx)
	if err != nil {
		return nil, err
	}
	return &canonical.NodeKeyLink{KeyLink: link}, nil
}

func (out *outbound) nodeKeyLink(b *canonical.NodeKeyLink, tx *types.Transaction) error {
	return keyLinkToWire(b.KeyLink, tx)
}

func (in *inbound) vrfKeyLink(tx *types.Transaction) (*canonical.VrfKeyLink, error) {
	link, err := keyLinkFromWire(tx)
	if err != nil {
		return nil, err
	}
	return &canonical.VrfKeyLink{KeyLink: link}, nil
}

func (out *outbound) vrfKeyLink(b *canonical.VrfKeyLink, tx *types.Transaction) error {
	return keyLinkToWire(b.KeyLink, tx)
}

func (in *inbound) votingKeyLink(tx *types.Transaction) (*canonical.VotingKeyLink, error) {
	link, err := keyLinkFromWire(tx)
	if err != nil {
		return nil, err
	}
	if tx.EndEpoch < tx.StartEpoch {
		return nil, invalidField("epochs", fmt.Sprintf("%d-%d", tx.StartEpoch, tx.EndEpoch))
	}
	return &canonical.VotingKeyLink{KeyLink: link, StartEpoch: tx.StartEpoch, EndEpoch: tx.EndEpoch}, nil
}

func (out *outbound) votingKeyLink(b *canonical.VotingKeyLink, tx *types.Transaction) error {
	if b.EndEpoch < b.StartEpoch {
		return invalidField("epochs", fmt.Sprintf("%d-%d", b.StartEpoch, b.EndEpoch))
	}
	if err := keyLinkToWire(b.KeyLink, tx); err != nil {
		return err
	}
	tx.StartEpoch = b.StartEpoch
	tx.EndEpoch = b.EndEpoch
	return nil
}

// Locks

func (in *inbound) hashLock(tx *types.Transaction) (*canonical.HashLock, error) {
	mosaic, err := in.mosaic(tx.MosaicID, tx.Amount)
	if err != nil {
		return nil, err
	}
	duration, err := utils.ParseUint64(tx.Duration)
	if err != nil {
		return nil, err
	}
	hash, err := hexKey("hash", tx.Hash)
	if err != nil {
		return nil, err
	}
	return &canonical.HashLock{Mosaic: mosaic, Duration: duration, Hash: hash}, nil
}

func (out *outbound) hashLock(b *canonical.HashLock, tx *types.Transaction) error {
	mosaic, err := out.mosaic(b.Mosaic)
	if err != nil {
		return err
	}
	hash, err := hexKey("hash", b.Hash)
	if err != nil {
		return err
	}

	tx.MosaicID = mosaic.ID
	tx.Amount = mosaic.Amount
	tx.Duration = utils.FormatUint64(b.Duration)
	tx.Hash = hash
	return nil
}

func (in *inbound) secretLock(tx *types.Transaction) (*canonical.SecretLock, error) {
	recipient, err := in.address(tx.RecipientAddress)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	mosaic, err := in.mosaic(tx.MosaicID, tx.Amount)
	if err != nil {
		return nil, err
	}
	duration, err := utils.ParseUint64(tx.Duration)
	if err != nil {
		return nil, err
	}
	algorithm, err := hashAlgorithms.fromWire("hash algorithm", tx.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	secret, err := hexKey("secret", tx.Secret)
	if err != nil {
		return nil, err
	}

	return &canonical.SecretLock{
		Recipient:     recipient,
		Secret:        secret,
		Mosaic:        mosaic,
		Duration:      duration,
		HashAlgorithm: algorithm,
	}, nil
}

func (out *outbound) secretLock(b *canonical.SecretLock, tx *types.Transaction) error {
	recipient, err := out.address(b.Recipient)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	mosaic, err := out.mosaic(b.Mosaic)
	if err != nil {
		return err
	}
	algorithm, err := hashAlgorithms.toWire("hash algorithm", b.HashAlgorithm)
	if err != nil {
		return err
	}
	secret, err := hexKey("secret", b.Secret)
	if err != nil {
		return err
	}

	tx.RecipientAddress = recipient
	tx.Secret = secret
	tx.MosaicID = mosaic.ID
	tx.Amount = mosaic.Amount
	tx.Duration = utils.FormatUint64(b.Duration)
	tx.HashAlgorithm = algorithm
	return nil
}

func (in *inbound) secretProof(tx *types.Transaction) (*canonical.SecretProof, error) {
	recipient, err := in.address(tx.RecipientAddress)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	algorithm, err := hashAlgorithms.fromWire("hash algorithm", tx.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	secret, err := hexKey("secret", tx.Secret)
	if err != nil {
		return nil, err
	}
	proof, err := hexBytes("proof", tx.Proof)
	if err != nil {
		return nil, err
	}

	return &canonical.SecretProof{
		Recipient:     recipient,
		Secret:        secret,
		HashAlgorithm: algorithm,
		Proof:         upperHex(proof),
	}, nil
}

func (out *outbound) secretProof(b *canonical.SecretProof, tx *types.Transaction) error {
	recipient, err := out.address(b.Recipient)
	if err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	algorithm, err := hashAlgorithms.toWire("hash algorithm", b.HashAlgorithm)
	if err != nil {
		return err
	}
	secret, err := hexKey("secret", b.Secret)
	if err != nil {
		return err
	}
	proof, err := hexBytes("proof", b.Proof)
	if err != nil {
		return err
	}

	tx.RecipientAddress = recipient
	tx.Secret = secret
	tx.HashAlgorithm = algorithm
	tx.Proof = upperHex(proof)
	return nil
}

// Account restrictions

func restrictionFlagsFromWire(flags, valueType uint16) (canonical.RestrictionFlags, error) {
	if flags&^(restrictionOutgoing|restrictionBlock) != valueType {
		return canonical.RestrictionFlags{}, invalidField("restriction flags", flags)
	}
	return canonical.RestrictionFlags{
		Outgoing: flags&restrictionOutgoing != 0,
		Block:    flags&restrictionBlock != 0,
	}, nil
}

func restrictionFlagsToWire(f canonical.RestrictionFlags, valueType uint16) uint16 {
	flags := valueType
	if f.Outgoing {
		flags |= restrictionOutgoing
	}
	if f.Block {
		flags |= restrictionBlock
	}
	return flags
}

// restrictionValues decodes the JSON restriction values into strings or numbers
func restrictionValues[T any](values []json.RawMessage) ([]T, error) {
	decoded := make([]T, 0, len(values))
	for _, raw := range values {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, invalidField("restriction value", string(raw))
		}
		decoded = append(decoded, v)
	}
	return decoded, nil
}

func rawValues[T any](values []T) ([]json.RawMessage, error) {
	encoded := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, raw)
	}
	return encoded, nil
}

func (in *inbound) accountAddressRestriction(tx *types.Transaction) (*canonical.AccountAddressRestriction, error) {
	flags, err := restrictionFlagsFromWire(tx.RestrictionFlags, restrictionAddress)
	if err != nil {
		return nil, err
	}

	lists := [2][]canonical.AddressRef{}
	for i, values := range [][]json.RawMessage{tx.RestrictionAdditions, tx.RestrictionDeletions} {
		raws, err := restrictionValues[string](values)
		if err != nil {
			return nil, err
		}
		if lists[i], err = in.addresses(raws); err != nil {
			return nil, err
		}
	}

	return &canonical.AccountAddressRestriction{Flags: flags, Additions: lists[0], Deletions: lists[1]}, nil
}

func (out *outbound) accountAddressRestriction(b *canonical.AccountAddressRestriction, tx *types.Transaction) error {
	lists := [2][]json.RawMessage{}
	for i, refs := range [][]canonical.AddressRef{b.Additions, b.Deletions} {
		raws, err := out.addresses(refs)
		if err != nil {
			return err
		}
		if lists[i], err = rawValues(raws); err != nil {
			return err
		}
	}

	tx.RestrictionFlags = restrictionFlagsToWire(b.Flags, restrictionAddress)
	tx.RestrictionAdditions = lists[0]
	tx.RestrictionDeletions = lists[1]
	return nil
}

func (in *inbound) accountMosaicRestriction(tx *types.Transaction) (*canonical.AccountMosaicRestriction, error) {
	flags, err := restrictionFlagsFromWire(tx.RestrictionFlags, restrictionMosaicID)
	if err != nil {
		return nil, err
	}

	lists := [2][]canonical.MosaicRef{}
	for i, values := range [][]json.RawMessage{tx.RestrictionAdditions, tx.RestrictionDeletions} {
		ids, err := restrictionValues[string](values)
		if err != nil {
			return nil, err
		}
		refs := make([]canonical.MosaicRef, 0, len(ids))
		for _, id := range ids {
			ref, err := in.mosaicRef(id)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		}
		lists[i] = refs
	}

	return &canonical.AccountMosaicRestriction{Flags: flags, Additions: lists[0], Deletions: lists[1]}, nil
}

func (out *outbound) accountMosaicRestriction(b *canonical.AccountMosaicRestriction, tx *types.Transaction) error {
	lists := [2][]json.RawMessage{}
	for i, refs := range [][]canonical.MosaicRef{b.Additions, b.Deletions} {
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			id, err := out.mosaicID(ref)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		var err error
		if lists[i], err = rawValues(ids); err != nil {
			return err
		}
	}

	tx.RestrictionFlags = restrictionFlagsToWire(b.Flags, restrictionMosaicID)
	tx.RestrictionAdditions = lists[0]
	tx.RestrictionDeletions = lists[1]
	return nil
}

func (in *inbound) accountOperationRestriction(tx *types.Transaction) (*canonical.AccountOperationRestriction, error) {
	flags, err := restrictionFlagsFromWire(tx.RestrictionFlags, restrictionOperation)
	if err != nil {
		return nil, err
	}

	lists := [2][]canonical.Kind{}
	for i, values := range [][]json.RawMessage{tx.RestrictionAdditions, tx.RestrictionDeletions} {
		codes, err := restrictionValues[uint16](values)
		if err != nil {
			return nil, err
		}
		kinds := make([]canonical.Kind, 0, len(codes))
		for _, code := range codes {
			kind := canonical.Kind(code)
			if !kind.Known() {
				return nil, invalidField("restricted operation", code)
			}
			kinds = append(kinds, kind)
		}
		lists[i] = kinds
	}

	return &canonical.AccountOperationRestriction{Flags: flags, Additions: lists[0], Deletions: lists[1]}, nil
}

func (out *outbound) accountOperationRestriction(b *canonical.AccountOperationRestriction, tx *types.Transaction) error {
	lists := [2][]json.RawMessage{}
	for i, kinds := range [][]canonical.Kind{b.Additions, b.Deletions} {
		codes := make([]uint16, 0, len(kinds))
		for _, kind := range kinds {
			if !kind.Known() {
				return invalidField("restricted operation", uint16(kind))
			}
			codes = append(codes, uint16(kind))
		}
		var err error
		if lists[i], err = rawValues(codes); err != nil {
			return err
		}
	}

	tx.RestrictionFlags = restrictionFlagsToWire(b.Flags, restrictionOperation)
	tx.RestrictionAdditions = lists[0]
	tx.RestrictionDeletions = lists[1]
	return nil
}

// Mosaic restrictions

func (in *inbound) mosaicAddressRestriction(tx *types.Transaction) (*canonical.MosaicAddressRestriction, error) {
	mosaic, err := in.mosaicRef(tx.MosaicID)
	if err != nil {
		return nil, err
	}
	key, err := identifier("restriction key", tx.RestrictionKey)
	if err != nil {
		return nil, err
	}
	previous, err := utils.ParseUint64(tx.PreviousRestrictionValue)
	if err != nil {
		return nil, err
	}
	next, err := utils.ParseUint64(tx.NewRestrictionValue)
	if err != nil {
		return nil, err
	}
	target, err := in.address(tx.TargetAddress)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	return &canonical.MosaicAddressRestriction{
		Mosaic:         mosaic,
		RestrictionKey: key,
		PreviousValue:  previous,
		NewValue:       next,
		Target:         target,
	}, nil
}

func (out *outbound) mosaicAddressRestriction(b *canonical.MosaicAddressRestriction, tx *types.Transaction) error {
	mosaicID, err := out.mosaicID(b.Mosaic)
	if err != nil {
		return err
	}
	key, err := identifier("restriction key", b.RestrictionKey)
	if err != nil {
		return err
	}
	target, err := out.address(b.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	tx.MosaicID = mosaicID
	tx.RestrictionKey = key
	tx.PreviousRestrictionValue = utils.FormatUint64(b.PreviousValue)
	tx.NewRestrictionValue = utils.FormatUint64(b.NewValue)
	tx.TargetAddress = target
	return nil
}

func (in *inbound) mosaicGlobalRestriction(tx *types.Transaction) (*canonical.MosaicGlobalRestriction, error) {
	mosaic, err := in.mosaicRef(tx.MosaicID)
	if err != nil {
		return nil, err
	}

	// an absent reference mosaic is the zero id: the restriction applies to the mosaic itself
	reference := canonical.MosaicRef{ID: address.FormatID(0)}
	if tx.ReferenceMosaicID != "" {
		if reference, err = in.mosaicRef(tx.ReferenceMosaicID); err != nil {
			return nil, err
		}
	}

	key, err := identifier("restriction key", tx.RestrictionKey)
	if err != nil {
		return nil, err
	}
	previous, err := utils.ParseUint64(tx.PreviousRestrictionValue)
	if err != nil {
		return nil, err
	}
	next, err := utils.ParseUint64(tx.NewRestrictionValue)
	if err != nil {
		return nil, err
	}
	previousType, err := restrictionTypes.fromWire("previous restriction type", tx.PreviousRestrictionType)
	if err != nil {
		return nil, err
	}
	newType, err := restrictionTypes.fromWire("new restriction type", tx.NewRestrictionType)
	if err != nil {
		return nil, err
	}

	return &canonical.MosaicGlobalRestriction{
		Mosaic:          mosaic,
		ReferenceMosaic: reference,
		RestrictionKey:  key,
		PreviousValue:   previous,
		NewValue:        next,
		PreviousType:    previousType,
		NewType:         newType,
	}, nil
}

func (out *outbound) mosaicGlobalRestriction(b *canonical.MosaicGlobalRestriction, tx *types.Transaction) error {
	mosaicID, err := out.mosaicID(b.Mosaic)
	if err != nil {
		return err
	}
	reference := address.FormatID(0)
	if b.ReferenceMosaic.ID != "" || b.ReferenceMosaic.NamespaceID != "" {
		if reference, err = out.mosaicID(b.ReferenceMosaic); err != nil {
			return err
		}
	}
	key, err := identifier("restriction key", b.RestrictionKey)
	if err != nil {
		return err
	}
	previousType, err := restrictionTypes.toWire("previous restriction type", b.PreviousType)
	if err != nil {
		return err
	}
	newType, err := restrictionTypes.toWire("new restriction type", b.NewType)
	if err != nil {
		return err
	}

	tx.MosaicID = mosaicID
	tx.ReferenceMosaicID = reference
	tx.RestrictionKey = key
	tx.PreviousRestrictionValue = utils.FormatUint64(b.PreviousValue)
	tx.NewRestrictionValue = utils.FormatUint64(b.NewValue)
	tx.PreviousRestrictionType = previousType
	tx.NewRestrictionType = newType
	return nil
}
