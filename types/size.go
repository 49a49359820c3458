package types

import (
	"errors"
	"fmt"
)

// Serialized layout sizes of the ledger entities
const (
	TransactionHeaderSize = 128
	EmbeddedHeaderSize    = 48
	CosignatureSize       = 104

	addressSize    = 24
	mosaicSize     = 16
	idSize         = 8
	keySize        = 32
	hashSize       = 32
	innerAlignment = 8
)

// Entity types as carried in Transaction.Type
const (
	TypeTransfer                    uint16 = 0x4154
	TypeMosaicDefinition            uint16 = 0x414D
	TypeMosaicSupplyChange          uint16 = 0x424D
	TypeMosaicSupplyRevocation      uint16 = 0x434D
	TypeNamespaceRegistration       uint16 = 0x414E
	TypeAddressAlias                uint16 = 0x424E
	TypeMosaicAlias                 uint16 = 0x434E
	TypeAccountMetadata             uint16 = 0x4144
	TypeMosaicMetadata              uint16 = 0x4244
	TypeNamespaceMetadata           uint16 = 0x4344
	TypeMultisigAccountModification uint16 = 0x4155
	TypeAccountKeyLink              uint16 = 0x414C
	TypeNodeKeyLink                 uint16 = 0x424C
	TypeVrfKeyLink                  uint16 = 0x4243
	TypeVotingKeyLink               uint16 = 0x4143
	TypeHashLock                    uint16 = 0x4148
	TypeSecretLock                  uint16 = 0x4152
	TypeSecretProof                 uint16 = 0x4252
	TypeAccountAddressRestriction   uint16 = 0x4150
	TypeAccountMosaicRestriction    uint16 = 0x4250
	TypeAccountOperationRestriction uint16 = 0x4350
	TypeMosaicAddressRestriction    uint16 = 0x4251
	TypeMosaicGlobalRestriction     uint16 = 0x4151
	TypeAggregateComplete           uint16 = 0x4141
	TypeAggregateBonded             uint16 = 0x4241
)

var ErrUnknownType = errors.New("unknown entity type")

// IsAggregate reports whether the transaction nests other transactions
func (tx *Transaction) IsAggregate() bool {
	return tx.Type == TypeAggregateComplete || tx.Type == TypeAggregateBonded
}

// Size computes the serialized size of a top level transaction
func Size(tx *Transaction) (uint32, error) {
	body, err := bodySize(tx)
	if err != nil {
		return 0, err
	}
	return uint32(TransactionHeaderSize + body), nil
}

// EmbeddedSize computes the serialized size of a transaction embedded in an aggregate
func EmbeddedSize(tx *Transaction) (uint32, error) {
	body, err := bodySize(tx)
	if err != nil {
		return 0, err
	}
	return uint32(EmbeddedHeaderSize + body), nil
}

// InnerPayloadSize is the size of the inner transactions of an aggregate,
// each padded to an 8 byte boundary
func InnerPayloadSize(inner []*Record) (uint32, error) {
	total := uint32(0)
	for i, rec := range inner {
		if rec == nil || rec.Transaction == nil {
			return 0, fmt.Errorf("inner transaction %d is missing", i)
		}
		size, err := EmbeddedSize(rec.Transaction)
		if err != nil {
			return 0, fmt.Errorf("inner transaction %d: %w", i, err)
		}
		total += pad(size)
	}
	return total, nil
}

func pad(size uint32) uint32 {
	return (size + innerAlignment - 1) / innerAlignment * innerAlignment
}

func bodySize(tx *Transaction) (int, error) {
	switch tx.Type {
	case TypeTransfer:
		size := addressSize + 2 + 1 + 1 + 4 + mosaicSize*len(tx.Mosaics)
		if tx.Message != nil {
			m, err := tx.Message.Size()
			if err != nil {
				return 0, err
			}
			size += m
		}
		return size, nil
	case TypeMosaicDefinition:
		return idSize + 8 + 4 + 1 + 1, nil
	case TypeMosaicSupplyChange:
		return idSize + 8 + 1, nil
	case TypeMosaicSupplyRevocation:
		return addressSize + mosaicSize, nil
	case TypeNamespaceRegistration:
		return 8 + idSize + 1 + 1 + len(tx.Name)/2, nil
	case TypeAddressAlias:
		return idSize + addressSize + 1, nil
	case TypeMosaicAlias:
		return idSize + idSize + 1, nil
	case TypeAccountMetadata:
		return addressSize + 8 + 2 + 2 + len(tx.Value)/2, nil
	case TypeMosaicMetadata, TypeNamespaceMetadata:
		return addressSize + 8 + idSize + 2 + 2 + len(tx.Value)/2, nil
	case TypeMultisigAccountModification:
		return 1 + 1 + 1 + 1 + 4 + addressSize*(len(tx.AddressAdditions)+len(tx.AddressDeletions)), nil
	case TypeAccountKeyLink, TypeNodeKeyLink, TypeVrfKeyLink:
		return keySize + 1, nil
	case TypeVotingKeyLink:
		return keySize + 4 + 4 + 1, nil
	case TypeHashLock:
		return mosaicSize + 8 + hashSize, nil
	case TypeSecretLock:
		return addressSize + hashSize + mosaicSize + 8 + 1, nil
	case TypeSecretProof:
		return addressSize + hashSize + 2 + 1 + len(tx.Proof)/2, nil
	case TypeAccountAddressRestriction:
		return restrictionSize(tx, addressSize), nil
	case TypeAccountMosaicRestriction:
		return restrictionSize(tx, idSize), nil
	case TypeAccountOperationRestriction:
		return restrictionSize(tx, 2), nil
	case TypeMosaicAddressRestriction:
		return idSize + 8 + 8 + 8 + addressSize, nil
	case TypeMosaicGlobalRestriction:
		return idSize + idSize + 8 + 8 + 8 + 1 + 1, nil
	case TypeAggregateComplete, TypeAggregateBonded:
		payload, err := InnerPayloadSize(tx.Transactions)
		if err != nil {
			return 0, err
		}
		return hashSize + 4 + 4 + int(payload) + CosignatureSize*len(tx.Cosignatures), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownType, tx.Type)
}

func restrictionSize(tx *Transaction, valueSize int) int {
	return 2 + 1 + 1 + 4 + valueSize*(len(tx.RestrictionAdditions)+len(tx.RestrictionDeletions))
}
