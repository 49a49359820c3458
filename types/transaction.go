package types

import (
	"encoding/json"
)

// Record is a transaction as returned by the node REST API
type Record struct {
	ID          string       `json:"id,omitempty"`
	Meta        *Meta        `json:"meta,omitempty"`
	Transaction *Transaction `json:"transaction"`
}

// Meta carries the provenance of a confirmed or announced transaction
type Meta struct {
	Height              string `json:"height,omitempty"`
	Hash                string `json:"hash,omitempty"`
	MerkleComponentHash string `json:"merkleComponentHash,omitempty"`
	Index               uint32 `json:"index,omitempty"`
	Timestamp           string `json:"timestamp,omitempty"`
	FeeMultiplier       uint32 `json:"feeMultiplier,omitempty"`
	// Set on inner transactions of an aggregate
	AggregateHash string `json:"aggregateHash,omitempty"`
	AggregateID   string `json:"aggregateId,omitempty"`
}

// Mosaic is a mosaic id (or namespace alias) and an absolute amount
type Mosaic struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

// Cosignature is a signature added to an aggregate by a cosigner
type Cosignature struct {
	Version         string `json:"version,omitempty"`
	SignerPublicKey string `json:"signerPublicKey"`
	Signature       string `json:"signature,omitempty"`
}

// Transaction is the flat union of every transaction shape the node returns.
// Each kind only reads the fields it declares; the others stay empty.
// 64-bit integers are decimal strings, identifiers and keys are hex and
// addresses are 24-byte hex (possibly namespace aliases).
type Transaction struct {
	Size            uint32 `json:"size,omitempty"`
	Signature       string `json:"signature,omitempty"`
	SignerPublicKey string `json:"signerPublicKey"`
	SignerAddress   string `json:"signerAddress,omitempty"`
	Version         uint8  `json:"version"`
	Network         uint8  `json:"network"`
	Type            uint16 `json:"type"`
	MaxFee          string `json:"maxFee,omitempty"`
	Deadline        string `json:"deadline,omitempty"`

	// Transfer, secret lock and secret proof
	RecipientAddress string   `json:"recipientAddress,omitempty"`
	Mosaics          []Mosaic `json:"mosaics,omitempty"`
	Message          *Message `json:"message,omitempty"`

	// Mosaic definition, supply change and revocation, locks
	ID            string `json:"id,omitempty"`
	Duration      string `json:"duration,omitempty"`
	Nonce         uint32 `json:"nonce,omitempty"`
	Flags         uint8  `json:"flags,omitempty"`
	Divisibility  uint8  `json:"divisibility,omitempty"`
	MosaicID      string `json:"mosaicId,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Delta         string `json:"delta,omitempty"`
	Action        uint8  `json:"action,omitempty"`
	SourceAddress string `json:"sourceAddress,omitempty"`

	// Namespace registration and aliases
	RegistrationType uint8  `json:"registrationType,omitempty"`
	Name             string `json:"name,omitempty"`
	ParentID         string `json:"parentId,omitempty"`
	NamespaceID      string `json:"namespaceId,omitempty"`
	Address          string `json:"address,omitempty"`
	AliasAction      uint8  `json:"aliasAction,omitempty"`

	// Metadata
	TargetAddress     string `json:"targetAddress,omitempty"`
	ScopedMetadataKey string `json:"scopedMetadataKey,omitempty"`
	TargetMosaicID    string `json:"targetMosaicId,omitempty"`
	TargetNamespaceID string `json:"targetNamespaceId,omitempty"`
	ValueSizeDelta    int16  `json:"valueSizeDelta,omitempty"`
	ValueSize         uint16 `json:"valueSize,omitempty"`
	Value             string `json:"value,omitempty"`

	// Multisig account modification
	MinRemovalDelta  int8     `json:"minRemovalDelta,omitempty"`
	MinApprovalDelta int8     `json:"minApprovalDelta,omitempty"`
	AddressAdditions []string `json:"addressAdditions,omitempty"`
	AddressDeletions []string `json:"addressDeletions,omitempty"`

	// Key links
	LinkedPublicKey string `json:"linkedPublicKey,omitempty"`
	LinkAction      uint8  `json:"linkAction,omitempty"`
	StartEpoch      uint32 `json:"startEpoch,omitempty"`
	EndEpoch        uint32 `json:"endEpoch,omitempty"`

	// Hash lock, secret lock and secret proof
	Hash          string `json:"hash,omitempty"`
	Secret        string `json:"secret,omitempty"`
	HashAlgorithm uint8  `json:"hashAlgorithm,omitempty"`
	Proof         string `json:"proof,omitempty"`

	// Account restrictions. Values are addresses, mosaic ids or entity types
	// depending on the kind.
	RestrictionFlags     uint16            `json:"restrictionFlags,omitempty"`
	RestrictionAdditions []json.RawMessage `json:"restrictionAdditions,omitempty"`
	RestrictionDeletions []json.RawMessage `json:"restrictionDeletions,omitempty"`

	// Mosaic restrictions
	RestrictionKey           string `json:"restrictionKey,omitempty"`
	PreviousRestrictionValue string `json:"previousRestrictionValue,omitempty"`
	NewRestrictionValue      string `json:"newRestrictionValue,omitempty"`
	ReferenceMosaicID        string `json:"referenceMosaicId,omitempty"`
	PreviousRestrictionType  uint8  `json:"previousRestrictionType,omitempty"`
	NewRestrictionType       uint8  `json:"newRestrictionType,omitempty"`

	// Aggregates. PayloadSize, when present, is the declared byte size of the
	// inner transactions and is checked against them.
	TransactionsHash string        `json:"transactionsHash,omitempty"`
	PayloadSize      uint32        `json:"payloadSize,omitempty"`
	Cosignatures     []Cosignature `json:"cosignatures,omitempty"`
	Transactions     []*Record     `json:"transactions,omitempty"`
}
