package canonical

import (
	"github.com/shopspring/decimal"
	"github.com/symbol-commons/symbolmap/types"
)

// Body is the kind specific payload of a transaction. The set of
// implementations is closed: one per Kind.
type Body interface {
	Kind() Kind
	isBody()
}

type LinkAction string

const (
	Link   LinkAction = "link"
	Unlink LinkAction = "unlink"
)

type SupplyAction string

const (
	SupplyIncrease SupplyAction = "increase"
	SupplyDecrease SupplyAction = "decrease"
)

type RegistrationType string

const (
	RootNamespace  RegistrationType = "root"
	ChildNamespace RegistrationType = "child"
)

type HashAlgorithm string

const (
	HashSHA3256 HashAlgorithm = "sha3_256"
	HashHash160 HashAlgorithm = "hash_160"
	HashHash256 HashAlgorithm = "hash_256"
)

// RestrictionType is the comparison used by mosaic global restrictions
type RestrictionType string

const (
	RestrictionNone RestrictionType = "NONE"
	RestrictionEQ   RestrictionType = "EQ"
	RestrictionNE   RestrictionType = "NE"
	RestrictionLT   RestrictionType = "LT"
	RestrictionLE   RestrictionType = "LE"
	RestrictionGT   RestrictionType = "GT"
	RestrictionGE   RestrictionType = "GE"
)

// RestrictionFlags are the direction and policy of an account restriction.
// The restricted value type is implied by the transaction kind.
type RestrictionFlags struct {
	Outgoing bool `json:"outgoing"`
	Block    bool `json:"block"`
}

type Transfer struct {
	Recipient AddressRef `json:"recipient"`
	Mosaics   []Mosaic   `json:"mosaics"`
	Message   *Message   `json:"message,omitempty"`
}

type MosaicDefinition struct {
	MosaicID      string `json:"mosaicId"`
	Nonce         uint32 `json:"nonce"`
	Divisibility  uint8  `json:"divisibility"`
	Duration      uint64 `json:"duration,string"`
	SupplyMutable bool   `json:"supplyMutable"`
	Transferable  bool   `json:"transferable"`
	Restrictable  bool   `json:"restrictable"`
	Revokable     bool   `json:"revokable"`
}

type MosaicSupplyChange struct {
	Action SupplyAction `json:"action"`
	Delta  Mosaic       `json:"delta"`
}

type MosaicSupplyRevocation struct {
	Source AddressRef `json:"source"`
	Mosaic Mosaic     `json:"mosaic"`
}

type NamespaceRegistration struct {
	RegistrationType RegistrationType `json:"registrationType"`
	Name             string           `json:"name"`
	NamespaceID      string           `json:"namespaceId"`
	// Duration is set for root namespaces, ParentID for child namespaces
	Duration uint64 `json:"duration,string,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

type AddressAlias struct {
	Action      LinkAction `json:"action"`
	NamespaceID string     `json:"namespaceId"`
	Address     string     `json:"address"`
}

type MosaicAlias struct {
	Action      LinkAction `json:"action"`
	NamespaceID string     `json:"namespaceId"`
	MosaicID    string     `json:"mosaicId"`
}

// MetadataEntry holds the fields shared by the metadata kinds. ValueHex is
// authoritative; Value is its text rendering when the bytes are valid UTF-8.
type MetadataEntry struct {
	Target            AddressRef `json:"target"`
	ScopedMetadataKey string     `json:"scopedMetadataKey"`
	ValueSizeDelta    int16      `json:"valueSizeDelta"`
	ValueSize         uint16     `json:"valueSize"`
	Value             string     `json:"value,omitempty"`
	ValueHex          string     `json:"valueHex,omitempty"`
}

type AccountMetadata struct {
	MetadataEntry
}

type MosaicMetadata struct {
	MetadataEntry
	TargetMosaic MosaicRef `json:"targetMosaic"`
}

type NamespaceMetadata struct {
	MetadataEntry
	TargetNamespaceID string `json:"targetNamespaceId"`
}

type MultisigAccountModification struct {
	MinApprovalDelta int8         `json:"minApprovalDelta"`
	MinRemovalDelta  int8         `json:"minRemovalDelta"`
	AddressAdditions []AddressRef `json:"addressAdditions"`
	AddressDeletions []AddressRef `json:"addressDeletions"`
}

type KeyLink struct {
	LinkedPublicKey string     `json:"linkedPublicKey"`
	Action          LinkAction `json:"action"`
}

type AccountKeyLink struct{ KeyLink }

type NodeKeyLink struct{ KeyLink }

type VrfKeyLink struct{ KeyLink }

type VotingKeyLink struct {
	KeyLink
	StartEpoch uint32 `json:"startEpoch"`
	EndEpoch   uint32 `json:"endEpoch"`
}

type HashLock struct {
	Mosaic   Mosaic `json:"mosaic"`
	Duration uint64 `json:"duration,string"`
	// Hash of the signed aggregate bonded payload the lock guards
	Hash string `json:"hash"`
}

type SecretLock struct {
	Recipient     AddressRef    `json:"recipient"`
	Secret        string        `json:"secret"`
	Mosaic        Mosaic        `json:"mosaic"`
	Duration      uint64        `json:"duration,string"`
	HashAlgorithm HashAlgorithm `json:"hashAlgorithm"`
}

type SecretProof struct {
	Recipient     AddressRef    `json:"recipient"`
	Secret        string        `json:"secret"`
	HashAlgorithm HashAlgorithm `json:"hashAlgorithm"`
	Proof         string        `json:"proof"`
}

type AccountAddressRestriction struct {
	Flags     RestrictionFlags `json:"flags"`
	Additions []AddressRef     `json:"additions"`
	Deletions []AddressRef     `json:"deletions"`
}

type AccountMosaicRestriction struct {
	Flags     RestrictionFlags `json:"flags"`
	Additions []MosaicRef      `json:"additions"`
	Deletions []MosaicRef      `json:"deletions"`
}

type AccountOperationRestriction struct {
	Flags     RestrictionFlags `json:"flags"`
	Additions []Kind           `json:"additions"`
	Deletions []Kind           `json:"deletions"`
}

type MosaicAddressRestriction struct {
	Mosaic         MosaicRef  `json:"mosaic"`
	RestrictionKey string     `json:"restrictionKey"`
	PreviousValue  uint64     `json:"previousValue,string"`
	NewValue       uint64     `json:"newValue,string"`
	Target         AddressRef `json:"target"`
}

type MosaicGlobalRestriction struct {
	Mosaic          MosaicRef       `json:"mosaic"`
	ReferenceMosaic MosaicRef       `json:"referenceMosaic"`
	RestrictionKey  string          `json:"restrictionKey"`
	PreviousValue   uint64          `json:"previousValue,string"`
	NewValue        uint64          `json:"newValue,string"`
	PreviousType    RestrictionType `json:"previousType"`
	NewType         RestrictionType `json:"newType"`
}

// Aggregate is the body of complete and bonded aggregates
type Aggregate struct {
	Bonded bool `json:"-"`

	InnerTransactions     []*Transaction `json:"innerTransactions"`
	CosignaturePublicKeys []string       `json:"cosignaturePublicKeys"`
	// NetAmount is the signed sum of network currency moved to or from the
	// current account by the inner transfers.
	NetAmount        *decimal.Decimal `json:"netAmount,omitempty"`
	TransactionsHash string           `json:"transactionsHash,omitempty"`

	// Bonded only: addresses that already cosigned and the signable wire object
	ReceivedCosignatures []string           `json:"receivedCosignatures,omitempty"`
	Signable             *types.Transaction `json:"-"`
}

func (*Transfer) Kind() Kind                    { return KindTransfer }
func (*MosaicDefinition) Kind() Kind            { return KindMosaicDefinition }
func (*MosaicSupplyChange) Kind() Kind          { return KindMosaicSupplyChange }
func (*MosaicSupplyRevocation) Kind() Kind      { return KindMosaicSupplyRevocation }
func (*NamespaceRegistration) Kind() Kind       { return KindNamespaceRegistration }
func (*AddressAlias) Kind() Kind                { return KindAddressAlias }
func (*MosaicAlias) Kind() Kind                 { return KindMosaicAlias }
func (*AccountMetadata) Kind() Kind             { return KindAccountMetadata }
func (*MosaicMetadata) Kind() Kind              { return KindMosaicMetadata }
func (*NamespaceMetadata) Kind() Kind           { return KindNamespaceMetadata }
func (*MultisigAccountModification) Kind() Kind { return KindMultisigAccountModification }
func (*AccountKeyLink) Kind() Kind              { return KindAccountKeyLink }
func (*NodeKeyLink) Kind() Kind                 { return KindNodeKeyLink }
func (*VrfKeyLink) Kind() Kind                  { return KindVrfKeyLink }
func (*VotingKeyLink) Kind() Kind               { return KindVotingKeyLink }
func (*HashLock) Kind() Kind                    { return KindHashLock }
func (*SecretLock) Kind() Kind                  { return KindSecretLock }
func (*SecretProof) Kind() Kind                 { return KindSecretProof }
func (*AccountAddressRestriction) Kind() Kind   { return KindAccountAddressRestriction }
func (*AccountMosaicRestriction) Kind() Kind    { return KindAccountMosaicRestriction }
func (*AccountOperationRestriction) Kind() Kind { return KindAccountOperationRestriction }
func (*MosaicAddressRestriction) Kind() Kind    { return KindMosaicAddressRestriction }
func (*MosaicGlobalRestriction) Kind() Kind     { return KindMosaicGlobalRestriction }

func (a *Aggregate) Kind() Kind {
	if a.Bonded {
		return KindAggregateBonded
	}
	return KindAggregateComplete
}

func (*Transfer) isBody()                    {}
func (*MosaicDefinition) isBody()            {}
func (*MosaicSupplyChange) isBody()          {}
func (*MosaicSupplyRevocation) isBody()      {}
func (*NamespaceRegistration) isBody()       {}
func (*AddressAlias) isBody()                {}
func (*MosaicAlias) isBody()                 {}
func (*AccountMetadata) isBody()             {}
func (*MosaicMetadata) isBody()              {}
func (*NamespaceMetadata) isBody()           {}
func (*MultisigAccountModification) isBody() {}
func (*AccountKeyLink) isBody()              {}
func (*NodeKeyLink) isBody()                 {}
func (*VrfKeyLink) isBody()                  {}
func (*VotingKeyLink) isBody()               {}
func (*HashLock) isBody()                    {}
func (*SecretLock) isBody()                  {}
func (*SecretProof) isBody()                 {}
func (*AccountAddressRestriction) isBody()   {}
func (*AccountMosaicRestriction) isBody()    {}
func (*AccountOperationRestriction) isBody() {}
func (*MosaicAddressRestriction) isBody()    {}
func (*MosaicGlobalRestriction) isBody()     {}
func (*Aggregate) isBody()                   {}

// NewBody returns an empty body for kind, or nil when the kind is not supported
func NewBody(kind Kind) Body {
	switch kind {
	case KindTransfer:
		return &Transfer{}
	case KindMosaicDefinition:
		return &MosaicDefinition{}
	case KindMosaicSupplyChange:
		return &MosaicSupplyChange{}
	case KindMosaicSupplyRevocation:
		return &MosaicSupplyRevocation{}
	case KindNamespaceRegistration:
		return &NamespaceRegistration{}
	case KindAddressAlias:
		return &AddressAlias{}
	case KindMosaicAlias:
		return &MosaicAlias{}
	case KindAccountMetadata:
		return &AccountMetadata{}
	case KindMosaicMetadata:
		return &MosaicMetadata{}
	case KindNamespaceMetadata:
		return &NamespaceMetadata{}
	case KindMultisigAccountModification:
		return &MultisigAccountModification{}
	case KindAccountKeyLink:
		return &AccountKeyLink{}
	case KindNodeKeyLink:
		return &NodeKeyLink{}
	case KindVrfKeyLink:
		return &VrfKeyLink{}
	case KindVotingKeyLink:
		return &VotingKeyLink{}
	case KindHashLock:
		return &HashLock{}
	case KindSecretLock:
		return &SecretLock{}
	case KindSecretProof:
		return &SecretProof{}
	case KindAccountAddressRestriction:
		return &AccountAddressRestriction{}
	case KindAccountMosaicRestriction:
		return &AccountMosaicRestriction{}
	case KindAccountOperationRestriction:
		return &AccountOperationRestriction{}
	case KindMosaicAddressRestriction:
		return &MosaicAddressRestriction{}
	case KindMosaicGlobalRestriction:
		return &MosaicGlobalRestriction{}
	case KindAggregateComplete:
		return &Aggregate{}
	case KindAggregateBonded:
		return &Aggregate{Bonded: true}
	}
	return nil
}
