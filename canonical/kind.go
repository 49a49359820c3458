package canonical

import (
	"encoding/json"
	"fmt"
)

// Kind is the discriminant of a canonical transaction. Its numeric value is
// the entity type the node uses for the same shape.
type Kind uint16

const (
	KindTransfer                    Kind = 0x4154
	KindMosaicDefinition            Kind = 0x414D
	KindMosaicSupplyChange          Kind = 0x424D
	KindMosaicSupplyRevocation      Kind = 0x434D
	KindNamespaceRegistration       Kind = 0x414E
	KindAddressAlias                Kind = 0x424E
	KindMosaicAlias                 Kind = 0x434E
	KindAccountMetadata             Kind = 0x4144
	KindMosaicMetadata              Kind = 0x4244
	KindNamespaceMetadata           Kind = 0x4344
	KindMultisigAccountModification Kind = 0x4155
	KindAccountKeyLink              Kind = 0x414C
	KindNodeKeyLink                 Kind = 0x424C
	KindVrfKeyLink                  Kind = 0x4243
	KindVotingKeyLink               Kind = 0x4143
	KindHashLock                    Kind = 0x4148
	KindSecretLock                  Kind = 0x4152
	KindSecretProof                 Kind = 0x4252
	KindAccountAddressRestriction   Kind = 0x4150
	KindAccountMosaicRestriction    Kind = 0x4250
	KindAccountOperationRestriction Kind = 0x4350
	KindMosaicAddressRestriction    Kind = 0x4251
	KindMosaicGlobalRestriction     Kind = 0x4151
	KindAggregateComplete           Kind = 0x4141
	KindAggregateBonded             Kind = 0x4241
)

var kindNames = map[Kind]string{
	KindTransfer:                    "transfer",
	KindMosaicDefinition:            "mosaicDefinition",
	KindMosaicSupplyChange:          "mosaicSupplyChange",
	KindMosaicSupplyRevocation:      "mosaicSupplyRevocation",
	KindNamespaceRegistration:       "namespaceRegistration",
	KindAddressAlias:                "addressAlias",
	KindMosaicAlias:                 "mosaicAlias",
	KindAccountMetadata:             "accountMetadata",
	KindMosaicMetadata:              "mosaicMetadata",
	KindNamespaceMetadata:           "namespaceMetadata",
	KindMultisigAccountModification: "multisigAccountModification",
	KindAccountKeyLink:              "accountKeyLink",
	KindNodeKeyLink:                 "nodeKeyLink",
	KindVrfKeyLink:                  "vrfKeyLink",
	KindVotingKeyLink:               "votingKeyLink",
	KindHashLock:                    "hashLock",
	KindSecretLock:                  "secretLock",
	KindSecretProof:                 "secretProof",
	KindAccountAddressRestriction:   "accountAddressRestriction",
	KindAccountMosaicRestriction:    "accountMosaicRestriction",
	KindAccountOperationRestriction: "accountOperationRestriction",
	KindMosaicAddressRestriction:    "mosaicAddressRestriction",
	KindMosaicGlobalRestriction:     "mosaicGlobalRestriction",
	KindAggregateComplete:           "aggregateComplete",
	KindAggregateBonded:             "aggregateBonded",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// Kinds returns every supported kind in entity type order
func Kinds() []Kind {
	return []Kind{
		KindAccountKeyLink, KindAccountMetadata, KindAccountAddressRestriction,
		KindAccountMosaicRestriction, KindAccountOperationRestriction,
		KindAggregateComplete, KindAggregateBonded,
		KindHashLock, KindMosaicDefinition, KindMosaicSupplyChange, KindMosaicSupplyRevocation,
		KindMosaicMetadata, KindMosaicAddressRestriction, KindMosaicGlobalRestriction,
		KindNamespaceRegistration, KindAddressAlias, KindMosaicAlias, KindNamespaceMetadata,
		KindNodeKeyLink, KindVrfKeyLink, KindVotingKeyLink,
		KindSecretLock, KindSecretProof, KindTransfer, KindMultisigAccountModification,
	}
}

// IsAggregate reports whether the kind nests other transactions
func (k Kind) IsAggregate() bool {
	return k == KindAggregateComplete || k == KindAggregateBonded
}

// Known reports whether k is one of the supported kinds
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint16(k))
}

// ParseKind returns the kind with the given name
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Known() {
		return nil, fmt.Errorf("unknown transaction kind %d", uint16(k))
	}
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown transaction kind %q", name)
	}
	*k = parsed
	return nil
}
