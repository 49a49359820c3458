package mapper

import (
	"fmt"

	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/types"
)

type decodeFunc func(in *inbound, tx *types.Transaction) (canonical.Body, error)

type encodeFunc func(out *outbound, body canonical.Body, tx *types.Transaction) error

// converter is the dispatch entry of one kind
type converter struct {
	version  uint8
	fromWire decodeFunc
	toWire   encodeFunc
}

// converters is filled in init: the aggregate converters dispatch back
// through the table.
var converters map[canonical.Kind]converter

func init() {
	converters = map[canonical.Kind]converter{
		canonical.KindTransfer:                    {1, decodeAs((*inbound).transfer), encodeAs((*outbound).transfer)},
		canonical.KindMosaicDefinition:            {1, decodeAs((*inbound).mosaicDefinition), encodeAs((*outbound).mosaicDefinition)},
		canonical.KindMosaicSupplyChange:          {1, decodeAs((*inbound).mosaicSupplyChange), encodeAs((*outbound).mosaicSupplyChange)},
		canonical.KindMosaicSupplyRevocation:      {1, decodeAs((*inbound).mosaicSupplyRevocation), encodeAs((*outbound).mosaicSupplyRevocation)},
		canonical.KindNamespaceRegistration:       {1, decodeAs((*inbound).namespaceRegistration), encodeAs((*outbound).namespaceRegistration)},
		canonical.KindAddressAlias:                {1, decodeAs((*inbound).addressAlias), encodeAs((*outbound).addressAlias)},
		canonical.KindMosaicAlias:                 {1, decodeAs((*inbound).mosaicAlias), encodeAs((*outbound).mosaicAlias)},
		canonical.KindAccountMetadata:             {1, decodeAs((*inbound).accountMetadata), encodeAs((*outbound).accountMetadata)},
		canonical.KindMosaicMetadata:              {1, decodeAs((*inbound).mosaicMetadata), encodeAs((*outbound).mosaicMetadata)},
		canonical.KindNamespaceMetadata:           {1, decodeAs((*inbound).namespaceMetadata), encodeAs((*outbound).namespaceMetadata)},
		canonical.KindMultisigAccountModification: {1, decodeAs((*inbound).multisigAccountModification), encodeAs((*outbound).multisigAccountModification)},
		canonical.KindAccountKeyLink:              {1, decodeAs((*inbound).accountKeyLink), encodeAs((*outbound).accountKeyLink)},
		canonical.KindNodeKeyLink:                 {1, decodeAs((*inbound).nodeKeyLink), encodeAs((*outbound).nodeKeyLink)},
		canonical.KindVrfKeyLink:                  {1, decodeAs((*inbound).vrfKeyLink), encodeAs((*outbound).vrfKeyLink)},
		canonical.KindVotingKeyLink:               {1, decodeAs((*inbound).votingKeyLink), encodeAs((*outbound).votingKeyLink)},
		canonical.KindHashLock:                    {1, decodeAs((*inbound).hashLock), encodeAs((*outbound).hashLock)},
		canonical.KindSecretLock:                  {1, decodeAs((*inbound).secretLock), encodeAs((*outbound).secretLock)},
		canonical.KindSecretProof:                 {1, decodeAs((*inbound).secretProof), encodeAs((*outbound).secretProof)},
		canonical.KindAccountAddressRestriction:   {1, decodeAs((*inbound).accountAddressRestriction), encodeAs((*outbound).accountAddressRestriction)},
		canonical.KindAccountMosaicRestriction:    {1, decodeAs((*inbound).accountMosaicRestriction), encodeAs((*outbound).accountMosaicRestriction)},
		canonical.KindAccountOperationRestriction: {1, decodeAs((*inbound).accountOperationRestriction), encodeAs((*outbound).accountOperationRestriction)},
		canonical.KindMosaicAddressRestriction:    {1, decodeAs((*inbound).mosaicAddressRestriction), encodeAs((*outbound).mosaicAddressRestriction)},
		canonical.KindMosaicGlobalRestriction:     {1, decodeAs((*inbound).mosaicGlobalRestriction), encodeAs((*outbound).mosaicGlobalRestriction)},
		canonical.KindAggregateComplete:           {2, decodeAs((*inbound).aggregate), encodeAs((*outbound).aggregate)},
		canonical.KindAggregateBonded:             {2, decodeAs((*inbound).aggregate), encodeAs((*outbound).aggregate)},
	}
}

// Supported reports whether kind has a converter
func Supported(kind canonical.Kind) bool {
	_, ok := converters[kind]
	return ok
}

func decodeAs[B canonical.Body](f func(*inbound, *types.Transaction) (B, error)) decodeFunc {
	return func(in *inbound, tx *types.Transaction) (canonical.Body, error) {
		body, err := f(in, tx)
		if err != nil {
			return nil, err
		}
		return body, nil
	}
}

func encodeAs[B canonical.Body](f func(*outbound, B, *types.Transaction) error) encodeFunc {
	return func(out *outbound, body canonical.Body, tx *types.Transaction) error {
		typed, ok := body.(B)
		if !ok {
			return fmt.Errorf("%w: body %T", ErrInvalidField, body)
		}
		return f(out, typed, tx)
	}
}

// enum maps the wire value of a small enumeration (its index) to its canonical value
type enum[T comparable] []T

func (e enum[T]) fromWire(name string, v uint8) (T, error) {
	if int(v) < len(e) {
		return e[v], nil
	}
	var zero T
	return zero, invalidField(name, v)
}

func (e enum[T]) toWire(name string, v T) (uint8, error) {
	for i, candidate := range e {
		if candidate == v {
			return uint8(i), nil
		}
	}
	return 0, invalidField(name, v)
}

var (
	linkActions       = enum[canonical.LinkAction]{canonical.Unlink, canonical.Link}
	supplyActions     = enum[canonical.SupplyAction]{canonical.SupplyDecrease, canonical.SupplyIncrease}
	registrationTypes = enum[canonical.RegistrationType]{canonical.RootNamespace, canonical.ChildNamespace}
	hashAlgorithms    = enum[canonical.HashAlgorithm]{canonical.HashSHA3256, canonical.HashHash160, canonical.HashHash256}
	restrictionTypes  = enum[canonical.RestrictionType]{
		canonical.RestrictionNone,
		canonical.RestrictionEQ,
		canonical.RestrictionNE,
		canonical.RestrictionLT,
		canonical.RestrictionLE,
		canonical.RestrictionGT,
		canonical.RestrictionGE,
	}
)
