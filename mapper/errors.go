package mapper

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedTransactionKind = errors.New("unsupported transaction kind")
	ErrMalformedAggregate         = errors.New("malformed aggregate")
	ErrMalformedRecord            = errors.New("malformed transaction record")
	ErrInvalidField               = errors.New("invalid field")
	ErrSignerMismatch             = errors.New("signer address does not match signer public key")
	ErrNetworkMismatch            = errors.New("network mismatch")
	ErrMissingSigner              = errors.New("missing signer public key")
	ErrMissingDeadline            = errors.New("missing deadline")
)

// KindError reports a discriminant missing from the dispatch table
type KindError struct {
	Type uint16
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %d (0x%04X)", ErrUnsupportedTransactionKind, e.Type, e.Type)
}

func (e *KindError) Unwrap() error {
	return ErrUnsupportedTransactionKind
}

func invalidField(name string, value interface{}) error {
	return fmt.Errorf("%w: %s %v", ErrInvalidField, name, value)
}
