package canonical

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Unresolved is the address shown for a namespace alias missing from the resolution context
const Unresolved = "unresolved"

var ErrUnknownKind = errors.New("unknown transaction kind")

// Transaction is the normalized, direction agnostic transaction record
type Transaction struct {
	Kind Kind `json:"kind"`

	// Provenance, absent for transactions not yet included in a block
	Height   *uint64    `json:"height,omitempty"`
	Hash     string     `json:"hash,omitempty"`
	ID       string     `json:"id,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`

	// Fee is expressed in the network currency, nil for embedded transactions
	Fee  *decimal.Decimal `json:"fee,omitempty"`
	Size uint32           `json:"size,omitempty"`

	SignerAddress   string `json:"signerAddress,omitempty"`
	SignerPublicKey string `json:"signerPublicKey,omitempty"`

	Body Body `json:"body"`
}

// Aggregate returns the aggregate body of tx, or nil when tx is not an aggregate
func (tx *Transaction) Aggregate() *Aggregate {
	if agg, ok := tx.Body.(*Aggregate); ok {
		return agg
	}
	return nil
}

type plainTransaction Transaction

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		plainTransaction
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	body := NewBody(aux.Kind)
	if body == nil {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint16(aux.Kind))
	}
	if len(aux.Body) > 0 && string(aux.Body) != "null" {
		if err := json.Unmarshal(aux.Body, body); err != nil {
			return fmt.Errorf("decoding %s body: %w", aux.Kind, err)
		}
	}

	*tx = Transaction(aux.plainTransaction)
	tx.Body = body
	return nil
}

// MosaicRef identifies a mosaic, possibly through a namespace alias.
// ID is Unresolved when the alias is missing from the resolution context.
type MosaicRef struct {
	ID string `json:"id"`
	// NamespaceID is set when the wire record referenced the mosaic through an alias
	NamespaceID string `json:"namespaceId,omitempty"`
}

// Resolved reports whether the mosaic id is known
func (r MosaicRef) Resolved() bool {
	return r.ID != "" && r.ID != Unresolved
}

// Mosaic is an amount of a mosaic. Amount is nil when the mosaic divisibility is unknown.
type Mosaic struct {
	MosaicRef
	Name           string           `json:"name,omitempty"`
	Amount         *decimal.Decimal `json:"amount"`
	Divisibility   *uint8           `json:"divisibility,omitempty"`
	AbsoluteAmount uint64           `json:"absoluteAmount,string"`
}

// AddressRef is a recipient or target address, possibly given through a namespace alias
type AddressRef struct {
	Address     string `json:"address"`
	NamespaceID string `json:"namespaceId,omitempty"`
}

// Resolved reports whether the address is concrete
func (r AddressRef) Resolved() bool {
	return r.Address != "" && r.Address != Unresolved
}

// MessageType classifies a transfer message
type MessageType string

const (
	MessagePlain               MessageType = "plain"
	MessageEncrypted           MessageType = "encrypted"
	MessageDelegatedHarvesting MessageType = "delegatedHarvesting"
)

// Message is a transfer message. Encrypted messages only carry the ciphertext.
type Message struct {
	Type          MessageType `json:"type"`
	Text          string      `json:"text,omitempty"`
	IsEncrypted   bool        `json:"isEncrypted"`
	EncryptedText string      `json:"encryptedText,omitempty"`
	Payload       string      `json:"payload,omitempty"`
}
