package message

import (
	"errors"
	"fmt"

	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/types"
)

var (
	ErrMissingCiphertext = errors.New("encrypted message requires a pre-encrypted payload")
	ErrUnknownType       = errors.New("unknown message type")
)

// Classify maps a wire tag to a message type. Unknown tags return false:
// newer protocol versions may add tags and those messages are suppressed
// rather than rejected.
func Classify(tag uint8) (canonical.MessageType, bool) {
	switch tag {
	case types.MessageTagPlain:
		return canonical.MessagePlain, true
	case types.MessageTagEncrypted:
		return canonical.MessageEncrypted, true
	case types.MessageTagDelegatedHarvesting:
		return canonical.MessageDelegatedHarvesting, true
	}
	return "", false
}

// Decode converts a wire message. Encrypted messages are never decrypted here;
// only the ciphertext is exposed. A nil result means no (displayable) message.
func Decode(m *types.Message) *canonical.Message {
	if m == nil {
		return nil
	}

	kind, ok := Classify(m.Type)
	if !ok {
		return nil
	}

	switch kind {
	case canonical.MessagePlain:
		return &canonical.Message{Type: kind, Text: m.Payload}
	case canonical.MessageEncrypted:
		return &canonical.Message{Type: kind, IsEncrypted: true, EncryptedText: m.Payload}
	default:
		return &canonical.Message{Type: kind, Payload: m.Payload}
	}
}

// Encode converts a canonical message back to its wire form. Plain text is
// passed through; encrypted messages must already carry their ciphertext.
func Encode(m *canonical.Message) (*types.Message, error) {
	if m == nil {
		return nil, nil
	}

	switch m.Type {
	case canonical.MessagePlain, "":
		if m.IsEncrypted {
			return encodeEncrypted(m)
		}
		return &types.Message{Type: types.MessageTagPlain, Payload: m.Text}, nil
	case canonical.MessageEncrypted:
		return encodeEncrypted(m)
	case canonical.MessageDelegatedHarvesting:
		wire := &types.Message{Type: types.MessageTagDelegatedHarvesting, Payload: m.Payload}
		if _, err := wire.PayloadBytes(); err != nil || m.Payload == "" {
			return nil, fmt.Errorf("delegated harvesting message needs a hex payload")
		}
		return wire, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
}

func encodeEncrypted(m *canonical.Message) (*types.Message, error) {
	if m.EncryptedText == "" {
		return nil, ErrMissingCiphertext
	}
	return &types.Message{Type: types.MessageTagEncrypted, Payload: m.EncryptedText}, nil
}
