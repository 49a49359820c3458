package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Message tags carried in the first byte of a transfer message
const (
	MessageTagPlain               uint8 = 0
	MessageTagEncrypted           uint8 = 1
	MessageTagDelegatedHarvesting uint8 = 254
)

// Message is a transfer message as carried on the wire. Payload holds the
// message text for plain and encrypted messages (the ciphertext of encrypted
// messages is itself hex text) and hex bytes for every other tag.
type Message struct {
	Type    uint8  `json:"type"`
	Payload string `json:"payload"`
}

// PayloadBytes returns the bytes following the tag byte
func (m *Message) PayloadBytes() ([]byte, error) {
	switch m.Type {
	case MessageTagPlain, MessageTagEncrypted:
		return []byte(m.Payload), nil
	}
	b, err := hex.DecodeString(m.Payload)
	if err != nil {
		return nil, fmt.Errorf("message payload is not hex: %w", err)
	}
	return b, nil
}

// Size returns the serialized size of the message including its tag byte
func (m *Message) Size() (int, error) {
	b, err := m.PayloadBytes()
	if err != nil {
		return 0, err
	}
	return 1 + len(b), nil
}

// MarshalJSON encodes the message as the node does: one hex string, tag byte first
func (m *Message) MarshalJSON() ([]byte, error) {
	b, err := m.PayloadBytes()
	if err != nil {
		return nil, err
	}
	raw := append([]byte{m.Type}, b...)
	return json.Marshal(strings.ToUpper(hex.EncodeToString(raw)))
}

// UnmarshalJSON accepts the hex string form and the legacy {type, payload}
// object. The legacy payload is taken as it is: text for plain and encrypted
// messages, hex for the other tags. A legacy plain payload that was emitted
// hex encoded therefore reads back as its hex text.
func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var legacy struct {
			Type    uint8  `json:"type"`
			Payload string `json:"payload"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		m.Type = legacy.Type
		m.Payload = legacy.Payload
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("message is not hex: %w", err)
	}
	if len(raw) == 0 {
		*m = Message{}
		return nil
	}

	m.Type = raw[0]
	switch m.Type {
	case MessageTagPlain, MessageTagEncrypted:
		m.Payload = string(raw[1:])
	default:
		m.Payload = strings.ToUpper(hex.EncodeToString(raw[1:]))
	}
	return nil
}
