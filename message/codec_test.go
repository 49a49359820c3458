package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/symbol-commons/symbolmap/canonical"
	"github.com/symbol-commons/symbolmap/types"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(Decode(nil))

	m := Decode(&types.Message{Type: 0, Payload: "hello"})
	assert.Equal(&canonical.Message{Type: canonical.MessagePlain, Text: "hello"}, m)

	m = Decode(&types.Message{Type: 1, Payload: "deadbeef"})
	assert.True(m.IsEncrypted)
	assert.Equal("deadbeef", m.EncryptedText)
	assert.Empty(m.Text)

	m = Decode(&types.Message{Type: 254, Payload: "2A8061577301E2"})
	assert.Equal(canonical.MessageDelegatedHarvesting, m.Type)
	assert.Equal("2A8061577301E2", m.Payload)
	assert.False(m.IsEncrypted)

	assert.Nil(Decode(&types.Message{Type: 2, Payload: "00"}))
	assert.Nil(Decode(&types.Message{Type: 255, Payload: "00"}))
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	wire, err := Encode(nil)
	assert.Nil(err)
	assert.Nil(wire)

	wire, err = Encode(&canonical.Message{Type: canonical.MessagePlain, Text: "hello"})
	assert.Nil(err)
	assert.Equal(&types.Message{Type: 0, Payload: "hello"}, wire)

	wire, err = Encode(&canonical.Message{Text: "untyped"})
	assert.Nil(err)
	assert.Equal(types.MessageTagPlain, wire.Type)

	wire, err = Encode(&canonical.Message{Type: canonical.MessageEncrypted, IsEncrypted: true, EncryptedText: "deadbeef"})
	assert.Nil(err)
	assert.Equal(&types.Message{Type: 1, Payload: "deadbeef"}, wire)

	_, err = Encode(&canonical.Message{Type: canonical.MessageEncrypted, Text: "secret in clear"})
	assert.ErrorIs(err, ErrMissingCiphertext)

	_, err = Encode(&canonical.Message{IsEncrypted: true})
	assert.ErrorIs(err, ErrMissingCiphertext)

	wire, err = Encode(&canonical.Message{Type: canonical.MessageDelegatedHarvesting, Payload: "2A8061577301E2"})
	assert.Nil(err)
	assert.Equal(types.MessageTagDelegatedHarvesting, wire.Type)

	_, err = Encode(&canonical.Message{Type: canonical.MessageDelegatedHarvesting, Payload: "zz"})
	assert.NotNil(err)

	_, err = Encode(&canonical.Message{Type: "carrier-pigeon"})
	assert.ErrorIs(err, ErrUnknownType)
}

func TestRoundTrip(t *testing.T) {
	for _, m := range []*canonical.Message{
		{Type: canonical.MessagePlain, Text: "héllo"},
		{Type: canonical.MessageEncrypted, IsEncrypted: true, EncryptedText: "AABBCC"},
		{Type: canonical.MessageDelegatedHarvesting, Payload: "2A8061577301E2"},
	} {
		wire, err := Encode(m)
		assert.NoError(t, err)
		assert.Equal(t, m, Decode(wire))
	}
}
