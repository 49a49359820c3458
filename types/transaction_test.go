package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageJSON(t *testing.T) {
	assert := assert.New(t)

	var m Message
	assert.Nil(json.Unmarshal([]byte(`"0048656C6C6F"`), &m))
	assert.Equal(MessageTagPlain, m.Type)
	assert.Equal("Hello", m.Payload)

	b, err := json.Marshal(&m)
	assert.Nil(err)
	assert.Equal(`"0048656C6C6F"`, string(b))

	assert.Nil(json.Unmarshal([]byte(`{"type":1,"payload":"deadbeef"}`), &m))
	assert.Equal(MessageTagEncrypted, m.Type)
	assert.Equal("deadbeef", m.Payload)

	b, err = json.Marshal(&m)
	assert.Nil(err)
	var back Message
	assert.Nil(json.Unmarshal(b, &back))
	assert.Equal(m, back)

	assert.Nil(json.Unmarshal([]byte(`"FE2A8061577301E2"`), &m))
	assert.Equal(MessageTagDelegatedHarvesting, m.Type)
	assert.Equal("2A8061577301E2", m.Payload)
	size, err := m.Size()
	assert.Nil(err)
	assert.Equal(8, size)

	// legacy plain payloads are text even when they look like hex
	assert.Nil(json.Unmarshal([]byte(`{"type":0,"payload":"cafe"}`), &m))
	assert.Equal(MessageTagPlain, m.Type)
	assert.Equal("cafe", m.Payload)
	b, err = json.Marshal(&m)
	assert.Nil(err)
	assert.Equal(`"0063616665"`, string(b))

	assert.NotNil(json.Unmarshal([]byte(`"XYZ"`), &m))

	m = Message{Type: 7, Payload: "not hex"}
	_, err = json.Marshal(&m)
	assert.NotNil(err)
}

func TestRecordJSON(t *testing.T) {
	raw := `{
		"meta": {"height": "1000", "hash": "AA", "index": 2, "feeMultiplier": 100},
		"transaction": {
			"size": 176,
			"signerPublicKey": "3B6A27BCCEB6A42D62A3A8D02A6F0D73653215771DE243A63AC048A18B59DA29",
			"version": 1, "network": 152, "type": 16724,
			"maxFee": "17600", "deadline": "1000",
			"recipientAddress": "98E521BD0F024F58E670A023BF3A14F3BECAF0280396BED0",
			"mosaics": [{"id": "72C0212E67A08BCE", "amount": "1000000"}],
			"restrictionAdditions": ["98E521BD0F024F58E670A023BF3A14F3BECAF0280396BED0", 16724]
		},
		"id": "5F7F"
	}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, "1000", rec.Meta.Height)
	assert.Equal(t, uint32(2), rec.Meta.Index)
	assert.Equal(t, TypeTransfer, rec.Transaction.Type)
	assert.Len(t, rec.Transaction.Mosaics, 1)
	assert.Nil(t, rec.Transaction.Message)
	assert.Len(t, rec.Transaction.RestrictionAdditions, 2)
	assert.Equal(t, "16724", string(rec.Transaction.RestrictionAdditions[1]))
}

func TestSize(t *testing.T) {
	assert := assert.New(t)

	transfer := &Transaction{
		Type:    TypeTransfer,
		Mosaics: []Mosaic{{ID: "72C0212E67A08BCE", Amount: "1"}},
	}
	size, err := Size(transfer)
	assert.Nil(err)
	assert.Equal(uint32(176), size)

	transfer.Message = &Message{Type: MessageTagPlain, Payload: "Hello"}
	size, err = Size(transfer)
	assert.Nil(err)
	assert.Equal(uint32(182), size)

	size, err = EmbeddedSize(transfer)
	assert.Nil(err)
	assert.Equal(uint32(102), size)

	aggregate := &Transaction{
		Type: TypeAggregateBonded,
		Transactions: []*Record{
			{Transaction: transfer},
			{Transaction: &Transaction{Type: TypeAccountKeyLink}},
		},
		Cosignatures: []Cosignature{{SignerPublicKey: "AA"}},
	}
	payload, err := InnerPayloadSize(aggregate.Transactions)
	assert.Nil(err)
	// 102 and 81 padded to 104 and 88
	assert.Equal(uint32(192), payload)

	size, err = Size(aggregate)
	assert.Nil(err)
	assert.Equal(uint32(128+40+192+104), size)

	_, err = Size(&Transaction{Type: 0x1234})
	assert.ErrorIs(err, ErrUnknownType)

	_, err = InnerPayloadSize([]*Record{nil})
	assert.NotNil(err)

	assert.True(aggregate.IsAggregate())
	assert.False(transfer.IsAggregate())
}
