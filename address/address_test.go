package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "3B6A27BCCEB6A42D62A3A8D02A6F0D73653215771DE243A63AC048A18B59DA29"

func TestFromPublicKey(t *testing.T) {
	assert := assert.New(t)

	main, err := FromPublicKey(testPublicKey, MainNet)
	assert.Nil(err)
	assert.Len(main, EncodedSize)
	assert.True(strings.HasPrefix(main, "N"))
	assert.True(IsValid(main))

	test, err := FromPublicKey(strings.ToLower(testPublicKey), TestNet)
	assert.Nil(err)
	assert.True(strings.HasPrefix(test, "T"))
	assert.NotEqual(main, test)

	network, err := Network(test)
	assert.Nil(err)
	assert.Equal(TestNet, network)

	_, err = FromPublicKey("ABCD", MainNet)
	assert.ErrorIs(err, ErrInvalidPublicKey)
	_, err = FromPublicKey("zz", MainNet)
	assert.ErrorIs(err, ErrInvalidPublicKey)
}

func TestRawRoundTrip(t *testing.T) {
	assert := assert.New(t)

	addr, err := FromPublicKey(testPublicKey, TestNet)
	require.NoError(t, err)

	raw, err := ToRaw(addr)
	assert.Nil(err)
	assert.Len(raw, RawSize*2)
	assert.Equal("98", raw[:2])
	assert.False(IsAliasAddress(raw))

	back, err := FromRaw(raw)
	assert.Nil(err)
	assert.Equal(addr, back)

	back, err = FromRaw(strings.ToLower(raw))
	assert.Nil(err)
	assert.Equal(addr, back)

	dashed := addr[:6] + "-" + addr[6:12] + "-" + addr[12:]
	assert.True(IsValid(dashed))

	corrupted := []byte(raw)
	if corrupted[47] == '0' {
		corrupted[47] = '1'
	} else {
		corrupted[47] = '0'
	}
	_, err = FromRaw(string(corrupted))
	assert.ErrorIs(err, ErrInvalidAddress)

	_, err = ToRaw("TAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	assert.ErrorIs(err, ErrInvalidAddress)
	assert.False(IsValid("short"))
}

func TestAlias(t *testing.T) {
	assert := assert.New(t)

	raw, err := AliasToRaw("E74B99BA41F4AFEE", TestNet)
	assert.Nil(err)
	assert.Equal("99EEAFF441BA994BE7000000000000000000000000000000", raw)
	assert.True(IsAliasAddress(raw))

	id, err := NamespaceIDFromAlias(raw)
	assert.Nil(err)
	assert.Equal("E74B99BA41F4AFEE", id)

	_, err = FromRaw(raw)
	assert.ErrorIs(err, ErrInvalidAddress)

	_, err = NamespaceIDFromAlias("98" + strings.Repeat("0", 46))
	assert.ErrorIs(err, ErrInvalidAddress)

	assert.False(IsAliasAddress(""))
	assert.False(IsAliasAddress("zz"))
}

func TestIDs(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsAliasMosaicID("E74B99BA41F4AFEE"))
	assert.False(IsAliasMosaicID("6BED913FA20223F8"))
	assert.False(IsAliasMosaicID("nothex"))

	id, err := NormalizeID("abc")
	assert.Nil(err)
	assert.Equal("0000000000000ABC", id)

	_, err = ParseID("")
	assert.NotNil(err)
	_, err = ParseID("11112222333344445")
	assert.NotNil(err)
}
