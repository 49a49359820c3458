package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
)

const (
	testPublicKey    = "3B6A27BCCEB6A42D62A3A8D02A6F0D73653215771DE243A63AC048A18B59DA29"
	currencyAlias    = "E74B99BA41F4AFEE"
	currencyMosaicID = "72C0212E67A08BCE"
	accountAlias     = "D4A2D8F4E1A0B3C2"
)

func testAddress(t *testing.T) string {
	addr, err := address.FromPublicKey(testPublicKey, address.TestNet)
	require.NoError(t, err)
	return addr
}

func TestResolveAddress(t *testing.T) {
	assert := assert.New(t)
	addr := testAddress(t)
	raw, err := address.ToRaw(addr)
	require.NoError(t, err)

	ctx := New(map[string]string{accountAlias: addr}, nil)

	ref, err := ctx.ResolveAddress(raw)
	assert.Nil(err)
	assert.Equal(canonical.AddressRef{Address: addr}, ref)

	ref, err = ctx.ResolveAddress(addr)
	assert.Nil(err)
	assert.Equal(addr, ref.Address)

	alias, err := address.AliasToRaw(accountAlias, address.TestNet)
	require.NoError(t, err)
	ref, err = ctx.ResolveAddress(alias)
	assert.Nil(err)
	assert.Equal(canonical.AddressRef{Address: addr, NamespaceID: accountAlias}, ref)
	assert.True(ref.Resolved())

	var empty *Context
	ref, err = empty.ResolveAddress(alias)
	assert.Nil(err)
	assert.Equal(canonical.Unresolved, ref.Address)
	assert.Equal(accountAlias, ref.NamespaceID)
	assert.False(ref.Resolved())

	_, err = ctx.ResolveAddress("nonsense")
	assert.ErrorIs(err, address.ErrInvalidAddress)
}

func TestResolveAddressPretty(t *testing.T) {
	addr := testAddress(t)
	var pretty []string
	for i := 0; i < len(addr); i += 6 {
		end := i + 6
		if end > len(addr) {
			end = len(addr)
		}
		pretty = append(pretty, addr[i:end])
	}

	for _, in := range []string{strings.Join(pretty, "-"), strings.ToLower(addr)} {
		ref, err := New(nil, nil).ResolveAddress(in)
		require.NoError(t, err, in)
		assert.Equal(t, canonical.AddressRef{Address: addr}, ref, in)
	}
}

func TestResolveMosaic(t *testing.T) {
	assert := assert.New(t)

	ctx := New(map[string]string{"e74b99ba41f4afee": currencyMosaicID}, nil)

	ref, err := ctx.ResolveMosaic(currencyAlias)
	assert.Nil(err)
	assert.Equal(canonical.MosaicRef{ID: currencyMosaicID, NamespaceID: currencyAlias}, ref)

	ref, err = ctx.ResolveMosaic("72c0212e67a08bce")
	assert.Nil(err)
	assert.Equal(canonical.MosaicRef{ID: currencyMosaicID}, ref)

	ref, err = New(nil, nil).ResolveMosaic(currencyAlias)
	assert.Nil(err)
	assert.False(ref.Resolved())
	assert.Equal(currencyAlias, ref.NamespaceID)

	// an alias pointing at an address does not resolve a mosaic
	ref, err = New(map[string]string{currencyAlias: testAddress(t)}, nil).ResolveMosaic(currencyAlias)
	assert.Nil(err)
	assert.False(ref.Resolved())

	_, err = ctx.ResolveMosaic("")
	assert.NotNil(err)
}

func TestContextIsImmutable(t *testing.T) {
	assert := assert.New(t)

	aliases := map[string]string{currencyAlias: currencyMosaicID}
	assets := map[string]AssetInfo{currencyMosaicID: {Divisibility: 6, Names: []string{"symbol.xym"}}}
	ctx := New(aliases, assets)

	aliases[currencyAlias] = "0000000000000001"
	assets[currencyMosaicID] = AssetInfo{Divisibility: 2}

	info, ok := ctx.Asset(currencyMosaicID)
	assert.True(ok)
	assert.Equal(uint8(6), info.Divisibility)
	target, ok := ctx.Alias(currencyAlias)
	assert.True(ok)
	assert.Equal(currencyMosaicID, target)

	refreshed := ctx.WithAssets(map[string]AssetInfo{"0000000000000ABC": {Divisibility: 0}})
	_, ok = ctx.Asset("ABC")
	assert.False(ok)
	_, ok = refreshed.Asset("abc")
	assert.True(ok)

	refreshed = ctx.WithAliases(map[string]string{accountAlias: testAddress(t)})
	_, ok = ctx.Alias(accountAlias)
	assert.False(ok)
	_, ok = refreshed.Alias(accountAlias)
	assert.True(ok)

	snap := ctx.Snapshot()
	snap.AssetInfo[currencyMosaicID].Names[0] = "changed"
	info, _ = ctx.Asset(currencyMosaicID)
	assert.Equal("symbol.xym", info.Names[0])
}
