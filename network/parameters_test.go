package network

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/canonical"
)

func TestBuiltin(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(MainNet.Validate())
	assert.Nil(TestNet.Validate())

	p, ok := Builtin("testnet")
	assert.True(ok)
	assert.Equal(address.TestNet, p.Type)

	_, ok = Builtin("devnet")
	assert.False(ok)

	assert.ErrorIs(Parameters{}.Validate(), ErrInvalidParameters)

	bad := TestNet
	bad.Divisibility = 9
	assert.ErrorIs(bad.Validate(), ErrInvalidParameters)
}

func TestIsCurrency(t *testing.T) {
	assert := assert.New(t)

	assert.True(TestNet.IsCurrency(canonical.MosaicRef{ID: "72C0212E67A08BCE"}))
	assert.True(TestNet.IsCurrency(canonical.MosaicRef{ID: "72c0212e67a08bce"}))
	assert.True(TestNet.IsCurrency(canonical.MosaicRef{ID: canonical.Unresolved, NamespaceID: "E74B99BA41F4AFEE"}))
	assert.False(TestNet.IsCurrency(canonical.MosaicRef{ID: "6BED913FA20223F8"}))
	assert.False(TestNet.IsCurrency(canonical.MosaicRef{ID: canonical.Unresolved, NamespaceID: "85BBEA6CC462B244"}))
}

func TestDeadlineFrom(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(2*time.Hour), TestNet.DeadlineFrom(now))
	assert.Equal(t, now.Add(DefaultDeadline), Parameters{}.DeadlineFrom(now))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "networks.toml")
	content := `
default = "local"

[networks.testnet]
node_url = "https://testnet.example:3001"
deadline = "30m"

[networks.local]
type = 152
epoch_adjustment = 1700000000
currency_mosaic_id = "1234567890ABCDEF"
divisibility = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profiles, err := Load(path)
	require.NoError(t, err)

	testnet, err := profiles.Lookup("testnet")
	require.NoError(t, err)
	assert.Equal(t, "https://testnet.example:3001", testnet.NodeURL)
	assert.Equal(t, 30*time.Minute, testnet.Deadline.Duration)
	assert.Equal(t, TestNet.CurrencyMosaicID, testnet.CurrencyMosaicID)
	assert.Equal(t, uint8(6), testnet.Divisibility)

	local, err := profiles.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "local", local.Name)
	assert.Equal(t, uint8(3), local.Divisibility)
	assert.Equal(t, int64(1700000000), local.EpochAdjustment)
	assert.Equal(t, DefaultDeadline, local.Deadline.Duration)

	mainnet, err := profiles.Lookup("mainnet")
	require.NoError(t, err)
	assert.Equal(t, MainNet, mainnet)

	_, err = profiles.Lookup("nowhere")
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
