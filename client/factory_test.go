package client

import (
	"context"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZigZeron/CosmoWallet/pkg/crypto"
	"github.com/ZigZeron/CosmoWallet/registry"
)

func testKeyring(t *testing.T) keyring.Keyring {
	t.Helper()

	kr, err := crypto.NewKeyring(crypto.KeyringParams{
		AppName: "cosmowallet-test",
		Backend: "test",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)
	return kr
}

func TestNewFactoryRequiresKeyring(t *testing.T) {
	_, err := NewFactory(DefaultConfig(), nil)
	require.Error(t, err)
}

func TestWithSignerValidatesIdentity(t *testing.T) {
	f, err := NewFactory(DefaultConfig(), testKeyring(t))
	require.NoError(t, err)

	_, err = f.WithSigner(context.Background(), "", "my-key")
	assert.Error(t, err)

	_, err = f.WithSigner(context.Background(), "cosmos1abc", "")
	assert.Error(t, err)
}

func TestWithSignerMintsBoundClient(t *testing.T) {
	f, err := NewFactory(DefaultConfig(), testKeyring(t), WithGasAdjustment(2.0))
	require.NoError(t, err)

	c, err := f.WithSigner(context.Background(), "cosmos1abc", "my-key",
		WithNetwork(registry.NetworkTestnet))
	require.NoError(t, err)
	defer c.Close() //nolint:errcheck

	cfg := c.Config()
	assert.Equal(t, "cosmos1abc", cfg.Address)
	assert.Equal(t, "my-key", cfg.KeyName)
	assert.Equal(t, 2.0, cfg.GasAdjustment)
	assert.Equal(t, registry.NetworkTestnet, cfg.Network)
	assert.NotNil(t, c.Signer())
}

func TestWithSignerKeepsBaseConfigClean(t *testing.T) {
	f, err := NewFactory(DefaultConfig(), testKeyring(t))
	require.NoError(t, err)

	first, err := f.WithSigner(context.Background(), "cosmos1first", "first-key")
	require.NoError(t, err)
	defer first.Close() //nolint:errcheck

	// Per-client options on one signer must not leak into the next.
	second, err := f.WithSigner(context.Background(), "cosmos1second", "second-key",
		WithGasTier(registry.GasTierHigh))
	require.NoError(t, err)
	defer second.Close() //nolint:errcheck

	assert.Equal(t, "cosmos1first", first.Config().Address)
	assert.Equal(t, "cosmos1second", second.Config().Address)
	assert.NotEqual(t, first.Config().GasTier, second.Config().GasTier)
}
