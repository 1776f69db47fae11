package crypto

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/cosmos/go-bip39"
	"github.com/stretchr/testify/require"
)

var testMnemonic = func() string {
	entropy := make([]byte, 32)
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		panic(err)
	}
	return mnemonic
}()

func TestDefaultKeyringParams(t *testing.T) {
	params := DefaultKeyringParams()
	require.Equal(t, "cosmowallet", params.AppName)
	require.Equal(t, "os", params.Backend)
	if home, err := os.UserHomeDir(); err == nil {
		require.Equal(t, filepath.Join(home, ".cosmowallet"), params.Dir)
	}
}

func TestNewKeyring(t *testing.T) {
	kr := newTestKeyring(t)
	require.NotNil(t, kr)
	_, err := kr.Key("missing")
	require.Error(t, err)
}

func TestAddressFromKey(t *testing.T) {
	kr := newTestKeyring(t)
	_, err := kr.NewAccount("alice", testMnemonic, "", sdk.FullFundraiserPath, hd.Secp256k1)
	require.NoError(t, err)

	addr, err := AddressFromKey(kr, "alice", "cosmos")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(addr, "cosmos"))

	// Same key, different prefix: only the encoding changes.
	osmoAddr, err := AddressFromKey(kr, "alice", "osmo")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(osmoAddr, "osmo"))
	require.NotEqual(t, addr, osmoAddr)

	_, err = AddressFromKey(nil, "alice", "cosmos")
	require.Error(t, err)
	_, err = AddressFromKey(kr, "", "cosmos")
	require.Error(t, err)
	_, err = AddressFromKey(kr, "missing", "cosmos")
	require.Error(t, err)
}

func TestNewTxConfig(t *testing.T) {
	txCfg := NewTxConfig()
	require.NotNil(t, txCfg)

	builder := txCfg.NewTxBuilder()
	require.NotNil(t, builder)
}

func TestKeyringSigner(t *testing.T) {
	kr := newTestKeyring(t)
	_, err := kr.NewAccount("alice", testMnemonic, "", sdk.FullFundraiserPath, hd.Secp256k1)
	require.NoError(t, err)

	signer, err := NewKeyringSigner(kr, "alice", "cosmos")
	require.NoError(t, err)

	acct, err := signer.Account(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(acct.Address, "cosmos"))
	require.NotNil(t, acct.PubKey)

	sig, err := signer.Sign(context.Background(), signing.SignMode_SIGN_MODE_DIRECT, []byte("sign bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, sig)
	require.True(t, acct.PubKey.VerifySignature([]byte("sign bytes"), sig))
}

func TestNewKeyringSignerValidation(t *testing.T) {
	kr := newTestKeyring(t)

	_, err := NewKeyringSigner(nil, "alice", "cosmos")
	require.Error(t, err)
	_, err = NewKeyringSigner(kr, "", "cosmos")
	require.Error(t, err)
}

func newTestKeyring(t *testing.T) keyring.Keyring {
	t.Helper()
	kr, err := NewKeyring(KeyringParams{
		AppName: "cosmowallet",
		Backend: "test",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)
	return kr
}
