package crypto

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/cosmos-sdk/std"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/ZigZeron/CosmoWallet/pkg/crypto/ethsecp256k1"
)

// KeyringParams holds configuration for initializing a Cosmos keyring.
type KeyringParams struct {
	// AppName names the keyring namespace. Default: "cosmowallet"
	AppName string
	// Backend selects the keyring backend ("os" | "file" | "test"). Default: "os"
	Backend string
	// Dir is the root directory for the keyring (if Backend="file"). Default: $HOME/.cosmowallet
	Dir string
	// Input is an optional io.Reader for interactive backends (nil for non-interactive)
	Input io.Reader
}

// DefaultKeyringParams returns sensible defaults:
//   - AppName: "cosmowallet"
//   - Backend: "os"
//   - Dir: $HOME/.cosmowallet
func DefaultKeyringParams() KeyringParams {
	home, _ := os.UserHomeDir()
	return KeyringParams{
		AppName: "cosmowallet",
		Backend: "os",
		Dir:     filepath.Join(home, ".cosmowallet"),
		Input:   nil,
	}
}

// NewKeyring creates a new Cosmos keyring with the provided parameters.
func NewKeyring(p KeyringParams) (keyring.Keyring, error) {
	app := p.AppName
	if app == "" {
		app = "cosmowallet"
	}
	backend := p.Backend
	if backend == "" {
		backend = "os"
	}
	dir := p.Dir
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cosmowallet")
	}
	in := p.Input
	if in == nil {
		in = bufio.NewReader(os.Stdin)
	}

	// Create a proto codec for keyring operations
	reg := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(reg)
	cdc := codec.NewProtoCodec(reg)

	return keyring.New(app, backend, dir, in, cdc)
}

// NewTxConfig constructs a client.TxConfig backed by a protobuf codec,
// registering the staking and distribution message interfaces the wallet
// signs and encodes. The ethermint-family key type is registered alongside
// the standard crypto codecs so Injective and Evmos accounts decode.
func NewTxConfig() client.TxConfig {
	reg := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(reg)
	ethsecp256k1.RegisterInterfaces(reg)
	authtypes.RegisterInterfaces(reg)
	stakingtypes.RegisterInterfaces(reg)
	distrtypes.RegisterInterfaces(reg)

	proto := codec.NewProtoCodec(reg)
	return authtx.NewTxConfig(proto, authtx.DefaultSignModes)
}
