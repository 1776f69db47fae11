package ledger

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	"go.uber.org/zap"

	"github.com/ZigZeron/CosmoWallet/types"
)

// DeviceApp is the Cosmos app running on the device. Implementations return
// 64-byte r||s signatures; DER conversion is the transport layer's concern.
type DeviceApp interface {
	GetAddressAndPubKey(path []uint32, hrp string) (address string, pubKey []byte, err error)
	SignSecp256k1(path []uint32, signBytes []byte) ([]byte, error)
}

// AppFactory binds the Cosmos app protocol onto an open transport.
type AppFactory func(Transport) (DeviceApp, error)

// DerivationPath returns the Cosmos HD path for the given account index.
func DerivationPath(index uint32) []uint32 {
	return []uint32{44, 118, 0, 0, index}
}

// Signer signs staking transactions with a Ledger device. The device only
// renders amino-JSON sign docs, so direct-mode requests are rejected before
// touching hardware.
type Signer struct {
	sessions *SessionManager
	newApp   AppFactory
	path     []uint32
	hrp      string
	logger   *zap.Logger
}

// NewSigner creates a device signer for one account path and bech32 prefix.
func NewSigner(sessions *SessionManager, newApp AppFactory, path []uint32, hrp string, logger *zap.Logger) (*Signer, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if newApp == nil {
		return nil, fmt.Errorf("app factory is required")
	}
	if len(path) == 0 {
		path = DerivationPath(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Signer{
		sessions: sessions,
		newApp:   newApp,
		path:     path,
		hrp:      hrp,
		logger:   logger.Named("ledger_signer"),
	}, nil
}

// Hardware marks this signer as blocking on a physical device.
func (s *Signer) Hardware() bool { return true }

// Account reads the account address and public key from the device.
func (s *Signer) Account(ctx context.Context) (types.AccountData, error) {
	app, err := s.app(ctx)
	if err != nil {
		return types.AccountData{}, err
	}
	addr, pubKey, err := app.GetAddressAndPubKey(s.path, s.hrp)
	if err != nil {
		return types.AccountData{}, s.fail(err)
	}
	return types.AccountData{
		Address: addr,
		PubKey:  &secp256k1.PubKey{Key: pubKey},
	}, nil
}

// Sign signs an amino-JSON sign doc on the device. The call blocks until
// the user confirms or rejects on the device; it cannot be cancelled from
// software.
func (s *Signer) Sign(ctx context.Context, mode signingtypes.SignMode, signBytes []byte) ([]byte, error) {
	if mode != signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON {
		return nil, fmt.Errorf("ledger only signs amino-json docs: %w", types.ErrUnsupportedSignMode)
	}
	app, err := s.app(ctx)
	if err != nil {
		return nil, err
	}
	sig, err := app.SignSecp256k1(s.path, signBytes)
	if err != nil {
		return nil, s.fail(err)
	}
	return sig, nil
}

// ImportAccounts derives addresses for each chain prefix from the device's
// primary-account public keys at the given indexes. The session is closed
// afterwards: account import is a one-shot setup flow.
func (s *Signer) ImportAccounts(ctx context.Context, indexes []uint32, prefixes map[string]string) (map[string][]types.AccountData, error) {
	if len(indexes) == 0 {
		indexes = []uint32{0, 1, 2, 3}
	}
	app, err := s.app(ctx)
	if err != nil {
		return nil, err
	}

	primary := make([]*secp256k1.PubKey, 0, len(indexes))
	for _, idx := range indexes {
		_, pubKey, err := app.GetAddressAndPubKey(DerivationPath(idx), s.hrp)
		if err != nil {
			return nil, s.fail(err)
		}
		primary = append(primary, &secp256k1.PubKey{Key: pubKey})
	}

	byChain := make(map[string][]types.AccountData, len(prefixes))
	for chain, prefix := range prefixes {
		accounts := make([]types.AccountData, 0, len(primary))
		for _, pk := range primary {
			addr, err := bech32.ConvertAndEncode(prefix, pk.Address())
			if err != nil {
				return nil, fmt.Errorf("encode %s address: %w", chain, err)
			}
			accounts = append(accounts, types.AccountData{Address: addr, PubKey: pk})
		}
		byChain[chain] = accounts
	}

	s.sessions.Invalidate()
	return byChain, nil
}

func (s *Signer) app(ctx context.Context) (DeviceApp, error) {
	transport, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.newApp(transport)
	if err != nil {
		return nil, s.fail(err)
	}
	return app, nil
}

// fail maps a raw device error and drops the session so the next call
// performs a fresh handshake.
func (s *Signer) fail(err error) error {
	s.sessions.Invalidate()
	mapped := MapError(err)
	s.logger.Warn("device call failed", zap.String("cause", mapped.Error()))
	return mapped
}
