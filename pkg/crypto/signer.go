package crypto

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/ZigZeron/CosmoWallet/types"
)

// KeyringSigner signs transactions with a key held in a Cosmos keyring. It
// satisfies the dispatcher's Signer contract for software wallets.
type KeyringSigner struct {
	kr      keyring.Keyring
	keyName string
	hrp     string
}

// NewKeyringSigner binds a keyring identity to a bech32 prefix.
func NewKeyringSigner(kr keyring.Keyring, keyName, hrp string) (*KeyringSigner, error) {
	if kr == nil {
		return nil, fmt.Errorf("keyring is required")
	}
	if keyName == "" {
		return nil, fmt.Errorf("key name is required")
	}
	return &KeyringSigner{kr: kr, keyName: keyName, hrp: hrp}, nil
}

// Account returns the address and public key of the bound key.
func (s *KeyringSigner) Account(ctx context.Context) (types.AccountData, error) {
	addr, err := AddressFromKey(s.kr, s.keyName, s.hrp)
	if err != nil {
		return types.AccountData{}, fmt.Errorf("derive address: %w", err)
	}
	rec, err := s.kr.Key(s.keyName)
	if err != nil {
		return types.AccountData{}, fmt.Errorf("load key %q: %w", s.keyName, err)
	}
	pub, err := rec.GetPubKey()
	if err != nil {
		return types.AccountData{}, fmt.Errorf("get pubkey: %w", err)
	}
	return types.AccountData{Address: addr, PubKey: pub}, nil
}

// Sign signs the canonical sign bytes in the requested mode.
func (s *KeyringSigner) Sign(ctx context.Context, mode signing.SignMode, signBytes []byte) ([]byte, error) {
	sig, _, err := s.kr.Sign(s.keyName, signBytes, mode)
	if err != nil {
		return nil, fmt.Errorf("keyring sign: %w", err)
	}
	return sig, nil
}
