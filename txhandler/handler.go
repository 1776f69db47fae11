// Package txhandler routes staking operations to the transaction encoding a
// chain's execution environment requires, then signs and broadcasts them.
package txhandler

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"google.golang.org/grpc"
	"go.uber.org/zap"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/ZigZeron/CosmoWallet/internal/waittx"
	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/types"
)

// Signer is an opaque signing capability: it can report the account it
// controls and sign canonical sign bytes. Software keyrings and hardware
// devices both satisfy it.
type Signer interface {
	Account(ctx context.Context) (types.AccountData, error)
	Sign(ctx context.Context, mode signing.SignMode, signBytes []byte) ([]byte, error)
}

// HardwareSigner marks signers that block on a physical device while
// signing, so callers can surface device-interaction UI.
type HardwareSigner interface {
	Hardware() bool
}

// IsHardware reports whether the signer blocks on a physical device.
func IsHardware(s Signer) bool {
	hw, ok := s.(HardwareSigner)
	return ok && hw.Hardware()
}

// Handler executes staking operations for one chain. Each call signs and
// broadcasts, returning the transaction hash once the node accepts it into
// the mempool; confirmation is a separate poll via PollForTx.
//
// Every execution environment implements all four capabilities. Selecting a
// chain whose handler lacks one is a configuration error upstream, never a
// runtime branch here.
type Handler interface {
	Delegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error)
	Undelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error)
	Redelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, fee types.Fee, memo string) (string, error)
	WithdrawRewards(ctx context.Context, delegator string, validators []string, fee types.Fee, memo string) (string, error)
	PollForTx(ctx context.Context, txHash string) (types.TxConfirmation, error)
}

// Deps carries everything a handler variant needs.
type Deps struct {
	Conn        *grpc.ClientConn
	TxConfig    sdkclient.TxConfig
	ChainID     string
	RPCEndpoint string // optional websocket endpoint for confirmation
	WaitTx      waittx.Config
	Signer      Signer
	Logger      *zap.Logger
}

func (d *Deps) validate() error {
	if d.Conn == nil {
		return fmt.Errorf("grpc connection is required")
	}
	if d.TxConfig == nil {
		return fmt.Errorf("tx config is required")
	}
	if d.ChainID == "" {
		return fmt.Errorf("chain id is required")
	}
	if d.Signer == nil {
		return fmt.Errorf("signer is required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return nil
}

// New builds the handler variant for the chain's execution environment.
func New(env registry.ExecutionEnv, deps Deps) (Handler, error) {
	switch env {
	case registry.EnvCosmos, "":
		return NewCosmosHandler(deps)
	case registry.EnvEthermint:
		return NewEthermintHandler(deps)
	case registry.EnvInjective:
		return NewInjectiveHandler(deps)
	case registry.EnvSei:
		return NewSeiHandler(deps)
	default:
		return nil, fmt.Errorf("execution environment %q has no tx handler", env)
	}
}
