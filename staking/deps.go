package staking

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ZigZeron/CosmoWallet/txhandler"
	"github.com/ZigZeron/CosmoWallet/types"
)

// Simulator estimates gas for a candidate operation with a node-side dry
// run. Implemented by txhandler.Simulator; faked in tests.
type Simulator interface {
	SimulateDelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, feeDenom string) (uint64, error)
	SimulateUndelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, feeDenom string) (uint64, error)
	SimulateRedelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, feeDenom string) (uint64, error)
	SimulateWithdrawRewards(ctx context.Context, delegator string, validators []string, feeDenom string) (uint64, error)
}

// HandlerFactory binds a signer to the active chain's transaction handler.
// It is called only on explicit review, never during simulation.
type HandlerFactory func(signer txhandler.Signer) (txhandler.Handler, error)

// PendingTxStore receives UI-facing status records for submitted
// transactions. It owns status transitions after the initial handoff.
type PendingTxStore interface {
	SetPendingTx(tx types.PendingTx)
}

// TxRecorder persists a remote record of each broadcast transaction. Calls
// are fire-and-forget: a recording failure never fails the visible result.
type TxRecorder interface {
	PostTx(ctx context.Context, rec types.TxRecord) error
}

// CurrencyConverter renders a base-denom amount as a fiat display string.
type CurrencyConverter interface {
	FetchCurrency(ctx context.Context, amount, coinGeckoID, chain string) (string, error)
}

// NopPendingTxStore discards pending-tx records.
type NopPendingTxStore struct{}

func (NopPendingTxStore) SetPendingTx(types.PendingTx) {}

// NopTxRecorder discards tx records.
type NopTxRecorder struct{}

func (NopTxRecorder) PostTx(context.Context, types.TxRecord) error { return nil }

// NopCurrencyConverter reports no fiat value.
type NopCurrencyConverter struct{}

func (NopCurrencyConverter) FetchCurrency(context.Context, string, string, string) (string, error) {
	return "", nil
}
