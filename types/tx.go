package types

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TxType tags a transaction for the remote tx recorder.
type TxType string

const (
	TxTypeStakeDelegate   TxType = "STAKE_DELEGATE"
	TxTypeStakeUndelegate TxType = "STAKE_UNDELEGATE"
	TxTypeStakeRedelegate TxType = "STAKE_REDELEGATE"
	TxTypeStakeClaim      TxType = "STAKE_CLAIM"
)

// Fee is the full fee for a transaction: coin amounts plus a gas limit.
// It is always derived from a gas estimate and a gas price, never edited
// field by field, except when the caller supplies a custom fee override.
type Fee struct {
	Amount sdk.Coins
	Gas    uint64
}

// NewFee prices gasLimit at gasPrice, rounding the coin amount up so the
// fee never undershoots the chain minimum.
func NewFee(gasLimit uint64, gasPrice sdk.DecCoin) Fee {
	amt := gasPrice.Amount.MulInt(sdkmath.NewIntFromUint64(gasLimit)).Ceil().TruncateInt()
	return Fee{
		Amount: sdk.NewCoins(sdk.NewCoin(gasPrice.Denom, amt)),
		Gas:    gasLimit,
	}
}

// IsZero reports whether the fee carries no amount and no gas limit.
func (f Fee) IsZero() bool {
	return f.Gas == 0 && f.Amount.IsZero()
}

// TxRecord is the payload persisted through the remote tx recorder after a
// successful broadcast.
type TxRecord struct {
	TxHash          string          `json:"txHash"`
	TxType          TxType          `json:"txType"`
	Metadata        json.RawMessage `json:"metadata"`
	FeeDenomination string          `json:"feeDenomination"`
	FeeQuantity     string          `json:"feeQuantity"`
}

// TxConfirmation is the settled outcome of a broadcast transaction once it
// has been included in a block.
type TxConfirmation struct {
	TxHash string
	Height int64
	Code   uint32
	RawLog string
}

// Succeeded reports whether the confirmed transaction executed without error.
func (c TxConfirmation) Succeeded() bool {
	return c.Code == 0
}

// ConfirmationHandle is a lazily-resolvable handle to a transaction's
// confirmation. The poll runs in the background; Wait blocks until it
// settles or the caller's context expires.
type ConfirmationHandle struct {
	TxHash string
	done   chan confirmationResult
}

type confirmationResult struct {
	confirmation TxConfirmation
	err          error
}

// NewConfirmationHandle starts resolve in a background goroutine and returns
// a handle that settles with its result. The handle settles exactly once.
func NewConfirmationHandle(txHash string, resolve func() (TxConfirmation, error)) *ConfirmationHandle {
	h := &ConfirmationHandle{
		TxHash: txHash,
		done:   make(chan confirmationResult, 1),
	}
	go func() {
		conf, err := resolve()
		h.done <- confirmationResult{confirmation: conf, err: err}
		close(h.done)
	}()
	return h
}

// Wait blocks until the confirmation settles or ctx expires.
func (h *ConfirmationHandle) Wait(ctx context.Context) (TxConfirmation, error) {
	select {
	case <-ctx.Done():
		return TxConfirmation{}, fmt.Errorf("wait for tx %s: %w", h.TxHash, ctx.Err())
	case res, ok := <-h.done:
		if !ok {
			return TxConfirmation{}, fmt.Errorf("confirmation for tx %s already consumed", h.TxHash)
		}
		return res.confirmation, res.err
	}
}
