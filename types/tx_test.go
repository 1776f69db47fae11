package types

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeeRoundsUp(t *testing.T) {
	price := sdk.NewDecCoinFromDec("uatom", sdkmath.LegacyMustNewDecFromStr("0.025"))

	fee := NewFee(200_000, price)
	assert.Equal(t, uint64(200_000), fee.Gas)
	assert.Equal(t, "5000uatom", fee.Amount.String())

	// 0.0251 * 100 = 2.51, which must round up to 3 so the fee never
	// lands below the chain minimum.
	oddPrice := sdk.NewDecCoinFromDec("uatom", sdkmath.LegacyMustNewDecFromStr("0.0251"))
	fee = NewFee(100, oddPrice)
	assert.Equal(t, "3uatom", fee.Amount.String())
}

func TestFeeIsZero(t *testing.T) {
	assert.True(t, Fee{}.IsZero())
	assert.False(t, NewFee(1, sdk.NewDecCoinFromDec("uatom", sdkmath.LegacyOneDec())).IsZero())
}

func TestTxConfirmationSucceeded(t *testing.T) {
	assert.True(t, TxConfirmation{Code: 0}.Succeeded())
	assert.False(t, TxConfirmation{Code: 11}.Succeeded())
}

func TestConfirmationHandleResolves(t *testing.T) {
	h := NewConfirmationHandle("HASH", func() (TxConfirmation, error) {
		return TxConfirmation{TxHash: "HASH", Height: 10}, nil
	})

	conf, err := h.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), conf.Height)
}

func TestConfirmationHandlePropagatesError(t *testing.T) {
	h := NewConfirmationHandle("HASH", func() (TxConfirmation, error) {
		return TxConfirmation{}, errors.New("tx dropped from mempool")
	})

	_, err := h.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropped")
}

func TestConfirmationHandleWaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	h := NewConfirmationHandle("HASH", func() (TxConfirmation, error) {
		<-release
		return TxConfirmation{}, nil
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
