package txhandler

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/ZigZeron/CosmoWallet/types"
)

// seiMinFee is the smallest usei fee Sei validators accept regardless of
// gas price, observed on pacific-1.
var seiMinFee = sdkmath.NewInt(100)

// SeiHandler executes staking operations on Sei. Sei signs standard
// SIGN_MODE_DIRECT docs but its validators reject sub-minimum usei fees,
// so fees are floored before signing.
type SeiHandler struct {
	baseHandler
}

// NewSeiHandler creates the Sei handler.
func NewSeiHandler(deps Deps) (*SeiHandler, error) {
	base, err := newBaseHandler(deps, "sei")
	if err != nil {
		return nil, err
	}
	return &SeiHandler{baseHandler: base}, nil
}

func (h *SeiHandler) floorFee(fee types.Fee) types.Fee {
	floored := make(sdk.Coins, 0, len(fee.Amount))
	for _, c := range fee.Amount {
		if c.Denom == "usei" && c.Amount.LT(seiMinFee) {
			floored = append(floored, sdk.NewCoin(c.Denom, seiMinFee))
			continue
		}
		floored = append(floored, c)
	}
	return types.Fee{Amount: floored, Gas: fee.Gas}
}

func (h *SeiHandler) submit(ctx context.Context, msgs []sdk.Msg, fee types.Fee, memo string) (string, error) {
	return h.signAndBroadcast(ctx, msgs, h.floorFee(fee), memo, signingtypes.SignMode_SIGN_MODE_DIRECT, h.directSignBytes)
}

// Delegate stakes amount with the validator.
func (h *SeiHandler) Delegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgDelegate(delegator, validator, amount)}, fee, memo)
}

// Undelegate begins unbonding amount from the validator.
func (h *SeiHandler) Undelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgUndelegate(delegator, validator, amount)}, fee, memo)
}

// Redelegate moves amount from fromValidator to toValidator.
func (h *SeiHandler) Redelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgBeginRedelegate(delegator, toValidator, fromValidator, amount)}, fee, memo)
}

// WithdrawRewards claims accumulated rewards from each validator.
func (h *SeiHandler) WithdrawRewards(ctx context.Context, delegator string, validators []string, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, NewWithdrawRewardMsgs(delegator, validators), fee, memo)
}
