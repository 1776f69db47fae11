package txhandler

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/ZigZeron/CosmoWallet/types"
)

// CosmosHandler executes staking operations on generic Cosmos-SDK chains
// using SIGN_MODE_DIRECT protobuf sign docs.
type CosmosHandler struct {
	baseHandler
}

// NewCosmosHandler creates the generic Cosmos-SDK handler.
func NewCosmosHandler(deps Deps) (*CosmosHandler, error) {
	base, err := newBaseHandler(deps, "cosmos")
	if err != nil {
		return nil, err
	}
	return &CosmosHandler{baseHandler: base}, nil
}

func (h *CosmosHandler) submit(ctx context.Context, msgs []sdk.Msg, fee types.Fee, memo string) (string, error) {
	return h.signAndBroadcast(ctx, msgs, fee, memo, signingtypes.SignMode_SIGN_MODE_DIRECT, h.directSignBytes)
}

// Delegate stakes amount with the validator.
func (h *CosmosHandler) Delegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgDelegate(delegator, validator, amount)}, fee, memo)
}

// Undelegate begins unbonding amount from the validator.
func (h *CosmosHandler) Undelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgUndelegate(delegator, validator, amount)}, fee, memo)
}

// Redelegate moves amount from fromValidator to toValidator.
func (h *CosmosHandler) Redelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgBeginRedelegate(delegator, toValidator, fromValidator, amount)}, fee, memo)
}

// WithdrawRewards claims accumulated rewards from each validator.
func (h *CosmosHandler) WithdrawRewards(ctx context.Context, delegator string, validators []string, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, NewWithdrawRewardMsgs(delegator, validators), fee, memo)
}
