package txhandler

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdkclient "github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"

	"github.com/ZigZeron/CosmoWallet/types"
)

// injMinGasPrice is Injective's enforced minimum gas price in inj base
// units (18 decimals): 160M wei-equivalent per gas unit.
var injMinGasPrice = sdkmath.NewInt(160_000_000)

// InjectiveHandler executes staking operations on Injective. Injective
// accounts are Ethereum-derived and sign the amino-JSON doc, and the chain
// enforces an 18-decimal minimum gas price that fees must be padded to.
type InjectiveHandler struct {
	baseHandler
}

// NewInjectiveHandler creates the Injective handler.
func NewInjectiveHandler(deps Deps) (*InjectiveHandler, error) {
	base, err := newBaseHandler(deps, "injective")
	if err != nil {
		return nil, err
	}
	return &InjectiveHandler{baseHandler: base}, nil
}

// padFee raises the fee to Injective's minimum gas price when the oracle
// priced it below that floor.
func (h *InjectiveHandler) padFee(fee types.Fee) types.Fee {
	minAmount := injMinGasPrice.Mul(sdkmath.NewIntFromUint64(fee.Gas))
	padded := make(sdk.Coins, 0, len(fee.Amount))
	raised := false
	for _, c := range fee.Amount {
		if c.Denom == "inj" && c.Amount.LT(minAmount) {
			padded = append(padded, sdk.NewCoin(c.Denom, minAmount))
			raised = true
			continue
		}
		padded = append(padded, c)
	}
	if raised {
		h.logger.Debug("fee raised to injective minimum gas price")
	}
	return types.Fee{Amount: padded, Gas: fee.Gas}
}

func (h *InjectiveHandler) aminoSignBytes(_ context.Context, data authsigning.SignerData, _ sdkclient.TxBuilder, msgs []sdk.Msg, fee types.Fee, memo string) ([]byte, error) {
	return AminoSignBytes(data.ChainID, data.AccountNumber, data.Sequence, fee, msgs, memo), nil
}

func (h *InjectiveHandler) submit(ctx context.Context, msgs []sdk.Msg, fee types.Fee, memo string) (string, error) {
	return h.signAndBroadcast(ctx, msgs, h.padFee(fee), memo, signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON, h.aminoSignBytes)
}

// Delegate stakes amount with the validator.
func (h *InjectiveHandler) Delegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgDelegate(delegator, validator, amount)}, fee, memo)
}

// Undelegate begins unbonding amount from the validator.
func (h *InjectiveHandler) Undelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgUndelegate(delegator, validator, amount)}, fee, memo)
}

// Redelegate moves amount from fromValidator to toValidator.
func (h *InjectiveHandler) Redelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgBeginRedelegate(delegator, toValidator, fromValidator, amount)}, fee, memo)
}

// WithdrawRewards claims accumulated rewards from each validator.
func (h *InjectiveHandler) WithdrawRewards(ctx context.Context, delegator string, validators []string, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, NewWithdrawRewardMsgs(delegator, validators), fee, memo)
}
