package txhandler

import (
	"context"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"

	"github.com/ZigZeron/CosmoWallet/types"
)

// EthermintHandler executes staking operations on EVM-compatible Cosmos
// chains (Evmos-lineage). Their eth_secp256k1 accounts cannot verify
// protobuf SIGN_MODE_DIRECT docs signed by external wallets, so the
// handler signs the field-sorted amino-JSON doc instead.
type EthermintHandler struct {
	baseHandler
}

// NewEthermintHandler creates the handler for EVM-compatible chains.
func NewEthermintHandler(deps Deps) (*EthermintHandler, error) {
	base, err := newBaseHandler(deps, "ethermint")
	if err != nil {
		return nil, err
	}
	return &EthermintHandler{baseHandler: base}, nil
}

func (h *EthermintHandler) aminoSignBytes(_ context.Context, data authsigning.SignerData, _ sdkclient.TxBuilder, msgs []sdk.Msg, fee types.Fee, memo string) ([]byte, error) {
	return AminoSignBytes(data.ChainID, data.AccountNumber, data.Sequence, fee, msgs, memo), nil
}

func (h *EthermintHandler) submit(ctx context.Context, msgs []sdk.Msg, fee types.Fee, memo string) (string, error) {
	return h.signAndBroadcast(ctx, msgs, fee, memo, signingtypes.SignMode_SIGN_MODE_LEGACY_AMINO_JSON, h.aminoSignBytes)
}

// Delegate stakes amount with the validator.
func (h *EthermintHandler) Delegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgDelegate(delegator, validator, amount)}, fee, memo)
}

// Undelegate begins unbonding amount from the validator.
func (h *EthermintHandler) Undelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgUndelegate(delegator, validator, amount)}, fee, memo)
}

// Redelegate moves amount from fromValidator to toValidator.
func (h *EthermintHandler) Redelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, []sdk.Msg{NewMsgBeginRedelegate(delegator, toValidator, fromValidator, amount)}, fee, memo)
}

// WithdrawRewards claims accumulated rewards from each validator.
func (h *EthermintHandler) WithdrawRewards(ctx context.Context, delegator string, validators []string, fee types.Fee, memo string) (string, error) {
	return h.submit(ctx, NewWithdrawRewardMsgs(delegator, validators), fee, memo)
}
