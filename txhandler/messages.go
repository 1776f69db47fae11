package txhandler

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
)

// NewMsgDelegate constructs a MsgDelegate for the given stake.
func NewMsgDelegate(delegator, validator string, amount sdk.Coin) *stakingtypes.MsgDelegate {
	return &stakingtypes.MsgDelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           amount,
	}
}

// NewMsgUndelegate constructs a MsgUndelegate starting the unbonding of the
// given stake.
func NewMsgUndelegate(delegator, validator string, amount sdk.Coin) *stakingtypes.MsgUndelegate {
	return &stakingtypes.MsgUndelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           amount,
	}
}

// NewMsgBeginRedelegate constructs a MsgBeginRedelegate moving stake from
// one validator to another without unstaking.
func NewMsgBeginRedelegate(delegator, toValidator, fromValidator string, amount sdk.Coin) *stakingtypes.MsgBeginRedelegate {
	return &stakingtypes.MsgBeginRedelegate{
		DelegatorAddress:    delegator,
		ValidatorSrcAddress: fromValidator,
		ValidatorDstAddress: toValidator,
		Amount:              amount,
	}
}

// NewWithdrawRewardMsgs constructs one MsgWithdrawDelegatorReward per
// validator, preserving order.
func NewWithdrawRewardMsgs(delegator string, validators []string) []sdk.Msg {
	msgs := make([]sdk.Msg, 0, len(validators))
	for _, v := range validators {
		msgs = append(msgs, &distrtypes.MsgWithdrawDelegatorReward{
			DelegatorAddress: delegator,
			ValidatorAddress: v,
		})
	}
	return msgs
}
