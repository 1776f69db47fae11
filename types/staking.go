package types

import (
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Validator identifies a staking target.
type Validator struct {
	// Address is the validator operator address (valoper...)
	Address string
	// Moniker is the validator's display name
	Moniker string
	// Tokens is the validator's total bonded stake, when known
	Tokens sdk.Coin
	// Commission is the validator's commission rate as a display string,
	// when known
	Commission string
}

// Delegation is an existing stake position held by the delegator.
type Delegation struct {
	ValidatorAddress string
	Balance          sdk.Coin
}

// TxStatus tracks a pending transaction through the external pending-tx
// store. The store owns transitions after the initial loading state.
type TxStatus string

const (
	TxStatusLoading TxStatus = "loading"
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
)

// PendingTx is the UI-facing projection of a submitted transaction handed
// to the pending-tx store.
type PendingTx struct {
	Img            string
	SentAmount     string
	ReceivedAmount string
	SentTokenDenom string
	Title1         string
	Subtitle1      string
	Title2         string
	TxStatus       TxStatus
	TxType         string
	TxHash         string
	Confirmation   *ConfirmationHandle
}

// AccountData is what a signer reports about the account it controls.
type AccountData struct {
	Address string
	PubKey  cryptotypes.PubKey
}
