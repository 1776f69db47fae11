package txhandler

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/ZigZeron/CosmoWallet/types"
)

// aminoCdc knows the legacy amino names ("cosmos-sdk/MsgDelegate", ...) of
// every message the wallet signs over amino-JSON.
var aminoCdc = func() *codec.LegacyAmino {
	cdc := codec.NewLegacyAmino()
	sdk.RegisterLegacyAminoCodec(cdc)
	stakingtypes.RegisterLegacyAminoCodec(cdc)
	distrtypes.RegisterLegacyAminoCodec(cdc)
	return cdc
}()

// AminoSignBytes produces the canonical, field-sorted amino-JSON sign doc
// for the given transaction parameters. This is the doc format hardware
// devices render and sign.
func AminoSignBytes(chainID string, accountNumber, sequence uint64, fee types.Fee, msgs []sdk.Msg, memo string) []byte {
	msgsBytes := make([]json.RawMessage, 0, len(msgs))
	for _, msg := range msgs {
		msgsBytes = append(msgsBytes, sdk.MustSortJSON(aminoCdc.MustMarshalJSON(msg)))
	}
	stdFee := legacytx.NewStdFee(fee.Gas, fee.Amount) //nolint:staticcheck
	bz := aminoCdc.MustMarshalJSON(legacytx.StdSignDoc{
		AccountNumber: accountNumber,
		ChainID:       chainID,
		Fee:           json.RawMessage(aminoCdc.MustMarshalJSON(stdFee)),
		Memo:          memo,
		Msgs:          msgsBytes,
		Sequence:      sequence,
	})
	return sdk.MustSortJSON(bz)
}

// AminoSignDoc is an externally-provided amino sign request, normalized to
// canonical field order. Both snake_case and camelCase inputs are accepted;
// marshalling an AminoSignDoc always emits the canonical ordering
// (chain_id, account_number, sequence, fee, memo, msgs).
type AminoSignDoc struct {
	ChainID       string            `json:"chain_id"`
	AccountNumber string            `json:"account_number"`
	Sequence      string            `json:"sequence"`
	Fee           AminoFee          `json:"fee"`
	Memo          string            `json:"memo"`
	Msgs          []json.RawMessage `json:"msgs"`
}

// AminoFee is the fee block of an amino sign doc.
type AminoFee struct {
	Amount []AminoCoin `json:"amount"`
	Gas    string      `json:"gas"`
}

// AminoCoin is one (amount, denom) pair in an amino fee.
type AminoCoin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// NormalizeOptions control how an external sign request is adjusted before
// being presented for signing.
type NormalizeOptions struct {
	// GasPrice prices any fee recomputation
	GasPrice sdk.DecCoin
	// GasLimit overrides the doc's gas when it parses to a positive
	// integer; otherwise the doc's own gas is kept
	GasLimit string
	// Memo is applied only when the doc carries none
	Memo string
	// PreferNoSetFee keeps the doc's fee untouched (dapp-provided fee)
	PreferNoSetFee bool
	// ADR36 sign requests never have their fee rewritten
	ADR36 bool
}

// NormalizeAminoSignDoc reorders an external sign doc into canonical field
// order and applies the wallet's fee and memo policy.
func NormalizeAminoSignDoc(raw []byte, opts NormalizeOptions) (AminoSignDoc, error) {
	// Tolerate camelCase aliases from older dapps.
	var loose struct {
		AminoSignDoc
		ChainIDAlias       string `json:"chainId"`
		AccountNumberAlias string `json:"accountNumber"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return AminoSignDoc{}, fmt.Errorf("parse sign doc: %w", err)
	}
	doc := loose.AminoSignDoc
	if doc.ChainID == "" {
		doc.ChainID = loose.ChainIDAlias
	}
	if doc.AccountNumber == "" {
		doc.AccountNumber = loose.AccountNumberAlias
	}

	if !opts.ADR36 && !opts.PreferNoSetFee {
		gas := doc.Fee.Gas
		if override, ok := sdkmath.NewIntFromString(opts.GasLimit); ok && override.IsPositive() {
			gas = override.String()
		}
		fee, err := stdFeeForGas(gas, opts.GasPrice)
		if err != nil {
			return AminoSignDoc{}, err
		}
		doc.Fee = fee
	}

	if doc.Memo == "" {
		doc.Memo = opts.Memo
	}

	return doc, nil
}

func stdFeeForGas(gas string, gasPrice sdk.DecCoin) (AminoFee, error) {
	gasInt, ok := sdkmath.NewIntFromString(gas)
	if !ok || !gasInt.IsPositive() {
		return AminoFee{}, fmt.Errorf("invalid gas limit %q", gas)
	}
	fee := types.NewFee(gasInt.Uint64(), gasPrice)
	coins := make([]AminoCoin, 0, len(fee.Amount))
	for _, c := range fee.Amount {
		coins = append(coins, AminoCoin{Amount: c.Amount.String(), Denom: c.Denom})
	}
	return AminoFee{Amount: coins, Gas: gas}, nil
}
