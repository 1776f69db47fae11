package staking

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/types"
)

// ProjectPendingTx builds the UI-facing status record for a submitted
// staking transaction. The record starts in the loading state; the
// pending-tx store owns transitions once the confirmation settles.
func ProjectPendingTx(
	mode Mode,
	toValidator *types.Validator,
	delegations []types.Delegation,
	amount string,
	denom registry.NativeDenom,
	chainImg string,
	txHash string,
) types.PendingTx {
	rec := types.PendingTx{
		Img:            chainImg,
		SentTokenDenom: denom.CoinDenom,
		Title1:         capitalize(mode.title()),
		Title2:         "Transaction Successful",
		TxStatus:       types.TxStatusLoading,
		TxHash:         txHash,
	}

	formatted := formatTokenAmount(amount, 4)
	if mode.received() {
		rec.ReceivedAmount = formatted
	} else {
		rec.SentAmount = formatted
	}

	if mode == ModeClaimRewards {
		rec.Subtitle1 = fmt.Sprintf("From %d validators", len(claimValidators(toValidator, delegations)))
	} else {
		moniker := "Unknown"
		if toValidator != nil && toValidator.Moniker != "" {
			moniker = toValidator.Moniker
		}
		rec.Subtitle1 = fmt.Sprintf("Validator %s", moniker)
	}

	if mode == ModeDelegate || mode == ModeRedelegate {
		rec.TxType = "delegate"
	} else {
		rec.TxType = "undelegate"
	}
	return rec
}

// claimValidators is the validator set a rewards claim touches: the
// explicit target when one is chosen, otherwise every validator in the
// delegation list.
func claimValidators(toValidator *types.Validator, delegations []types.Delegation) []string {
	if toValidator != nil {
		return []string{toValidator.Address}
	}
	out := make([]string, 0, len(delegations))
	for _, d := range delegations {
		out = append(out, d.ValidatorAddress)
	}
	return out
}

// txMetadata builds the serialized metadata block for the remote tx record.
// Shape varies by mode: redelegations carry both validators, claims carry
// the whole validator set.
func txMetadata(
	mode Mode,
	toValidator, fromValidator *types.Validator,
	delegations []types.Delegation,
	amount, denom string,
	base map[string]any,
) (json.RawMessage, error) {
	meta := make(map[string]any, len(base)+3)
	for k, v := range base {
		meta[k] = v
	}
	token := map[string]string{"amount": amount, "denom": denom}

	switch mode {
	case ModeRedelegate:
		if fromValidator != nil {
			meta["fromValidator"] = fromValidator.Address
		}
		if toValidator != nil {
			meta["toValidator"] = toValidator.Address
		}
		meta["token"] = token
	case ModeDelegate, ModeUndelegate:
		if toValidator != nil {
			meta["validatorAddress"] = toValidator.Address
		}
		meta["token"] = token
	case ModeClaimRewards:
		meta["validators"] = claimValidators(toValidator, delegations)
		meta["token"] = token
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal tx metadata: %w", err)
	}
	return raw, nil
}

// formatTokenAmount trims a display amount to at most maxDecimals places.
func formatTokenAmount(amount string, maxDecimals int32) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return d.Truncate(maxDecimals).String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
