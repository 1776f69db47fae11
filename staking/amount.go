package staking

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"

	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/types"
)

// ToSmall scales a display amount down to base units (e.g. "10" ATOM with 6
// decimals -> 10000000). Fractional dust beyond the denom's precision is
// truncated.
func ToSmall(amount string, decimals int32) (sdkmath.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("parse %q: %w", amount, types.ErrInvalidAmount)
	}
	scaled := d.Shift(decimals).Truncate(0)
	out, ok := sdkmath.NewIntFromString(scaled.String())
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("scale %q by %d: %w", amount, decimals, types.ErrInvalidAmount)
	}
	return out, nil
}

// FromSmall converts base units back to a display string.
func FromSmall(amount sdkmath.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount.BigInt(), -decimals).String()
}

// ResolveAmount converts the user-typed amount into a chain-native coin for
// the given operation mode.
//
// Redelegate takes its denom from the first delegation's balance rather
// than the chain's native denom, so a non-native staked token can still be
// redelegated; the scale is always the native denom's decimals. Delegate
// and Undelegate use the native denom for both. ClaimRewards resolves to
// zero: the transferred value is determined server-side by the claim.
//
// Malformed input must be rejected by the caller before resolving; this is
// the controller's guard, not the resolver's.
func ResolveAmount(mode Mode, rawAmount string, denom registry.NativeDenom, delegations []types.Delegation) (sdk.Coin, error) {
	switch mode {
	case ModeRedelegate:
		if len(delegations) == 0 {
			return sdk.Coin{}, fmt.Errorf("redelegate requires an existing delegation")
		}
		amt, err := ToSmall(rawAmount, denom.CoinDecimals)
		if err != nil {
			return sdk.Coin{}, err
		}
		return sdk.Coin{Denom: delegations[0].Balance.Denom, Amount: amt}, nil
	case ModeDelegate, ModeUndelegate:
		amt, err := ToSmall(rawAmount, denom.CoinDecimals)
		if err != nil {
			return sdk.Coin{}, err
		}
		return sdk.Coin{Denom: denom.CoinMinimalDenom, Amount: amt}, nil
	default:
		return sdk.Coin{Denom: denom.CoinMinimalDenom, Amount: sdkmath.ZeroInt()}, nil
	}
}
