// Package staking implements the staking transaction lifecycle: amount
// resolution, debounced fee simulation, chain-dispatched execution, and
// pending-transaction projection, orchestrated by a per-screen Controller.
package staking

import (
	"strings"

	"github.com/ZigZeron/CosmoWallet/constants"
	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/types"
)

// Mode is the staking operation a workflow instance performs. It is fixed
// for the lifetime of one Controller.
type Mode string

const (
	ModeDelegate     Mode = "DELEGATE"
	ModeUndelegate   Mode = "UNDELEGATE"
	ModeRedelegate   Mode = "REDELEGATE"
	ModeClaimRewards Mode = "CLAIM_REWARDS"
)

// TxType maps the mode to its remote-recorder tag.
func (m Mode) TxType() types.TxType {
	switch m {
	case ModeDelegate:
		return types.TxTypeStakeDelegate
	case ModeUndelegate:
		return types.TxTypeStakeUndelegate
	case ModeRedelegate:
		return types.TxTypeStakeRedelegate
	default:
		return types.TxTypeStakeClaim
	}
}

// title is the human-readable operation name used on pending-tx records.
func (m Mode) title() string {
	if m == ModeClaimRewards {
		return "claim rewards"
	}
	return strings.ToLower(string(m))
}

// defaultGas seeds the recommended gas limit before any simulation has run.
func (m Mode) defaultGas(chain registry.ChainInfo) uint64 {
	if m == ModeRedelegate {
		return constants.DefaultGasRedelegate
	}
	return chain.StakeGasEstimate(constants.DefaultGasStake)
}

// received reports whether the operation credits the user's balance, which
// selects the directional amount key on pending-tx records.
func (m Mode) received() bool {
	return m == ModeUndelegate || m == ModeClaimRewards
}
