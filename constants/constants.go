// Package constants holds the tunables of the staking workflow: debounce
// timing, gas defaults, and domain thresholds.
package constants

import "time"

const (
	// DebounceInterval is how long the controller waits after the last
	// amount keystroke before firing a fee simulation.
	DebounceInterval = 750 * time.Millisecond

	// DefaultGasAdjustment buffers simulated gas estimates against
	// underestimation. Must be >= 1.0.
	DefaultGasAdjustment = 1.5

	// DefaultGasStake is the fallback gas limit for staking operations
	// when a chain does not declare its own estimate and simulation is
	// unavailable.
	DefaultGasStake uint64 = 200_000

	// DefaultGasRedelegate is the fallback gas limit for redelegations,
	// which run two validator updates in one message.
	DefaultGasRedelegate uint64 = 250_000

	// MinClaimableReward is the smallest reward, in display units, worth
	// paying fees to claim.
	MinClaimableReward = "0.00001"

	// RedelegationInProgressMsg is the node-side rejection for a second
	// redelegation to a validator with one already unbonding. It is the
	// only simulation failure surfaced to the user verbatim.
	RedelegationInProgressMsg = "redelegation to this validator already in progress"

	// LedgerExchangeTimeout bounds a single APDU exchange with a hardware
	// device. Signing itself is user-paced and not covered by it.
	LedgerExchangeTimeout = 60 * time.Second
)
