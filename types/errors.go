package types

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidAmount is returned when a user-typed amount does not parse
	// to a positive decimal
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrRewardTooLow is returned when the claimable reward is below the
	// minimum threshold worth claiming
	ErrRewardTooLow = errors.New("Reward is too low")

	// ErrUnknownChain is returned when a chain key is not present in the
	// chain registry
	ErrUnknownChain = errors.New("unknown chain")

	// ErrUnsupportedSignMode is returned when a signer cannot produce the
	// sign mode a chain handler requires
	ErrUnsupportedSignMode = errors.New("unsupported sign mode")

	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New("operation timed out")
)
