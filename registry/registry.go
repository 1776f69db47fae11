// Package registry describes the chains a wallet session can operate on:
// denominations, execution environments, and gas pricing metadata.
package registry

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ZigZeron/CosmoWallet/types"
)

// Network selects between a chain's mainnet and testnet deployments.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// ExecutionEnv tags the transaction encoding a chain requires. Dispatch of
// staking operations to a chain-specific handler is keyed by this tag.
type ExecutionEnv string

const (
	EnvCosmos    ExecutionEnv = "cosmos"
	EnvEthermint ExecutionEnv = "ethermint"
	EnvInjective ExecutionEnv = "injective"
	EnvSei       ExecutionEnv = "sei"
)

// GasTier selects one of the three per-chain gas price steps.
type GasTier string

const (
	GasTierLow     GasTier = "low"
	GasTierAverage GasTier = "average"
	GasTierHigh    GasTier = "high"
)

// NativeDenom describes a chain's native staking token.
type NativeDenom struct {
	// CoinMinimalDenom is the base denomination (e.g. uatom)
	CoinMinimalDenom string
	// CoinDenom is the display denomination (e.g. ATOM)
	CoinDenom string
	// CoinDecimals is the scale between display and base units
	CoinDecimals int32
	// CoinGeckoID keys fiat price lookups
	CoinGeckoID string
	// Chain is the registry key of the chain this denom belongs to
	Chain string
}

// GasPriceSteps are the per-chain gas price tiers in base denom per gas unit.
type GasPriceSteps struct {
	Low     string
	Average string
	High    string
}

// Step returns the price for the given tier.
func (s GasPriceSteps) Step(tier GasTier) string {
	switch tier {
	case GasTierLow:
		return s.Low
	case GasTierHigh:
		return s.High
	default:
		return s.Average
	}
}

// ChainInfo is one chain's entry in the wallet's chain registry.
type ChainInfo struct {
	// Key is the registry key (e.g. "cosmos", "akash")
	Key string
	// ChainID / TestnetChainID are the network chain identifiers
	ChainID        string
	TestnetChainID string
	// AddressPrefix is the bech32 account HRP
	AddressPrefix string
	// Denom is the native staking denom; TestnetDenom overrides it on
	// testnet when set
	Denom        NativeDenom
	TestnetDenom *NativeDenom
	// Env selects the transaction handler variant for this chain
	Env ExecutionEnv
	// GasPriceSteps are the chain's published price tiers
	GasPriceSteps GasPriceSteps
	// DefaultGasEstimate is the chain's stake-op gas fallback; zero means
	// use the global default
	DefaultGasEstimate uint64
	// ForcedGasTier, when set, overrides the oracle's price with the named
	// tier from GasPriceSteps. Akash rejects txs priced below its high
	// step, so its entry forces high.
	ForcedGasTier GasTier
	// ChainSymbolImageURL is the token image shown on pending-tx records
	ChainSymbolImageURL string
}

// GetNativeDenom resolves the native staking denom for the active chain on
// the selected network.
func GetNativeDenom(chains map[string]ChainInfo, activeChain string, network Network) (NativeDenom, error) {
	info, ok := chains[activeChain]
	if !ok {
		return NativeDenom{}, fmt.Errorf("chain %q: %w", activeChain, types.ErrUnknownChain)
	}
	if network == NetworkTestnet && info.TestnetDenom != nil {
		return *info.TestnetDenom, nil
	}
	return info.Denom, nil
}

// GasPriceOracle resolves the gas price to use for a chain. Implementations
// may consult remote fee markets; the steps-backed one below is the offline
// default.
type GasPriceOracle interface {
	GasPrice(chain ChainInfo, network Network) (sdk.DecCoin, error)
}

// StepsOracle prices gas from the chain's published price steps at a fixed
// tier.
type StepsOracle struct {
	Tier GasTier
}

// GasPrice returns the chain's step price at the oracle tier.
func (o StepsOracle) GasPrice(chain ChainInfo, network Network) (sdk.DecCoin, error) {
	tier := o.Tier
	if tier == "" {
		tier = GasTierLow
	}
	return stepPrice(chain, tier)
}

// ForcedGasPrice reports the chain's forced-tier price when the chain
// declares one, overriding whatever the oracle said.
func ForcedGasPrice(chain ChainInfo) (sdk.DecCoin, bool, error) {
	if chain.ForcedGasTier == "" {
		return sdk.DecCoin{}, false, nil
	}
	price, err := stepPrice(chain, chain.ForcedGasTier)
	if err != nil {
		return sdk.DecCoin{}, false, err
	}
	return price, true, nil
}

func stepPrice(chain ChainInfo, tier GasTier) (sdk.DecCoin, error) {
	step := chain.GasPriceSteps.Step(tier)
	price, err := sdkmath.LegacyNewDecFromStr(step)
	if err != nil {
		return sdk.DecCoin{}, fmt.Errorf("parse gas price step %q for chain %s: %w", step, chain.Key, err)
	}
	if chain.Denom.CoinMinimalDenom == "" {
		return sdk.DecCoin{}, fmt.Errorf("chain %s has no native denom", chain.Key)
	}
	return sdk.NewDecCoinFromDec(chain.Denom.CoinMinimalDenom, price), nil
}

// StakeGasEstimate returns the chain's default gas limit for a staking
// operation, falling back to the provided global default.
func (c ChainInfo) StakeGasEstimate(globalDefault uint64) uint64 {
	if c.DefaultGasEstimate > 0 {
		return c.DefaultGasEstimate
	}
	return globalDefault
}

// ActiveChainID resolves the chain identifier for the selected network.
func (c ChainInfo) ActiveChainID(network Network) string {
	if network == NetworkTestnet && c.TestnetChainID != "" {
		return c.TestnetChainID
	}
	return c.ChainID
}
