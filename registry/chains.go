package registry

// DefaultChains returns the built-in chain registry. Callers may extend or
// replace entries before handing the map to a client.
func DefaultChains() map[string]ChainInfo {
	return map[string]ChainInfo{
		"cosmos": {
			Key:            "cosmos",
			ChainID:        "cosmoshub-4",
			TestnetChainID: "theta-testnet-001",
			AddressPrefix:  "cosmos",
			Denom: NativeDenom{
				CoinMinimalDenom: "uatom",
				CoinDenom:        "ATOM",
				CoinDecimals:     6,
				CoinGeckoID:      "cosmos",
				Chain:            "cosmos",
			},
			GasPriceSteps: GasPriceSteps{
				Low:     "0.0025",
				Average: "0.025",
				High:    "0.04",
			},
			Env: EnvCosmos,
		},
		"osmosis": {
			Key:            "osmosis",
			ChainID:        "osmosis-1",
			TestnetChainID: "osmo-test-5",
			AddressPrefix:  "osmo",
			Denom: NativeDenom{
				CoinMinimalDenom: "uosmo",
				CoinDenom:        "OSMO",
				CoinDecimals:     6,
				CoinGeckoID:      "osmosis",
				Chain:            "osmosis",
			},
			GasPriceSteps: GasPriceSteps{
				Low:     "0.0025",
				Average: "0.025",
				High:    "0.04",
			},
			Env: EnvCosmos,
		},
		// Akash nodes reject low-priced staking txs, so the registry pins
		// the high step regardless of the caller's tier.
		"akash": {
			Key:           "akash",
			ChainID:       "akashnet-2",
			AddressPrefix: "akash",
			Denom: NativeDenom{
				CoinMinimalDenom: "uakt",
				CoinDenom:        "AKT",
				CoinDecimals:     6,
				CoinGeckoID:      "akash-network",
				Chain:            "akash",
			},
			GasPriceSteps: GasPriceSteps{
				Low:     "0.015",
				Average: "0.025",
				High:    "0.04",
			},
			Env:           EnvCosmos,
			ForcedGasTier: GasTierHigh,
		},
		"evmos": {
			Key:            "evmos",
			ChainID:        "evmos_9001-2",
			TestnetChainID: "evmos_9000-4",
			AddressPrefix:  "evmos",
			Denom: NativeDenom{
				CoinMinimalDenom: "aevmos",
				CoinDenom:        "EVMOS",
				CoinDecimals:     18,
				CoinGeckoID:      "evmos",
				Chain:            "evmos",
			},
			GasPriceSteps: GasPriceSteps{
				Low:     "80000000000",
				Average: "80000000000",
				High:    "100000000000",
			},
			Env: EnvEthermint,
		},
		"injective": {
			Key:            "injective",
			ChainID:        "injective-1",
			TestnetChainID: "injective-888",
			AddressPrefix:  "inj",
			Denom: NativeDenom{
				CoinMinimalDenom: "inj",
				CoinDenom:        "INJ",
				CoinDecimals:     18,
				CoinGeckoID:      "injective-protocol",
				Chain:            "injective",
			},
			GasPriceSteps: GasPriceSteps{
				Low:     "500000000",
				Average: "700000000",
				High:    "900000000",
			},
			Env: EnvInjective,
		},
		"sei": {
			Key:            "sei",
			ChainID:        "pacific-1",
			TestnetChainID: "atlantic-2",
			AddressPrefix:  "sei",
			Denom: NativeDenom{
				CoinMinimalDenom: "usei",
				CoinDenom:        "SEI",
				CoinDecimals:     6,
				CoinGeckoID:      "sei-network",
				Chain:            "sei",
			},
			GasPriceSteps: GasPriceSteps{
				Low:     "0.02",
				Average: "0.02",
				High:    "0.04",
			},
			Env: EnvSei,
		},
	}
}
