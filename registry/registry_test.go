package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNativeDenom(t *testing.T) {
	chains := DefaultChains()

	t.Run("mainnet", func(t *testing.T) {
		denom, err := GetNativeDenom(chains, "cosmos", NetworkMainnet)
		require.NoError(t, err)
		assert.Equal(t, "uatom", denom.CoinMinimalDenom)
		assert.Equal(t, "ATOM", denom.CoinDenom)
		assert.EqualValues(t, 6, denom.CoinDecimals)
	})

	t.Run("testnet override", func(t *testing.T) {
		testnetDenom := NativeDenom{CoinMinimalDenom: "utest", CoinDenom: "TEST", CoinDecimals: 6}
		custom := map[string]ChainInfo{
			"local": {
				Key:          "local",
				Denom:        NativeDenom{CoinMinimalDenom: "umain", CoinDenom: "MAIN", CoinDecimals: 6},
				TestnetDenom: &testnetDenom,
			},
		}

		denom, err := GetNativeDenom(custom, "local", NetworkTestnet)
		require.NoError(t, err)
		assert.Equal(t, "utest", denom.CoinMinimalDenom)

		denom, err = GetNativeDenom(custom, "local", NetworkMainnet)
		require.NoError(t, err)
		assert.Equal(t, "umain", denom.CoinMinimalDenom)
	})

	t.Run("unknown chain", func(t *testing.T) {
		_, err := GetNativeDenom(chains, "unknown", NetworkMainnet)
		require.Error(t, err)
	})
}

func TestStepsOracle(t *testing.T) {
	chain := DefaultChains()["cosmos"]

	price, err := StepsOracle{Tier: GasTierHigh}.GasPrice(chain, NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, "uatom", price.Denom)
	assert.Equal(t, "0.040000000000000000", price.Amount.String())

	// Empty tier falls back to low.
	price, err = StepsOracle{}.GasPrice(chain, NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, "0.002500000000000000", price.Amount.String())
}

func TestForcedGasPrice(t *testing.T) {
	chains := DefaultChains()

	t.Run("akash forces high", func(t *testing.T) {
		price, forced, err := ForcedGasPrice(chains["akash"])
		require.NoError(t, err)
		require.True(t, forced)
		assert.Equal(t, "uakt", price.Denom)
		assert.Equal(t, "0.040000000000000000", price.Amount.String())
	})

	t.Run("cosmos has no override", func(t *testing.T) {
		_, forced, err := ForcedGasPrice(chains["cosmos"])
		require.NoError(t, err)
		assert.False(t, forced)
	})
}

func TestGasPriceStepsStep(t *testing.T) {
	steps := GasPriceSteps{Low: "1", Average: "2", High: "3"}
	assert.Equal(t, "1", steps.Step(GasTierLow))
	assert.Equal(t, "2", steps.Step(GasTierAverage))
	assert.Equal(t, "3", steps.Step(GasTierHigh))
	assert.Equal(t, "2", steps.Step(GasTier("bogus")), "unknown tiers use the average step")
}

func TestActiveChainID(t *testing.T) {
	chain := DefaultChains()["cosmos"]
	assert.Equal(t, "cosmoshub-4", chain.ActiveChainID(NetworkMainnet))
	assert.Equal(t, "theta-testnet-001", chain.ActiveChainID(NetworkTestnet))

	// Chains without a testnet deployment keep their mainnet id.
	akash := DefaultChains()["akash"]
	assert.Equal(t, "akashnet-2", akash.ActiveChainID(NetworkTestnet))
}

func TestStakeGasEstimate(t *testing.T) {
	assert.Equal(t, uint64(200_000), ChainInfo{}.StakeGasEstimate(200_000))
	assert.Equal(t, uint64(450_000), ChainInfo{DefaultGasEstimate: 450_000}.StakeGasEstimate(200_000))
}

func TestExecutionEnvCoverage(t *testing.T) {
	envs := map[ExecutionEnv]bool{}
	for _, chain := range DefaultChains() {
		envs[chain.Env] = true
	}
	for _, env := range []ExecutionEnv{EnvCosmos, EnvEthermint, EnvInjective, EnvSei} {
		assert.True(t, envs[env], "registry should exercise env %q", env)
	}
}
