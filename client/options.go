package client

import (
	"time"

	"go.uber.org/zap"

	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/staking"
)

// Option is a function that modifies Config
type Option func(*Config)

// WithActiveChain selects the chain the client operates on.
func WithActiveChain(key string) Option {
	return func(c *Config) {
		c.ActiveChain = key
	}
}

// WithNetwork selects mainnet or testnet.
func WithNetwork(network registry.Network) Option {
	return func(c *Config) {
		c.Network = network
	}
}

// WithGRPCEndpoint sets the gRPC endpoint.
func WithGRPCEndpoint(addr string) Option {
	return func(c *Config) {
		c.GRPCEndpoint = addr
	}
}

// WithRPCEndpoint sets the Tendermint RPC endpoint.
func WithRPCEndpoint(addr string) Option {
	return func(c *Config) {
		c.RPCEndpoint = addr
	}
}

// WithGasTier selects the gas price tier for the default oracle.
func WithGasTier(tier registry.GasTier) Option {
	return func(c *Config) {
		c.GasTier = tier
	}
}

// WithGasAdjustment sets the simulated-gas buffer multiplier.
func WithGasAdjustment(adjustment float64) Option {
	return func(c *Config) {
		c.GasAdjustment = adjustment
	}
}

// WithTimeout sets the blockchain operation timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxMessageSize sets both send and receive message sizes
func WithMaxMessageSize(size int) Option {
	return func(c *Config) {
		c.MaxRecvMsgSize = size
		c.MaxSendMsgSize = size
	}
}

// WithPendingTxStore installs the pending-tx projection sink.
func WithPendingTxStore(store staking.PendingTxStore) Option {
	return func(c *Config) {
		c.PendingStore = store
	}
}

// WithTxRecorder installs the remote tx recorder.
func WithTxRecorder(rec staking.TxRecorder) Option {
	return func(c *Config) {
		c.Recorder = rec
	}
}

// WithCurrencyConverter installs the fiat conversion source.
func WithCurrencyConverter(conv staking.CurrencyConverter) Option {
	return func(c *Config) {
		c.Currency = conv
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
