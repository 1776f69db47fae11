package client

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ZigZeron/CosmoWallet/constants"
	"github.com/ZigZeron/CosmoWallet/internal/waittx"
	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/staking"
)

// Config holds all configuration for the wallet client.
type Config struct {
	// Chain registry and selection
	Chains      map[string]registry.ChainInfo
	ActiveChain string
	Network     registry.Network

	// Node endpoints for the active chain
	GRPCEndpoint string
	RPCEndpoint  string // Tendermint RPC endpoint for websocket confirmations

	// Account settings
	Address string // delegator account address
	KeyName string // key name in keyring; unused with a hardware signer

	// Fee settings
	GasAdjustment float64
	GasTier       registry.GasTier

	// gRPC tuning
	Timeout        time.Duration
	MaxRecvMsgSize int
	MaxSendMsgSize int
	InsecureGRPC   bool

	// WaitTx controls transaction confirmation behaviour.
	WaitTx waittx.Config

	// Collaborators; all optional, defaulting to no-ops or the gas steps
	// oracle.
	Oracle       registry.GasPriceOracle
	PendingStore staking.PendingTxStore
	Recorder     staking.TxRecorder
	Currency     staking.CurrencyConverter

	Logger *zap.Logger
}

// Validate checks the configuration and populates defaults.
func (c *Config) Validate() error {
	if len(c.Chains) == 0 {
		return fmt.Errorf("chain registry is required")
	}
	if _, ok := c.Chains[c.ActiveChain]; !ok {
		return fmt.Errorf("active chain %q is not in the registry", c.ActiveChain)
	}
	if c.GRPCEndpoint == "" {
		return fmt.Errorf("grpc endpoint is required")
	}
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}

	// Set defaults
	if c.Network == "" {
		c.Network = registry.NetworkMainnet
	}
	if c.GasAdjustment < 1.0 {
		c.GasAdjustment = constants.DefaultGasAdjustment
	}
	if c.GasTier == "" {
		c.GasTier = registry.GasTierLow
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxRecvMsgSize == 0 {
		c.MaxRecvMsgSize = 1024 * 1024 * 50 // 50MB
	}
	if c.MaxSendMsgSize == 0 {
		c.MaxSendMsgSize = 1024 * 1024 * 50 // 50MB
	}
	c.WaitTx.ApplyDefaults()

	if c.Oracle == nil {
		c.Oracle = registry.StepsOracle{Tier: c.GasTier}
	}
	if c.PendingStore == nil {
		c.PendingStore = staking.NopPendingTxStore{}
	}
	if c.Recorder == nil {
		c.Recorder = staking.NopTxRecorder{}
	}
	if c.Currency == nil {
		c.Currency = staking.NopCurrencyConverter{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// DefaultConfig returns a configuration preloaded with the built-in chain
// registry, pointed at a local cosmoshub node.
func DefaultConfig() Config {
	return Config{
		Chains:        registry.DefaultChains(),
		ActiveChain:   "cosmos",
		Network:       registry.NetworkMainnet,
		GRPCEndpoint:  "localhost:9090",
		RPCEndpoint:   "http://localhost:26657",
		GasAdjustment: constants.DefaultGasAdjustment,
		GasTier:       registry.GasTierLow,
		Timeout:       10 * time.Second,
	}
}
