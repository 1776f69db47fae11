// Package client is the top-level entry point: it owns the gRPC connection,
// the signer, and the chain registry, and builds staking workflow
// controllers bound to the active chain.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ZigZeron/CosmoWallet/pkg/crypto"
	"github.com/ZigZeron/CosmoWallet/staking"
	"github.com/ZigZeron/CosmoWallet/txhandler"
	"github.com/ZigZeron/CosmoWallet/types"
)

// Client provides unified access to staking workflows on the active chain.
type Client struct {
	conn      *grpc.ClientConn
	txConfig  sdkclient.TxConfig
	simulator *txhandler.Simulator

	config  *Config
	keyring keyring.Keyring
	signer  txhandler.Signer
	logger  *zap.Logger
}

// New creates a wallet client. The keyring may be nil when every review
// will supply an explicit signer (e.g. a hardware device).
func New(ctx context.Context, cfg Config, kr keyring.Keyring, opts ...Option) (*Client, error) {
	// Apply options
	for _, opt := range opts {
		opt(&cfg)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	useTLS := shouldUseTLS(cfg.GRPCEndpoint)
	if cfg.InsecureGRPC {
		useTLS = false
	}
	var creds credentials.TransportCredentials
	if useTLS {
		creds = credentials.NewTLS(nil)
	} else {
		creds = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(cfg.GRPCEndpoint,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(cfg.MaxRecvMsgSize),
			grpc.MaxCallSendMsgSize(cfg.MaxSendMsgSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gRPC: %w", err)
	}

	txConfig := crypto.NewTxConfig()

	var signer txhandler.Signer
	if kr != nil && cfg.KeyName != "" {
		chain := cfg.Chains[cfg.ActiveChain]
		signer, err = crypto.NewKeyringSigner(kr, cfg.KeyName, chain.AddressPrefix)
		if err != nil {
			if closeErr := conn.Close(); closeErr != nil {
				cfg.Logger.Warn("close grpc connection", zap.Error(closeErr))
			}
			return nil, fmt.Errorf("failed to initialize keyring signer: %w", err)
		}
	}

	return &Client{
		conn:      conn,
		txConfig:  txConfig,
		simulator: txhandler.NewSimulator(conn, txConfig, cfg.Logger),
		config:    &cfg,
		keyring:   kr,
		signer:    signer,
		logger:    cfg.Logger,
	}, nil
}

// Close releases the gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return *c.config
}

// ChainID returns the active chain's identifier on the selected network.
func (c *Client) ChainID() string {
	chain := c.config.Chains[c.config.ActiveChain]
	return chain.ActiveChainID(c.config.Network)
}

// Signer returns the client's default signer, nil when none is configured.
func (c *Client) Signer() txhandler.Signer {
	return c.signer
}

// HandlerFactory returns the factory staking controllers use to bind a
// signer to the active chain's transaction handler. A nil signer falls back
// to the client's default.
func (c *Client) HandlerFactory() staking.HandlerFactory {
	return func(signer txhandler.Signer) (txhandler.Handler, error) {
		if signer == nil {
			signer = c.signer
		}
		if signer == nil {
			return nil, fmt.Errorf("no signer configured: %w", types.ErrInvalidConfig)
		}
		chain := c.config.Chains[c.config.ActiveChain]
		return txhandler.New(chain.Env, txhandler.Deps{
			Conn:        c.conn,
			TxConfig:    c.txConfig,
			ChainID:     chain.ActiveChainID(c.config.Network),
			RPCEndpoint: c.config.RPCEndpoint,
			WaitTx:      c.config.WaitTx,
			Signer:      signer,
			Logger:      c.logger,
		})
	}
}

// StakeParams narrows a staking workflow to its per-screen inputs; the
// client supplies everything else from its configuration.
type StakeParams struct {
	Mode          staking.Mode
	ToValidator   *types.Validator
	FromValidator *types.Validator
	Delegations   []types.Delegation

	// DebounceInterval overrides the default simulation debounce
	DebounceInterval time.Duration
	// TxMetadata is merged into every remote tx record
	TxMetadata map[string]any
	// OnChange observes every state change
	OnChange func(staking.State)
}

// NewStakeController builds a staking workflow controller for one screen.
// The caller owns the controller and must Close it.
func (c *Client) NewStakeController(p StakeParams) (*staking.Controller, error) {
	return staking.NewController(staking.Params{
		Mode:             p.Mode,
		ToValidator:      p.ToValidator,
		FromValidator:    p.FromValidator,
		Delegations:      p.Delegations,
		Address:          c.config.Address,
		Chains:           c.config.Chains,
		ActiveChain:      c.config.ActiveChain,
		Network:          c.config.Network,
		Simulator:        c.simulator,
		HandlerFactory:   c.HandlerFactory(),
		Oracle:           c.config.Oracle,
		PendingStore:     c.config.PendingStore,
		Recorder:         c.config.Recorder,
		Currency:         c.config.Currency,
		GasAdjustment:    c.config.GasAdjustment,
		DebounceInterval: p.DebounceInterval,
		TxMetadata:       p.TxMetadata,
		OnChange:         p.OnChange,
		Logger:           c.logger,
	})
}

// shouldUseTLS determines if TLS should be used based on the gRPC address.
func shouldUseTLS(addr string) bool {
	if strings.HasSuffix(addr, ":443") {
		return true
	}
	if strings.HasPrefix(addr, "localhost:") ||
		strings.HasPrefix(addr, "127.0.0.1:") ||
		strings.HasPrefix(addr, "0.0.0.0:") ||
		strings.HasPrefix(addr, ":") {
		return false
	}
	return !strings.Contains(addr, "localhost") &&
		!strings.Contains(addr, "127.0.0.1") &&
		!strings.Contains(addr, "0.0.0.0")
}
