package waittx

import (
	"context"
	"time"
)

// Result is the settled outcome of waiting on a broadcast transaction.
type Result struct {
	TxHash string
	Height int64
	Code   uint32
	RawLog string
}

// Source abstracts a tx wait mechanism (poller, subscriber, etc).
type Source interface {
	Wait(ctx context.Context, txHash string) (Result, error)
}

// Config controls how a transaction is awaited.
type Config struct {
	// PollInterval is the base delay between GetTx polls
	PollInterval time.Duration
	// PollMaxRetries bounds poll attempts; zero means unbounded
	PollMaxRetries int
	// PollBackoffMultiplier grows the delay between attempts (>= 1)
	PollBackoffMultiplier float64
	// SubscriberSetupTimeout is how long the websocket subscriber may take
	// before the poller takes over
	SubscriberSetupTimeout time.Duration
}

// ApplyDefaults fills unset fields with working values.
func (c *Config) ApplyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.PollBackoffMultiplier < 1 {
		c.PollBackoffMultiplier = 1
	}
	if c.SubscriberSetupTimeout <= 0 {
		c.SubscriberSetupTimeout = 5 * time.Second
	}
}
