// Package waittx observes broadcast transactions until block inclusion,
// racing a websocket subscriber against a gRPC poller.
package waittx

import (
	"context"
	"fmt"
	"time"

	txtypes "cosmossdk.io/api/cosmos/tx/v1beta1"
)

// GetTxFunc fetches a transaction by hash over gRPC.
type GetTxFunc func(ctx context.Context, hash string) (*txtypes.GetTxResponse, error)

// Waiter coordinates a subscriber (websocket) and poller (gRPC) to observe
// a tx. The subscriber is optional.
type Waiter struct {
	subscriber Source
	poller     Source
	setupDelay time.Duration
}

// New creates a waiter. rpcEndpoint may be empty, disabling the websocket
// fast path.
func New(cfg Config, rpcEndpoint string, getTx GetTxFunc) (*Waiter, error) {
	if getTx == nil {
		return nil, fmt.Errorf("getTx is required")
	}
	cfg.ApplyDefaults()

	var sub Source
	if rpcEndpoint != "" {
		sub = newSubscriber(rpcEndpoint)
	}
	return &Waiter{
		subscriber: sub,
		poller:     newPoller(getTx, cfg),
		setupDelay: cfg.SubscriberSetupTimeout,
	}, nil
}

// Wait blocks until the transaction reaches a final state or the context
// ends. A subscriber that fails or stalls hands over to the poller.
func (w *Waiter) Wait(ctx context.Context, txHash string) (Result, error) {
	if w.subscriber != nil {
		subCtx, cancel := context.WithTimeout(ctx, w.setupDelay)
		resCh := make(chan Result, 1)
		errCh := make(chan error, 1)
		go func() {
			res, err := w.subscriber.Wait(ctx, txHash)
			if err != nil {
				errCh <- err
				return
			}
			resCh <- res
		}()

		select {
		case res := <-resCh:
			cancel()
			return res, nil
		case <-errCh:
		case <-subCtx.Done():
		}
		cancel()
	}

	return w.poller.Wait(ctx, txHash)
}
