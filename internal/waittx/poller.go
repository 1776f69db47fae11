package waittx

import (
	"context"
	"fmt"
	"time"

	txtypes "cosmossdk.io/api/cosmos/tx/v1beta1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type poller struct {
	getTx      func(ctx context.Context, hash string) (*txtypes.GetTxResponse, error)
	interval   time.Duration
	multiplier float64
	maxTries   int
}

func newPoller(getTx func(ctx context.Context, hash string) (*txtypes.GetTxResponse, error), cfg Config) *poller {
	return &poller{
		getTx:      getTx,
		interval:   cfg.PollInterval,
		multiplier: cfg.PollBackoffMultiplier,
		maxTries:   cfg.PollMaxRetries,
	}
}

// Wait polls GetTx until the transaction is included in a block. NotFound is
// "not yet indexed" and keeps the poll alive; any other error is terminal.
func (p *poller) Wait(ctx context.Context, txHash string) (Result, error) {
	delay := p.interval
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		resp, err := p.getTx(ctx, txHash)
		switch {
		case err == nil && resp != nil && resp.TxResponse != nil && resp.TxResponse.Height > 0:
			return Result{
				TxHash: resp.TxResponse.Txhash,
				Height: resp.TxResponse.Height,
				Code:   resp.TxResponse.Code,
				RawLog: resp.TxResponse.RawLog,
			}, nil
		case err != nil && !isNotFound(err):
			return Result{}, fmt.Errorf("get tx %s: %w", txHash, err)
		}

		if p.maxTries > 0 && attempt >= p.maxTries {
			return Result{}, fmt.Errorf("tx %s not included after %d polls", txHash, attempt)
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return Result{}, ctx.Err()
		case <-t.C:
		}
		if p.multiplier > 1 {
			delay = time.Duration(float64(delay) * p.multiplier)
		}
	}
}

func isNotFound(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.NotFound
}
