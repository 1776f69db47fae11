package waittx

import (
	"context"
	"fmt"
	"strings"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	tmtypes "github.com/cometbft/cometbft/types"
)

const subscriberID = "cosmowallet-wait"

// subscriber observes tx inclusion through the node's websocket event feed.
// It is a fast path only; the poller remains the source of truth when the
// node has no websocket endpoint.
type subscriber struct {
	endpoint string
}

func newSubscriber(endpoint string) Source {
	return &subscriber{endpoint: endpoint}
}

func (s *subscriber) Wait(ctx context.Context, txHash string) (Result, error) {
	client, err := rpchttp.New(s.endpoint, "/websocket")
	if err != nil {
		return Result{}, fmt.Errorf("rpc client init: %w", err)
	}
	if err := client.Start(); err != nil {
		return Result{}, fmt.Errorf("rpc client start: %w", err)
	}
	defer client.Stop() //nolint:errcheck

	query := fmt.Sprintf("tm.event='Tx' AND tx.hash='%s'", normalizeHash(txHash))
	ch, err := client.Subscribe(ctx, subscriberID, query)
	if err != nil {
		return Result{}, fmt.Errorf("subscribe: %w", err)
	}
	defer client.Unsubscribe(context.Background(), subscriberID, query) //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case ev := <-ch:
			txev, ok := ev.Data.(tmtypes.EventDataTx)
			if !ok {
				continue
			}
			return Result{
				TxHash: txHash,
				Height: txev.Height,
				Code:   txev.Result.Code,
				RawLog: txev.Result.Log,
			}, nil
		}
	}
}

func normalizeHash(h string) string {
	return strings.ToUpper(strings.TrimPrefix(h, "0x"))
}
