package txhandler

import (
	"context"
	"fmt"

	txtypes "cosmossdk.io/api/cosmos/tx/v1beta1"
	sdkclient "github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/ZigZeron/CosmoWallet/internal/waittx"
	"github.com/ZigZeron/CosmoWallet/types"
)

// signBytesFn produces the canonical bytes a variant's signer must sign.
type signBytesFn func(ctx context.Context, data authsigning.SignerData, builder sdkclient.TxBuilder, msgs []sdk.Msg, fee types.Fee, memo string) ([]byte, error)

// baseHandler carries the plumbing shared by every handler variant: account
// lookup, tx assembly, broadcast, and confirmation polling.
type baseHandler struct {
	conn    *grpc.ClientConn
	txCfg   sdkclient.TxConfig
	chainID string
	signer  Signer
	logger  *zap.Logger
	waiter  *waittx.Waiter
}

func newBaseHandler(deps Deps, name string) (baseHandler, error) {
	if err := deps.validate(); err != nil {
		return baseHandler{}, fmt.Errorf("%s handler: %w", name, err)
	}
	h := baseHandler{
		conn:    deps.Conn,
		txCfg:   deps.TxConfig,
		chainID: deps.ChainID,
		signer:  deps.Signer,
		logger:  deps.Logger.Named(name),
	}
	waiter, err := waittx.New(deps.WaitTx, deps.RPCEndpoint, h.getTx)
	if err != nil {
		return baseHandler{}, fmt.Errorf("%s handler: %w", name, err)
	}
	h.waiter = waiter
	return h, nil
}

// accountInfo resolves the on-chain account number and sequence.
func (h *baseHandler) accountInfo(ctx context.Context, address string) (accountNumber, sequence uint64, err error) {
	authq := authtypes.NewQueryClient(h.conn)
	resp, err := authq.AccountInfo(ctx, &authtypes.QueryAccountInfoRequest{Address: address})
	if err != nil {
		return 0, 0, fmt.Errorf("query account info: %w", err)
	}
	if resp == nil || resp.Info == nil {
		return 0, 0, fmt.Errorf("empty account info response")
	}
	return resp.Info.AccountNumber, resp.Info.Sequence, nil
}

func (h *baseHandler) getTx(ctx context.Context, hash string) (*txtypes.GetTxResponse, error) {
	svc := txtypes.NewServiceClient(h.conn)
	resp, err := svc.GetTx(ctx, &txtypes.GetTxRequest{Hash: hash})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("empty get tx response")
	}
	return resp, nil
}

// broadcast submits signed tx bytes in sync mode and returns the hash once
// the node accepts the tx into its mempool.
func (h *baseHandler) broadcast(ctx context.Context, txBytes []byte) (string, error) {
	svc := txtypes.NewServiceClient(h.conn)
	resp, err := svc.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	})
	if err != nil {
		return "", fmt.Errorf("broadcast tx: %w", err)
	}
	if resp == nil || resp.TxResponse == nil {
		return "", fmt.Errorf("empty tx response")
	}
	if resp.TxResponse.Code != 0 {
		return "", fmt.Errorf("tx rejected with code %d: %s", resp.TxResponse.Code, resp.TxResponse.RawLog)
	}
	h.logger.Debug("tx accepted into mempool", zap.String("tx_hash", resp.TxResponse.Txhash))
	return resp.TxResponse.Txhash, nil
}

// PollForTx blocks until the transaction is included in a block or ctx ends.
func (h *baseHandler) PollForTx(ctx context.Context, txHash string) (types.TxConfirmation, error) {
	res, err := h.waiter.Wait(ctx, txHash)
	if err != nil {
		return types.TxConfirmation{}, fmt.Errorf("wait for tx %s: %w", txHash, err)
	}
	return types.TxConfirmation{
		TxHash: res.TxHash,
		Height: res.Height,
		Code:   res.Code,
		RawLog: res.RawLog,
	}, nil
}

// signAndBroadcast assembles a transaction around msgs, signs it in the
// given mode with sign bytes produced by docFn, and broadcasts it.
func (h *baseHandler) signAndBroadcast(
	ctx context.Context,
	msgs []sdk.Msg,
	fee types.Fee,
	memo string,
	mode signingtypes.SignMode,
	docFn signBytesFn,
) (string, error) {
	account, err := h.signer.Account(ctx)
	if err != nil {
		return "", fmt.Errorf("signer account: %w", err)
	}

	builder := h.txCfg.NewTxBuilder()
	if err := builder.SetMsgs(msgs...); err != nil {
		return "", fmt.Errorf("set msgs: %w", err)
	}
	if memo != "" {
		builder.SetMemo(memo)
	}
	builder.SetFeeAmount(fee.Amount)
	builder.SetGasLimit(fee.Gas)

	accNum, sequence, err := h.accountInfo(ctx, account.Address)
	if err != nil {
		return "", err
	}

	// Placeholder signature so the encoded tx carries pubkey and sign mode
	// before the real signature exists.
	sig := signingtypes.SignatureV2{
		PubKey:   account.PubKey,
		Data:     &signingtypes.SingleSignatureData{SignMode: mode},
		Sequence: sequence,
	}
	if err := builder.SetSignatures(sig); err != nil {
		return "", fmt.Errorf("set placeholder signature: %w", err)
	}

	signerData := authsigning.SignerData{
		Address:       account.Address,
		ChainID:       h.chainID,
		AccountNumber: accNum,
		Sequence:      sequence,
		PubKey:        account.PubKey,
	}
	signBytes, err := docFn(ctx, signerData, builder, msgs, fee, memo)
	if err != nil {
		return "", fmt.Errorf("build sign bytes: %w", err)
	}

	rawSig, err := h.signer.Sign(ctx, mode, signBytes)
	if err != nil {
		return "", fmt.Errorf("sign tx: %w", err)
	}

	sig.Data = &signingtypes.SingleSignatureData{SignMode: mode, Signature: rawSig}
	if err := builder.SetSignatures(sig); err != nil {
		return "", fmt.Errorf("set signature: %w", err)
	}

	txBytes, err := h.txCfg.TxEncoder()(builder.GetTx())
	if err != nil {
		return "", fmt.Errorf("encode signed tx: %w", err)
	}

	return h.broadcast(ctx, txBytes)
}

// directSignBytes produces SIGN_MODE_DIRECT sign bytes for the built tx.
func (h *baseHandler) directSignBytes(ctx context.Context, data authsigning.SignerData, builder sdkclient.TxBuilder, _ []sdk.Msg, _ types.Fee, _ string) ([]byte, error) {
	return authsigning.GetSignBytesAdapter(ctx, h.txCfg.SignModeHandler(), signingtypes.SignMode_SIGN_MODE_DIRECT, data, builder.GetTx())
}
