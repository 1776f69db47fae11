package txhandler

import (
	"context"
	"fmt"

	txtypes "cosmossdk.io/api/cosmos/tx/v1beta1"
	sdkmath "cosmossdk.io/math"
	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Simulator estimates gas for staking operations with a node-side dry run.
// It needs no signer: the dry-run tx carries a placeholder signature over
// the account's real sequence.
type Simulator struct {
	conn   *grpc.ClientConn
	txCfg  sdkclient.TxConfig
	logger *zap.Logger
}

// NewSimulator creates a simulator over an open node connection.
func NewSimulator(conn *grpc.ClientConn, txCfg sdkclient.TxConfig, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{conn: conn, txCfg: txCfg, logger: logger.Named("simulator")}
}

// SimulateDelegate dry-runs a delegation and returns the gas used.
func (s *Simulator) SimulateDelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, feeDenom string) (uint64, error) {
	return s.simulate(ctx, delegator, []sdk.Msg{NewMsgDelegate(delegator, validator, amount)}, feeDenom)
}

// SimulateUndelegate dry-runs an undelegation and returns the gas used.
func (s *Simulator) SimulateUndelegate(ctx context.Context, delegator, validator string, amount sdk.Coin, feeDenom string) (uint64, error) {
	return s.simulate(ctx, delegator, []sdk.Msg{NewMsgUndelegate(delegator, validator, amount)}, feeDenom)
}

// SimulateRedelegate dry-runs a redelegation and returns the gas used.
func (s *Simulator) SimulateRedelegate(ctx context.Context, delegator, toValidator, fromValidator string, amount sdk.Coin, feeDenom string) (uint64, error) {
	return s.simulate(ctx, delegator, []sdk.Msg{NewMsgBeginRedelegate(delegator, toValidator, fromValidator, amount)}, feeDenom)
}

// SimulateWithdrawRewards dry-runs a rewards claim across validators and
// returns the gas used.
func (s *Simulator) SimulateWithdrawRewards(ctx context.Context, delegator string, validators []string, feeDenom string) (uint64, error) {
	return s.simulate(ctx, delegator, NewWithdrawRewardMsgs(delegator, validators), feeDenom)
}

func (s *Simulator) simulate(ctx context.Context, delegator string, msgs []sdk.Msg, feeDenom string) (uint64, error) {
	builder := s.txCfg.NewTxBuilder()
	if err := builder.SetMsgs(msgs...); err != nil {
		return 0, fmt.Errorf("set msgs: %w", err)
	}
	// Zero-amount fee in the target denom so the dry run prices against the
	// right denom without spending anything.
	builder.SetFeeAmount(sdk.Coins{sdk.Coin{Denom: feeDenom, Amount: sdkmath.ZeroInt()}})

	sequence, err := s.accountSequence(ctx, delegator)
	if err != nil {
		return 0, err
	}

	placeholder := signingtypes.SignatureV2{
		PubKey: &secp256k1.PubKey{},
		Data: &signingtypes.SingleSignatureData{
			SignMode: signingtypes.SignMode_SIGN_MODE_DIRECT,
		},
		Sequence: sequence,
	}
	if err := builder.SetSignatures(placeholder); err != nil {
		return 0, fmt.Errorf("set placeholder signature: %w", err)
	}

	txBytes, err := s.txCfg.TxEncoder()(builder.GetTx())
	if err != nil {
		return 0, fmt.Errorf("encode unsigned tx: %w", err)
	}

	svc := txtypes.NewServiceClient(s.conn)
	resp, err := svc.Simulate(ctx, &txtypes.SimulateRequest{TxBytes: txBytes})
	if err != nil {
		return 0, fmt.Errorf("simulate tx: %w", err)
	}
	if resp == nil || resp.GasInfo == nil {
		return 0, nil
	}
	s.logger.Debug("dry run complete", zap.Uint64("gas_used", resp.GasInfo.GasUsed))
	return resp.GasInfo.GasUsed, nil
}

func (s *Simulator) accountSequence(ctx context.Context, address string) (uint64, error) {
	authq := authtypes.NewQueryClient(s.conn)
	resp, err := authq.AccountInfo(ctx, &authtypes.QueryAccountInfoRequest{Address: address})
	if err != nil {
		return 0, fmt.Errorf("query account info: %w", err)
	}
	if resp == nil || resp.Info == nil {
		return 0, fmt.Errorf("empty account info response")
	}
	return resp.Info.Sequence, nil
}
