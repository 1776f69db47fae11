package staking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ZigZeron/CosmoWallet/constants"
	"github.com/ZigZeron/CosmoWallet/ledger"
	"github.com/ZigZeron/CosmoWallet/registry"
	"github.com/ZigZeron/CosmoWallet/txhandler"
	"github.com/ZigZeron/CosmoWallet/types"
)

// State is the workflow state owned by the Controller. Callers receive
// copies; only the Controller's own callbacks mutate it.
type State struct {
	// Amount is the raw user input, not yet parsed
	Amount string
	Memo   string
	// Fee is the derived fee; nil until a simulation settles
	Fee         *types.Fee
	CurrencyFee string
	// Error is the user-facing failure message, empty when none
	Error string
	// LedgerError carries hardware-signer failures separately so the UI
	// can offer device-specific recovery guidance
	LedgerError          string
	HardwarePopupVisible bool
	Loading              bool
	// RecommendedGasLimit is seeded from mode defaults and updated after
	// each successful simulation
	RecommendedGasLimit string
}

// CustomFee overrides the simulated fee on review.
type CustomFee struct {
	Fee   types.Fee
	Denom registry.NativeDenom
}

// Callback receives the terminal status of a reviewed transaction.
type Callback func(status string)

// Params configures a Controller. One Controller serves one staking screen:
// a fixed mode, target validator(s), and delegation set.
type Params struct {
	Mode          Mode
	ToValidator   *types.Validator
	FromValidator *types.Validator
	Delegations   []types.Delegation

	// Address is the delegator's account address
	Address     string
	Chains      map[string]registry.ChainInfo
	ActiveChain string
	Network     registry.Network

	Simulator      Simulator
	HandlerFactory HandlerFactory
	Oracle         registry.GasPriceOracle

	PendingStore PendingTxStore
	Recorder     TxRecorder
	Currency     CurrencyConverter

	// GasAdjustment buffers simulated gas estimates; values below 1.0 are
	// replaced with the default
	GasAdjustment float64
	// DebounceInterval overrides the simulation debounce window (tests)
	DebounceInterval time.Duration
	// TxMetadata is merged into every remote tx record
	TxMetadata map[string]any

	// OnChange observes every state mutation (the UI projection sink)
	OnChange func(State)
	Logger   *zap.Logger
}

func (p *Params) validate() error {
	if p.Mode == "" {
		return fmt.Errorf("mode is required: %w", types.ErrInvalidConfig)
	}
	if p.Address == "" {
		return fmt.Errorf("address is required: %w", types.ErrInvalidConfig)
	}
	if _, ok := p.Chains[p.ActiveChain]; !ok {
		return fmt.Errorf("active chain %q: %w", p.ActiveChain, types.ErrUnknownChain)
	}
	if p.Simulator == nil {
		return fmt.Errorf("simulator is required: %w", types.ErrInvalidConfig)
	}
	if p.HandlerFactory == nil {
		return fmt.Errorf("handler factory is required: %w", types.ErrInvalidConfig)
	}
	if p.Oracle == nil {
		p.Oracle = registry.StepsOracle{}
	}
	if p.PendingStore == nil {
		p.PendingStore = NopPendingTxStore{}
	}
	if p.Recorder == nil {
		p.Recorder = NopTxRecorder{}
	}
	if p.Currency == nil {
		p.Currency = NopCurrencyConverter{}
	}
	if p.GasAdjustment < 1.0 {
		p.GasAdjustment = constants.DefaultGasAdjustment
	}
	if p.DebounceInterval <= 0 {
		p.DebounceInterval = constants.DebounceInterval
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return nil
}

// Controller orchestrates one staking workflow: it owns the mutable state,
// debounces amount edits into fee simulations, and drives review/execute
// through the chain's transaction handler.
//
// The loading flag serializes execute and simulate: no two signing flows
// run concurrently for one instance. Simulations may be superseded instead;
// an input generation counter discards results that arrive after a newer
// edit so stale fees never overwrite fresher state.
type Controller struct {
	mu    sync.Mutex
	p     Params
	state State

	debounce *time.Timer
	// inputGen increments on every amount edit; in-flight runs capture it
	// and drop their results when it moved on
	inputGen uint64

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	minReward decimal.Decimal
}

// NewController creates the workflow for one staking screen. Close must be
// called when the screen unmounts.
func NewController(params Params) (*Controller, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		p:         params,
		ctx:       ctx,
		cancel:    cancel,
		minReward: decimal.RequireFromString(constants.MinClaimableReward),
	}
	chain := params.Chains[params.ActiveChain]
	gas := params.Mode.defaultGas(chain)
	// A claim touches one message per delegation, so the estimate scales.
	if params.Mode == ModeClaimRewards && len(params.Delegations) > 0 {
		gas *= uint64(len(params.Delegations))
	}
	c.state.RecommendedGasLimit = strconv.FormatUint(gas, 10)
	return c, nil
}

// State returns a snapshot of the workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetMemo updates the transaction memo.
func (c *Controller) SetMemo(memo string) {
	c.mu.Lock()
	c.state.Memo = memo
	c.mu.Unlock()
	c.notify()
}

// ClearError clears the user-facing error.
func (c *Controller) ClearError() {
	c.mu.Lock()
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

// SetLedgerError records a hardware-signer error and hides the device
// popup. An empty message clears it.
func (c *Controller) SetLedgerError(msg string) {
	c.mu.Lock()
	c.state.LedgerError = msg
	c.state.HardwarePopupVisible = false
	c.mu.Unlock()
	c.notify()
}

// SetAmount records a keystroke and re-arms the simulation debounce. A new
// edit inside the window cancels the pending timer, so rapid typing yields
// exactly one simulation with the final value.
func (c *Controller) SetAmount(amount string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Amount = amount
	c.inputGen++
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.p.DebounceInterval, func() {
		d, err := decimal.NewFromString(amount)
		if err != nil || !d.IsPositive() {
			return
		}
		c.run(c.ctx, reviewRequest{})
	})
	c.mu.Unlock()
	c.notify()
}

// Simulate triggers a fee simulation immediately, outside the debounce.
func (c *Controller) Simulate(ctx context.Context) {
	c.run(ctx, reviewRequest{})
}

// Review signs and broadcasts the prepared transaction with the given
// signer. Outcomes land in the workflow state; callback receives the
// terminal status. A nil customFee keeps the simulated fee.
func (c *Controller) Review(ctx context.Context, signer txhandler.Signer, callback Callback, customFee *CustomFee) {
	c.run(ctx, reviewRequest{signer: signer, callback: callback, customFee: customFee})
}

// Close cancels the debounce timer and any background confirmation work.
// A stale timer firing after unmount must never mutate dead state.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.mu.Unlock()
	c.cancel()
}

type reviewRequest struct {
	signer    txhandler.Signer
	callback  Callback
	customFee *CustomFee
}

// run is the single entry point for simulate and execute. Guard violations
// are silent no-ops; everything past the guards funnels through one
// deferred cleanup that clears loading and hides the device popup on every
// exit path.
func (c *Controller) run(ctx context.Context, req reviewRequest) {
	isSimulation := req.signer == nil

	c.mu.Lock()
	if c.closed || c.state.Loading {
		c.mu.Unlock()
		return
	}

	amount := c.state.Amount
	memo := c.state.Memo

	switch c.p.Mode {
	case ModeRedelegate:
		if c.p.ToValidator == nil || c.p.FromValidator == nil || len(c.p.Delegations) == 0 {
			c.mu.Unlock()
			return
		}
	case ModeClaimRewards:
		reward, err := decimal.NewFromString(amount)
		if len(c.p.Delegations) == 0 || err != nil || reward.LessThanOrEqual(c.minReward) {
			c.state.Error = types.ErrRewardTooLow.Error()
			c.mu.Unlock()
			c.notify()
			return
		}
	case ModeDelegate, ModeUndelegate:
		if c.p.ToValidator == nil {
			c.mu.Unlock()
			return
		}
	}

	c.state.Error = ""

	parsed, err := decimal.NewFromString(amount)
	if err != nil || !parsed.IsPositive() {
		c.state.Fee = nil
		c.state.CurrencyFee = ""
		c.mu.Unlock()
		c.notify()
		return
	}

	c.state.Loading = true
	gen := c.inputGen
	c.mu.Unlock()
	c.notify()

	// A run superseded mid-flight drops its result, which would leave the
	// newest input without a fee; re-simulate once for it after this run
	// unwinds and releases the loading guard.
	rerun := false
	defer func() {
		if rerun {
			c.run(ctx, reviewRequest{})
		}
	}()

	defer func() {
		c.mu.Lock()
		c.state.Loading = false
		c.state.HardwarePopupVisible = false
		c.mu.Unlock()
		c.notify()
	}()

	chain := c.p.Chains[c.p.ActiveChain]
	denom, err := registry.GetNativeDenom(c.p.Chains, c.p.ActiveChain, c.p.Network)
	if err != nil {
		c.setError(err.Error())
		return
	}

	amt, err := ResolveAmount(c.p.Mode, amount, denom, c.p.Delegations)
	if err != nil {
		c.setError(err.Error())
		return
	}

	var fee types.Fee
	feeDenom := denom
	if req.customFee != nil {
		fee = req.customFee.Fee
		feeDenom = req.customFee.Denom
	} else {
		fee, err = c.deriveFee(ctx, chain, amt, gen)
		if err != nil {
			// Only the recognized redelegation rejection aborts the flow.
			c.setError(err.Error())
			return
		}
	}

	if isSimulation {
		rerun = !c.publishFee(ctx, fee, feeDenom, gen)
	}

	c.mu.Lock()
	c.state.Error = ""
	c.state.LedgerError = ""
	c.mu.Unlock()
	c.notify()

	if isSimulation {
		return
	}

	c.execute(ctx, req, chain, denom, amount, amt, fee, memo)
}

// deriveFee simulates gas for the operation and prices it. Transient
// simulation failures fall back to the last recommended gas limit; only
// the in-progress-redelegation rejection is returned as an error.
func (c *Controller) deriveFee(ctx context.Context, chain registry.ChainInfo, amt sdk.Coin, gen uint64) (types.Fee, error) {
	gasPrice, err := c.p.Oracle.GasPrice(chain, c.p.Network)
	if err != nil {
		return types.Fee{}, fmt.Errorf("resolve gas price: %w", err)
	}
	if forced, ok, ferr := registry.ForcedGasPrice(chain); ferr == nil && ok {
		gasPrice = forced
	}

	gasEstimate := c.p.Mode.defaultGas(chain)
	if c.p.Mode == ModeClaimRewards && len(c.p.Delegations) > 0 {
		gasEstimate = chain.StakeGasEstimate(constants.DefaultGasStake) * uint64(len(c.p.Delegations))
	}

	gasUsed, err := c.simulateGas(ctx, amt, gasPrice.Denom)
	switch {
	case err == nil && gasUsed > 0:
		gasEstimate = gasUsed
		c.mu.Lock()
		if c.inputGen == gen {
			c.state.RecommendedGasLimit = strconv.FormatUint(gasUsed, 10)
		}
		c.mu.Unlock()
		c.notify()
	case err != nil && strings.Contains(err.Error(), constants.RedelegationInProgressMsg):
		return types.Fee{}, err
	case err != nil:
		// Transient: proceed on the last good estimate.
		c.p.Logger.Debug("simulation failed, using recommended gas limit", zap.Error(err))
		c.mu.Lock()
		if last, perr := strconv.ParseUint(c.state.RecommendedGasLimit, 10, 64); perr == nil && last > 0 {
			gasEstimate = last
		}
		c.mu.Unlock()
	}

	gasLimit := uint64(float64(gasEstimate)*c.p.GasAdjustment + 0.5)
	return types.NewFee(gasLimit, gasPrice), nil
}

func (c *Controller) simulateGas(ctx context.Context, amt sdk.Coin, feeDenom string) (uint64, error) {
	switch c.p.Mode {
	case ModeRedelegate:
		return c.p.Simulator.SimulateRedelegate(ctx, c.p.Address, c.p.ToValidator.Address, c.p.FromValidator.Address, amt, feeDenom)
	case ModeDelegate:
		return c.p.Simulator.SimulateDelegate(ctx, c.p.Address, c.p.ToValidator.Address, amt, feeDenom)
	case ModeUndelegate:
		return c.p.Simulator.SimulateUndelegate(ctx, c.p.Address, c.p.ToValidator.Address, amt, feeDenom)
	default:
		return c.p.Simulator.SimulateWithdrawRewards(ctx, c.p.Address, claimValidators(c.p.ToValidator, c.p.Delegations), feeDenom)
	}
}

// publishFee writes the simulated fee and its fiat value into the state.
// It reports false without writing when a newer input generation superseded
// this run.
func (c *Controller) publishFee(ctx context.Context, fee types.Fee, denom registry.NativeDenom, gen uint64) bool {
	currency := "0"
	if len(fee.Amount) > 0 {
		display := FromSmall(fee.Amount[0].Amount, denom.CoinDecimals)
		if v, err := c.p.Currency.FetchCurrency(ctx, display, denom.CoinGeckoID, denom.Chain); err == nil && v != "" {
			currency = v
		}
	}

	c.mu.Lock()
	if c.inputGen != gen {
		c.mu.Unlock()
		return false
	}
	feeCopy := fee
	c.state.Fee = &feeCopy
	c.state.CurrencyFee = currency
	c.mu.Unlock()
	c.notify()
	return true
}

// execute signs, broadcasts, and hands the result off to the pending-tx
// store and remote recorder.
func (c *Controller) execute(
	ctx context.Context,
	req reviewRequest,
	chain registry.ChainInfo,
	denom registry.NativeDenom,
	amount string,
	amt sdk.Coin,
	fee types.Fee,
	memo string,
) {
	handler, err := c.p.HandlerFactory(req.signer)
	if err != nil {
		c.setError(err.Error())
		return
	}

	if txhandler.IsHardware(req.signer) {
		c.mu.Lock()
		c.state.HardwarePopupVisible = true
		c.mu.Unlock()
		c.notify()
	}

	txHash, err := c.dispatch(ctx, handler, amt, fee, memo)
	if err != nil {
		var lerr *ledger.Error
		if errors.As(err, &lerr) {
			c.SetLedgerError(lerr.Error())
		} else {
			c.setError(err.Error())
		}
		if req.callback != nil {
			req.callback("failed")
		}
		return
	}

	c.onTxSuccess(ctx, handler, txHash, chain, denom, amount, amt, fee, req.callback)
}

// dispatch routes the operation to the chain handler's matching capability.
func (c *Controller) dispatch(ctx context.Context, handler txhandler.Handler, amt sdk.Coin, fee types.Fee, memo string) (string, error) {
	switch c.p.Mode {
	case ModeUndelegate:
		return handler.Undelegate(ctx, c.p.Address, c.p.ToValidator.Address, amt, fee, memo)
	case ModeDelegate:
		return handler.Delegate(ctx, c.p.Address, c.p.ToValidator.Address, amt, fee, memo)
	case ModeRedelegate:
		return handler.Redelegate(ctx, c.p.Address, c.p.ToValidator.Address, c.p.FromValidator.Address, amt, fee, memo)
	default:
		return handler.WithdrawRewards(ctx, c.p.Address, claimValidators(c.p.ToValidator, c.p.Delegations), fee, memo)
	}
}

// onTxSuccess projects the submitted tx into the pending store with a
// confirmation handle and records it remotely. The remote post is detached:
// its failure is logged, never surfaced.
func (c *Controller) onTxSuccess(
	ctx context.Context,
	handler txhandler.Handler,
	txHash string,
	chain registry.ChainInfo,
	denom registry.NativeDenom,
	amount string,
	amt sdk.Coin,
	fee types.Fee,
	callback Callback,
) {
	rec := ProjectPendingTx(c.p.Mode, c.p.ToValidator, c.p.Delegations, amount, denom, chain.ChainSymbolImageURL, txHash)
	// Confirmation polls on the controller's own context so it survives
	// this call but dies with the screen.
	rec.Confirmation = types.NewConfirmationHandle(txHash, func() (types.TxConfirmation, error) {
		return handler.PollForTx(c.ctx, txHash)
	})
	c.p.PendingStore.SetPendingTx(rec)

	metaAmount := amt.Amount.String()
	if c.p.Mode == ModeClaimRewards {
		if claimed, err := ToSmall(amount, denom.CoinDecimals); err == nil {
			metaAmount = claimed.String()
		}
	}
	meta, err := txMetadata(c.p.Mode, c.p.ToValidator, c.p.FromValidator, c.p.Delegations, metaAmount, amt.Denom, c.p.TxMetadata)
	if err != nil {
		c.p.Logger.Warn("build tx metadata", zap.Error(err))
		meta = []byte("{}")
	}
	record := types.TxRecord{
		TxHash:   txHash,
		TxType:   c.p.Mode.TxType(),
		Metadata: meta,
	}
	if len(fee.Amount) > 0 {
		record.FeeDenomination = fee.Amount[0].Denom
		record.FeeQuantity = fee.Amount[0].Amount.String()
	}
	go func() {
		if err := c.p.Recorder.PostTx(c.ctx, record); err != nil {
			c.p.Logger.Warn("post tx record", zap.String("tx_hash", txHash), zap.Error(err))
		}
	}()

	c.mu.Lock()
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()

	if callback != nil {
		callback("success")
	}
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.state.Error = msg
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	if c.p.OnChange == nil {
		return
	}
	c.p.OnChange(c.State())
}
