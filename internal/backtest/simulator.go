package backtest

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/syntrade-lab/syntrade/internal/backtest/commission"
	"github.com/syntrade-lab/syntrade/internal/indicator"
	"github.com/syntrade-lab/syntrade/internal/logger"
	"github.com/syntrade-lab/syntrade/internal/types"
	"go.uber.org/zap"
)

// entryCashFraction is the share of cash committed on a buy signal. The
// remainder absorbs the entry commission so cash never goes negative.
const entryCashFraction = 0.95

// Result is everything a simulation pass returns: one equity point per
// evaluated bar and one trade record per closed position.
type Result struct {
	Equity []types.EquityPoint
	Trades []types.Trade
}

// Simulator runs a single long-only moving-average-crossover strategy
// bar-by-bar over an immutable bar sequence.
type Simulator struct {
	params types.StrategyParams
	fee    commission.Fee
	logger *logger.Logger
}

// NewSimulator validates the strategy parameters and creates a simulator.
func NewSimulator(params types.StrategyParams, fee commission.Fee, log *logger.Logger) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create simulator: %w", err)
	}

	if fee == nil {
		fee = commission.NewPercentFee()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Simulator{
		params: params,
		fee:    fee,
		logger: log,
	}, nil
}

// Run executes the crossover strategy over the bar sequence and returns
// the equity curve and trade log. Evaluation starts at index slow_period,
// the first index where both SMAs are defined, and appends one equity
// point per bar from there regardless of whether a transition fired. An
// open position remaining at the final bar is marked to market but never
// closed or logged.
func (s *Simulator) Run(symbol string, bars []types.Bar) (Result, error) {
	fast, err := indicator.SMA(bars, types.BarFieldClose, s.params.FastPeriod)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute fast SMA: %w", err)
	}

	slow, err := indicator.SMA(bars, types.BarFieldClose, s.params.SlowPeriod)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute slow SMA: %w", err)
	}

	result := Result{
		Equity: make([]types.EquityPoint, 0, max(0, len(bars)-s.params.SlowPeriod)),
		Trades: []types.Trade{},
	}

	state := newSimulationState(s.params.InitialCash)

	for i := s.params.SlowPeriod; i < len(bars); i++ {
		var point types.EquityPoint

		var trade optional.Option[types.Trade]

		state, point, trade = s.step(state, symbol, bars[i], crossoverInputs{
			prevFast: fast[i-1],
			prevSlow: slow[i-1],
			curFast:  fast[i],
			curSlow:  slow[i],
		})

		result.Equity = append(result.Equity, point)

		if trade.IsSome() {
			result.Trades = append(result.Trades, trade.Unwrap())
		}
	}

	s.logger.Debug("simulation complete",
		zap.String("symbol", symbol),
		zap.Int("bars", len(bars)),
		zap.Int("equity_points", len(result.Equity)),
		zap.Int("trades", len(result.Trades)),
	)

	return result, nil
}

// crossoverInputs carries the four SMA values a transition decision reads.
// Any undefined value suppresses the transition for that bar.
type crossoverInputs struct {
	prevFast optional.Option[float64]
	prevSlow optional.Option[float64]
	curFast  optional.Option[float64]
	curSlow  optional.Option[float64]
}

func (c crossoverInputs) defined() (prevFast, prevSlow, curFast, curSlow float64, ok bool) {
	if c.prevFast.IsNone() || c.prevSlow.IsNone() || c.curFast.IsNone() || c.curSlow.IsNone() {
		return 0, 0, 0, 0, false
	}

	return c.prevFast.Unwrap(), c.prevSlow.Unwrap(), c.curFast.Unwrap(), c.curSlow.Unwrap(), true
}

// step is the pure per-bar transition: (state, bar) -> (state, equity
// point, optional trade). It never errors; an unaffordable entry is
// skipped, not queued.
func (s *Simulator) step(state simulationState, symbol string, bar types.Bar, inputs crossoverInputs) (simulationState, types.EquityPoint, optional.Option[types.Trade]) {
	trade := optional.None[types.Trade]()

	if prevFast, prevSlow, curFast, curSlow, ok := inputs.defined(); ok {
		switch {
		case state.position == positionFlat && prevFast <= prevSlow && curFast > curSlow:
			state = s.enterLong(state, symbol, bar)
		case state.position == positionLong && prevFast >= prevSlow && curFast < curSlow:
			state, trade = s.exitLong(state, symbol, bar)
		}
	}

	equity := state.cash + state.quantity*bar.Close

	returns := 0.0
	if state.hasPrev {
		returns = equity/state.prevEquity - 1
	}

	state.prevEquity = equity
	state.hasPrev = true

	point := types.EquityPoint{
		Date:    bar.Date,
		Equity:  equity,
		Cash:    state.cash,
		Returns: returns,
	}

	return state, point, trade
}

// enterLong sizes the position off 95% of cash, floored to whole shares.
// A quantity of zero means the signal is ignored, not queued.
func (s *Simulator) enterLong(state simulationState, symbol string, bar types.Bar) simulationState {
	quantity := math.Floor(state.cash * entryCashFraction / bar.Close)
	if quantity <= 0 {
		s.logger.Debug("buy signal skipped, quantity floors to zero",
			zap.String("symbol", symbol),
			zap.Float64("cash", state.cash),
			zap.Float64("close", bar.Close),
		)

		return state
	}

	notional := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(bar.Close))
	fee := decimal.NewFromFloat(s.fee.Calculate(quantity, bar.Close))
	cash, _ := decimal.NewFromFloat(state.cash).Sub(notional).Sub(fee).Float64()

	state.cash = cash
	state.quantity = quantity
	state.entryPrice = bar.Close
	state.position = positionLong

	return state
}

// exitLong flattens the position at the current close and logs one trade.
func (s *Simulator) exitLong(state simulationState, symbol string, bar types.Bar) (simulationState, optional.Option[types.Trade]) {
	notional := decimal.NewFromFloat(state.quantity).Mul(decimal.NewFromFloat(bar.Close))
	fee := decimal.NewFromFloat(s.fee.Calculate(state.quantity, bar.Close))
	cash, _ := decimal.NewFromFloat(state.cash).Add(notional).Sub(fee).Float64()

	pnlDec := decimal.NewFromFloat(bar.Close).
		Sub(decimal.NewFromFloat(state.entryPrice)).
		Mul(decimal.NewFromFloat(state.quantity))
	pnl, _ := pnlDec.Float64()

	feeValue, _ := fee.Float64()

	trade := types.Trade{
		Date:       bar.Date,
		Symbol:     symbol,
		Side:       types.TradeSideSell,
		Quantity:   state.quantity,
		EntryPrice: state.entryPrice,
		ExitPrice:  bar.Close,
		PnL:        pnl,
		Commission: feeValue,
	}

	state.cash = cash
	state.quantity = 0
	state.entryPrice = 0
	state.position = positionFlat

	return state, optional.Some(trade)
}
