package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/syntrade-lab/syntrade/internal/analytics"
	"github.com/syntrade-lab/syntrade/internal/backtest"
	"github.com/syntrade-lab/syntrade/internal/backtest/commission"
	"github.com/syntrade-lab/syntrade/internal/logger"
	"github.com/syntrade-lab/syntrade/internal/market"
	"github.com/syntrade-lab/syntrade/internal/types"
	"go.uber.org/zap"
)

// SymbolRun is the full input for one symbol's pipeline pass.
type SymbolRun struct {
	Symbol     string                 `yaml:"symbol" json:"symbol" validate:"required"`
	Generation types.GenerationParams `yaml:"generation" json:"generation"`
	Strategy   types.StrategyParams   `yaml:"strategy" json:"strategy"`
}

// Validate fails fast before any computation starts.
func (r SymbolRun) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	if err := r.Generation.Validate(); err != nil {
		return err
	}

	return r.Strategy.Validate()
}

// Result holds the three artifacts one pass produces: the bar sequence,
// the equity curve plus trade log, and the metrics record.
type Result struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Symbol    string              `json:"symbol"`
	Bars      []types.Bar         `json:"bars"`
	Equity    []types.EquityPoint `json:"equity"`
	Trades    []types.Trade       `json:"trades"`
	Metrics   types.Metrics       `json:"metrics"`
}

// Report shapes the result for the yaml report writer.
func (r *Result) Report(run SymbolRun) types.MetricsReport {
	return types.MetricsReport{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		Symbol:     r.Symbol,
		Generation: run.Generation,
		Strategy:   run.Strategy,
		Metrics:    r.Metrics,
	}
}

// Engine composes generator, simulator, and analyzer into one pipeline.
// Each symbol's pass is wholly independent; the engine holds no state
// across runs.
type Engine struct {
	logger *logger.Logger
	fee    commission.Fee

	// ShowProgress renders a progress bar across symbols in RunAll.
	ShowProgress bool
}

// NewEngine creates a pipeline engine. A nil fee uses the default 10 bps
// percent model; a nil logger discards logs.
func NewEngine(log *logger.Logger, fee commission.Fee) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if fee == nil {
		fee = commission.NewPercentFee()
	}

	return &Engine{
		logger: log,
		fee:    fee,
	}
}

// RunSymbol executes generate -> simulate -> analyze for one symbol.
// The computation is pure and idempotent given the run parameters.
func (e *Engine) RunSymbol(run SymbolRun) (*Result, error) {
	if err := run.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run for symbol %q: %w", run.Symbol, err)
	}

	generator, err := market.NewGenerator(run.Generation)
	if err != nil {
		return nil, err
	}

	bars := generator.Generate()

	simulator, err := backtest.NewSimulator(run.Strategy, e.fee, e.logger)
	if err != nil {
		return nil, err
	}

	simResult, err := simulator.Run(run.Symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("simulation failed for symbol %q: %w", run.Symbol, err)
	}

	metrics, err := analytics.Analyze(simResult.Equity, simResult.Trades, run.Strategy.InitialCash)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for symbol %q: %w", run.Symbol, err)
	}

	e.logger.Info("run complete",
		zap.String("symbol", run.Symbol),
		zap.Int("bars", len(bars)),
		zap.Int("trades", len(simResult.Trades)),
		zap.Float64("total_return", metrics.TotalReturn),
	)

	return &Result{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Symbol:    run.Symbol,
		Bars:      bars,
		Equity:    simResult.Equity,
		Trades:    simResult.Trades,
		Metrics:   metrics,
	}, nil
}

// RunAll executes every symbol pass. Passes share no state, so they run
// in parallel, one goroutine per symbol. Results keep input order.
func (e *Engine) RunAll(runs []SymbolRun) ([]*Result, error) {
	for _, run := range runs {
		if err := run.Validate(); err != nil {
			return nil, fmt.Errorf("invalid run for symbol %q: %w", run.Symbol, err)
		}
	}

	var bar *progressbar.ProgressBar
	if e.ShowProgress {
		bar = progressbar.Default(int64(len(runs)))
		bar.Describe("Running backtests")
	}

	results := make([]*Result, len(runs))
	errs := make([]error, len(runs))

	var wg sync.WaitGroup

	for i, run := range runs {
		wg.Add(1)

		go func(i int, run SymbolRun) {
			defer wg.Done()

			results[i], errs[i] = e.RunSymbol(run)

			if bar != nil {
				bar.Add(1)
			}
		}(i, run)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
