package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Metrics is the flat record of risk/return scalars computed from one
// equity curve and trade log. Every ratio defaults to 0, never NaN, when
// its denominator is zero or its input sample is empty.
type Metrics struct {
	// TotalReturn is finalEquity/initialCash - 1, as a ratio.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// CAGR annualizes by bar count over a fixed 252-trading-day year, not
	// elapsed calendar time. This is an approximation.
	CAGR float64 `yaml:"cagr" json:"cagr"`
	// Sharpe is mean/std of per-bar returns scaled by sqrt(252).
	Sharpe float64 `yaml:"sharpe" json:"sharpe"`
	// Sortino penalizes only the downside deviation of returns.
	Sortino float64 `yaml:"sortino" json:"sortino"`
	// MaxDrawdown is the most negative (equity-peak)/peak observed, <= 0.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// Calmar is CAGR over the absolute max drawdown.
	Calmar float64 `yaml:"calmar" json:"calmar"`
	// WinRate is winning closed trades over all closed trades, in percent.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// ProfitFactor is gross profit over gross loss of closed trades.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// Exposure is the percentage of bars with non-zero returns, a coarse
	// proxy for time spent with an open position.
	Exposure float64 `yaml:"exposure" json:"exposure"`
	// AnnualizedVolatility is std * sqrt(252), in percent.
	AnnualizedVolatility float64 `yaml:"annualized_volatility" json:"annualized_volatility"`
	// FinalEquity is the last equity value of the curve.
	FinalEquity float64 `yaml:"final_equity" json:"final_equity"`
	// TradeCount is the number of closed trades.
	TradeCount int `yaml:"trade_count" json:"trade_count"`
}

// MetricsReport is one backtest run's metrics plus run metadata, in the
// shape written to the output yaml file.
type MetricsReport struct {
	// ID is the unique identifier for this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the simulated instrument.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Generation holds the synthetic series parameters.
	Generation GenerationParams `yaml:"generation" json:"generation"`
	// Strategy holds the crossover strategy parameters.
	Strategy StrategyParams `yaml:"strategy" json:"strategy"`
	// Metrics holds the computed risk/return scalars.
	Metrics Metrics `yaml:"metrics" json:"metrics"`
}

// WriteMetricsReport writes the reports for a run to a yaml file.
func WriteMetricsReport(path string, reports []MetricsReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metrics report to file: %w", err)
	}

	return nil
}
