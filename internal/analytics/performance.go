package analytics

import (
	"fmt"
	"math"

	"github.com/syntrade-lab/syntrade/internal/types"
)

// tradingDaysPerYear is the fixed annualization base. Metrics annualize by
// bar count, not elapsed calendar time.
const tradingDaysPerYear = 252

// Analyze computes the risk/return metrics for one equity curve and trade
// log. Degenerate inputs produce zero-valued metrics, never NaN: every
// ratio defaults to 0 when its denominator is zero or its sample is empty.
func Analyze(equity []types.EquityPoint, trades []types.Trade, initialCash float64) (types.Metrics, error) {
	if initialCash <= 0 {
		return types.Metrics{}, fmt.Errorf("initial cash must be positive, got %f", initialCash)
	}

	if len(equity) == 0 {
		return types.Metrics{}, nil
	}

	finalEquity := equity[len(equity)-1].Equity

	// Per-point returns, excluding the first point.
	returns := make([]float64, 0, len(equity)-1)
	for _, point := range equity[1:] {
		returns = append(returns, point.Returns)
	}

	mean, std := meanStd(returns)

	metrics := types.Metrics{
		TotalReturn: finalEquity/initialCash - 1,
		CAGR:        math.Pow(finalEquity/initialCash, tradingDaysPerYear/float64(len(equity))) - 1,
		MaxDrawdown: maxDrawdown(equity),
		FinalEquity: finalEquity,
		TradeCount:  len(trades),
	}

	if std > 0 {
		metrics.Sharpe = mean / std * math.Sqrt(tradingDaysPerYear)
	}

	if downside := downsideDeviation(returns); downside > 0 {
		metrics.Sortino = mean / downside * math.Sqrt(tradingDaysPerYear)
	}

	if metrics.MaxDrawdown != 0 {
		metrics.Calmar = metrics.CAGR / math.Abs(metrics.MaxDrawdown)
	}

	metrics.WinRate, metrics.ProfitFactor = tradeStatistics(trades)
	metrics.Exposure = exposure(returns)
	metrics.AnnualizedVolatility = std * math.Sqrt(tradingDaysPerYear) * 100

	return metrics, nil
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	mean := sum / float64(len(values))

	var sqSum float64
	for _, v := range values {
		sqSum += (v - mean) * (v - mean)
	}

	return mean, math.Sqrt(sqSum / float64(len(values)))
}

// downsideDeviation is the population root-mean-square of the strictly
// negative returns, 0 if none exist.
func downsideDeviation(returns []float64) float64 {
	var sqSum float64

	var count int

	for _, r := range returns {
		if r < 0 {
			sqSum += r * r
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return math.Sqrt(sqSum / float64(count))
}

// maxDrawdown tracks a running peak and reports the most negative
// (equity-peak)/peak observed, 0 if equity never falls below a prior peak.
func maxDrawdown(equity []types.EquityPoint) float64 {
	peak := equity[0].Equity

	var maxDD float64

	for _, point := range equity {
		if point.Equity > peak {
			peak = point.Equity
		}

		if peak > 0 {
			if dd := (point.Equity - peak) / peak; dd < maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}

// tradeStatistics computes win rate (percent) and profit factor over the
// closed-trade log.
func tradeStatistics(trades []types.Trade) (winRate float64, profitFactor float64) {
	if len(trades) == 0 {
		return 0, 0
	}

	var wins int

	var grossProfit, grossLoss float64

	for _, trade := range trades {
		if trade.PnL > 0 {
			wins++
			grossProfit += trade.PnL
		} else {
			grossLoss += math.Abs(trade.PnL)
		}
	}

	winRate = float64(wins) / float64(len(trades)) * 100

	if grossLoss > 0 {
		profitFactor = grossProfit / grossLoss
	}

	return winRate, profitFactor
}

// exposure is the percentage of returns that are non-zero.
func exposure(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	var active int

	for _, r := range returns {
		if r != 0 {
			active++
		}
	}

	return float64(active) / float64(len(returns)) * 100
}
