package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/syntrade-lab/syntrade/internal/types"
)

type AnalyticsTestSuite struct {
	suite.Suite
}

func TestAnalyticsSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsTestSuite))
}

// curveFromEquities builds an equity curve with returns derived from
// consecutive equity values, 0 for the first point.
func curveFromEquities(equities []float64) []types.EquityPoint {
	curve := make([]types.EquityPoint, 0, len(equities))
	date := time.Date(2018, time.January, 2, 0, 0, 0, 0, time.UTC)

	for i, equity := range equities {
		returns := 0.0
		if i > 0 {
			returns = equity/equities[i-1] - 1
		}

		curve = append(curve, types.EquityPoint{
			Date:    date,
			Equity:  equity,
			Cash:    equity,
			Returns: returns,
		})

		date = date.AddDate(0, 0, 1)
	}

	return curve
}

func (suite *AnalyticsTestSuite) TestInvalidInitialCash() {
	_, err := Analyze(curveFromEquities([]float64{100}), nil, 0)
	suite.Error(err)

	_, err = Analyze(curveFromEquities([]float64{100}), nil, -100)
	suite.Error(err)
}

func (suite *AnalyticsTestSuite) TestEmptyCurve() {
	metrics, err := Analyze(nil, nil, 100000)
	suite.Require().NoError(err)
	suite.Equal(types.Metrics{}, metrics)
}

func (suite *AnalyticsTestSuite) TestConstantCurveDefaultsToZero() {
	// A flat curve with no trades has zero-valued ratios across the
	// board, never NaN.
	curve := curveFromEquities([]float64{1000, 1000, 1000, 1000})

	metrics, err := Analyze(curve, nil, 1000)
	suite.Require().NoError(err)

	suite.Equal(0.0, metrics.TotalReturn)
	suite.Equal(0.0, metrics.Sharpe)
	suite.Equal(0.0, metrics.Sortino)
	suite.Equal(0.0, metrics.MaxDrawdown)
	suite.Equal(0.0, metrics.Calmar)
	suite.Equal(0.0, metrics.WinRate)
	suite.Equal(0.0, metrics.ProfitFactor)
	suite.Equal(0.0, metrics.Exposure)
	suite.Equal(0.0, metrics.AnnualizedVolatility)
	suite.Equal(1000.0, metrics.FinalEquity)
	suite.Equal(0, metrics.TradeCount)
	suite.False(math.IsNaN(metrics.CAGR))
}

func (suite *AnalyticsTestSuite) TestTotalReturnAndCAGR() {
	curve := curveFromEquities([]float64{1000, 1050, 1100, 1200})

	metrics, err := Analyze(curve, nil, 1000)
	suite.Require().NoError(err)

	suite.InDelta(0.2, metrics.TotalReturn, 1e-12)
	suite.InDelta(math.Pow(1.2, 252.0/4)-1, metrics.CAGR, 1e-9)
	suite.Equal(1200.0, metrics.FinalEquity)
}

func (suite *AnalyticsTestSuite) TestMaxDrawdownFromRunningPeak() {
	// Peak 1200, trough 900: drawdown -25%. The later recovery to a new
	// peak does not erase it.
	curve := curveFromEquities([]float64{1000, 1200, 900, 1100, 1300})

	metrics, err := Analyze(curve, nil, 1000)
	suite.Require().NoError(err)

	suite.InDelta(-0.25, metrics.MaxDrawdown, 1e-12)
	suite.InDelta(metrics.CAGR/0.25, metrics.Calmar, 1e-9)
}

func (suite *AnalyticsTestSuite) TestTradeStatistics() {
	trades := []types.Trade{
		{PnL: 100},
		{PnL: -40},
		{PnL: 60},
		{PnL: 0}, // breakeven counts as a loss of zero
	}

	curve := curveFromEquities([]float64{1000, 1120})

	metrics, err := Analyze(curve, trades, 1000)
	suite.Require().NoError(err)

	suite.Equal(4, metrics.TradeCount)
	suite.InDelta(50.0, metrics.WinRate, 1e-12)
	suite.InDelta(160.0/40.0, metrics.ProfitFactor, 1e-12)
}

func (suite *AnalyticsTestSuite) TestProfitFactorWithoutLosses() {
	trades := []types.Trade{{PnL: 100}, {PnL: 50}}

	metrics, err := Analyze(curveFromEquities([]float64{1000, 1150}), trades, 1000)
	suite.Require().NoError(err)

	suite.Equal(100.0, metrics.WinRate)
	suite.Equal(0.0, metrics.ProfitFactor)
}

func (suite *AnalyticsTestSuite) TestExposure() {
	// Two active returns out of four.
	curve := []types.EquityPoint{
		{Equity: 1000, Returns: 0},
		{Equity: 1000, Returns: 0},
		{Equity: 1100, Returns: 0.1},
		{Equity: 1100, Returns: 0},
		{Equity: 990, Returns: -0.1},
	}

	metrics, err := Analyze(curve, nil, 1000)
	suite.Require().NoError(err)

	suite.InDelta(50.0, metrics.Exposure, 1e-12)
}

func (suite *AnalyticsTestSuite) TestSharpeAndSortino() {
	// Returns over the curve: 0.1, -0.05, 0.1.
	curve := curveFromEquities([]float64{1000, 1100, 1045, 1149.5})

	metrics, err := Analyze(curve, nil, 1000)
	suite.Require().NoError(err)

	returns := []float64{0.1, -0.05, 0.1}
	mean := (returns[0] + returns[1] + returns[2]) / 3

	var sqSum float64
	for _, r := range returns {
		sqSum += (r - mean) * (r - mean)
	}

	std := math.Sqrt(sqSum / 3)

	suite.InDelta(mean/std*math.Sqrt(252), metrics.Sharpe, 1e-9)
	// One negative return, so downside deviation is its magnitude.
	suite.InDelta(mean/0.05*math.Sqrt(252), metrics.Sortino, 1e-9)
	suite.InDelta(std*math.Sqrt(252)*100, metrics.AnnualizedVolatility, 1e-9)
}

func (suite *AnalyticsTestSuite) TestMonotoneGrowthHasZeroSortino() {
	curve := curveFromEquities([]float64{1000, 1010, 1020, 1030})

	metrics, err := Analyze(curve, nil, 1000)
	suite.Require().NoError(err)

	suite.Equal(0.0, metrics.Sortino)
	suite.Equal(0.0, metrics.MaxDrawdown)
	suite.Positive(metrics.Sharpe)
}
