package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/syntrade-lab/syntrade/internal/logger"
	"github.com/syntrade-lab/syntrade/internal/types"
)

func testRun(symbol string, seed int64) SymbolRun {
	return SymbolRun{
		Symbol: symbol,
		Generation: types.GenerationParams{
			Count:      400,
			StartPrice: 150,
			Drift:      0.12,
			Volatility: 0.28,
			Seed:       seed,
		},
		Strategy: types.DefaultStrategyParams(),
	}
}

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.engine = NewEngine(logger.NewNopLogger(), nil)
}

func (suite *EngineTestSuite) TestRunSymbol() {
	run := testRun("AAPL_SYN", 1)

	result, err := suite.engine.RunSymbol(run)
	suite.Require().NoError(err)

	suite.Equal("AAPL_SYN", result.Symbol)
	suite.NotEmpty(result.ID)
	suite.WithinDuration(time.Now().UTC(), result.Timestamp, time.Minute)

	suite.Len(result.Bars, 400)
	suite.Len(result.Equity, 400-run.Strategy.SlowPeriod)
	suite.Equal(len(result.Trades), result.Metrics.TradeCount)

	finalEquity := result.Equity[len(result.Equity)-1].Equity
	suite.InDelta(finalEquity/run.Strategy.InitialCash-1, result.Metrics.TotalReturn, 1e-12)
	suite.Equal(finalEquity, result.Metrics.FinalEquity)
}

func (suite *EngineTestSuite) TestRunSymbolIsIdempotent() {
	run := testRun("AAPL_SYN", 1)

	first, err := suite.engine.RunSymbol(run)
	suite.Require().NoError(err)

	second, err := suite.engine.RunSymbol(run)
	suite.Require().NoError(err)

	// IDs and timestamps differ per invocation; the computed artifacts
	// must not.
	suite.NotEqual(first.ID, second.ID)
	suite.Equal(first.Bars, second.Bars)
	suite.Equal(first.Equity, second.Equity)
	suite.Equal(first.Trades, second.Trades)
	suite.Equal(first.Metrics, second.Metrics)
}

func (suite *EngineTestSuite) TestRunSymbolRejectsInvalidRun() {
	run := testRun("", 1)

	_, err := suite.engine.RunSymbol(run)
	suite.Error(err)

	run = testRun("AAPL_SYN", 1)
	run.Strategy.SlowPeriod = run.Strategy.FastPeriod

	_, err = suite.engine.RunSymbol(run)
	suite.Error(err)
}

func (suite *EngineTestSuite) TestRunAllKeepsInputOrder() {
	runs := []SymbolRun{
		testRun("AAPL_SYN", 1),
		testRun("MSFT_SYN", 2),
		testRun("TSLA_SYN", 3),
	}

	results, err := suite.engine.RunAll(runs)
	suite.Require().NoError(err)
	suite.Require().Len(results, 3)

	for i, run := range runs {
		suite.Equal(run.Symbol, results[i].Symbol)
	}

	// Distinct seeds lead to distinct series.
	suite.NotEqual(results[0].Bars[10].Close, results[1].Bars[10].Close)
}

func (suite *EngineTestSuite) TestRunAllFailsFastOnInvalidRun() {
	runs := []SymbolRun{
		testRun("AAPL_SYN", 1),
		{Symbol: "BROKEN"},
	}

	_, err := suite.engine.RunAll(runs)
	suite.Error(err)
}

func (suite *EngineTestSuite) TestReportCarriesRunParameters() {
	run := testRun("AAPL_SYN", 1)

	result, err := suite.engine.RunSymbol(run)
	suite.Require().NoError(err)

	report := result.Report(run)
	suite.Equal(result.ID, report.ID)
	suite.Equal(run.Generation, report.Generation)
	suite.Equal(run.Strategy, report.Strategy)
	suite.Equal(result.Metrics, report.Metrics)
}
