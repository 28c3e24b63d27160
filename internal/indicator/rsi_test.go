package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/syntrade-lab/syntrade/internal/market"
	"github.com/syntrade-lab/syntrade/internal/types"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestWarmUpUndefined() {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6})

	series, err := RSI(bars, 3)
	suite.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, ok := series.At(i)
		suite.False(ok, "index %d should be undefined", i)
	}

	_, ok := series.At(3)
	suite.True(ok)
}

func (suite *RSITestSuite) TestAllGainsIsHundred() {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6, 7})

	series, err := RSI(bars, 3)
	suite.Require().NoError(err)

	for i := 3; i < len(bars); i++ {
		value, ok := series.At(i)
		suite.True(ok)
		suite.Equal(100.0, value, "index %d", i)
	}
}

func (suite *RSITestSuite) TestAllLossesIsZero() {
	bars := barsFromCloses([]float64{10, 9, 8, 7, 6, 5})

	series, err := RSI(bars, 3)
	suite.Require().NoError(err)

	for i := 3; i < len(bars); i++ {
		value, ok := series.At(i)
		suite.True(ok)
		suite.Equal(0.0, value, "index %d", i)
	}
}

func (suite *RSITestSuite) TestKnownValue() {
	// Deltas over the window at index 4: +2, -1, +1 with period 3 gives
	// avgGain=1, avgLoss=1/3, RS=3, RSI=75.
	bars := barsFromCloses([]float64{10, 10, 12, 11, 12})

	series, err := RSI(bars, 3)
	suite.Require().NoError(err)

	value, ok := series.At(4)
	suite.True(ok)
	suite.InDelta(75.0, value, 1e-12)
}

func (suite *RSITestSuite) TestBoundsOnGeneratedSeries() {
	generator, err := market.NewGenerator(types.GenerationParams{
		Count:      1000,
		StartPrice: 100,
		Drift:      0.05,
		Volatility: 0.4,
		Seed:       7,
	})
	suite.Require().NoError(err)

	bars := generator.Generate()

	series, err := RSI(bars, DefaultRSIPeriod)
	suite.Require().NoError(err)

	for i := range series {
		if value, ok := series.At(i); ok {
			suite.GreaterOrEqual(value, 0.0, "index %d", i)
			suite.LessOrEqual(value, 100.0, "index %d", i)
		}
	}
}

func (suite *RSITestSuite) TestInvalidPeriod() {
	bars := barsFromCloses([]float64{1, 2, 3})

	_, err := RSI(bars, 0)
	suite.Error(err)
}
