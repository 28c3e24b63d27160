package market

import (
	"fmt"
	"math"
	"time"

	"github.com/syntrade-lab/syntrade/internal/types"
)

const (
	// tradingDaysPerYear fixes the daily step of the random walk.
	tradingDaysPerYear = 252

	// openNoiseDamping scales the overnight gap noise relative to the
	// closing-step volatility.
	openNoiseDamping = 0.3
	// intradayRangeScale scales the high/low envelope around the body.
	intradayRangeScale = 0.5

	baseVolume     = 1000000.0
	volumeVariance = 200000.0
)

// seriesStartDate is the first calendar date of every generated series.
// 2018-01-02 is a Tuesday, so the first bar is always a trading day.
var seriesStartDate = time.Date(2018, time.January, 2, 0, 0, 0, 0, time.UTC)

// Generator produces a reproducible synthetic daily OHLCV series from a
// seed and market parameters. Closes follow a geometric random walk, which
// keeps every price strictly positive.
type Generator struct {
	params types.GenerationParams
	rng    *LCG
}

// NewGenerator validates the parameters and creates a generator. The
// pseudo-random stream is owned by the generator and seeded once here.
func NewGenerator(params types.GenerationParams) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	return &Generator{
		params: params,
		rng:    NewLCG(params.Seed),
	}, nil
}

// Generate produces the full bar sequence. Calling Generate on two
// generators built from identical parameters yields bit-identical series.
func (g *Generator) Generate() []types.Bar {
	dt := 1.0 / tradingDaysPerYear
	sigmaStep := g.params.Volatility * math.Sqrt(dt)
	driftStep := (g.params.Drift - 0.5*g.params.Volatility*g.params.Volatility) * dt

	bars := make([]types.Bar, 0, g.params.Count)
	date := seriesStartDate
	prevClose := g.params.StartPrice

	for i := 0; i < g.params.Count; i++ {
		var closePrice, openPrice float64

		if i == 0 {
			closePrice = g.params.StartPrice
			openPrice = g.params.StartPrice
		} else {
			closePrice = prevClose * math.Exp(driftStep+sigmaStep*g.rng.NormFloat64())
			// The overnight gap uses its own draw, independent of the
			// closing step.
			openPrice = prevClose * (1 + openNoiseDamping*sigmaStep*g.rng.NormFloat64())
		}

		body := math.Max(closePrice, openPrice)
		high := body * (1 + math.Abs(g.rng.NormFloat64())*sigmaStep*intradayRangeScale)
		low := math.Min(closePrice, openPrice) * (1 - math.Abs(g.rng.NormFloat64())*sigmaStep*intradayRangeScale)
		volume := math.Abs(g.rng.NormFloat64()*volumeVariance + baseVolume)

		bars = append(bars, types.Bar{
			Date:   date,
			Open:   openPrice,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})

		prevClose = closePrice
		date = nextTradingDay(date)
	}

	return bars
}

// nextTradingDay advances one calendar day at a time, skipping Saturday
// and Sunday.
func nextTradingDay(date time.Time) time.Time {
	next := date.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
