package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/syntrade-lab/syntrade/internal/types"
)

// DefaultRSIPeriod is the conventional 14-bar lookback.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index over the full bar sequence.
// Gains and losses are the positive and negative bar-to-bar close deltas;
// for index i >= period the averages are the simple (non-exponential)
// means of the trailing period deltas. RSI is 100 when the average loss is
// exactly zero. Indices below period are None. Defined values always lie
// in [0, 100].
func RSI(bars []types.Bar, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be a positive integer, got %d", period)
	}

	series := make(Series, len(bars))
	for i := range series {
		series[i] = optional.None[float64]()
	}

	for i := period; i < len(bars); i++ {
		var gainSum, lossSum float64

		for k := i - period + 1; k <= i; k++ {
			delta := bars[k].Close - bars[k-1].Close
			if delta > 0 {
				gainSum += delta
			} else {
				lossSum -= delta
			}
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)

		if avgLoss == 0 {
			series[i] = optional.Some(100.0)
			continue
		}

		rs := avgGain / avgLoss
		series[i] = optional.Some(100 - 100/(1+rs))
	}

	return series, nil
}
