package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/syntrade-lab/syntrade/internal/types"
)

// SMA computes the simple moving average of the selected field over the
// full bar sequence. The value at index i is the arithmetic mean over bars
// [i-period, i) — the current bar is strictly excluded, so a same-bar
// signal decision never reads the bar it is deciding on. Indices below
// period are None.
func SMA(bars []types.Bar, field types.BarField, period int) (Series, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be a positive integer, got %d", period)
	}

	series := make(Series, len(bars))
	for i := range series {
		series[i] = optional.None[float64]()
	}

	// windowSum holds the sum over the trailing period bars strictly
	// before index i.
	var windowSum float64

	for i := range bars {
		if i >= period {
			series[i] = optional.Some(windowSum / float64(period))
		}

		windowSum += field.Value(bars[i])

		if i >= period {
			windowSum -= field.Value(bars[i-period])
		}
	}

	return series, nil
}
