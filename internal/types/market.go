package types

import "time"

// Bar is a single daily OHLCV candle. Bars are immutable once generated and
// strictly increasing by date, weekends excluded.
type Bar struct {
	Date   time.Time `yaml:"date" json:"date" csv:"date"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// BarField selects which price field of a Bar an indicator reads.
type BarField string

const (
	BarFieldOpen   BarField = "open"
	BarFieldHigh   BarField = "high"
	BarFieldLow    BarField = "low"
	BarFieldClose  BarField = "close"
	BarFieldVolume BarField = "volume"
)

// Value returns the selected field of the bar. Unknown fields fall back to
// the close, matching the close-centric strategy logic.
func (f BarField) Value(bar Bar) float64 {
	switch f {
	case BarFieldOpen:
		return bar.Open
	case BarFieldHigh:
		return bar.High
	case BarFieldLow:
		return bar.Low
	case BarFieldVolume:
		return bar.Volume
	default:
		return bar.Close
	}
}
