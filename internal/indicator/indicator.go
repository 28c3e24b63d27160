package indicator

import (
	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeSMA IndicatorType = "sma"
	IndicatorTypeRSI IndicatorType = "rsi"
)

// Series is an indicator value sequence aligned index-for-index with the
// bar sequence it was computed from. Entries before the warm-up period are
// None, never zero.
type Series []optional.Option[float64]

// At returns the value at index i and whether it is defined.
func (s Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}

	if s[i].IsNone() {
		return 0, false
	}

	return s[i].Unwrap(), true
}
