package types

import "time"

type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// Trade is one realized round trip. Only the closing action is logged; the
// opening fill is folded into the entry price used for PnL.
type Trade struct {
	Date     time.Time `yaml:"date" json:"date" csv:"date"`
	Symbol   string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Side     TradeSide `yaml:"side" json:"side" csv:"side"`
	Quantity float64   `yaml:"quantity" json:"quantity" csv:"quantity"`
	// EntryPrice is the close at which the position was opened.
	EntryPrice float64 `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	// ExitPrice is the close at which the position was flattened.
	ExitPrice float64 `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	// PnL is (exit_price - entry_price) * quantity, before commission.
	PnL float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
	// Commission is the exit-side fee charged on the closing fill.
	Commission float64 `yaml:"commission" json:"commission" csv:"commission"`
}

// EquityPoint is one mark-to-market snapshot of the account.
// Equity == Cash + position quantity * close at every recorded point.
type EquityPoint struct {
	Date   time.Time `yaml:"date" json:"date" csv:"date"`
	Equity float64   `yaml:"equity" json:"equity" csv:"equity"`
	Cash   float64   `yaml:"cash" json:"cash" csv:"cash"`
	// Returns is the fractional equity change versus the previous point,
	// 0 for the first point.
	Returns float64 `yaml:"returns" json:"returns" csv:"returns"`
}
