package commission

// DefaultPercentRate is 10 bps per fill.
const DefaultPercentRate = 0.001

// PercentFee charges a fixed percentage of the fill notional.
type PercentFee struct {
	rate float64
}

func NewPercentFee() Fee {
	return &PercentFee{rate: DefaultPercentRate}
}

func NewPercentFeeWithRate(rate float64) Fee {
	return &PercentFee{rate: rate}
}

func (c *PercentFee) Calculate(quantity float64, price float64) float64 {
	return quantity * price * c.rate
}
