package commission

// tier applies rate to fills whose notional is at least threshold.
type tier struct {
	threshold float64
	rate      float64
}

// TieredFee charges a rate tiered by fill notional, the shape common in
// prime-brokerage agreements.
type TieredFee struct {
	tiers []tier
}

func NewTieredFee() Fee {
	return &TieredFee{
		tiers: []tier{
			{threshold: 0, rate: 0.0015},
			{threshold: 10000, rate: 0.0010},
			{threshold: 100000, rate: 0.0007},
			{threshold: 1000000, rate: 0.0005},
		},
	}
}

func (c *TieredFee) Calculate(quantity float64, price float64) float64 {
	notional := quantity * price

	rate := c.tiers[0].rate
	for _, t := range c.tiers {
		if notional >= t.threshold {
			rate = t.rate
		}
	}

	return notional * rate
}
