package commission

// PerShareFee charges a fixed rate per share with a minimum fee per fill.
type PerShareFee struct {
	rate   float64
	minFee float64
}

func NewPerShareFee() Fee {
	return &PerShareFee{
		rate:   0.005,
		minFee: 1.0,
	}
}

func (c *PerShareFee) Calculate(quantity float64, price float64) float64 {
	fee := quantity * c.rate
	if fee < c.minFee {
		return c.minFee
	}

	return fee
}
