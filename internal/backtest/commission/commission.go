package commission

// Fee calculates the commission for a fill and returns the fee in USD.
type Fee interface {
	Calculate(quantity float64, price float64) float64
}

type Model string

const (
	ModelPercent  Model = "percent"
	ModelPerShare Model = "per_share"
	ModelTiered   Model = "tiered"
)

var AllModels = []any{
	ModelPercent,
	ModelPerShare,
	ModelTiered,
}

// GetFeeHandler returns the fee model for the given name. Unknown names
// fall back to the default percent model.
func GetFeeHandler(model Model) Fee {
	switch model {
	case ModelPercent:
		return NewPercentFee()
	case ModelPerShare:
		return NewPerShareFee()
	case ModelTiered:
		return NewTieredFee()
	default:
		return NewPercentFee()
	}
}
