package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GenerationParams controls the synthetic price series generator.
// Identical params plus identical seed reproduce a bit-identical series.
type GenerationParams struct {
	// Count is the number of trading-day bars to generate.
	Count int `yaml:"count" json:"count" jsonschema:"title=Count,description=Number of trading-day bars to generate,minimum=1" validate:"required,gt=0"`
	// StartPrice is the close of the first bar.
	StartPrice float64 `yaml:"start_price" json:"start_price" jsonschema:"title=Start Price,minimum=0" validate:"required,gt=0"`
	// Drift is the annualized drift of the geometric random walk.
	Drift float64 `yaml:"drift" json:"drift" jsonschema:"title=Drift"`
	// Volatility is the annualized volatility of the geometric random walk.
	Volatility float64 `yaml:"volatility" json:"volatility" jsonschema:"title=Volatility,minimum=0" validate:"gte=0"`
	// Seed seeds the pseudo-random stream.
	Seed int64 `yaml:"seed" json:"seed" jsonschema:"title=Seed"`
}

// Validate fails fast on out-of-range generation parameters.
func (p GenerationParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid generation params: %w", err)
	}

	return nil
}

// StrategyParams controls the moving-average-crossover simulation.
type StrategyParams struct {
	// FastPeriod is the fast SMA window.
	FastPeriod int `yaml:"fast_period" json:"fast_period" jsonschema:"title=Fast Period,minimum=1" validate:"required,gt=0"`
	// SlowPeriod is the slow SMA window. Must exceed FastPeriod.
	SlowPeriod int `yaml:"slow_period" json:"slow_period" jsonschema:"title=Slow Period,minimum=2" validate:"required,gt=0,gtfield=FastPeriod"`
	// InitialCash is the starting account balance.
	InitialCash float64 `yaml:"initial_cash" json:"initial_cash" jsonschema:"title=Initial Cash,minimum=0" validate:"required,gt=0"`
}

// Validate fails fast on out-of-range strategy parameters.
func (p StrategyParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid strategy params: %w", err)
	}

	return nil
}

// DefaultStrategyParams returns the canonical 20/50 crossover setup.
func DefaultStrategyParams() StrategyParams {
	return StrategyParams{
		FastPeriod:  20,
		SlowPeriod:  50,
		InitialCash: 100000,
	}
}
