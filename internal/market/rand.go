package market

import "math"

// LCG parameters. The classic 233280 family gives a short-period but fully
// reproducible stream, which is the point: the same seed must replay the
// same series on every platform.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// LCG is a linear-congruential pseudo-random source. It carries its own
// state and is advanced only through its methods, so generators composed
// on top of it stay testable in isolation.
type LCG struct {
	state int64
}

// NewLCG creates a generator seeded by seed.
func NewLCG(seed int64) *LCG {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}

	return &LCG{state: state}
}

// Float64 returns the next uniform variate in [0, 1).
func (l *LCG) Float64() float64 {
	l.state = (l.state*lcgMultiplier + lcgIncrement) % lcgModulus

	return float64(l.state) / float64(lcgModulus)
}

// NormFloat64 returns the next standard-normal variate using the trig
// Box-Muller transform. Each uniform draw is re-sampled if it lands on
// zero so the logarithm is always defined.
func (l *LCG) NormFloat64() float64 {
	u1 := l.Float64()
	for u1 == 0 {
		u1 = l.Float64()
	}

	u2 := l.Float64()
	for u2 == 0 {
		u2 = l.Float64()
	}

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
