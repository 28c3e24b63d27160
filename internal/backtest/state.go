package backtest

// positionState is the two-state machine the simulation runs per symbol.
type positionState string

const (
	positionFlat positionState = "FLAT"
	positionLong positionState = "LONG"
)

// simulationState is the loop-carried accumulator threaded through every
// step of the simulation. The simulator exclusively owns this state for
// the duration of one run; only the resulting curve and trade log leave.
type simulationState struct {
	position   positionState
	cash       float64
	quantity   float64
	entryPrice float64

	// prevEquity backs the per-point fractional return. hasPrev is false
	// until the first equity point has been recorded.
	prevEquity float64
	hasPrev    bool
}

func newSimulationState(initialCash float64) simulationState {
	return simulationState{
		position: positionFlat,
		cash:     initialCash,
	}
}
