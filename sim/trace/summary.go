package trace

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Batches       int
	TotalAttempts int
	TotalAccepted int

	TicksRecorded         int
	FinalMeanGoalDistance float64
	PeakSpeed             float64
	MeanFleeing           float64
	FleeingTicks          int // recorded ticks with at least one fleeing agent
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.Batches = len(st.Batches)
	for _, b := range st.Batches {
		summary.TotalAttempts += b.Attempts
		summary.TotalAccepted += b.Accepted
	}

	summary.TicksRecorded = len(st.Ticks)
	if len(st.Ticks) == 0 {
		return summary
	}

	speeds := make([]float64, len(st.Ticks))
	fleeing := make([]float64, len(st.Ticks))
	for i, r := range st.Ticks {
		speeds[i] = r.MaxSpeed
		fleeing[i] = float64(r.Fleeing)
		if r.Fleeing > 0 {
			summary.FleeingTicks++
		}
	}
	summary.FinalMeanGoalDistance = st.Ticks[len(st.Ticks)-1].MeanGoalDistance
	summary.PeakSpeed = floats.Max(speeds)
	summary.MeanFleeing = stat.Mean(fleeing, nil)

	return summary
}
