// Package trace provides run recording for packing and simulation analysis.
// This package has no dependencies on sim/ or its sub-packages; it stores pure data types.
package trace

// BatchRecord captures one phase-1 placement batch and the coarse growth pass that closed it.
type BatchRecord struct {
	Batch     int  // 0-based batch index
	Accepted  int  // circles accepted in this batch
	Attempts  int  // placement attempts spent in this batch
	Circles   int  // total circles after the batch
	Growing   int  // circles still growing after the coarse pass
	Saturated bool // attempts budget exhausted; phase 1 ends after this batch
}

// TickRecord captures aggregate agent state after one simulation tick.
type TickRecord struct {
	Tick             int64
	MeanGoalDistance float64 // mean distance from agents to their circle centers
	MaxGoalDistance  float64
	MaxSpeed         float64 // largest agent speed; velocity is not clamped, so this may exceed max speed
	Fleeing          int     // agents inside the flee radius this tick
}
