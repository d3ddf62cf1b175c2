// Package testutil provides shared test infrastructure for the swarmpack
// packages: point-cloud fixtures and packing invariant assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/inference-sim/swarmpack/sim"
)

// OverlapEpsilon absorbs float accumulation from repeated fine growth steps.
const OverlapEpsilon = 1e-9

// SquareCorners returns the four corners of a side x side square centered on the origin.
func SquareCorners(side float64) []sim.Point2D {
	h := side / 2
	return []sim.Point2D{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
}

// Grid returns an n x n lattice of points with the given spacing, centered on the origin.
func Grid(n int, spacing float64) []sim.Point2D {
	points := make([]sim.Point2D, 0, n*n)
	off := float64(n-1) * spacing / 2
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			points = append(points, sim.Point2D{X: float64(i)*spacing - off, Y: float64(j)*spacing - off})
		}
	}
	return points
}

// AssertNoOverlap fails t for every circle pair closer than the sum of their radii.
func AssertNoOverlap(t *testing.T, circles []sim.Circle) {
	t.Helper()
	for i := range circles {
		for j := i + 1; j < len(circles); j++ {
			d := circles[i].DistanceTo(circles[j])
			if d < circles[i].R+circles[j].R-OverlapEpsilon {
				t.Errorf("circles %d and %d overlap: distance=%v, r_i+r_j=%v", i, j, d, circles[i].R+circles[j].R)
			}
		}
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
