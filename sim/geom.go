package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point2D is one sample of the input point cloud.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Circle is a packed circle. X and Y come from an accepted sample, Z is the
// depth jitter drawn at creation. R only grows while packing; Growing is
// transient packing state.
type Circle struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	R       float64 `json:"r"`
	Growing bool    `json:"-"`
}

// Center returns the circle center as a 3D vector.
func (c Circle) Center() r3.Vec {
	return r3.Vec{X: c.X, Y: c.Y, Z: c.Z}
}

// DistanceTo returns the distance between the centers of c and o.
func (c Circle) DistanceTo(o Circle) float64 {
	return r3.Norm(r3.Sub(c.Center(), o.Center()))
}

// Transform is what a sink needs to place one agent instance: a uniform scale
// (the bound circle's radius) and a translation (the agent position).
type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Scale float64 `json:"scale"`
}

// Matrix returns the transform as a column-major 4x4 matrix, the layout
// instance buffers expect.
func (t Transform) Matrix() [16]float32 {
	s := float32(t.Scale)
	return [16]float32{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		float32(t.X), float32(t.Y), float32(t.Z), 1,
	}
}

// IsFinite reports whether both coordinates of p are neither NaN nor infinite.
func IsFinite(p Point2D) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Bounds returns the axis-aligned bounding box of points.
// ok is false for an empty slice.
func Bounds(points []Point2D) (lo, hi Point2D, ok bool) {
	if len(points) == 0 {
		return Point2D{}, Point2D{}, false
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi, true
}
