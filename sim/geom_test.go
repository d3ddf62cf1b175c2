package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircle_DistanceTo_UsesDepth(t *testing.T) {
	a := Circle{X: 0, Y: 0, Z: 0}
	b := Circle{X: 3, Y: 4, Z: 12}
	assert.InDelta(t, 13.0, a.DistanceTo(b), 1e-12)
	assert.InDelta(t, 13.0, b.DistanceTo(a), 1e-12)
}

func TestTransform_Matrix_ScaleAndTranslation(t *testing.T) {
	m := Transform{X: 1, Y: -2, Z: 3, Scale: 0.5}.Matrix()

	assert.Equal(t, float32(0.5), m[0])
	assert.Equal(t, float32(0.5), m[5])
	assert.Equal(t, float32(0.5), m[10])
	assert.Equal(t, [4]float32{1, -2, 3, 1}, [4]float32{m[12], m[13], m[14], m[15]})
	for _, idx := range []int{1, 2, 3, 4, 6, 7, 8, 9, 11} {
		assert.Zero(t, m[idx], "off-diagonal element %d", idx)
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(Point2D{X: -3, Y: 1e300}))
	assert.False(t, IsFinite(Point2D{X: math.NaN()}))
	assert.False(t, IsFinite(Point2D{Y: math.Inf(-1)}))
}

func TestBounds(t *testing.T) {
	_, _, ok := Bounds(nil)
	assert.False(t, ok)

	lo, hi, ok := Bounds([]Point2D{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}})
	require.True(t, ok)
	assert.Equal(t, Point2D{X: -2, Y: -1}, lo)
	assert.Equal(t, Point2D{X: 4, Y: 5}, hi)
	assert.InDelta(t, math.Hypot(6, 6), math.Hypot(hi.X-lo.X, hi.Y-lo.Y), 1e-12)
}
