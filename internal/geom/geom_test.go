package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insideConvex(t *testing.T, hull Ring, p Point) bool {
	t.Helper()
	n := len(hull)
	for i := 0; i < n; i++ {
		if cross(hull[i], hull[(i+1)%n], p) < -1e-7 {
			return false
		}
	}
	return true
}

func TestConvexHullSquareWithInteriorPoints(t *testing.T) {
	pts := []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {1, 1}, {1, 0}, {0.5, 1.5}}
	hull := ConvexHull(pts)
	require.Len(t, hull, 4)
	assert.Equal(t, Point{0, 0}, hull[0])
	assert.InDelta(t, 4.0, hull.Area(), 1e-12)
	assert.Greater(t, hull.SignedArea(), 0.0, "hull must wind counter-clockwise")
}

func TestConvexHullDegenerate(t *testing.T) {
	assert.Nil(t, ConvexHull(nil))
	assert.Len(t, ConvexHull([]Point{{1, 1}, {1, 1}}), 1)
	assert.Len(t, ConvexHull([]Point{{0, 0}, {1, 1}, {2, 2}}), 2)
}

func TestUnionSingleRect(t *testing.T) {
	rings := UnionRects([]Rect{{Min: Point{-1, -2}, W: 3, H: 1}})
	require.Len(t, rings, 1)
	assert.Equal(t, Ring{{-1, -2}, {2, -2}, {2, -1}, {-1, -1}}, rings[0])
}

func TestUnionOverlappingRectsIsLShape(t *testing.T) {
	rings := UnionRects([]Rect{
		{Min: Point{0, 0}, W: 2, H: 1},
		{Min: Point{0, 0}, W: 1, H: 2},
	})
	require.Len(t, rings, 1)
	ring := rings[0]
	assert.Len(t, ring, 6)
	assert.InDelta(t, 3.0, ring.Area(), 1e-12)
	assert.Greater(t, ring.SignedArea(), 0.0)
}

func TestUnionStaircase(t *testing.T) {
	// Consecutive, overlapping, subsiding channel rectangles.
	var rects []Rect
	for k := 0; k < 6; k++ {
		rects = append(rects, Rect{Min: Point{float64(k) * 0.5, -float64(k) * 0.2}, W: 2, H: 1})
	}
	rings := UnionRects(rects)
	require.Len(t, rings, 1)
	b := rings[0].Bounds()
	assert.InDelta(t, 0.0, b.Min.X, 1e-12)
	assert.InDelta(t, 4.5, b.Max().X, 1e-12)
	assert.InDelta(t, -1.0, b.Min.Y, 1e-12)
	assert.InDelta(t, 1.0, b.Max().Y, 1e-12)
}

func TestUnionDisjointRects(t *testing.T) {
	rings := UnionRects([]Rect{
		{Min: Point{10, 0}, W: 1, H: 1},
		{Min: Point{0, 0}, W: 1, H: 1},
	})
	require.Len(t, rings, 2)
	assert.Equal(t, Point{0, 0}, rings[0][0])
	assert.Equal(t, Point{10, 0}, rings[1][0])
}

func TestUnionCornerTouchIsTwoComponents(t *testing.T) {
	rings := UnionRects([]Rect{
		{Min: Point{0, 0}, W: 1, H: 1},
		{Min: Point{1, 1}, W: 1, H: 1},
	})
	assert.Len(t, rings, 2)
}

func TestUnionFillsHoles(t *testing.T) {
	// Four bars around an empty centre.
	rings := UnionRects([]Rect{
		{Min: Point{0, 0}, W: 3, H: 1},
		{Min: Point{0, 2}, W: 3, H: 1},
		{Min: Point{0, 0}, W: 1, H: 3},
		{Min: Point{2, 0}, W: 1, H: 3},
	})
	require.Len(t, rings, 1)
	assert.Equal(t, Ring{{0, 0}, {3, 0}, {3, 3}, {0, 3}}, rings[0])
}

func TestUnionIgnoresEmptyRects(t *testing.T) {
	assert.Nil(t, UnionRects(nil))
	assert.Nil(t, UnionRects([]Rect{{Min: Point{0, 0}, W: 0, H: 1}}))
}

func TestUnionAreaMatchesCellCount(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for trial := 0; trial < 50; trial++ {
		var rects []Rect
		x := 0.0
		for k := 0; k < 8; k++ {
			x += float64(rng.IntN(3) - 1)
			rects = append(rects, Rect{Min: Point{x, float64(-k)}, W: 2, H: 3})
		}
		rings := UnionRects(rects)
		require.Len(t, rings, 1)
		ring := rings[0]
		assert.Greater(t, ring.SignedArea(), 0.0)

		// Every rectangle corner lies inside the hull of the ring.
		hull := ConvexHull(ring)
		for _, r := range rects {
			for _, c := range r.Corners() {
				assert.True(t, insideConvex(t, hull, c), "corner %v outside hull", c)
			}
		}
		// The union is never smaller than its largest member.
		assert.GreaterOrEqual(t, ring.Area(), 6.0-1e-9)
		assert.False(t, math.IsNaN(ring.Area()))
	}
}

func TestRingAccessors(t *testing.T) {
	ring := Ring{{0, 0}, {4, 0}, {4, 2}, {0, 2}}
	assert.Equal(t, []float64{0, 4, 4, 0}, ring.Xs())
	assert.Equal(t, []float64{0, 0, 2, 2}, ring.Ys())
	assert.Equal(t, Rect{Min: Point{0, 0}, W: 4, H: 2}, ring.Bounds())
	assert.True(t, Rect{Min: Point{0, 0}, W: 1, H: 1}.Contains(Point{1, 1}))
}

func TestClipBand(t *testing.T) {
	square := Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.InDelta(t, 8.0, ClipBand(square, 1, 3).Area(), 1e-12)
	assert.InDelta(t, 16.0, ClipBand(square, -1, 10).Area(), 1e-12)
	assert.Empty(t, ClipBand(square, 5, 6))
	assert.Empty(t, ClipBand(nil, 0, 1))

	tri := Ring{{0, 0}, {4, 0}, {0, 4}}
	// the band y in [2, 4] keeps the 2x2 tip
	assert.InDelta(t, 2.0, ClipBand(tri, 2, 4).Area(), 1e-12)
	require.Len(t, ClipBand(tri, 2, 4), 3)
}
