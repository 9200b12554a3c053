// Package geom holds the small amount of 2-D computational geometry the
// stratigraphy engine needs: axis-aligned rectangles, their union, convex
// hulls and polygon rings.
package geom

import "math"

// Point is a 2-D coordinate in model units (metres).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	Min  Point
	W, H float64
}

// Max returns the upper-right corner.
func (r Rect) Max() Point { return Point{X: r.Min.X + r.W, Y: r.Min.Y + r.H} }

// Corners lists the four corners counter-clockwise from the lower-left.
func (r Rect) Corners() [4]Point {
	max := r.Max()
	return [4]Point{
		r.Min,
		{X: max.X, Y: r.Min.Y},
		max,
		{X: r.Min.X, Y: max.Y},
	}
}

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	max := r.Max()
	return p.X >= r.Min.X && p.X <= max.X && p.Y >= r.Min.Y && p.Y <= max.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return !(r.W > 0) || !(r.H > 0) }

// Ring is a closed polygon boundary. The first vertex is not repeated at the
// end. Rings produced by this package wind counter-clockwise.
type Ring []Point

// SignedArea returns the shoelace area; positive for counter-clockwise rings.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := r[i]
		b := r[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the enclosed area.
func (r Ring) Area() float64 { return math.Abs(r.SignedArea()) }

// Bounds returns the bounding box of the ring.
func (r Ring) Bounds() Rect {
	if len(r) == 0 {
		return Rect{}
	}
	min, max := r[0], r[0]
	for _, p := range r[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return Rect{Min: min, W: max.X - min.X, H: max.Y - min.Y}
}

// Xs returns a copy of the ring's x coordinates.
func (r Ring) Xs() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.X
	}
	return out
}

// Ys returns a copy of the ring's y coordinates.
func (r Ring) Ys() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.Y
	}
	return out
}

// cross is the z component of (b-a) x (c-a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
