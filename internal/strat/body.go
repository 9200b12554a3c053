package strat

import (
	"fmt"
	"math"

	"rivers2strat/internal/geom"
)

// Body is the deposit left by a channel after avulsion. Its x coordinates are
// fixed; only Subside moves it.
type Body struct {
	Age            int // tick the source channel was created on
	AvulsionNumber int
	Qw             float64 // mean discharge over the channel's life
	Sig            float64 // mean subsidence rate over the channel's life

	xs, ys []float64
	parts  int
}

// Freeze converts an avulsed channel into a Body. The outline is the union of
// every state rectangle; when the union falls apart into several pieces the
// convex hull of all rectangles is used so the body stays one polygon.
func Freeze(c *ActiveChannel) (*Body, error) {
	if !c.Avulsed() {
		return nil, fmt.Errorf("%w: freeze of growing channel %d", ErrAvulsionProtocol, c.AvulsionNumber)
	}
	states := c.States()
	rects := make([]geom.Rect, len(states))
	var qw, sig float64
	for i, s := range states {
		rects[i] = s.Rect()
		qw += s.Qw
		sig += s.Sig
	}

	ring, parts := outline(rects)
	if len(ring) < 3 {
		return nil, fmt.Errorf("%w: channel %d outline has %d vertices", ErrDegenerateGeometry, c.AvulsionNumber, len(ring))
	}
	for _, p := range ring {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%w: channel %d outline is not finite", ErrDegenerateGeometry, c.AvulsionNumber)
		}
	}

	n := float64(len(states))
	return &Body{
		Age:            c.Age,
		AvulsionNumber: c.AvulsionNumber,
		Qw:             qw / n,
		Sig:            sig / n,
		xs:             ring.Xs(),
		ys:             ring.Ys(),
		parts:          parts,
	}, nil
}

func outline(rects []geom.Rect) (geom.Ring, int) {
	rings := geom.UnionRects(rects)
	switch len(rings) {
	case 0:
		return nil, 0
	case 1:
		return rings[0], 1
	}
	corners := make([]geom.Point, 0, 4*len(rects))
	for _, r := range rects {
		c := r.Corners()
		corners = append(corners, c[:]...)
	}
	return geom.ConvexHull(corners), len(rings)
}

// Subside lowers the body by dz.
func (b *Body) Subside(dz float64) {
	for i := range b.ys {
		b.ys[i] -= dz
	}
}

// Xs returns the outline x coordinates. Callers must not modify the slice.
func (b *Body) Xs() []float64 { return b.xs }

// Ys returns the outline y coordinates. Callers must not modify the slice.
func (b *Body) Ys() []float64 { return b.ys }

// Parts is the number of pieces the rectangle union had before bridging.
func (b *Body) Parts() int { return b.parts }

// MaxY is the body's upper elevation.
func (b *Body) MaxY() float64 {
	max := math.Inf(-1)
	for _, y := range b.ys {
		max = math.Max(max, y)
	}
	return max
}

// MinY is the body's base elevation.
func (b *Body) MinY() float64 {
	min := math.Inf(1)
	for _, y := range b.ys {
		min = math.Min(min, y)
	}
	return min
}

// Outline returns a copy of the outline as a ring.
func (b *Body) Outline() geom.Ring {
	ring := make(geom.Ring, len(b.xs))
	for i := range b.xs {
		ring[i] = geom.Point{X: b.xs[i], Y: b.ys[i]}
	}
	return ring
}

// Area is the cross-sectional area of the body (m^2).
func (b *Body) Area() float64 { return b.Outline().Area() }
