// Package render turns stratigraphy frames into screen geometry. The viewport
// math is headless; the ebiten painter lives behind the ebiten build tag.
package render

import (
	"math"

	"rivers2strat/internal/geom"
	"rivers2strat/internal/strat"
)

// headroom is the fraction of the view height shown above the basin top.
const headroom = 0.1

// Viewport maps model coordinates (metres) into a pixel rectangle. Screen y
// grows downward.
type Viewport struct {
	// Plot area in screen pixels.
	Left, Top     float64
	Width, Height float64

	// Model window.
	XMin, XMax float64
	YMin, YMax float64
}

// NewViewport frames the channel belt horizontally and the stratigraphic view
// window vertically: x in [-Bb/2, Bb/2], y in [bast-yView, bast+0.1*yView].
func NewViewport(p strat.Params, bast float64, left, top, width, height float64) Viewport {
	return Viewport{
		Left:   left,
		Top:    top,
		Width:  width,
		Height: height,
		XMin:   -p.Bb / 2,
		XMax:   p.Bb / 2,
		YMin:   bast - p.YView,
		YMax:   bast + headroom*p.YView,
	}
}

// ForFrame builds the viewport for a frame's parameters and basin top.
func ForFrame(f strat.Frame, left, top, width, height float64) Viewport {
	return NewViewport(f.Params, f.BasinTop, left, top, width, height)
}

func (v Viewport) sx() float64 { return v.Width / (v.XMax - v.XMin) }
func (v Viewport) sy() float64 { return v.Height / (v.YMax - v.YMin) }

// ToScreen projects a model point.
func (v Viewport) ToScreen(p geom.Point) (float32, float32) {
	x := v.Left + (p.X-v.XMin)*v.sx()
	y := v.Top + (v.YMax-p.Y)*v.sy()
	return float32(x), float32(y)
}

// ToModel is the inverse of ToScreen.
func (v Viewport) ToModel(x, y float32) geom.Point {
	return geom.Point{
		X: v.XMin + (float64(x)-v.Left)/v.sx(),
		Y: v.YMax - (float64(y)-v.Top)/v.sy(),
	}
}

// VerticalExaggeration is the ratio of the vertical to the horizontal
// pixel-per-metre scale.
func (v Viewport) VerticalExaggeration() float64 {
	sx := v.sx()
	if sx == 0 || math.IsNaN(sx) || math.IsInf(sx, 0) {
		return math.NaN()
	}
	return v.sy() / sx
}

// Visible reports whether a vertical extent overlaps the model window.
func (v Viewport) Visible(minY, maxY float64) bool {
	return maxY >= v.YMin && minY <= v.YMax
}

// RectToScreen returns the screen rectangle (x, y, w, h) of a model rectangle.
func (v Viewport) RectToScreen(r geom.Rect) (x, y, w, h float32) {
	x0, y0 := v.ToScreen(geom.Point{X: r.Min.X, Y: r.Max().Y})
	x1, y1 := v.ToScreen(geom.Point{X: r.Max().X, Y: r.Min.Y})
	return x0, y0, x1 - x0, y1 - y0
}

// Project converts parallel coordinate slices into screen points.
func (v Viewport) Project(xs, ys []float64) []Vec {
	n := min(len(xs), len(ys))
	out := make([]Vec, n)
	for i := 0; i < n; i++ {
		out[i].X, out[i].Y = v.ToScreen(geom.Point{X: xs[i], Y: ys[i]})
	}
	return out
}

// Vec is a screen-space point.
type Vec struct {
	X, Y float32
}
