//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"rivers2strat/internal/geom"
	"rivers2strat/internal/strat"
)

var (
	background = color.RGBA{R: 238, G: 232, B: 218, A: 255}
	outline    = color.RGBA{R: 40, G: 36, B: 30, A: 255}
	basinLine  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// Painter draws a frame into a viewport on an ebiten image.
type Painter struct {
	white *ebiten.Image

	vs []ebiten.Vertex
	is []uint16

	ShowOutlines bool
	ShowActive   bool
}

// NewPainter allocates the solid source image used for polygon fills.
func NewPainter() *Painter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Painter{
		white:        img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		ShowOutlines: true,
		ShowActive:   true,
	}
}

// Draw paints bodies, the active channel and the basin-top line.
func (p *Painter) Draw(dst *ebiten.Image, f strat.Frame, v Viewport, cfg strat.Config) {
	vector.DrawFilledRect(dst, float32(v.Left), float32(v.Top), float32(v.Width), float32(v.Height), background, false)

	colors := strat.BodyColors(f.Bodies, f.Params.Color, cfg)
	for i, b := range f.Bodies {
		if len(b.Ys) < 3 {
			continue
		}
		lo, hi := b.Ys[0], b.Ys[0]
		for _, y := range b.Ys {
			lo = min(lo, y)
			hi = max(hi, y)
		}
		if !v.Visible(lo, hi) {
			continue
		}
		pts := v.Project(b.Xs, b.Ys)
		p.fillPolygon(dst, pts, colors[i])
		if p.ShowOutlines {
			strokePolygon(dst, pts, outline)
		}
	}

	if p.ShowActive {
		active := strat.ActiveColor()
		for _, s := range f.Active.States {
			x, y, w, h := v.RectToScreen(s.Rect())
			vector.DrawFilledRect(dst, x, y, w, h, active, false)
		}
	}

	_, y := v.ToScreen(geom.Point{Y: f.BasinTop})
	for _, seg := range Dashes(float32(v.Left), float32(v.Left+v.Width), 8, 6) {
		vector.StrokeLine(dst, seg[0], y, seg[1], y, 1.5, basinLine, true)
	}
}

func (p *Painter) fillPolygon(dst *ebiten.Image, pts []Vec, clr color.RGBA) {
	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		path.LineTo(pt.X, pt.Y)
	}
	path.Close()

	p.vs, p.is = path.AppendVerticesAndIndicesForFilling(p.vs[:0], p.is[:0])
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range p.vs {
		p.vs[i].SrcX = 1
		p.vs[i].SrcY = 1
		p.vs[i].ColorR = r
		p.vs[i].ColorG = g
		p.vs[i].ColorB = b
		p.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.EvenOdd, AntiAlias: true}
	dst.DrawTriangles(p.vs, p.is, p.white, op)
}

func strokePolygon(dst *ebiten.Image, pts []Vec, clr color.Color) {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		vector.StrokeLine(dst, a.X, a.Y, b.X, b.Y, 1, clr, true)
	}
}
