//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"rivers2strat/internal/geom"
	"rivers2strat/internal/render"
	"rivers2strat/internal/strat"
)

var (
	axisColor  = color.RGBA{R: 60, G: 60, B: 66, A: 255}
	labelColor = color.RGBA{R: 30, G: 30, B: 36, A: 255}
	pauseColor = color.RGBA{R: 170, G: 40, B: 30, A: 255}
)

// Overlay annotates the cross-section: depth axis, vertical exaggeration,
// the tick readout and the keyboard help line. Keys 1 and 2 toggle body
// outlines and the active channel on the painter; H toggles the help.
type Overlay struct {
	painter  *render.Painter
	dt       float64
	showHelp bool
}

// NewOverlay constructs an overlay bound to painter. dt converts ticks into
// model years.
func NewOverlay(painter *render.Painter, dt float64) *Overlay {
	return &Overlay{painter: painter, dt: dt, showHelp: true}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) && o.painter != nil {
		o.painter.ShowOutlines = !o.painter.ShowOutlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) && o.painter != nil {
		o.painter.ShowActive = !o.painter.ShowActive
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the annotations for frame f inside viewport v after ticks
// completed ticks.
func (o *Overlay) Draw(screen *ebiten.Image, f strat.Frame, v render.Viewport, ticks int, paused bool) {
	face := basicfont.Face7x13
	left := float32(v.Left)

	vector.StrokeLine(screen, left, float32(v.Top), left, float32(v.Top+v.Height), 1, axisColor, false)
	for _, y := range render.Ticks(v.YMin, v.YMax, 5) {
		_, sy := v.ToScreen(geom.Point{Y: y})
		vector.StrokeLine(screen, left-4, sy, left, sy, 1, axisColor, false)
		// depth below the basin top
		label := fmt.Sprintf("%.0f", f.BasinTop-y)
		bounds := text.BoundString(face, label)
		text.Draw(screen, label, face, int(left)-8-bounds.Dx(), int(sy)+4, labelColor)
	}

	x := int(v.Left) + 8
	y := int(v.Top) + 16
	years := float64(ticks) * o.dt
	readout := fmt.Sprintf("tick %s   %s yr   avulsions %s   bodies %d",
		humanize.Comma(int64(ticks)),
		humanize.Comma(int64(math.Round(years))),
		humanize.Comma(int64(f.Avulsions)),
		len(f.Bodies))
	text.Draw(screen, readout, face, x, y, labelColor)

	ve := v.VerticalExaggeration()
	veLabel := fmt.Sprintf("VE = %sx   timer %s / %s yr",
		humanize.FormatFloat("#,###.#", ve),
		humanize.FormatFloat("#,###.", f.Active.Timer),
		humanize.FormatFloat("#,###.", f.Params.Ta))
	text.Draw(screen, veLabel, face, x, y+16, labelColor)
	if paused {
		text.Draw(screen, "PAUSED", face, int(v.Left+v.Width)-56, y, pauseColor)
	}

	if o.showHelp {
		help := "space pause  N step  R reset strat  P reset params  S reseed  1 outlines  2 channel  H help  Q quit"
		text.Draw(screen, help, face, x, int(v.Top+v.Height)-8, labelColor)
	}
}
