package strat

import (
	"image/color"
	"math"

	"github.com/hsluv/hsluv-go"
)

// categoryCount is the size of the qualitative avulsion palette.
const categoryCount = 9

var (
	activeFill    = color.RGBA{R: 153, G: 153, B: 153, A: 255}
	uncoloredFill = color.RGBA{R: 214, G: 196, B: 160, A: 255}
	categories    = buildCategoryPalette()
)

// ActiveColor is the fill used for the live channel's rectangles.
func ActiveColor() color.RGBA { return activeFill }

// BodyColors returns one fill colour per body for the given mode. Ages are
// normalised to the range present; discharge and subsidence use the control
// ranges so colours stay stable as bodies come and go.
func BodyColors(bodies []BodySnapshot, mode ColorMode, cfg Config) []color.RGBA {
	out := make([]color.RGBA, len(bodies))
	if len(bodies) == 0 {
		return out
	}
	switch mode {
	case ColorAge:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, b := range bodies {
			lo = math.Min(lo, float64(b.Age))
			hi = math.Max(hi, float64(b.Age))
		}
		for i, b := range bodies {
			out[i] = Ramp(normalize(float64(b.Age), lo, hi))
		}
	case ColorDischarge:
		for i, b := range bodies {
			out[i] = Ramp(normalize(b.Qw, cfg.QwRange.Min, cfg.QwRange.Max))
		}
	case ColorSubsidence:
		for i, b := range bodies {
			out[i] = Ramp(normalize(b.Sig*1000, cfg.SigRange.Min, cfg.SigRange.Max))
		}
	case ColorAvulsion:
		for i, b := range bodies {
			out[i] = Category(b.AvulsionNumber)
		}
	default:
		for i := range out {
			out[i] = uncoloredFill
		}
	}
	return out
}

// Ramp maps t in [0, 1] onto a perceptually uniform dark-purple to yellow
// ramp. Values outside the interval are clamped.
func Ramp(t float64) color.RGBA {
	t = clamp01(t)
	h := 280 - 195*t
	s := 85 + 15*t
	l := 22 + 68*t
	return hsluvRGBA(h, s, l)
}

// Category returns the qualitative colour for index n, cycling every
// categoryCount entries.
func Category(n int) color.RGBA {
	idx := ((n % categoryCount) + categoryCount) % categoryCount
	return categories[idx]
}

func buildCategoryPalette() []color.RGBA {
	palette := make([]color.RGBA, categoryCount)
	for i := range palette {
		h := 12 + 360*float64(i)/categoryCount
		l := 55.0
		if i%2 == 1 {
			l = 70
		}
		palette[i] = hsluvRGBA(h, 90, l)
	}
	return palette
}

func hsluvRGBA(h, s, l float64) color.RGBA {
	r, g, b := hsluv.HsluvToRGB(h, s, l)
	return color.RGBA{R: channel8(r), G: channel8(g), B: channel8(b), A: 255}
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func normalize(v, lo, hi float64) float64 {
	if !(hi > lo) {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
