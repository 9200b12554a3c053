package strat

import (
	"log/slog"
	"math"

	"rivers2strat/internal/core"
	"rivers2strat/internal/geom"
	"rivers2strat/internal/hydraulics"
)

// fitTolerance absorbs rounding when a seed is drawn exactly at the belt edge.
const fitTolerance = 1e-9

// stepEnv is everything one tick reads: the parameter snapshot and the fixed
// configuration.
type stepEnv struct {
	params Params
	cfg    *Config
	rep    float64
	rng    *core.RNG
	log    *slog.Logger
}

func (e stepEnv) geometry() (hydraulics.Geometry, error) {
	return hydraulics.ComputeWithRep(e.params.Qw, e.cfg.Constants, e.rep)
}

// dz is the subsidence applied to every element this tick.
func (e stepEnv) dz() float64 { return e.params.Sig * e.cfg.Dt }

// ChannelState is one channel cross-section at one tick. After construction
// only Subside may change it.
type ChannelState struct {
	XCenter float64 // centerline position within the belt (m)
	H       float64 // bankfull depth (m)
	Bc      float64 // bankfull width (m)
	S       float64 // regime slope
	DxDt    float64 // lateral migration rate (m/yr)

	YCenter   float64
	YUpper    float64
	LowerLeft geom.Point

	Age int     // tick the state was created on
	Qw  float64 // discharge the geometry was derived from
	Sig float64 // subsidence rate in force when created
}

// newSeedState places a new channel uniformly at random within the belt.
// When the channel is wider than the belt it is centred.
func newSeedState(env stepEnv, geo hydraulics.Geometry, bast float64, age int) ChannelState {
	half := env.params.Bb / 2
	x := 0.0
	if geo.Width < env.params.Bb {
		x = env.rng.Uniform(-half+geo.Width/2, half-geo.Width/2)
	} else {
		env.log.Warn("channel wider than belt; centring seed",
			slog.Float64("width", geo.Width), slog.Float64("belt", env.params.Bb))
	}
	s := ChannelState{
		XCenter: x,
		H:       geo.Depth,
		Bc:      geo.Width,
		S:       geo.Slope,
		Age:     age,
		Qw:      env.params.Qw,
		Sig:     env.params.Sig,
	}
	s.place(bast)
	return s
}

// newContinuationState builds the next state at position x. A position whose
// rectangle would leave the belt is rejected: the channel holds the previous
// centerline and its migration rate is reflected. If the previous centerline
// no longer fits either (the belt narrowed or the channel widened) it is
// clamped to the nearest fitting position.
func newContinuationState(env stepEnv, geo hydraulics.Geometry, prev ChannelState, x, dxdt, bast float64, age int) ChannelState {
	bb := env.params.Bb
	if !fitsBelt(x, geo.Width, bb) {
		x = prev.XCenter
		dxdt = -dxdt
		if !fitsBelt(x, geo.Width, bb) {
			x = clampToBelt(x, geo.Width, bb)
		}
	}
	s := ChannelState{
		XCenter: x,
		H:       geo.Depth,
		Bc:      geo.Width,
		S:       geo.Slope,
		DxDt:    dxdt,
		Age:     age,
		Qw:      env.params.Qw,
		Sig:     env.params.Sig,
	}
	s.place(bast)
	return s
}

func (s *ChannelState) place(bast float64) {
	s.YCenter = bast - s.H/2
	s.YUpper = bast
	s.LowerLeft = s.lowerLeft()
}

func (s *ChannelState) lowerLeft() geom.Point {
	return geom.Point{X: s.XCenter - s.Bc/2, Y: s.YCenter - s.H/2}
}

// Subside lowers the state by dz.
func (s *ChannelState) Subside(dz float64) {
	s.YCenter -= dz
	s.YUpper -= dz
	s.LowerLeft = s.lowerLeft()
}

// Rect returns the channel cross-section rectangle.
func (s ChannelState) Rect() geom.Rect {
	return geom.Rect{Min: s.LowerLeft, W: s.Bc, H: s.H}
}

// OuterExtent is the distance of the farther bank from the belt axis.
func (s ChannelState) OuterExtent() float64 {
	return outerExtent(s.XCenter, s.Bc)
}

func outerExtent(x, width float64) float64 {
	return math.Max(math.Abs(x-width/2), math.Abs(x+width/2))
}

func fitsBelt(x, width, bb float64) bool {
	half := bb / 2
	return outerExtent(x, width) <= half+fitTolerance*half
}

func clampToBelt(x, width, bb float64) float64 {
	limit := bb/2 - width/2
	if limit <= 0 {
		return 0
	}
	return math.Min(math.Max(x, -limit), limit)
}
