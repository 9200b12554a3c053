// Package hydraulics implements the empirical regime relations of Wilkerson
// and Parker (2011) that map bankfull discharge to channel geometry.
package hydraulics

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateGeometry reports regime output that is non-finite or
// non-positive. Callers must hold their previous geometry when they see it.
var ErrDegenerateGeometry = errors.New("degenerate channel geometry")

// Constants bundles the sediment and fluid properties the regime relations use.
type Constants struct {
	D50 float64 // median grain size (m)
	R   float64 // submerged specific gravity
	G   float64 // gravitational acceleration (m/s^2)
	Nu  float64 // kinematic viscosity (m^2/s)
}

// DefaultConstants returns medium sand in water.
func DefaultConstants() Constants {
	return Constants{D50: 300e-6, R: 1.65, G: 9.81, Nu: 1.004e-6}
}

// Validate reports the first non-positive or non-finite constant.
func (c Constants) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"D50", c.D50},
		{"R", c.R},
		{"g", c.G},
		{"nu", c.Nu},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be positive and finite, got %v", f.name, f.value)
		}
	}
	return nil
}

// Rep returns the particle Reynolds number for the constants.
func (c Constants) Rep() float64 {
	return ParticleReynolds(c.D50, c.R, c.G, c.Nu)
}

// DimensionlessDischarge is Qhat = Qw / (sqrt(g D50) D50^2).
func DimensionlessDischarge(qw, d50, g float64) float64 {
	return qw / (math.Sqrt(g*d50) * d50 * d50)
}

// ParticleReynolds is Rep = sqrt(R g D50) D50 / nu.
func ParticleReynolds(d50, r, g, nu float64) float64 {
	return math.Sqrt(r*g*d50) * d50 / nu
}

// DimensionlessWidth is the regime width Bbar(Qhat, Rep).
func DimensionlessWidth(qhat, rep float64) float64 {
	return 0.00398 * math.Pow(qhat, 0.269) * math.Pow(rep, 0.494)
}

// DimensionlessDepth is the regime depth Hbar(Qhat, Rep).
func DimensionlessDepth(qhat, rep float64) float64 {
	return 22.9 * math.Pow(qhat, -0.124) * math.Pow(rep, -0.310)
}

// DimensionlessSlope is the regime slope Sbar(Qhat, Rep).
func DimensionlessSlope(qhat, rep float64) float64 {
	return 19.1 * math.Pow(qhat, -0.394) * math.Pow(rep, -0.196)
}

// ToDimensional scales a dimensionless length by Qw^(2/5) / g^(1/5).
func ToDimensional(x, qw, g float64) float64 {
	return x * math.Pow(qw, 0.4) / math.Pow(g, 0.2)
}

// Geometry is the bankfull cross-section for one discharge.
type Geometry struct {
	Width float64 // Bc (m)
	Depth float64 // H (m)
	Slope float64 // S (dimensionless)
}

// Compute derives the channel geometry for discharge qw. Rep is recomputed from
// the constants; callers on a hot path should use ComputeWithRep.
func Compute(qw float64, c Constants) (Geometry, error) {
	return ComputeWithRep(qw, c, c.Rep())
}

// ComputeWithRep derives the channel geometry using a precomputed Rep.
func ComputeWithRep(qw float64, c Constants, rep float64) (Geometry, error) {
	if !(qw > 0) || math.IsInf(qw, 0) {
		return Geometry{}, fmt.Errorf("%w: discharge %v", ErrDegenerateGeometry, qw)
	}
	qhat := DimensionlessDischarge(qw, c.D50, c.G)
	geo := Geometry{
		Width: ToDimensional(DimensionlessWidth(qhat, rep), qw, c.G),
		Depth: ToDimensional(DimensionlessDepth(qhat, rep), qw, c.G),
		Slope: DimensionlessSlope(qhat, rep),
	}
	if !finitePositive(geo.Width) || !finitePositive(geo.Depth) || !finitePositive(geo.Slope) {
		return Geometry{}, fmt.Errorf("%w: discharge %v gives width %v depth %v slope %v",
			ErrDegenerateGeometry, qw, geo.Width, geo.Depth, geo.Slope)
	}
	return geo, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
