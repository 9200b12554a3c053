package strat

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/multierr"

	"rivers2strat/internal/hydraulics"
)

// ColorMode selects which deposit attribute drives channel body colouring.
type ColorMode int

const (
	ColorAge ColorMode = iota
	ColorDischarge
	ColorSubsidence
	ColorAvulsion
	colorModeCount
)

var colorModeLabels = [colorModeCount]string{
	ColorAge:        "Deposit age",
	ColorDischarge:  "Water discharge",
	ColorSubsidence: "Subsidence rate",
	ColorAvulsion:   "Avulsion number",
}

// String returns the label shown on the controls.
func (m ColorMode) String() string {
	if m < 0 || m >= colorModeCount {
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
	return colorModeLabels[m]
}

// Valid reports whether m names a known mode.
func (m ColorMode) Valid() bool { return m >= 0 && m < colorModeCount }

// Params is the parameter snapshot read from the controls at the start of
// every tick. All values are SI: metres, years, cubic metres per second.
type Params struct {
	Qw    float64 // water discharge (m^3/s)
	Sig   float64 // subsidence rate (m/yr)
	Ta    float64 // avulsion timescale (yr)
	Bb    float64 // channel belt width (m)
	YView float64 // height of the stratigraphic view window (m)
	Color ColorMode
}

// Validate reports every out-of-range parameter, wrapped in ErrConfiguration.
func (p Params) Validate() error {
	var err error
	err = multierr.Append(err, positive("Qw", p.Qw))
	err = multierr.Append(err, nonNegative("sig", p.Sig))
	err = multierr.Append(err, positive("Ta", p.Ta))
	err = multierr.Append(err, positive("Bb", p.Bb))
	err = multierr.Append(err, positive("yView", p.YView))
	if !p.Color.Valid() {
		err = multierr.Append(err, fmt.Errorf("unknown colour mode %d", int(p.Color)))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

// Range bounds a control, expressed in the units the control displays.
type Range struct {
	Min, Max, Step float64
}

func (r Range) clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Config holds the fixed constants of a run plus the initial parameters.
type Config struct {
	Dt      float64 // timestep (yr)
	Df      float64 // damping of lateral migration rate changes, 0..1
	DxDtStd float64 // standard deviation of lateral migration rate (m/yr)

	Constants hydraulics.Constants

	// YViewMax is the deepest visible stratigraphy; bodies lying entirely
	// below BasinTop-YViewMax are pruned.
	YViewMax float64
	Seed     int64

	Initial Params

	QwRange    Range // m^3/s
	SigRange   Range // mm/yr
	TaRange    Range // yr
	YViewRange Range // m
	BbRange    Range // km
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Dt:        100,
		Df:        0.6,
		DxDtStd:   1,
		Constants: hydraulics.DefaultConstants(),
		YViewMax:  250,
		Seed:      1337,
		Initial: Params{
			Qw:    1000,
			Sig:   0.002,
			Ta:    500,
			Bb:    4000,
			YView: 100,
			Color: ColorAge,
		},
		QwRange:    Range{Min: 200, Max: 4000, Step: 100},
		SigRange:   Range{Min: 0, Max: 5, Step: 0.2},
		TaRange:    Range{Min: 100, Max: 1500, Step: 10},
		YViewRange: Range{Min: 25, Max: 250, Step: 25},
		BbRange:    Range{Min: 1, Max: 10, Step: 0.5},
	}
}

// Validate reports every invalid constant, wrapped in ErrConfiguration.
func (c Config) Validate() error {
	var err error
	err = multierr.Append(err, positive("dt", c.Dt))
	if !(c.Df >= 0 && c.Df <= 1) {
		err = multierr.Append(err, fmt.Errorf("Df must lie in [0, 1], got %v", c.Df))
	}
	err = multierr.Append(err, nonNegative("dxdtstd", c.DxDtStd))
	err = multierr.Append(err, c.Constants.Validate())
	err = multierr.Append(err, positive("yViewMax", c.YViewMax))
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"Qw", c.QwRange},
		{"sig", c.SigRange},
		{"Ta", c.TaRange},
		{"yView", c.YViewRange},
		{"Bb", c.BbRange},
	} {
		if r.r.Max < r.r.Min || r.r.Step < 0 {
			err = multierr.Append(err, fmt.Errorf("%s range [%v, %v] step %v is invalid", r.name, r.r.Min, r.r.Max, r.r.Step))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return c.Initial.Validate()
}

// FromMap applies flag-style key/value overrides to the default
// configuration. Keys use the units shown on the controls: sig in mm/yr and
// bb in km.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	var err error
	for key, raw := range cfg {
		if key == "seed" {
			parsed, perr := strconv.ParseInt(raw, 10, 64)
			if perr != nil {
				err = multierr.Append(err, fmt.Errorf("seed: %w", perr))
				continue
			}
			c.Seed = parsed
			continue
		}
		if key == "color" {
			parsed, perr := strconv.Atoi(raw)
			if perr != nil {
				err = multierr.Append(err, fmt.Errorf("color: %w", perr))
				continue
			}
			c.Initial.Color = ColorMode(parsed)
			continue
		}
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", key, perr))
			continue
		}
		switch key {
		case "dt":
			c.Dt = v
		case "df":
			c.Df = v
		case "dxdtstd":
			c.DxDtStd = v
		case "d50":
			c.Constants.D50 = v
		case "yviewmax":
			c.YViewMax = v
		case "qw":
			c.Initial.Qw = v
		case "sig":
			c.Initial.Sig = v / 1000
		case "ta":
			c.Initial.Ta = v
		case "bb":
			c.Initial.Bb = v * 1000
		case "yview":
			c.Initial.YView = v
		default:
			err = multierr.Append(err, fmt.Errorf("unknown key %q", key))
		}
	}
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.TaRange.Min < c.Dt {
		c.TaRange.Min = c.Dt
	}
	return c, c.Validate()
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be positive and finite, got %v", name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be non-negative and finite, got %v", name, v)
	}
	return nil
}
