package strat

import (
	"math"
	"strconv"

	"rivers2strat/internal/core"
)

const (
	keyQw    = "qw"
	keySig   = "sig"
	keyTa    = "ta"
	keyYView = "yview"
	keyBb    = "bb"
	keyColor = "color"

	actionResetParams = "reset_params"
	actionResetStrat  = "reset_strat"
)

// Parameters reports the current tunables and fixed constants for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	p := s.rec.Params()
	c := s.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Channel",
			Params: []core.Parameter{
				floatParam(keyQw, "Water discharge (m3/s)", p.Qw),
				floatParam(keySig, "Subsidence (mm/yr)", p.Sig*1000),
				floatParam(keyTa, "Avulsion timescale (yr)", p.Ta),
			},
		},
		{
			Name: "View",
			Params: []core.Parameter{
				floatParam(keyYView, "Stratigraphic view (m)", p.YView),
				floatParam(keyBb, "Channel belt width (km)", p.Bb/1000),
				choiceParam(keyColor, "Colour by", p.Color),
			},
		},
		{
			Name: "Constants",
			Params: []core.Parameter{
				floatParam("dt", "Timestep (yr)", c.Dt),
				floatParam("df", "Migration damping", c.Df),
				floatParam("dxdtstd", "Migration rate std (m/yr)", c.DxDtStd),
				floatParam("d50", "Median grain size (m)", c.Constants.D50),
				floatParam("rep", "Particle Reynolds number", c.Constants.Rep()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl {
	c := s.cfg
	labels := make([]string, colorModeCount)
	for m := ColorMode(0); m < colorModeCount; m++ {
		labels[m] = m.String()
	}
	return []core.ParameterControl{
		rangeControl(keyQw, "Discharge (m3/s)", c.QwRange),
		rangeControl(keySig, "Subsidence (mm/yr)", c.SigRange),
		rangeControl(keyTa, "Avulsion time (yr)", c.TaRange),
		rangeControl(keyYView, "View depth (m)", c.YViewRange),
		rangeControl(keyBb, "Belt width (km)", c.BbRange),
		{Key: keyColor, Label: "Colour by", Type: core.ParamTypeChoice, Choices: labels},
	}
}

// SetFloatParameter applies a control change expressed in display units,
// clamped to the control's range.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	p := s.rec.Params()
	c := s.cfg
	switch key {
	case keyQw:
		p.Qw = c.QwRange.clamp(value)
	case keySig:
		p.Sig = c.SigRange.clamp(value) / 1000
	case keyTa:
		p.Ta = c.TaRange.clamp(value)
	case keyYView:
		p.YView = c.YViewRange.clamp(value)
	case keyBb:
		p.Bb = c.BbRange.clamp(value) * 1000
	default:
		return false
	}
	return s.SetParams(p) == nil
}

// SetIntParameter selects the colour mode; indices wrap around.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if key != keyColor {
		return false
	}
	n := int(colorModeCount)
	p := s.rec.Params()
	p.Color = ColorMode(((value % n) + n) % n)
	return s.SetParams(p) == nil
}

// Actions lists the HUD buttons.
func (s *Sim) Actions() []core.Action {
	return []core.Action{
		{Key: actionResetParams, Label: "Reset sliders"},
		{Key: actionResetStrat, Label: "Reset stratigraphy"},
	}
}

// TriggerAction runs the HUD button with the given key.
func (s *Sim) TriggerAction(key string) bool {
	switch key {
	case actionResetParams:
		s.ResetParameters()
	case actionResetStrat:
		s.ResetStratigraphy()
	default:
		return false
	}
	return true
}

func rangeControl(key, label string, r Range) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeFloat,
		Step:   r.Step,
		Min:    r.Min,
		Max:    r.Max,
		HasMin: true,
		HasMax: true,
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func choiceParam(key, label string, mode ColorMode) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeChoice,
		Value:       strconv.Itoa(int(mode)),
		Description: mode.String(),
	}
}
