package strat

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivers2strat/internal/core"
)

var (
	_ core.Sim                       = (*Sim)(nil)
	_ core.ParameterControlsProvider = (*Sim)(nil)
	_ core.FloatParameterSetter      = (*Sim)(nil)
	_ core.IntParameterSetter        = (*Sim)(nil)
	_ core.ActionProvider            = (*Sim)(nil)
)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	s, err := New(testConfig(), WithLogger(quietLogger()))
	require.NoError(t, err)
	return s
}

func TestSimStepAdvancesTick(t *testing.T) {
	s := newTestSim(t)
	assert.Equal(t, "rivers2strat", s.Name())
	for i := 0; i < 12; i++ {
		require.NoError(t, s.Step())
		assert.Equal(t, i+1, s.Tick())
		assert.Equal(t, i, s.Frame().Tick)
	}
	assert.Equal(t, 2, s.Frame().Avulsions)
}

func TestSimStepErrorKeepsLastFrame(t *testing.T) {
	s := newTestSim(t)
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Step())
	}
	last := s.Frame()
	s.rec.params.Ta = -1

	err := s.Step()
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 4, s.Tick())
	assert.Equal(t, last, s.Frame())
}

func TestSimResetReplaysSameSeed(t *testing.T) {
	s := newTestSim(t)
	var first []Frame
	for i := 0; i < 15; i++ {
		require.NoError(t, s.Step())
		first = append(first, s.Frame())
	}

	s.Reset(0)
	assert.Equal(t, 0, s.Tick())
	assert.Empty(t, s.Frame().Bodies)
	for i := 0; i < 15; i++ {
		require.NoError(t, s.Step())
		require.Equal(t, first[i], s.Frame(), "tick %d", i)
	}

	s.Reset(99)
	require.NoError(t, s.Step())
	assert.NotEqual(t, first[0].Active.States[0].XCenter, s.Frame().Active.States[0].XCenter)
}

func TestSetFloatParameterClampsAndConvertsUnits(t *testing.T) {
	s := newTestSim(t)
	cfg := testConfig()

	assert.True(t, s.SetFloatParameter(keyQw, 1e6))
	assert.Equal(t, cfg.QwRange.Max, s.Params().Qw)

	assert.True(t, s.SetFloatParameter(keySig, 3))
	assert.InDelta(t, 0.003, s.Params().Sig, 1e-15)

	assert.True(t, s.SetFloatParameter(keyBb, 0.2))
	assert.Equal(t, cfg.BbRange.Min*1000, s.Params().Bb)

	assert.True(t, s.SetFloatParameter(keyTa, 20))
	assert.Equal(t, cfg.TaRange.Min, s.Params().Ta)

	assert.True(t, s.SetFloatParameter(keyYView, 75))
	assert.Equal(t, 75.0, s.Params().YView)

	assert.False(t, s.SetFloatParameter("gravity", 1))
	assert.False(t, s.SetFloatParameter(keyQw, math.NaN()))
	assert.Equal(t, cfg.QwRange.Max, s.Params().Qw)
}

func TestSetIntParameterWrapsColourMode(t *testing.T) {
	s := newTestSim(t)
	assert.True(t, s.SetIntParameter(keyColor, -1))
	assert.Equal(t, ColorAvulsion, s.Params().Color)
	assert.True(t, s.SetIntParameter(keyColor, 5))
	assert.Equal(t, ColorDischarge, s.Params().Color)
	assert.Equal(t, ColorDischarge, s.Frame().Params.Color, "frame reflects the new mode before the next tick")
	assert.False(t, s.SetIntParameter(keyQw, 1))
}

func TestParametersReportDisplayUnits(t *testing.T) {
	s := newTestSim(t)
	snap := s.Parameters()

	sig, ok := snap.Lookup(keySig)
	require.True(t, ok)
	v, err := strconv.ParseFloat(sig.Value, 64)
	require.NoError(t, err)
	assert.InDelta(t, 2, v, 1e-9)

	bb, ok := snap.Lookup(keyBb)
	require.True(t, ok)
	assert.Equal(t, "4", bb.Value)

	color, ok := snap.Lookup(keyColor)
	require.True(t, ok)
	assert.Equal(t, core.ParamTypeChoice, color.Type)
	assert.Equal(t, "Deposit age", color.Description)

	_, ok = snap.Lookup("rep")
	assert.True(t, ok)
}

func TestParameterControlsCoverEveryTunable(t *testing.T) {
	s := newTestSim(t)
	keys := map[string]core.ParameterControl{}
	for _, c := range s.ParameterControls() {
		keys[c.Key] = c
	}
	for _, key := range []string{keyQw, keySig, keyTa, keyYView, keyBb, keyColor} {
		assert.Contains(t, keys, key)
	}
	assert.Len(t, keys[keyColor].Choices, int(colorModeCount))
	assert.Equal(t, 200.0, keys[keyQw].Min)
	assert.Equal(t, 4000.0, keys[keyQw].Max)
}

func TestActions(t *testing.T) {
	s := newTestSim(t)
	require.Len(t, s.Actions(), 2)
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Step())
	}
	require.NotEmpty(t, s.Frame().Bodies)
	require.True(t, s.SetFloatParameter(keyQw, 3000))

	assert.True(t, s.TriggerAction(actionResetStrat))
	assert.Empty(t, s.Frame().Bodies)
	assert.Equal(t, 10, s.Tick())
	assert.Equal(t, 3000.0, s.Params().Qw)

	assert.True(t, s.TriggerAction(actionResetParams))
	assert.Equal(t, testConfig().Initial, s.Params())

	assert.False(t, s.TriggerAction("explode"))
}
