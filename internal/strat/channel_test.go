package strat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestepGrowsHistoryByOne(t *testing.T) {
	cfg := testConfig()
	p := cfg.Initial
	p.Ta = 1e6
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	require.Len(t, ch.States(), 1)

	for n := 1; n <= 25; n++ {
		require.NoError(t, ch.timestep(env, n))
		assert.Len(t, ch.States(), n+1)
		assert.False(t, ch.Avulsed())
	}
}

func TestAvulsionFiresWhenTimerReachesTa(t *testing.T) {
	cases := []struct {
		ta        float64
		wantCalls int
	}{
		{ta: 500, wantCalls: 5},
		{ta: 550, wantCalls: 6},
		{ta: 100, wantCalls: 1},
		{ta: 101, wantCalls: 2},
	}
	for _, tc := range cases {
		cfg := testConfig()
		p := cfg.Initial
		p.Ta = tc.ta
		env := testEnv(&cfg, p)
		ch, err := newActiveChannel(env, 0, 0, 0)
		require.NoError(t, err)

		calls := 0
		for !ch.Avulsed() {
			require.NoError(t, ch.timestep(env, calls+1))
			calls++
			require.LessOrEqual(t, calls, 100)
		}
		assert.Equal(t, tc.wantCalls, calls, "Ta=%v", tc.ta)
		assert.Len(t, ch.States(), calls+1)
	}
}

func TestAvulsionTimerToleratesFractionalSteps(t *testing.T) {
	cfg := testConfig()
	cfg.Dt = 0.1
	p := cfg.Initial
	p.Ta = 0.3
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, ch.timestep(env, i+1))
	}
	assert.True(t, ch.Avulsed(), "0.1+0.1+0.1 must reach 0.3")
}

func TestTimestepAfterAvulsionFails(t *testing.T) {
	cfg := testConfig()
	p := cfg.Initial
	p.Ta = cfg.Dt
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, ch.timestep(env, 1))
	require.True(t, ch.Avulsed())

	err = ch.timestep(env, 2)
	assert.ErrorIs(t, err, ErrAvulsionProtocol)
	assert.Len(t, ch.States(), 2)
}

func TestTimestepSubsidesWholeHistory(t *testing.T) {
	cfg := testConfig()
	p := cfg.Initial
	p.Ta = 1e6
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	seedY := ch.State().YCenter

	const n = 10
	for i := 0; i < n; i++ {
		require.NoError(t, ch.timestep(env, i+1))
	}
	dz := p.Sig * cfg.Dt
	states := ch.States()
	assert.InDelta(t, seedY-n*dz, states[0].YCenter, 1e-9)
	for i, s := range states {
		assert.InDelta(t, -float64(n-i)*dz, s.YUpper, 1e-9, "state %d", i)
	}
	assert.Equal(t, 0.0, ch.State().YUpper, "newest state sits at the basin top")
}

func TestMigrationWithoutStochasticityStaysPut(t *testing.T) {
	cfg := testConfig()
	cfg.DxDtStd = 0
	p := cfg.Initial
	p.Ta = 1e6
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	x0 := ch.State().XCenter
	for i := 0; i < 20; i++ {
		require.NoError(t, ch.timestep(env, i+1))
	}
	for _, s := range ch.States() {
		assert.Equal(t, x0, s.XCenter)
	}
}

func TestMigrationFullDampingUsesPreviousRate(t *testing.T) {
	cfg := testConfig()
	cfg.Df = 1
	cfg.DxDtStd = 0.3
	p := cfg.Initial
	p.Ta = 1e6
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, ch.timestep(env, i+1))
	}
	states := ch.States()
	assert.Equal(t, states[0].XCenter, states[1].XCenter, "seed rate is zero")
	for i := 2; i < len(states); i++ {
		want := states[i-1].XCenter + cfg.Dt*states[i-1].DxDt
		if fitsBelt(want, states[i].Bc, p.Bb) {
			assert.InDelta(t, want, states[i].XCenter, 1e-9)
		}
	}
}

func TestTimestepKeepsChannelInsideBelt(t *testing.T) {
	cfg := testConfig()
	cfg.DxDtStd = 5
	cfg.Df = 0.2
	p := cfg.Initial
	p.Bb = 400
	p.Ta = 1e6
	env := testEnv(&cfg, p)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	for i := 0; i < 300; i++ {
		require.NoError(t, ch.timestep(env, i+1))
	}
	for i, s := range ch.States() {
		assert.True(t, fitsBelt(s.XCenter, s.Bc, p.Bb), "state %d at %v escapes belt", i, s.XCenter)
	}
}

func TestTimestepDegenerateGeometryLeavesChannelUntouched(t *testing.T) {
	cfg := testConfig()
	env := testEnv(&cfg, cfg.Initial)
	ch, err := newActiveChannel(env, 0, 0, 0)
	require.NoError(t, err)
	before := ch.State()

	bad := env
	bad.params.Qw = 0
	err = ch.timestep(bad, 1)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.Len(t, ch.States(), 1)
	assert.Equal(t, before, ch.State())
	assert.Equal(t, 0.0, ch.Timer())
}
