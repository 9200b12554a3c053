package strat

import (
	"fmt"
)

// timerTolerance lets a timer built from repeated dt additions reach Ta.
const timerTolerance = 1e-9

// ActiveChannel is the live channel. It grows one state per tick until its
// avulsion timer reaches the avulsion timescale; from then on it is read-only
// and must be frozen into a Body.
type ActiveChannel struct {
	AvulsionNumber int
	Age            int     // tick the channel was created on
	Bast           float64 // basin top the channel is pinned to

	timer   float64
	avulsed bool
	states  []ChannelState
}

func newActiveChannel(env stepEnv, bast float64, age, avulsionNumber int) (*ActiveChannel, error) {
	geo, err := env.geometry()
	if err != nil {
		return nil, fmt.Errorf("seed channel: %w", err)
	}
	seed := newSeedState(env, geo, bast, age)
	return &ActiveChannel{
		AvulsionNumber: avulsionNumber,
		Age:            age,
		Bast:           bast,
		states:         []ChannelState{seed},
	}, nil
}

// States returns the state history, oldest first. Callers must not modify it.
func (c *ActiveChannel) States() []ChannelState { return c.states }

// State returns the newest state.
func (c *ActiveChannel) State() ChannelState { return c.states[len(c.states)-1] }

// Avulsed reports whether the avulsion latch has fired.
func (c *ActiveChannel) Avulsed() bool { return c.avulsed }

// Timer returns the time accumulated towards the next avulsion (yr).
func (c *ActiveChannel) Timer() float64 { return c.timer }

// timestep subsides the whole history, migrates the channel and appends one
// state. The latch fires on the call where the timer first reaches Ta.
func (c *ActiveChannel) timestep(env stepEnv, tick int) error {
	next, err := c.prepare(env, tick)
	if err != nil {
		return err
	}
	c.commit(env, next)
	return nil
}

// prepare builds the next state without mutating the channel.
func (c *ActiveChannel) prepare(env stepEnv, tick int) (ChannelState, error) {
	if c.avulsed {
		return ChannelState{}, fmt.Errorf("%w: timestep on channel %d after avulsion", ErrAvulsionProtocol, c.AvulsionNumber)
	}
	geo, err := env.geometry()
	if err != nil {
		return ChannelState{}, err
	}
	prev := c.State()
	dxdt := env.rng.Normal(0, env.cfg.DxDtStd)
	dx := env.cfg.Dt * ((1-env.cfg.Df)*dxdt + env.cfg.Df*prev.DxDt)
	return newContinuationState(env, geo, prev, prev.XCenter+dx, dxdt, c.Bast, tick), nil
}

func (c *ActiveChannel) commit(env stepEnv, next ChannelState) {
	dz := env.dz()
	for i := range c.states {
		c.states[i].Subside(dz)
	}
	c.states = append(c.states, next)

	c.timer += env.cfg.Dt
	if c.timer >= env.params.Ta*(1-timerTolerance) {
		c.avulsed = true
	}
}
