// Package strat builds a 2-D stratigraphic cross-section from a migrating,
// periodically avulsing river channel.
//
// The Record owns exactly one ActiveChannel and the Bodies deposited by its
// predecessors. Everything is expressed in a frame pinned to the basin top:
// each tick every deposited element subsides by sig*dt while new channels are
// placed at the basin top.
package strat

import (
	"fmt"
	"log/slog"

	"rivers2strat/internal/core"
)

// Record is the stratigraphic record. It is not safe for concurrent use; a
// single driver advances it one tick at a time.
type Record struct {
	cfg    Config
	params Params
	rep    float64
	rng    *core.RNG
	log    *slog.Logger

	bast      float64
	datum     float64
	active    *ActiveChannel
	bodies    []*Body
	avulsions int
}

// Option customises a Record.
type Option func(*Record)

// WithLogger routes the record's logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Record) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSeed overrides the configured RNG seed.
func WithSeed(seed int64) Option {
	return func(r *Record) { r.rng = core.NewRNG(seed) }
}

// NewRecord validates cfg and seeds the first active channel at basin top 0.
func NewRecord(cfg Config, opts ...Option) (*Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Record{
		cfg:    cfg,
		params: cfg.Initial,
		rep:    cfg.Constants.Rep(),
		rng:    core.NewRNG(cfg.Seed),
		log:    slog.Default().With(slog.String("component", "strat")),
	}
	for _, opt := range opts {
		opt(r)
	}
	active, err := newActiveChannel(r.env(), r.bast, 0, 0)
	if err != nil {
		return nil, err
	}
	r.active = active
	return r, nil
}

func (r *Record) env() stepEnv {
	return stepEnv{params: r.params, cfg: &r.cfg, rep: r.rep, rng: r.rng, log: r.log}
}

// Config returns the configuration the record was built with.
func (r *Record) Config() Config { return r.cfg }

// Params returns the parameter snapshot the next tick will use.
func (r *Record) Params() Params { return r.params }

// SetParams validates p and makes it the snapshot for subsequent ticks.
func (r *Record) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.params = p
	return nil
}

// BasinTop is the elevation of the depositional surface in the record frame.
func (r *Record) BasinTop() float64 { return r.bast }

// Datum is the elevation of the initial surface in the record frame. It
// falls by exactly sig*dt every tick, in lockstep with every body.
func (r *Record) Datum() float64 { return r.datum }

// Active returns the live channel.
func (r *Record) Active() *ActiveChannel { return r.active }

// Bodies returns the deposited bodies, oldest first. Callers must not modify
// the returned slice.
func (r *Record) Bodies() []*Body { return r.bodies }

// Avulsions counts avulsions frozen into bodies since the record was created.
func (r *Record) Avulsions() int { return r.avulsions }

// Advance runs one tick with the current parameter snapshot. If the active
// channel has avulsed it is frozen into a Body and replaced by a fresh channel
// created on this tick; otherwise it is stepped. Bodies below the visible
// window are then pruned. On error nothing has been mutated.
func (r *Record) Advance(tick int) (Frame, error) {
	env := r.env()
	if err := env.params.Validate(); err != nil {
		return Frame{}, err
	}
	dz := env.dz()

	if r.active.Avulsed() {
		body, err := Freeze(r.active)
		if err != nil {
			return Frame{}, fmt.Errorf("tick %d: %w", tick, err)
		}
		fresh, err := newActiveChannel(env, r.bast, tick, r.avulsions+1)
		if err != nil {
			return Frame{}, fmt.Errorf("tick %d: %w", tick, err)
		}
		r.subsideBodies(dz)
		r.bodies = append(r.bodies, body)
		r.avulsions++
		r.active = fresh
		r.log.Info("avulsion",
			slog.Int("tick", tick),
			slog.Int("avulsion", r.avulsions),
			slog.Int("parts", body.Parts()),
			slog.Float64("x", fresh.State().XCenter))
	} else {
		if err := r.active.timestep(env, tick); err != nil {
			return Frame{}, fmt.Errorf("tick %d: %w", tick, err)
		}
		r.subsideBodies(dz)
	}

	r.datum -= dz
	if pruned := r.prune(); pruned > 0 {
		r.log.Debug("pruned bodies", slog.Int("tick", tick), slog.Int("count", pruned))
	}
	return r.Snapshot(tick), nil
}

func (r *Record) subsideBodies(dz float64) {
	if dz == 0 {
		return
	}
	for _, b := range r.bodies {
		b.Subside(dz)
	}
}

// VisibleFloor is the elevation below which bodies are discarded.
func (r *Record) VisibleFloor() float64 { return r.bast - r.cfg.YViewMax }

// prune drops every body whose top lies strictly below the visible floor.
func (r *Record) prune() int {
	floor := r.VisibleFloor()
	kept := r.bodies[:0]
	for _, b := range r.bodies {
		if b.MaxY() < floor {
			continue
		}
		kept = append(kept, b)
	}
	pruned := len(r.bodies) - len(kept)
	for i := len(kept); i < len(r.bodies); i++ {
		r.bodies[i] = nil
	}
	r.bodies = kept
	return pruned
}

// ResetStratigraphy discards every deposited body and returns the basin top
// and datum to 0. The active channel keeps growing.
func (r *Record) ResetStratigraphy() {
	r.bodies = nil
	r.bast = 0
	r.datum = 0
	r.log.Info("stratigraphy reset")
}
