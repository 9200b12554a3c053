package strat

import (
	"log/slog"
)

// Sim adapts a Record to the tick-driven app: it counts ticks, keeps the last
// good frame and exposes the parameter controls.
type Sim struct {
	cfg  Config
	log  *slog.Logger
	rec  *Record
	tick int
	last Frame
}

// New builds a Sim around a fresh Record.
func New(cfg Config, opts ...Option) (*Sim, error) {
	rec, err := NewRecord(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s := &Sim{cfg: cfg, log: rec.log, rec: rec}
	s.last = rec.Snapshot(0)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "rivers2strat" }

// Tick returns the number of ticks advanced so far.
func (s *Sim) Tick() int { return s.tick }

// Record exposes the underlying record.
func (s *Sim) Record() *Record { return s.rec }

// Frame returns the last successfully produced frame.
func (s *Sim) Frame() Frame { return s.last }

// Reset rebuilds the record from scratch, keeping the current parameters. A
// zero seed reuses the configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	cfg := s.cfg
	cfg.Initial = s.rec.Params()
	rec, err := NewRecord(cfg, WithLogger(s.log), WithSeed(seed))
	if err != nil {
		s.log.Error("reset failed", slog.Any("err", err))
		return
	}
	s.rec = rec
	s.tick = 0
	s.last = rec.Snapshot(0)
}

// Step advances one tick. On error the record and the last frame are kept.
func (s *Sim) Step() error {
	frame, err := s.rec.Advance(s.tick)
	if err != nil {
		return err
	}
	s.tick++
	s.last = frame
	return nil
}

// Params returns the current parameter snapshot.
func (s *Sim) Params() Params { return s.rec.Params() }

// SetParams validates and applies a new snapshot.
func (s *Sim) SetParams(p Params) error {
	if err := s.rec.SetParams(p); err != nil {
		return err
	}
	s.last.Params = p
	return nil
}

// ResetParameters restores the initial parameters from the configuration.
func (s *Sim) ResetParameters() {
	if err := s.SetParams(s.cfg.Initial); err != nil {
		s.log.Error("reset parameters failed", slog.Any("err", err))
	}
}

// ResetStratigraphy clears the deposited record without touching the active
// channel.
func (s *Sim) ResetStratigraphy() {
	s.rec.ResetStratigraphy()
	s.last = s.rec.Snapshot(s.tick)
}
