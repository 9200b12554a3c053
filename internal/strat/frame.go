package strat

import "slices"

// Frame is a copy of the record handed to the presentation layer after a tick.
type Frame struct {
	Tick      int
	BasinTop  float64
	Datum     float64
	Floor     float64
	Avulsions int
	Params    Params

	Active ChannelSnapshot
	Bodies []BodySnapshot
}

// ChannelSnapshot copies an ActiveChannel.
type ChannelSnapshot struct {
	AvulsionNumber int
	Age            int
	Avulsed        bool
	Timer          float64
	States         []ChannelState
}

// BodySnapshot copies a Body.
type BodySnapshot struct {
	Age            int
	AvulsionNumber int
	Qw             float64
	Sig            float64
	Xs, Ys         []float64
}

// Snapshot copies the current record state, labelled with tick.
func (r *Record) Snapshot(tick int) Frame {
	f := Frame{
		Tick:      tick,
		BasinTop:  r.bast,
		Datum:     r.datum,
		Floor:     r.VisibleFloor(),
		Avulsions: r.avulsions,
		Params:    r.params,
		Active: ChannelSnapshot{
			AvulsionNumber: r.active.AvulsionNumber,
			Age:            r.active.Age,
			Avulsed:        r.active.Avulsed(),
			Timer:          r.active.Timer(),
			States:         slices.Clone(r.active.States()),
		},
		Bodies: make([]BodySnapshot, len(r.bodies)),
	}
	for i, b := range r.bodies {
		f.Bodies[i] = BodySnapshot{
			Age:            b.Age,
			AvulsionNumber: b.AvulsionNumber,
			Qw:             b.Qw,
			Sig:            b.Sig,
			Xs:             slices.Clone(b.Xs()),
			Ys:             slices.Clone(b.Ys()),
		}
	}
	return f
}
