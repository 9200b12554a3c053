package strat

import (
	"errors"

	"rivers2strat/internal/hydraulics"
)

var (
	// ErrConfiguration reports invalid constants or parameters. Nothing is
	// committed when it is returned.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDegenerateGeometry reports regime geometry that is non-finite or
	// non-positive, or a channel body outline that could not be built.
	ErrDegenerateGeometry = hydraulics.ErrDegenerateGeometry

	// ErrAvulsionProtocol reports a timestep on an avulsed channel or a freeze
	// of a channel that has not avulsed.
	ErrAvulsionProtocol = errors.New("avulsion protocol violated")
)
