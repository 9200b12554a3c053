package strat

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"rivers2strat/internal/core"
	"rivers2strat/internal/geom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	return cfg
}

func testEnv(cfg *Config, p Params) stepEnv {
	return stepEnv{
		params: p,
		cfg:    cfg,
		rep:    cfg.Constants.Rep(),
		rng:    core.NewRNG(cfg.Seed),
		log:    quietLogger(),
	}
}

func newTestRecord(t *testing.T, cfg Config) *Record {
	t.Helper()
	rec, err := NewRecord(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	return rec
}

// insideHull reports whether p lies inside the counter-clockwise convex ring.
func insideHull(hull geom.Ring, p geom.Point) bool {
	n := len(hull)
	for i := 0; i < n; i++ {
		a, b := hull[i], hull[(i+1)%n]
		if (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) < -1e-6 {
			return false
		}
	}
	return true
}
