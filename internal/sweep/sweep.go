// Package sweep runs batches of headless stratigraphy scenarios and
// summarises the architecture each one builds.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"rivers2strat/internal/geom"
	"rivers2strat/internal/strat"
)

// Scenario is one point of the parameter grid.
type Scenario struct {
	Qw   float64 // m^3/s
	Sig  float64 // m/yr
	Ta   float64 // yr
	Seed int64
}

func (s Scenario) String() string {
	return fmt.Sprintf("Qw=%g sig=%gmm/yr Ta=%g seed=%d", s.Qw, s.Sig*1000, s.Ta, s.Seed)
}

// Result summarises the record left after a scenario's last tick.
type Result struct {
	Scenario
	Ticks         int
	Years         float64
	Avulsions     int
	Bodies        int
	Proportion    float64 // channel-body area over the visible window area
	MeanThickness float64 // m
}

// Grid expands the cartesian product of the options into scenarios. Seeds
// count up from seed so every scenario draws its own stream.
func Grid(qws, sigs, tas []float64, seed int64) []Scenario {
	out := make([]Scenario, 0, len(qws)*len(sigs)*len(tas))
	for _, qw := range qws {
		for _, sig := range sigs {
			for _, ta := range tas {
				out = append(out, Scenario{Qw: qw, Sig: sig, Ta: ta, Seed: seed + int64(len(out))})
			}
		}
	}
	return out
}

// Run advances a fresh record for ticks ticks under sc.
func Run(ctx context.Context, base strat.Config, sc Scenario, ticks int, log *slog.Logger) (Result, error) {
	cfg := base
	cfg.Seed = sc.Seed
	cfg.Initial.Qw = sc.Qw
	cfg.Initial.Sig = sc.Sig
	cfg.Initial.Ta = sc.Ta
	rec, err := strat.NewRecord(cfg, strat.WithLogger(log))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", sc, err)
	}
	for tick := 0; tick < ticks; tick++ {
		if tick%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if _, err := rec.Advance(tick); err != nil {
			return Result{}, fmt.Errorf("%s: %w", sc, err)
		}
	}
	res := Summarise(rec)
	res.Scenario = sc
	res.Ticks = ticks
	res.Years = float64(ticks) * cfg.Dt
	return res, nil
}

// Summarise measures the bodies between the visible floor and the basin top.
func Summarise(rec *strat.Record) Result {
	top := rec.BasinTop()
	floor := rec.VisibleFloor()
	window := rec.Params().Bb * (top - floor)

	res := Result{Avulsions: rec.Avulsions(), Bodies: len(rec.Bodies())}
	var area, thickness float64
	for _, b := range rec.Bodies() {
		area += geom.ClipBand(b.Outline(), floor, top).Area()
		thickness += b.MaxY() - b.MinY()
	}
	if window > 0 {
		res.Proportion = min(area/window, 1)
	}
	if res.Bodies > 0 {
		res.MeanThickness = thickness / float64(res.Bodies)
	}
	return res
}

// RunAll runs every scenario on at most workers goroutines and returns the
// results sorted by descending channel-body proportion. The first failure
// cancels the remaining scenarios.
func RunAll(ctx context.Context, base strat.Config, scenarios []Scenario, ticks, workers int, log *slog.Logger) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := Run(ctx, base, sc, ticks, log)
			if err != nil {
				return err
			}
			results[i] = res
			log.Debug("scenario done", slog.String("scenario", sc.String()), slog.Int("avulsions", res.Avulsions))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Proportion > results[j].Proportion })
	return results, nil
}
