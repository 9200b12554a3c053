package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"rivers2strat/internal/strat"
	"rivers2strat/internal/sweep"
)

func main() {
	ticks := flag.Int("ticks", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1, "seed of the first scenario")
	top := flag.Int("top", 0, "print only the best n scenarios (0 prints all)")
	qwList := flag.String("qw", "500,1000,2000,4000", "water discharge options (m3/s)")
	sigList := flag.String("sig", "0.5,1,2,4", "subsidence options (mm/yr)")
	taList := flag.String("ta", "200,500,1000", "avulsion timescale options (yr)")
	verbose := flag.Bool("v", false, "log every finished scenario")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	qws, err := parseList(*qwList, 1)
	if err != nil {
		fatal(log, "qw", err)
	}
	sigs, err := parseList(*sigList, 0.001)
	if err != nil {
		fatal(log, "sig", err)
	}
	tas, err := parseList(*taList, 1)
	if err != nil {
		fatal(log, "ta", err)
	}

	grid := sweep.Grid(qws, sigs, tas, *seed)
	fmt.Printf("Sweeping %d scenarios (%d workers, %d ticks)\n", len(grid), *workers, *ticks)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := sweep.RunAll(ctx, strat.DefaultConfig(), grid, *ticks, *workers, log)
	if err != nil {
		fatal(log, "sweep", err)
	}
	if *top > 0 && *top < len(results) {
		results = results[:*top]
	}

	fmt.Printf("\nResults by channel-body proportion (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	if err := sweep.WriteTable(os.Stdout, results); err != nil {
		fatal(log, "write", err)
	}
}

// parseList reads a comma-separated list of numbers and multiplies each by
// unit.
func parseList(raw string, unit float64) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v*unit)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list %q", raw)
	}
	return out, nil
}

func fatal(log *slog.Logger, what string, err error) {
	log.Error(what+" failed", slog.Any("err", err))
	os.Exit(1)
}
