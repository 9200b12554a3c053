//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"rivers2strat/internal/app"
	"rivers2strat/internal/strat"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level, err := cfg.Level()
	if err != nil {
		slog.Error("bad flags", slog.Any("err", err))
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	model, err := strat.FromMap(cfg.Set)
	if err != nil {
		log.Error("invalid model settings", slog.Any("err", err))
		os.Exit(2)
	}
	if cfg.Seed != 0 {
		model.Seed = cfg.Seed
	}

	sim, err := strat.New(model, strat.WithLogger(log.With(slog.String("component", "strat"))))
	if err != nil {
		log.Error("cannot start simulation", slog.Any("err", err))
		os.Exit(1)
	}

	game := app.New(sim, cfg, log)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("rivers2strat")
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("game loop", slog.Any("err", err))
		os.Exit(1)
	}
}
