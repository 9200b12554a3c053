//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"rivers2strat/internal/core"
	"rivers2strat/internal/render"
	"rivers2strat/internal/strat"
	"rivers2strat/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth   = 280
	plotLeft   = 48
	plotTop    = 8
	plotRight  = 8
	plotBottom = 8
)

// Game adapts the stratigraphy simulator to the ebiten.Game interface.
type Game struct {
	sim     *strat.Sim
	log     *slog.Logger
	painter *render.Painter
	overlay *ui.Overlay
	hud     *ui.HUD
	step    *core.FixedStep

	width, height int
	paused        bool
	tickOnce      bool
	seed          int64
}

// New constructs a Game for the provided simulation. cfg.Width and cfg.Height
// size the cross-section; the HUD is laid out to its right.
func New(sim *strat.Sim, cfg *Config, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	painter := render.NewPainter()
	return &Game{
		sim:     sim,
		log:     log,
		painter: painter,
		overlay: ui.NewOverlay(painter, sim.Record().Config().Dt),
		hud:     ui.NewHUD(sim, hudWidth),
		step:    core.NewFixedStep(cfg.TPS),
		width:   cfg.Width,
		height:  cfg.Height,
		seed:    cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.step.Resync()
	g.log.Info("reseeded", slog.Int64("seed", seed))
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if !g.paused {
			g.step.Resync()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.ResetStratigraphy()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sim.ResetParameters()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.width)

	if g.tickOnce || (!g.paused && g.step.ShouldStep()) {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			g.log.Warn("tick failed, keeping last frame", slog.Int("tick", g.sim.Tick()), slog.Any("err", err))
		}
	}
	return nil
}

func (g *Game) viewport(f strat.Frame) render.Viewport {
	return render.ForFrame(f, plotLeft, plotTop,
		float64(g.width-plotLeft-plotRight), float64(g.height-plotTop-plotBottom))
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.sim.Frame()
	v := g.viewport(f)
	g.painter.Draw(screen, f, v, g.sim.Record().Config())
	g.overlay.Draw(screen, f, v, g.sim.Tick(), g.paused)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + g.hud.Width(), g.height
}
