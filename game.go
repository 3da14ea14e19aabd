package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slide/config"
	"github.com/milk9111/slide/ecs/system"
	"github.com/milk9111/slide/logger"
	"github.com/milk9111/slide/prefabs"
	"github.com/milk9111/slide/sim"
	"go.uber.org/zap"
)

type Game struct {
	cfg    *config.Config
	sim    *sim.Simulation
	render *system.RenderSystem
	levels []string

	paused  bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg *config.Config) (*Game, error) {
	s, err := sim.New(sim.Options{
		Level:     cfg.Sim.Level,
		TickRate:  cfg.Sim.TickRate,
		MaxSteps:  cfg.Sim.MaxStepsPerFrame,
		Script:    cfg.Sim.Script,
		PrefabDir: cfg.Sim.PrefabDir,
		HotReload: cfg.Sim.HotReload,
		Logger:    logger.Named("sim"),
	})
	if err != nil {
		return nil, err
	}
	if cfg.Sim.Script == "" {
		s.AddFrameSystem(system.NewKeyboardInput())
	}

	levels, err := prefabs.Levels()
	if err != nil {
		logger.Warn("list levels", zap.Error(err))
	}

	render := system.NewRenderSystem()
	render.ShowHUD = cfg.Debug.ShowHUD
	render.DrawPhysics = cfg.Debug.DrawPhysics
	g := &Game{cfg: cfg, sim: s, render: render, levels: levels}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.handleDebugKeys()
	_, err := g.sim.Update(1 / float64(ebiten.TPS()))
	return err
}

// F1 toggles the HUD, F2 the physics overlay, Tab cycles levels.
func (g *Game) handleDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.render.ShowHUD = !g.render.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.render.DrawPhysics = !g.render.DrawPhysics
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.levels) > 1 {
		next := g.levels[0]
		for i, name := range g.levels {
			if name == g.sim.Level() {
				next = g.levels[(i+1)%len(g.levels)]
			}
		}
		if err := g.sim.SwitchLevel(next); err != nil {
			logger.Error("switch level", zap.String("level", next), zap.Error(err))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.sim.World(), screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() error {
	return g.sim.Close()
}
