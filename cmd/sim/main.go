// Command sim runs the controller headless and prints a trace of the player.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/config"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/logger"
	"github.com/milk9111/slide/sim"
	"go.uber.org/zap"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	every := flag.Int("every", 0, "print the player every N ticks (0 prints only the summary)")
	flag.Parse()

	cfg, err := config.Load(flags.Config, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *every); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, every int) error {
	s, err := sim.New(sim.Options{
		Level:    cfg.Sim.Level,
		TickRate: cfg.Sim.TickRate,
		MaxSteps: cfg.Sim.MaxStepsPerFrame,
		Script:   cfg.Sim.Script,
		Logger:   logger.Named("sim"),
	})
	if err != nil {
		return err
	}
	defer s.Close()

	landings, jumps := 0, 0
	for i := 0; i < cfg.Sim.Frames; i++ {
		if err := s.Step(); err != nil {
			return err
		}
		for _, evt := range s.Events() {
			switch evt.Kind {
			case ecs.AttachmentEventGrounded:
				landings++
			case ecs.AttachmentEventJumped:
				jumps++
			}
		}
		if every > 0 && s.Ticks()%uint64(every) == 0 {
			printPlayer(s)
		}
	}

	p, err := s.Player()
	if err != nil {
		return err
	}
	fmt.Printf("level=%s ticks=%d landings=%d jumps=%d\n", s.Level(), s.Ticks(), landings, jumps)
	fmt.Printf("final position=(%.3f, %.3f) velocity=(%.3f, %.3f) grounded=%t\n",
		p.Position.X(), p.Position.Y(), p.Velocity.X(), p.Velocity.Y(), p.Grounded())
	return nil
}

func printPlayer(s *sim.Simulation) {
	p, err := s.Player()
	if err != nil {
		fmt.Printf("%6d  no player\n", s.Ticks())
		return
	}
	slope := "-"
	if p.Ground != nil {
		slope = fmt.Sprintf("%.1f", mgl64.RadToDeg(p.Ground.NormalAngle))
	}
	fmt.Printf("%6d  x=%8.3f y=%8.3f vx=%7.3f vy=%7.3f grounded=%-5t slope=%s\n",
		s.Ticks(), p.Position.X(), p.Position.Y(), p.Velocity.X(), p.Velocity.Y(), p.Grounded(), slope)
}
