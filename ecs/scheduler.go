package ecs

// System updates a world once per scheduled step.
type System interface {
	Update(w *World)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// FixedStepper runs a scheduler at a fixed rate, decoupled from the frame rate.
// A frame may run the scheduler zero or more times.
type FixedStepper struct {
	Scheduler *Scheduler
	Step      float64
	// MaxSteps bounds catch-up work per frame; leftover time is dropped.
	MaxSteps int

	accumulator float64
	ticks       uint64
}

func NewFixedStepper(scheduler *Scheduler, hz float64, maxSteps int) *FixedStepper {
	if hz <= 0 {
		hz = 96
	}
	if maxSteps <= 0 {
		maxSteps = 8
	}
	return &FixedStepper{Scheduler: scheduler, Step: 1 / hz, MaxSteps: maxSteps}
}

// Advance accumulates frameDt and returns how many fixed steps ran.
func (f *FixedStepper) Advance(w *World, frameDt float64) int {
	if f == nil || f.Scheduler == nil || f.Step <= 0 || frameDt < 0 {
		return 0
	}
	f.accumulator += frameDt
	steps := 0
	for f.accumulator >= f.Step {
		if steps == f.MaxSteps {
			f.accumulator = 0
			break
		}
		w.SetDeltaTime(f.Step)
		f.Scheduler.Update(w)
		f.accumulator -= f.Step
		f.ticks++
		steps++
	}
	return steps
}

// Alpha is the fraction of a step left in the accumulator, for render interpolation.
func (f *FixedStepper) Alpha() float64 {
	if f == nil || f.Step <= 0 {
		return 0
	}
	return f.accumulator / f.Step
}

// Ticks returns the total number of fixed steps run.
func (f *FixedStepper) Ticks() uint64 {
	if f == nil {
		return 0
	}
	return f.ticks
}
