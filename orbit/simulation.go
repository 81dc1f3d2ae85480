package orbit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/plus3/orbitsim/physics"
)

// Positions is what a renderer needs each tick.
type Positions struct {
	Sun    physics.Vector2
	Euler  physics.Vector2
	Verlet physics.Vector2
}

// Snapshot is a copy of the whole simulation state after a completed tick.
type Snapshot struct {
	Tick   uint64
	Time   float64
	Bodies []physics.Body
}

// Simulation owns a roster and advances it with the Euler and Verlet systems.
//
// It is created once by the driver and passed around explicitly. All methods
// are safe for concurrent use: Advance holds the write lock for a whole tick,
// so readers only ever observe completed ticks.
type Simulation struct {
	mu        sync.RWMutex
	name      string
	roster    *Roster
	scheduler *Scheduler
	field     physics.Field
	dt        float64

	sun, euler, verlet BodyId
}

// New builds a simulation from a scenario.
func New(sc Scenario) (*Simulation, error) {
	roster, err := sc.Roster()
	if err != nil {
		return nil, err
	}
	field, err := sc.Field()
	if err != nil {
		return nil, err
	}

	scheduler := NewScheduler(roster, field)
	scheduler.Register(&EulerSystem{})
	scheduler.Register(&VerletSystem{})

	s := &Simulation{
		name:      sc.Name,
		roster:    roster,
		scheduler: scheduler,
		field:     field,
		dt:        sc.TimeStep,
	}
	s.sun, _ = roster.Attractor()
	s.euler = first(roster, physics.SchemeEuler)
	s.verlet = first(roster, physics.SchemeVerlet)
	return s, nil
}

// NewReference builds the reference simulation.
func NewReference() *Simulation {
	s, err := New(Reference())
	if err != nil {
		panic("reference scenario is invalid: " + err.Error())
	}
	return s
}

func first(roster *Roster, scheme physics.Scheme) BodyId {
	for id := range roster.Scheme(scheme) {
		return id
	}
	return 0
}

// Advance moves every test body forward by one step of length dt. dt must be
// the configured time step. On failure the state is left as it was.
func (s *Simulation) Advance(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimestep, dt)
	}
	if dt != s.dt {
		return fmt.Errorf("%w: got %v, configured %v", ErrTimestepMismatch, dt, s.dt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Once(dt)
}

// Step advances by the configured time step.
func (s *Simulation) Step() error {
	return s.Advance(s.dt)
}

// ReadPositions returns the positions of the attractor and of the first Euler
// and Verlet bodies. It never mutates state.
func (s *Simulation) ReadPositions() Positions {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Positions{
		Sun:    s.position(s.sun),
		Euler:  s.position(s.euler),
		Verlet: s.position(s.verlet),
	}
}

func (s *Simulation) position(id BodyId) physics.Vector2 {
	if b := s.roster.Get(id); b != nil {
		return b.Position
	}
	return physics.Vector2{}
}

// Snapshot copies every body.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tick := s.scheduler.Tick()
	return Snapshot{
		Tick:   tick,
		Time:   float64(tick) * s.dt,
		Bodies: append([]physics.Body(nil), s.roster.Bodies()...),
	}
}

// Diagnostics reports radius, speed and specific energy of every body but the
// attractor.
func (s *Simulation) Diagnostics() []BodyDiagnostics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return diagnose(s.roster, s.dt, s.field.G)
}

// Run advances one step every interval until the context ends or a step
// fails. A stopped simulation keeps its last state. onTick, if set, receives
// a snapshot after each completed tick.
func (s *Simulation) Run(ctx context.Context, interval time.Duration, onTick func(Snapshot)) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := s.Step(); err != nil {
				return err
			}
			if onTick != nil {
				onTick(s.Snapshot())
			}
		}
	}
}

// RealTimeInterval is the wall-clock interval that keeps one simulated time
// unit equal to one second, clamped to what a time.Duration can hold and to
// at least one nanosecond.
func (s *Simulation) RealTimeInterval() time.Duration {
	ns := s.dt * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return max(time.Duration(ns), time.Nanosecond)
}

// TicksPerSecond is the tick rate of a real-time driver, rounded and at
// least one.
func (s *Simulation) TicksPerSecond() int {
	return max(1, int(math.Round(1/s.dt)))
}

// Name returns the scenario name.
func (s *Simulation) Name() string {
	return s.name
}

// TimeStep returns the configured step length.
func (s *Simulation) TimeStep() float64 {
	return s.dt
}

// Field returns the gravity field the bodies move in.
func (s *Simulation) Field() physics.Field {
	return s.field
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheduler.Tick()
}

// Time returns the simulated time elapsed.
func (s *Simulation) Time() float64 {
	return float64(s.Tick()) * s.dt
}

// Stats returns per-system execution statistics.
func (s *Simulation) Stats() *SchedulerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheduler.GetStats()
}
