package orbit

import "github.com/plus3/orbitsim/physics"

// StepEuler advances b by one explicit Euler step under acceleration a.
// The position moves with the old velocity before the velocity is updated.
func StepEuler(b physics.Body, a physics.Vector2, dt float64) physics.Body {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Velocity = b.Velocity.Add(a.Scale(dt))
	return b
}

// StepVerlet advances b by one Störmer–Verlet step under acceleration a.
func StepVerlet(b physics.Body, a physics.Vector2, dt float64) physics.Body {
	next := b.Position.Scale(2).Sub(b.PreviousPosition).Add(a.Scale(dt * dt))
	b.PreviousPosition = b.Position
	b.Position = next
	return b
}

// EulerSystem advances every SchemeEuler body.
type EulerSystem struct{}

func (s *EulerSystem) Execute(frame *UpdateFrame) {
	integrate(frame, physics.SchemeEuler, StepEuler)
}

// VerletSystem advances every SchemeVerlet body.
type VerletSystem struct{}

func (s *VerletSystem) Execute(frame *UpdateFrame) {
	integrate(frame, physics.SchemeVerlet, StepVerlet)
}

func integrate(frame *UpdateFrame, scheme physics.Scheme, step func(physics.Body, physics.Vector2, float64) physics.Body) {
	sources := frame.Roster.Bodies()
	for id, b := range frame.Roster.Scheme(scheme) {
		a, err := frame.Field.Acceleration(*b, sources)
		if err != nil {
			frame.Fail(&StepError{Tick: frame.Tick, Body: b.Name, Scheme: scheme, Err: err})
			continue
		}

		next := step(*b, a, frame.DeltaTime)
		if frame.Field.Policy != physics.PolicyPropagate && !next.IsFinite() {
			frame.Fail(&StepError{Tick: frame.Tick, Body: b.Name, Scheme: scheme, Err: physics.ErrNonFinite})
			continue
		}
		frame.Commands.Set(id, next)
	}
}
