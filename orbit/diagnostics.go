package orbit

import "github.com/plus3/orbitsim/physics"

// BodyDiagnostics summarizes the orbit of one body relative to the attractor.
type BodyDiagnostics struct {
	Name   string
	Scheme physics.Scheme
	Radius float64
	Speed  float64
	Energy float64
}

// Radius is the distance between b and the attractor.
func Radius(b, attractor physics.Body) float64 {
	return b.Position.Sub(attractor.Position).Len()
}

// VelocityOf returns the velocity of b. Euler bodies store it; for Verlet
// bodies it is the backward difference (position - previous) / dt.
func VelocityOf(b physics.Body, dt float64) physics.Vector2 {
	switch b.Scheme {
	case physics.SchemeEuler:
		return b.Velocity
	case physics.SchemeVerlet:
		return b.Position.Sub(b.PreviousPosition).Scale(1 / dt)
	}
	return physics.Vector2{}
}

// SpecificEnergy is the orbital energy per unit mass, v²/2 - G·M/r.
// It is constant for an exact two-body orbit.
func SpecificEnergy(b physics.Body, v physics.Vector2, attractor physics.Body, g float64) float64 {
	return v.LenSquared()/2 - g*attractor.Mass/Radius(b, attractor)
}

func diagnose(roster *Roster, dt, g float64) []BodyDiagnostics {
	id, ok := roster.Attractor()
	if !ok {
		return nil
	}
	attractor := *roster.Get(id)

	out := make([]BodyDiagnostics, 0, roster.Len()-1)
	for _, b := range roster.Iter() {
		if b.Attractor {
			continue
		}
		v := VelocityOf(*b, dt)
		out = append(out, BodyDiagnostics{
			Name:   b.Name,
			Scheme: b.Scheme,
			Radius: Radius(*b, attractor),
			Speed:  v.Len(),
			Energy: SpecificEnergy(*b, v, attractor, g),
		})
	}
	return out
}
