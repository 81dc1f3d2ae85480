package physics

import (
	"fmt"
	"strings"
)

// Scheme selects how a body is advanced each tick.
type Scheme uint8

const (
	// SchemeFixed bodies are never integrated. Attractors are always fixed.
	SchemeFixed Scheme = iota
	// SchemeEuler bodies carry a velocity and use the explicit Euler update.
	SchemeEuler
	// SchemeVerlet bodies carry a previous position and use Störmer–Verlet.
	SchemeVerlet
)

func (s Scheme) String() string {
	switch s {
	case SchemeFixed:
		return "fixed"
	case SchemeEuler:
		return "euler"
	case SchemeVerlet:
		return "verlet"
	default:
		return fmt.Sprintf("scheme(%d)", uint8(s))
	}
}

// ParseScheme is the inverse of Scheme.String. Matching ignores case.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fixed", "":
		return SchemeFixed, nil
	case "euler":
		return SchemeEuler, nil
	case "verlet":
		return SchemeVerlet, nil
	}
	return 0, fmt.Errorf("unknown integration scheme %q", name)
}

// Body is a point mass.
//
// PreviousPosition is only read for SchemeVerlet bodies and Velocity only for
// SchemeEuler bodies; the Scheme tag decides which one is live.
type Body struct {
	Name      string
	Scheme    Scheme
	Attractor bool
	Mass      float64

	Position         Vector2
	PreviousPosition Vector2
	Velocity         Vector2
}

// IsFinite reports whether every vector of the body is finite.
func (b Body) IsFinite() bool {
	return b.Position.IsFinite() && b.PreviousPosition.IsFinite() && b.Velocity.IsFinite()
}

// Bootstrap returns the previous position a Verlet body needs so that its
// first step moves with velocity v: one backward Euler step of length dt.
func Bootstrap(position, velocity Vector2, dt float64) Vector2 {
	return position.Sub(velocity.Scale(dt))
}
