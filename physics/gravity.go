package physics

import (
	"fmt"
	"strings"
)

// G is the gravitational constant of the reference configuration.
const G = 0.1

// Acceleration returns the net pull on b from every attractor in sources.
// Sources not flagged as attractors are skipped, however many are passed.
//
// Nothing is guarded: a body exactly on an attractor divides by zero and the
// result is NaN.
func Acceleration(b Body, sources []Body, g float64) Vector2 {
	var a Vector2
	for i := range sources {
		src := &sources[i]
		if !src.Attractor {
			continue
		}
		diff := b.Position.Sub(src.Position)
		r2 := diff.X*diff.X + diff.Y*diff.Y
		a = a.Sub(diff.Normalize().Scale(src.Mass / r2 * g))
	}
	return a
}

// Policy decides what a Field does when a body reaches an attractor.
type Policy uint8

const (
	// PolicyReject reports ErrDegenerateGeometry or ErrNonFinite.
	PolicyReject Policy = iota
	// PolicyPropagate lets NaN and Inf flow into the state unreported.
	PolicyPropagate
	// PolicySoften clamps the separation to at least Field.Softening.
	PolicySoften
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyPropagate:
		return "propagate"
	case PolicySoften:
		return "soften"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy parses a policy name case-insensitively; empty means reject.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "reject", "":
		return PolicyReject, nil
	case "propagate":
		return PolicyPropagate, nil
	case "soften":
		return PolicySoften, nil
	}
	return 0, fmt.Errorf("unknown degenerate geometry policy %q", name)
}

// Field is the gravity model used by the integrators: the inverse-square law
// with a constant and a policy for degenerate geometry.
type Field struct {
	G         float64
	Policy    Policy
	Softening float64
}

// DefaultField is the reference field: G = 0.1, degenerate geometry rejected.
func DefaultField() Field {
	return Field{G: G, Policy: PolicyReject}
}

// Acceleration computes the pull on b from the attractors in sources,
// applying the field's policy.
func (f Field) Acceleration(b Body, sources []Body) (Vector2, error) {
	switch f.Policy {
	case PolicyPropagate:
		return Acceleration(b, sources, f.G), nil
	case PolicySoften:
		return f.softened(b, sources), nil
	}

	for i := range sources {
		src := &sources[i]
		if src.Attractor && src.Position == b.Position {
			return Vector2{}, fmt.Errorf("%w: %q at %v", ErrDegenerateGeometry, b.Name, b.Position)
		}
	}
	a := Acceleration(b, sources, f.G)
	if !a.IsFinite() {
		return Vector2{}, fmt.Errorf("%w: acceleration on %q is %v", ErrNonFinite, b.Name, a)
	}
	return a, nil
}

func (f Field) softened(b Body, sources []Body) Vector2 {
	min2 := f.Softening * f.Softening
	var a Vector2
	for i := range sources {
		src := &sources[i]
		if !src.Attractor {
			continue
		}
		diff := b.Position.Sub(src.Position)
		r2 := diff.LenSquared()
		if r2 == 0 {
			continue
		}
		if r2 < min2 {
			r2 = min2
		}
		a = a.Sub(diff.Normalize().Scale(src.Mass / r2 * f.G))
	}
	return a
}
