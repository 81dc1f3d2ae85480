package physics

import "math"

// Vector2 is a 2D quantity used for positions, velocities and accelerations.
// Values are treated as immutable; every operation returns a new vector.
type Vector2 struct {
	X, Y float64
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{v.X * f, v.Y * f}
}

func (v Vector2) LenSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Len() float64 {
	return math.Sqrt(v.LenSquared())
}

// Normalize divides the vector by its length. A zero vector has no direction
// and yields NaN components.
func (v Vector2) Normalize() Vector2 {
	l := v.Len()
	return Vector2{v.X / l, v.Y / l}
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
