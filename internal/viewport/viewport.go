// Package viewport maps simulation coordinates onto a screen and keeps short
// position histories for drawing trails.
package viewport

import "github.com/plus3/orbitsim/physics"

// DefaultScale is the number of pixels per simulation length unit.
const DefaultScale = 50

// Viewport places the simulation origin at the center of a Width x Height
// screen with y pointing up.
type Viewport struct {
	Width  int
	Height int
	Scale  float64
}

// New returns a viewport at DefaultScale.
func New(width, height int) Viewport {
	return Viewport{Width: width, Height: height, Scale: DefaultScale}
}

// ToScreen returns the pixel coordinates of p.
func (v Viewport) ToScreen(p physics.Vector2) (float32, float32) {
	x := float64(v.Width)/2 + p.X*v.Scale
	y := float64(v.Height)/2 - p.Y*v.Scale
	return float32(x), float32(y)
}

// Visible reports whether p lands on screen.
func (v Viewport) Visible(p physics.Vector2) bool {
	if !p.IsFinite() {
		return false
	}
	x, y := v.ToScreen(p)
	return x >= 0 && y >= 0 && x < float32(v.Width) && y < float32(v.Height)
}

// Trail is a fixed-size ring of the most recent positions of a body.
type Trail struct {
	points []physics.Vector2
	next   int
	full   bool
}

// NewTrail returns an empty trail holding up to size points.
func NewTrail(size int) *Trail {
	return &Trail{points: make([]physics.Vector2, size)}
}

// Push records p, overwriting the oldest point once the trail is full.
// Non-finite points are dropped.
func (t *Trail) Push(p physics.Vector2) {
	if len(t.points) == 0 || !p.IsFinite() {
		return
	}
	t.points[t.next] = p
	t.next = (t.next + 1) % len(t.points)
	if t.next == 0 {
		t.full = true
	}
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	if t.full {
		return len(t.points)
	}
	return t.next
}

// Points yields the recorded positions from oldest to newest.
func (t *Trail) Points(yield func(int, physics.Vector2) bool) {
	start := 0
	if t.full {
		start = t.next
	}
	for i := range t.Len() {
		if !yield(i, t.points[(start+i)%len(t.points)]) {
			return
		}
	}
}
