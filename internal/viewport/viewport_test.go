package viewport_test

import (
	"math"
	"testing"

	"github.com/plus3/orbitsim/internal/viewport"
	"github.com/plus3/orbitsim/physics"
	"github.com/stretchr/testify/assert"
)

func TestToScreen(t *testing.T) {
	v := viewport.New(800, 600)

	tests := []struct {
		name string
		p    physics.Vector2
		x, y float32
	}{
		{"origin", physics.Vector2{}, 400, 300},
		{"right", physics.Vector2{X: 1}, 450, 300},
		{"up is up", physics.Vector2{Y: 1}, 400, 250},
		{"euler start", physics.Vector2{X: -1, Y: 0.01}, 350, 299.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.ToScreen(tt.p)
			assert.InDelta(t, tt.x, x, 1e-4)
			assert.InDelta(t, tt.y, y, 1e-4)
		})
	}
}

func TestVisible(t *testing.T) {
	v := viewport.New(800, 600)

	assert.True(t, v.Visible(physics.Vector2{X: 1}))
	assert.False(t, v.Visible(physics.Vector2{X: 10}))
	assert.False(t, v.Visible(physics.Vector2{X: math.NaN()}))
}

func collect(tr *viewport.Trail) []physics.Vector2 {
	var out []physics.Vector2
	for _, p := range tr.Points {
		out = append(out, p)
	}
	return out
}

func TestTrail(t *testing.T) {
	tr := viewport.NewTrail(3)
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, collect(tr))

	tr.Push(physics.Vector2{X: 1})
	tr.Push(physics.Vector2{X: 2})
	assert.Equal(t, []physics.Vector2{{X: 1}, {X: 2}}, collect(tr))

	tr.Push(physics.Vector2{X: 3})
	tr.Push(physics.Vector2{X: 4})
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []physics.Vector2{{X: 2}, {X: 3}, {X: 4}}, collect(tr))

	tr.Push(physics.Vector2{X: math.Inf(1)})
	assert.Equal(t, []physics.Vector2{{X: 2}, {X: 3}, {X: 4}}, collect(tr))
}

func TestTrailBreak(t *testing.T) {
	tr := viewport.NewTrail(4)
	for i := range 10 {
		tr.Push(physics.Vector2{X: float64(i)})
	}

	var seen []float64
	for i, p := range tr.Points {
		if i == 2 {
			break
		}
		seen = append(seen, p.X)
	}
	assert.Equal(t, []float64{6, 7}, seen)
}
