package physics_test

import (
	"math"
	"testing"

	"github.com/plus3/orbitsim/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sun() physics.Body {
	return physics.Body{Name: "sun", Attractor: true, Mass: 10}
}

func TestAccelerationPointsAtAttractor(t *testing.T) {
	sources := []physics.Body{sun()}

	tests := []struct {
		name string
		pos  physics.Vector2
		want physics.Vector2
	}{
		{"left", physics.Vector2{X: -1}, physics.Vector2{X: 1}},
		{"right", physics.Vector2{X: 1}, physics.Vector2{X: -1}},
		{"above at r=2", physics.Vector2{Y: 2}, physics.Vector2{Y: -0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := physics.Body{Name: "probe", Mass: 1e-10, Position: tt.pos}
			a := physics.Acceleration(b, sources, physics.G)
			assert.InDelta(t, tt.want.X, a.X, 1e-12)
			assert.InDelta(t, tt.want.Y, a.Y, 1e-12)
		})
	}
}

func TestAccelerationSkipsNonAttractors(t *testing.T) {
	probe := physics.Body{Name: "probe", Position: physics.Vector2{X: -1}}
	heavy := physics.Body{Name: "heavy", Mass: 1e6, Position: physics.Vector2{X: -1.5}}

	alone := physics.Acceleration(probe, []physics.Body{sun()}, physics.G)
	crowded := physics.Acceleration(probe, []physics.Body{heavy, sun(), probe}, physics.G)

	assert.Equal(t, alone, crowded)
	assert.Equal(t, physics.Vector2{}, physics.Acceleration(probe, []physics.Body{heavy}, physics.G))
}

func TestAccelerationAtAttractorIsNaN(t *testing.T) {
	b := physics.Body{Name: "lost"}
	a := physics.Acceleration(b, []physics.Body{sun()}, physics.G)

	assert.True(t, math.IsNaN(a.X))
	assert.True(t, math.IsNaN(a.Y))
}

func TestFieldPolicies(t *testing.T) {
	sources := []physics.Body{sun()}
	onSun := physics.Body{Name: "lost"}
	near := physics.Body{Name: "near", Position: physics.Vector2{X: 0.1}}

	t.Run("reject", func(t *testing.T) {
		f := physics.DefaultField()
		_, err := f.Acceleration(onSun, sources)
		require.Error(t, err)
		assert.ErrorIs(t, err, physics.ErrDegenerateGeometry)

		a, err := f.Acceleration(near, sources)
		require.NoError(t, err)
		assert.InDelta(t, -100.0, a.X, 1e-9)
	})

	t.Run("propagate", func(t *testing.T) {
		f := physics.Field{G: physics.G, Policy: physics.PolicyPropagate}
		a, err := f.Acceleration(onSun, sources)
		require.NoError(t, err)
		assert.False(t, a.IsFinite())
	})

	t.Run("soften", func(t *testing.T) {
		f := physics.Field{G: physics.G, Policy: physics.PolicySoften, Softening: 0.5}
		a, err := f.Acceleration(onSun, sources)
		require.NoError(t, err)
		assert.Equal(t, physics.Vector2{}, a)

		a, err = f.Acceleration(near, sources)
		require.NoError(t, err)
		assert.InDelta(t, -4.0, a.X, 1e-12)
		assert.InDelta(t, 0.0, a.Y, 1e-12)

		far := physics.Body{Name: "far", Position: physics.Vector2{X: 1}}
		a, err = f.Acceleration(far, sources)
		require.NoError(t, err)
		assert.InDelta(t, -1.0, a.X, 1e-12)
	})

	t.Run("reject overflow", func(t *testing.T) {
		f := physics.DefaultField()
		tiny := physics.Body{Name: "tiny", Position: physics.Vector2{X: 1e-200}}
		_, err := f.Acceleration(tiny, sources)
		assert.ErrorIs(t, err, physics.ErrNonFinite)
	})
}

func TestParsePolicyAndScheme(t *testing.T) {
	for _, p := range []physics.Policy{physics.PolicyReject, physics.PolicyPropagate, physics.PolicySoften} {
		got, err := physics.ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := physics.ParsePolicy("clamp-ish")
	assert.Error(t, err)

	for _, s := range []physics.Scheme{physics.SchemeFixed, physics.SchemeEuler, physics.SchemeVerlet} {
		got, err := physics.ParseScheme(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := physics.ParseScheme("Verlet")
	require.NoError(t, err)
	assert.Equal(t, physics.SchemeVerlet, got)

	_, err = physics.ParseScheme("rk4")
	assert.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	prev := physics.Bootstrap(physics.Vector2{X: 1}, physics.Vector2{Y: -1}, 0.01)
	assert.InDelta(t, 1.0, prev.X, 1e-15)
	assert.InDelta(t, 0.01, prev.Y, 1e-15)
}
