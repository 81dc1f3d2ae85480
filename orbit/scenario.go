package orbit

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/plus3/orbitsim/physics"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultTimeStep is the simulated time covered by one tick.
	DefaultTimeStep = 0.01
	// TestBodyMass is small enough for a test body to never matter as a source.
	TestBodyMass = 1e-10
)

// Scenario describes the initial conditions of a simulation.
// Scenario files may be written in YAML or JSON.
type Scenario struct {
	Name      string     `json:"name,omitempty"`
	G         float64    `json:"g,omitempty"`
	TimeStep  float64    `json:"timeStep,omitempty"`
	Policy    string     `json:"policy,omitempty"`
	Softening float64    `json:"softening,omitempty"`
	Bodies    []BodySpec `json:"bodies"`
}

// BodySpec describes one body of a scenario.
type BodySpec struct {
	Name      string     `json:"name"`
	Scheme    string     `json:"scheme,omitempty"`
	Attractor bool       `json:"attractor,omitempty"`
	Mass      float64    `json:"mass"`
	Position  [2]float64 `json:"position"`
	Velocity  [2]float64 `json:"velocity"`

	// Circular replaces Velocity with the circular orbit speed around the
	// attractor, counter-clockwise unless Retrograde is set.
	Circular   bool `json:"circular,omitempty"`
	Retrograde bool `json:"retrograde,omitempty"`
}

// Reference returns the reference configuration: a sun of mass 10 at the
// origin, an Euler body at (-1, 0) moving with (0, 1) and a Verlet body at
// (1, 0) moving with (0, -1).
func Reference() Scenario {
	return Scenario{
		Name:     "reference",
		G:        physics.G,
		TimeStep: DefaultTimeStep,
		Policy:   physics.PolicyReject.String(),
		Bodies: []BodySpec{
			{Name: "sun", Scheme: "fixed", Attractor: true, Mass: 10},
			{Name: "euler", Scheme: "euler", Mass: TestBodyMass, Position: [2]float64{-1, 0}, Velocity: [2]float64{0, 1}},
			{Name: "verlet", Scheme: "verlet", Mass: TestBodyMass, Position: [2]float64{1, 0}, Velocity: [2]float64{0, -1}},
		},
	}
}

// ParseScenario decodes a YAML or JSON scenario. A missing G or time step
// falls back to the reference value.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.UnmarshalStrict(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if sc.G == 0 {
		sc.G = physics.G
	}
	if sc.TimeStep == 0 {
		sc.TimeStep = DefaultTimeStep
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// YAML encodes the scenario.
func (sc Scenario) YAML() ([]byte, error) {
	return yaml.Marshal(sc)
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Validate checks the scenario without building it.
func (sc Scenario) Validate() error {
	if !finitePositive(sc.TimeStep) {
		return fmt.Errorf("%w: %v", ErrInvalidTimestep, sc.TimeStep)
	}
	if !finitePositive(sc.G) {
		return fmt.Errorf("gravitational constant must be positive and finite, got %v", sc.G)
	}
	policy, err := physics.ParsePolicy(sc.Policy)
	if err != nil {
		return err
	}
	if policy == physics.PolicySoften && !finitePositive(sc.Softening) {
		return fmt.Errorf("policy %s needs a positive softening length, got %v", policy, sc.Softening)
	}
	if len(sc.Bodies) == 0 {
		return errors.New("scenario has no bodies")
	}

	attractors := 0
	for _, spec := range sc.Bodies {
		if _, err := physics.ParseScheme(spec.Scheme); err != nil {
			return fmt.Errorf("body %q: %w", spec.Name, err)
		}
		if spec.Attractor {
			attractors++
		}
	}
	if attractors != 1 {
		return fmt.Errorf("scenario needs exactly one attractor, found %d", attractors)
	}
	return nil
}

// Field returns the gravity field described by the scenario.
func (sc Scenario) Field() (physics.Field, error) {
	policy, err := physics.ParsePolicy(sc.Policy)
	if err != nil {
		return physics.Field{}, err
	}
	return physics.Field{G: sc.G, Policy: policy, Softening: sc.Softening}, nil
}

// Roster builds the initial bodies. Verlet bodies get their previous position
// from Bootstrap so their first step moves with the configured velocity.
func (sc Scenario) Roster() (*Roster, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	var attractor BodySpec
	for _, spec := range sc.Bodies {
		if spec.Attractor {
			attractor = spec
		}
	}

	roster := NewRoster()
	for _, spec := range sc.Bodies {
		scheme, err := physics.ParseScheme(spec.Scheme)
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", spec.Name, err)
		}
		pos := physics.Vector2{X: spec.Position[0], Y: spec.Position[1]}
		vel := physics.Vector2{X: spec.Velocity[0], Y: spec.Velocity[1]}

		if spec.Circular && !spec.Attractor {
			v, err := circularVelocity(pos, attractor, sc.G, spec.Retrograde)
			if err != nil {
				return nil, fmt.Errorf("body %q: %w", spec.Name, err)
			}
			vel = v
		}

		b := physics.Body{
			Name:      spec.Name,
			Scheme:    scheme,
			Attractor: spec.Attractor,
			Mass:      spec.Mass,
			Position:  pos,
		}
		switch scheme {
		case physics.SchemeEuler:
			b.Velocity = vel
		case physics.SchemeVerlet:
			b.PreviousPosition = physics.Bootstrap(pos, vel, sc.TimeStep)
		}

		if _, err := roster.Add(b); err != nil {
			return nil, err
		}
	}
	return roster, nil
}

// circularVelocity returns the velocity of a circular orbit at pos, with speed
// sqrt(G*M/r) perpendicular to the attractor direction.
func circularVelocity(pos physics.Vector2, attractor BodySpec, g float64, retrograde bool) (physics.Vector2, error) {
	d := pos.Sub(physics.Vector2{X: attractor.Position[0], Y: attractor.Position[1]})
	r := d.Len()
	if r == 0 {
		return physics.Vector2{}, fmt.Errorf("circular orbit at the attractor: %w", physics.ErrDegenerateGeometry)
	}
	speed := math.Sqrt(g * attractor.Mass / r)
	v := physics.Vector2{X: -d.Y / r, Y: d.X / r}.Scale(speed)
	if retrograde {
		v = v.Scale(-1)
	}
	return v, nil
}
