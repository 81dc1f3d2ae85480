package orbit

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/orbitsim/physics"
)

// BodyId identifies a body within a Roster. Ids start at 1 and are never reused.
type BodyId uint32

// Roster is an ordered collection of bodies with exactly one designated
// attractor. Bodies are grouped by integration scheme so that systems only
// visit the bodies they advance.
type Roster struct {
	bodies    []physics.Body
	ids       []BodyId
	index     *intmap.Map[BodyId, int]
	names     map[string]BodyId
	schemes   map[physics.Scheme][]BodyId
	attractor BodyId
	nextId    BodyId
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		index:   intmap.New[BodyId, int](8),
		names:   make(map[string]BodyId),
		schemes: make(map[physics.Scheme][]BodyId),
		nextId:  1,
	}
}

// Add appends a body and returns its id.
func (r *Roster) Add(b physics.Body) (BodyId, error) {
	if b.Name == "" {
		return 0, errors.New("body name must not be empty")
	}
	if _, exists := r.names[b.Name]; exists {
		return 0, fmt.Errorf("duplicate body name %q", b.Name)
	}
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return 0, fmt.Errorf("body %q: mass must be positive and finite, got %v", b.Name, b.Mass)
	}
	if !b.IsFinite() {
		return 0, fmt.Errorf("body %q: %w", b.Name, physics.ErrNonFinite)
	}
	if b.Attractor {
		if r.attractor != 0 {
			return 0, fmt.Errorf("body %q: roster already has attractor %q", b.Name, r.bodies[r.slot(r.attractor)].Name)
		}
		if b.Scheme != physics.SchemeFixed {
			return 0, fmt.Errorf("attractor %q must be fixed, got scheme %s", b.Name, b.Scheme)
		}
	}

	id := r.nextId
	r.nextId++

	r.index.Put(id, len(r.bodies))
	r.bodies = append(r.bodies, b)
	r.ids = append(r.ids, id)
	r.names[b.Name] = id
	r.schemes[b.Scheme] = append(r.schemes[b.Scheme], id)
	if b.Attractor {
		r.attractor = id
	}
	return id, nil
}

func (r *Roster) slot(id BodyId) int {
	idx, ok := r.index.Get(id)
	if !ok {
		return -1
	}
	return idx
}

// Get returns a pointer to the body with the given id, or nil.
func (r *Roster) Get(id BodyId) *physics.Body {
	idx := r.slot(id)
	if idx < 0 {
		return nil
	}
	return &r.bodies[idx]
}

// Lookup finds a body id by name.
func (r *Roster) Lookup(name string) (BodyId, bool) {
	id, ok := r.names[name]
	return id, ok
}

// Attractor returns the id of the designated attractor.
func (r *Roster) Attractor() (BodyId, bool) {
	return r.attractor, r.attractor != 0
}

// Len returns the number of bodies.
func (r *Roster) Len() int {
	return len(r.bodies)
}

// Bodies returns the bodies in insertion order. The slice is the roster's own
// storage and must be treated as read-only.
func (r *Roster) Bodies() []physics.Body {
	return r.bodies
}

// Iter yields every body in insertion order.
func (r *Roster) Iter() iter.Seq2[BodyId, *physics.Body] {
	return func(yield func(BodyId, *physics.Body) bool) {
		for i, id := range r.ids {
			if !yield(id, &r.bodies[i]) {
				return
			}
		}
	}
}

// Scheme yields the bodies advanced with the given scheme, in insertion order.
func (r *Roster) Scheme(s physics.Scheme) iter.Seq2[BodyId, *physics.Body] {
	return func(yield func(BodyId, *physics.Body) bool) {
		for _, id := range r.schemes[s] {
			if !yield(id, r.Get(id)) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the roster. Ids are preserved.
func (r *Roster) Clone() *Roster {
	c := &Roster{
		bodies:    append([]physics.Body(nil), r.bodies...),
		ids:       append([]BodyId(nil), r.ids...),
		index:     intmap.New[BodyId, int](r.index.Len()),
		names:     make(map[string]BodyId, len(r.names)),
		schemes:   make(map[physics.Scheme][]BodyId, len(r.schemes)),
		attractor: r.attractor,
		nextId:    r.nextId,
	}
	for i, id := range r.ids {
		c.index.Put(id, i)
	}
	for name, id := range r.names {
		c.names[name] = id
	}
	for s, ids := range r.schemes {
		c.schemes[s] = append([]BodyId(nil), ids...)
	}
	return c
}

// set overwrites the state of an existing body. The scheme, attractor flag and
// name are kept so that the scheme groups stay valid.
func (r *Roster) set(id BodyId, b physics.Body) bool {
	idx := r.slot(id)
	if idx < 0 {
		return false
	}
	cur := &r.bodies[idx]
	cur.Position = b.Position
	cur.PreviousPosition = b.PreviousPosition
	cur.Velocity = b.Velocity
	return true
}
