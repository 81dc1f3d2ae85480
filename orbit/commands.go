package orbit

import "github.com/plus3/orbitsim/physics"

// Commands buffers body writes until every system of the tick has run, so
// each system computes from the same pre-tick state.
type Commands struct {
	sets   []setCommand
	defers []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type setCommand struct {
	id   BodyId
	body physics.Body
}

type deferCommand struct {
	fn func()
}

// Set queues a state write for the body.
func (c *Commands) Set(id BodyId, body physics.Body) {
	c.sets = append(c.sets, setCommand{id: id, body: body})
}

// Defer queues a function to run after the writes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Len returns the number of queued writes.
func (c *Commands) Len() int {
	return len(c.sets)
}

// Flush applies all queued writes to the roster, then runs deferred functions.
func (c *Commands) Flush(roster *Roster) {
	for _, cmd := range c.sets {
		roster.set(cmd.id, cmd.body)
	}
	for _, df := range c.defers {
		df.fn()
	}
	c.Discard()
}

// Discard drops everything queued without touching the roster.
func (c *Commands) Discard() {
	c.sets = c.sets[:0]
	c.defers = c.defers[:0]
}
