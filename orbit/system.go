package orbit

import "github.com/plus3/orbitsim/physics"

// System advances some subset of the roster by one tick.
// Systems read the roster as it was at the start of the tick and queue their
// writes on frame.Commands.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame carries everything a system sees during one tick.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Roster    *Roster
	Field     physics.Field
	Commands  *Commands

	failures []error
}

func newUpdateFrame(dt float64, tick uint64, roster *Roster, field physics.Field) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Roster:    roster,
		Field:     field,
		Commands:  newCommands(),
	}
}

// Fail records a failure. Any failure discards every write of the tick.
func (f *UpdateFrame) Fail(err error) {
	f.failures = append(f.failures, err)
}

// Failed reports whether a system has failed during this tick.
func (f *UpdateFrame) Failed() bool {
	return len(f.failures) > 0
}
