package orbit

import (
	"errors"
	"reflect"
	"slices"
	"time"

	"github.com/plus3/orbitsim/physics"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Ticks           uint64
	FailedTicks     uint64
	TotalExecutions int64

	// TickTime covers whole ticks, failed ones included.
	TickTime DurationStats
	Systems  []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name string
	DurationStats
}

// DurationStats summarizes a series of timed runs. Min is zero until
// something ran.
type DurationStats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

func (d *DurationStats) observe(v time.Duration) {
	if d.Count == 0 || v < d.Min {
		d.Min = v
	}
	d.Max = max(d.Max, v)
	d.Count++
	d.Last = v
	d.Total += v
	d.Avg = d.Total / time.Duration(d.Count)
}

// Scheduler runs its systems in registration order, once per tick.
type Scheduler struct {
	roster      *Roster
	field       physics.Field
	systems     []System
	systemStats []SystemStats
	tickTime    DurationStats
	tick        uint64
	failed      uint64
}

// NewScheduler creates a scheduler advancing the given roster in the given field.
func NewScheduler(roster *Roster, field physics.Field) *Scheduler {
	return &Scheduler{
		roster:  roster,
		field:   field,
		systems: make([]System, 0),
	}
}

// Register appends a system.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, SystemStats{Name: systemType.Name()})
}

// Tick returns the number of completed ticks.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Once runs every system for one tick of length dt.
// If any system fails, none of the tick's writes are applied and the failures
// are returned joined together; the tick counter does not advance.
func (s *Scheduler) Once(dt float64) error {
	tickStart := time.Now()
	defer func() { s.tickTime.observe(time.Since(tickStart)) }()

	frame := newUpdateFrame(dt, s.tick+1, s.roster, s.field)
	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.systemStats[i].observe(time.Since(start))
	}

	if frame.Failed() {
		frame.Commands.Discard()
		s.failed++
		return errors.Join(frame.failures...)
	}

	frame.Commands.Flush(s.roster)
	s.tick++
	return nil
}

// GetStats returns a copy of the execution statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		FailedTicks: s.failed,
		TickTime:    s.tickTime,
		Systems:     slices.Clone(s.systemStats),
	}
	for _, sys := range s.systemStats {
		stats.TotalExecutions += sys.Count
	}
	return stats
}
