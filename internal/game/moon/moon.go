// Package moon keeps the lunar calendar. Full moons are the source of
// involuntary transformations.
package moon

import "fmt"

// Simulation time units.
const (
	TicksPerHour = 2500
	TicksPerDay  = 24 * TicksPerHour
)

// Night is when a due full moon may rise.
const (
	nightEndsHour   = 3
	nightStartsHour = 21
)

// Moon is one satellite with its own cycle length.
type Moon struct {
	id        int
	name      string
	cycle     int64
	ticksLeft int64
}

// New creates a moon at the start of its cycle.
func New(id int, name string, cycleTicks int64) *Moon {
	return &Moon{id: id, name: name, cycle: cycleTicks, ticksLeft: cycleTicks}
}

func (m *Moon) ID() int            { return m.id }
func (m *Moon) Name() string       { return m.name }
func (m *Moon) CycleTicks() int64  { return m.cycle }
func (m *Moon) TicksLeft() int64   { return m.ticksLeft }
func (m *Moon) DaysUntilFull() int { return int(m.ticksLeft / TicksPerDay) }

func (m *Moon) String() string {
	return fmt.Sprintf("Moon{id=%d, name=%s, left=%d/%d}", m.id, m.name, m.ticksLeft, m.cycle)
}

// tick advances the cycle by one tick at the given hour of day and reports
// whether the moon turns full. An overdue moon that comes up during the
// day waits another hour.
func (m *Moon) tick(hour int) bool {
	full := false
	if m.ticksLeft < 0 {
		if hour <= nightEndsHour || hour >= nightStartsHour {
			m.ticksLeft = m.cycle
			full = true
		} else {
			m.ticksLeft += TicksPerHour
		}
	}
	m.ticksLeft--
	return full
}

func (m *Moon) advance(ticks int64) {
	m.ticksLeft -= ticks
}

func (m *Moon) reset() {
	m.ticksLeft = m.cycle
}

// HourOf returns the hour of day for a simulation tick.
func HourOf(tick int64) int {
	return int((tick % TicksPerDay) / TicksPerHour)
}
