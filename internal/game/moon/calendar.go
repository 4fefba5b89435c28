package moon

import (
	"log/slog"
	"slices"

	"github.com/udisondev/wolfkin/internal/game/transform"
)

// AdviceResisted is emitted for a non-player entity that withstood the moon.
const AdviceResisted = "resisted the full moon"

var moonNames = []string{
	"Selene", "Mani", "Khonsu", "Chandra", "Metztli", "Hina", "Artemis", "Tsukuyo",
}

// Options tunes the calendar.
type Options struct {
	// NonPlayerChance is the probability a non-player werewolf answers the
	// moon. Player-owned werewolves always do.
	NonPlayerChance float64
}

// DefaultOptions returns the reference tunables.
func DefaultOptions() Options {
	return Options{NonPlayerChance: 0.02}
}

// FullMoon is an active full-moon condition. It lasts one day.
type FullMoon struct {
	Moon     *Moon
	Start    int64
	End      int64
	resolved bool
}

// Calendar owns the moons and the full moons currently in the sky.
//
// Not safe for concurrent use; ticked from the simulation goroutine.
type Calendar struct {
	opts   Options
	rng    transform.RNG
	events transform.EventSink

	moons  []*Moon
	active []*FullMoon
}

// NewCalendar generates a random set of moons.
func NewCalendar(rng transform.RNG, events transform.EventSink, opts Options) *Calendar {
	c := newCalendar(rng, events, opts)
	c.moons = Generate(rng)
	slog.Info("moons generated", "count", len(c.moons))
	return c
}

// NewCalendarWithMoons uses the given moons instead of generating them.
func NewCalendarWithMoons(moons []*Moon, rng transform.RNG, events transform.EventSink, opts Options) *Calendar {
	c := newCalendar(rng, events, opts)
	c.moons = moons
	return c
}

func newCalendar(rng transform.RNG, events transform.EventSink, opts Options) *Calendar {
	if opts.NonPlayerChance < 0 {
		opts.NonPlayerChance = 0
	}
	if events == nil {
		events = discard{}
	}
	return &Calendar{opts: opts, rng: rng, events: events}
}

// Generate rolls the number of moons and their cycle lengths. Most worlds
// get one or two moons; four or five are rare.
func Generate(rng transform.RNG) []*Moon {
	n := 1
	switch v := rng.Float64(); {
	case v > 0.98:
		n = rangeInt(rng, 4, 6)
	case v > 0.7:
		n = 3
	case v > 0.4:
		n = 2
	}

	moons := make([]*Moon, 0, n)
	for i := range n {
		cycle := rangeInt(rng, 350000*(i+1), 600000*(i+1))
		moons = append(moons, New(i+1, moonNames[i%len(moonNames)], int64(cycle)))
	}
	return moons
}

// rangeInt returns an int in [lo, hi).
func rangeInt(rng transform.RNG, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + min(int(rng.Float64()*float64(hi-lo)), hi-lo-1)
}

// Moons returns the moons in ID order.
func (c *Calendar) Moons() []*Moon { return slices.Clone(c.moons) }

// Active returns the full moons currently in the sky.
func (c *Calendar) Active() []*FullMoon { return slices.Clone(c.active) }

// SoonestFullMoonInDays returns the days until the next full moon, or -1
// without moons.
func (c *Calendar) SoonestFullMoonInDays() int {
	if len(c.moons) == 0 {
		return -1
	}
	best := c.moons[0].DaysUntilFull()
	for _, m := range c.moons[1:] {
		best = min(best, m.DaysUntilFull())
	}
	return best
}

// Tick advances every moon. A moon that turns full starts a one-day
// condition; each condition transforms the entities in pack once, on the
// tick it starts. Expired conditions are removed.
func (c *Calendar) Tick(now int64, pack []*transform.Controller) {
	hour := HourOf(now)
	for _, m := range c.moons {
		if m.tick(hour) {
			c.rise(m, now)
		}
	}

	n := 0
	for _, fm := range c.active {
		if !fm.resolved {
			fm.resolved = true
			c.resolve(fm, now, pack)
		}
		if now >= fm.End {
			c.events.Emit(transform.Event{Tick: now, Kind: transform.EventFullMoonPassed, Detail: fm.Moon.Name()})
			slog.Info("full moon passed", "moon", fm.Moon.Name(), "tick", now)
			continue
		}
		c.active[n] = fm
		n++
	}
	clear(c.active[n:])
	c.active = c.active[:n]
}

// TriggerNextFullMoon brings the soonest moon to full right away. Every
// moon's cycle moves forward by the days skipped. The condition takes
// effect on the next Tick.
func (c *Calendar) TriggerNextFullMoon(now int64) *FullMoon {
	if len(c.moons) == 0 {
		return nil
	}
	soonest := slices.MinFunc(c.moons, func(a, b *Moon) int {
		return a.DaysUntilFull() - b.DaysUntilFull()
	})
	skip := int64(soonest.DaysUntilFull()) * TicksPerDay
	for _, m := range c.moons {
		m.advance(skip)
	}
	soonest.reset()
	return c.rise(soonest, now)
}

func (c *Calendar) rise(m *Moon, now int64) *FullMoon {
	fm := &FullMoon{Moon: m, Start: now, End: now + TicksPerDay}
	c.active = append(c.active, fm)
	c.events.Emit(transform.Event{Tick: now, Kind: transform.EventFullMoon, Detail: m.Name()})
	slog.Info("full moon rises", "moon", m.Name(), "tick", now)
	return fm
}

func (c *Calendar) resolve(fm *FullMoon, now int64, pack []*transform.Controller) {
	changed := 0
	for _, ctl := range pack {
		if !ShouldTransform(ctl) {
			continue
		}
		p := ctl.Pawn()
		if !p.PlayerOwned() && c.rng.Float64() > c.opts.NonPlayerChance {
			c.events.Emit(transform.Event{
				Tick:     now,
				EntityID: p.ObjectID(),
				Entity:   p.Label(),
				Kind:     transform.EventMoonResisted,
				Detail:   AdviceResisted,
			})
			continue
		}
		if ctl.TransformRandom(true) {
			changed++
		}
	}
	slog.Debug("full moon resolved", "moon", fm.Moon.Name(), "transformed", changed)
}

// ShouldTransform reports whether the full moon takes hold of the entity:
// an adult werewolf in baseline form that is still unblooded or has fury
// toggled on.
func ShouldTransform(ctl *transform.Controller) bool {
	if ctl == nil {
		return false
	}
	p := ctl.Pawn()
	if p == nil || p.Dead() || !p.Spawned() || !p.Adult() {
		return false
	}
	st := ctl.State()
	return st.Eligible() && !st.Transformed() && (!st.Blooded() || st.FuryToggled())
}

type discard struct{}

func (discard) Emit(transform.Event) {}
