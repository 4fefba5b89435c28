// Package world drives the simulation: one clock, one moon calendar and the
// pack of werewolf controllers, ticked in a fixed order.
package world

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/wolfkin/internal/game/moon"
	"github.com/udisondev/wolfkin/internal/game/transform"
)

// DefaultTickInterval is one tick at normal game speed.
const DefaultTickInterval = time.Second / 60

// Clock is the simulation tick counter. Reads are safe from any goroutine.
type Clock struct {
	now atomic.Int64
}

// CurrentTick returns the current tick.
func (c *Clock) CurrentTick() int64 { return c.now.Load() }

func (c *Clock) advance() int64 { return c.now.Add(1) }

// Set moves the clock to tick. Used when resuming a stored world.
func (c *Clock) Set(tick int64) { c.now.Store(tick) }

// Pack is the roster of controllers plus the calendar that moves them.
//
// Registration is safe from any goroutine. Tick runs every controller
// sequentially in ascending entity ID order.
type Pack struct {
	mu      sync.RWMutex
	members map[uint32]*transform.Controller

	clock    *Clock
	calendar *moon.Calendar
	interval time.Duration

	onTick func(now int64)
}

// NewPack creates a pack ticked every interval by Run. calendar may be nil.
func NewPack(clock *Clock, calendar *moon.Calendar, interval time.Duration) *Pack {
	if clock == nil {
		clock = &Clock{}
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Pack{
		members:  make(map[uint32]*transform.Controller, 64),
		clock:    clock,
		calendar: calendar,
		interval: interval,
	}
}

// Clock returns the pack's clock.
func (p *Pack) Clock() *Clock { return p.clock }

// Calendar returns the moon calendar, or nil.
func (p *Pack) Calendar() *moon.Calendar { return p.calendar }

// OnTick installs a hook run after every tick, on the simulation goroutine.
func (p *Pack) OnTick(fn func(now int64)) { p.onTick = fn }

// Register adds a controller. A controller without a pawn is ignored.
func (p *Pack) Register(ctl *transform.Controller) {
	if ctl == nil || ctl.Pawn() == nil {
		return
	}
	id := ctl.Pawn().ObjectID()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.members[id] = ctl
	slog.Debug("entity joined pack", "entity", id, "total", len(p.members))
}

// Unregister removes the controller for entity id.
func (p *Pack) Unregister(id uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.members, id)
	slog.Debug("entity left pack", "entity", id, "remaining", len(p.members))
}

// Get returns the controller for entity id.
func (p *Pack) Get(id uint32) (*transform.Controller, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ctl, ok := p.members[id]
	return ctl, ok
}

// Count returns the number of registered controllers.
func (p *Pack) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.members)
}

// Members returns the controllers in ascending entity ID order.
func (p *Pack) Members() []*transform.Controller {
	p.mu.RLock()
	ids := make([]uint32, 0, len(p.members))
	for id := range p.members {
		ids = append(ids, id)
	}
	out := make([]*transform.Controller, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, p.members[id])
	}
	p.mu.RUnlock()
	return out
}

// TransformedCount returns how many registered entities are in a combat form.
func (p *Pack) TransformedCount() int {
	n := 0
	for _, ctl := range p.Members() {
		if ctl.State().Transformed() {
			n++
		}
	}
	return n
}

// Tick advances the clock, then the calendar, then every controller.
func (p *Pack) Tick() int64 {
	now := p.clock.advance()
	members := p.Members()

	if p.calendar != nil {
		p.calendar.Tick(now, members)
	}
	for _, ctl := range members {
		ctl.Tick()
	}
	if p.onTick != nil {
		p.onTick(now)
	}
	return now
}

// Run ticks the pack every interval until ctx is done.
func (p *Pack) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("pack simulation started", "interval", p.interval, "members", p.Count())

	for {
		select {
		case <-ctx.Done():
			slog.Info("pack simulation stopping", "tick", p.clock.CurrentTick())
			return ctx.Err()

		case <-ticker.C:
			p.Tick()
		}
	}
}
