package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/wolfkin/internal/data"
	"github.com/udisondev/wolfkin/internal/model"
)

type fakeClock struct{ now int64 }

func (c *fakeClock) CurrentTick() int64 { return c.now }

// seqRNG replays vals in a loop.
type seqRNG struct {
	vals []float64
	i    int
}

func (r *seqRNG) Float64() float64 {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type recorder struct {
	events []Event
	hook   func(Event)
}

func (r *recorder) Emit(e Event) {
	r.events = append(r.events, e)
	if r.hook != nil {
		r.hook(e)
	}
}

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

type harness struct {
	ctl   *Controller
	cr    *model.Creature
	rec   *recorder
	clock *fakeClock
	rng   *seqRNG
	cat   *data.Catalog
}

func testCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	cat, err := data.DefaultCatalog()
	require.NoError(t, err, "DefaultCatalog")
	return cat
}

// newHarness builds a player-owned creature with a controller wired to it.
func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	cat := testCatalog(t)
	cr := model.NewCreature(1, "Ulric", true, cat.Package)

	h := &harness{
		cr:    cr,
		rec:   &recorder{},
		clock: &fakeClock{},
		rng:   &seqRNG{vals: []float64{0.5}},
		cat:   cat,
	}
	h.ctl = NewController(cat, Deps{
		Pawn:   cr,
		Sink:   cr.Modifiers(),
		Mind:   cr.Mind(),
		Clock:  h.clock,
		RNG:    h.rng,
		Events: h.rec,
	}, opts)
	return h
}

// withOptions returns DefaultOptions adjusted by mod.
func withOptions(mod func(o *Options)) Options {
	o := DefaultOptions()
	mod(&o)
	return o
}

func (h *harness) form(t *testing.T, id string) *data.FormDefinition {
	t.Helper()
	def, err := h.cat.Form(id)
	require.NoError(t, err, "Form(%s)", id)
	return def
}

// advance moves the clock one tick and ticks the controller.
func (h *harness) advance() {
	h.clock.now++
	h.ctl.Tick()
}

func (h *harness) gear() (*model.Item, *model.Item) {
	w := model.NewWeapon(100, "longsword")
	a := model.NewApparel(101, "duster", model.GroupTorso)
	h.cr.Equip(w)
	h.cr.Wear(a)
	return w, a
}

type fakeFangs struct {
	vampire  bool
	restored int
}

func (f *fakeFangs) IsFangs(a model.Augmentation) bool { return a.Fangs }
func (f *fakeFangs) IsVampire(Pawn) bool               { return f.vampire }
func (f *fakeFangs) RestoreFangs(Pawn)                 { f.restored++ }
