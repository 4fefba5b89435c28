package transform

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/wolfkin/internal/data"
	"github.com/udisondev/wolfkin/internal/model"
)

// Deps are the host collaborators of one controller. Only Pawn is required;
// nil collaborators fall back to inert defaults.
type Deps struct {
	Pawn   Pawn
	Sink   StatModifierSink
	Mind   MentalStateTrigger
	Clock  Clock
	RNG    RNG
	Events EventSink
}

// Controller drives one entity between its baseline and combat forms.
//
// Not safe for concurrent use: all calls for one entity come from the
// simulation goroutine. A nil pawn turns every operation into a no-op.
type Controller struct {
	catalog *data.Catalog
	opts    Options

	pawn   Pawn
	sink   StatModifierSink
	mind   MentalStateTrigger
	clock  Clock
	rng    RNG
	events EventSink

	vault    Vault
	selector Selector
	state    State
}

// NewController creates a controller for deps.Pawn. The entity starts
// ineligible; call Grant or RestoreProgression to make it a werewolf.
func NewController(catalog *data.Catalog, deps Deps, opts Options) *Controller {
	opts = opts.withDefaults()

	c := &Controller{
		catalog: catalog,
		opts:    opts,
		pawn:    deps.Pawn,
		sink:    deps.Sink,
		mind:    deps.Mind,
		clock:   deps.Clock,
		rng:     deps.RNG,
		events:  deps.Events,
		vault:   NewVault(opts.Policy),
		state:   State{lineage: model.LineageNone},
	}
	if c.sink == nil {
		c.sink = noModifiers{}
	}
	if c.mind == nil {
		c.mind = noMind{}
	}
	if c.clock == nil {
		c.clock = stoppedClock{}
	}
	if c.rng == nil {
		c.rng = globalRNG{}
	}
	if c.events == nil {
		c.events = discardEvents{}
	}
	c.selector = Selector{MetisChance: opts.MetisChance, RNG: c.rng}
	return c
}

// State returns the entity's transformation record.
func (c *Controller) State() *State { return &c.state }

// Pawn returns the controlled entity.
func (c *Controller) Pawn() Pawn { return c.pawn }

// Options returns the effective tunables.
func (c *Controller) Options() Options { return c.opts }

// TransformInto moves the entity into form. A nil form reverts, same as
// TransformBack(false). Returns false when nothing happened: the form is
// not learned or not allowed for the lineage, the entity is dead, or it is
// already in that form.
//
// Transforming into another form while transformed swaps the stat packages
// and stashes any newly equipped gear on top of the existing snapshot.
func (c *Controller) TransformInto(form *data.FormDefinition, involuntary bool) bool {
	if c.pawn == nil {
		return false
	}
	if form == nil {
		return c.TransformBack(false)
	}
	fp := c.state.Form(form.ID)
	if fp == nil || !c.allowed(fp.Def()) {
		return false
	}
	return c.transformIn(fp, involuntary)
}

// TransformRandom asks the selector for a form, applies its lineage change
// and transforms. Used by full-moon triggers.
func (c *Controller) TransformRandom(involuntary bool) bool {
	if c.pawn == nil || !c.state.Eligible() || c.state.Transformed() {
		return false
	}

	sel := c.selector.Select(c.state.lineage, c.state.forms)
	if sel.Lineage != c.state.lineage {
		slog.Debug("lineage settled",
			"entity", c.pawn.ObjectID(),
			"from", c.state.lineage,
			"to", sel.Lineage)
	}
	c.state.lineage = sel.Lineage
	if sel.ResetBlooded {
		c.state.blooded = false
	}
	if sel.Form == nil {
		return false
	}
	return c.transformIn(sel.Form, involuntary)
}

// TransformBack reverts to baseline form. killed adds a final howl. A call
// while already reverting or already in baseline form is a no-op.
func (c *Controller) TransformBack(killed bool) bool {
	if c.pawn == nil || c.state.reverting {
		return false
	}
	fp, ok := c.state.ActiveForm()
	if !ok {
		return false
	}

	c.state.reverting = true
	defer func() { c.state.reverting = false }()

	p := c.pawn
	def := fp.Def()

	if killed && def.TransformSound != "" {
		c.emit(EventDeathHowl, def.ID, fp.Level(), def.TransformSound)
	}

	c.state.needsGraphicRefresh = true

	if !p.Dead() {
		c.healInjuries()
		p.ClearBloodLoss()
	}

	c.removePackages(def)
	if c.opts.Fangs != nil && c.opts.Fangs.IsVampire(p) {
		c.opts.Fangs.RestoreFangs(p)
	}

	// Gear is not re-equipped on a dead or downed body, but the snapshot
	// still has to be empty once the entity is back in baseline form.
	if p.Dead() || p.Downed() {
		c.vault.Release(p, &c.state.snapshot)
	} else {
		c.vault.Restore(p, &c.state.snapshot)
	}

	c.state.active = nil
	if c.state.rage.Active() {
		c.mind.RecoverHostileState()
		c.state.rage.Reset()
	}

	if p.PlayerOwned() {
		p.ClearMind()
	}

	c.emit(EventReverted, def.ID, fp.Level(), "")
	slog.Debug("reverted",
		"entity", p.ObjectID(),
		"form", def.ID,
		"killed", killed)
	return true
}

func (c *Controller) transformIn(fp *FormProgress, involuntary bool) bool {
	p := c.pawn
	if p.Dead() {
		return false
	}
	def := fp.Def()

	if prev, ok := c.state.ActiveForm(); ok {
		if prev == fp {
			return false
		}
		c.removePackages(prev.Def())
	}

	if involuntary {
		c.resolveContainment()
	}
	c.resolveAugmentations()
	c.resolveMissingParts()

	c.applyPackage(def.Packages.Body, nil)
	c.applyPartPackages(def)
	p.ClearBloodLoss()

	if involuntary {
		c.resolveFury(fp)
	}

	c.vault.Stash(p, &c.state.snapshot)

	if p.PlayerOwned() {
		p.ClearMind()
	}

	c.state.needsGraphicRefresh = true
	c.emit(EventTransformed, def.ID, fp.Level(), def.TransformSound)
	c.state.active = fp

	if involuntary {
		c.state.rage.Arm(fp, c.opts.BaseRageSeconds)
	}

	slog.Debug("transformed",
		"entity", p.ObjectID(),
		"form", def.ID,
		"level", fp.Level(),
		"involuntary", involuntary)
	return true
}

func (c *Controller) resolveContainment() {
	if label, ok := c.pawn.EjectFromContainer(); ok {
		c.emit(EventEscaped, "", 0, label)
	}
}

// resolveAugmentations sheds added parts that do not survive the change.
// Parts feeding consciousness are never touched. Once any form reaches
// BionicKeepLevel, full-efficiency augmentations on parts that do not
// become jaws or claws are kept.
func (c *Controller) resolveAugmentations() {
	p := c.pawn
	keep := c.highestLevel() >= c.opts.BionicKeepLevel

	for _, a := range p.Augmentations() {
		if a.Part.Has(model.TagConsciousnessSource) {
			continue
		}
		if keep && !a.Part.CanBeWerewolfPart() && !a.Inferior() {
			continue
		}

		p.SpawnNaturalPart(a.Part)
		p.SpawnHeldItems(a.Part)
		p.RemoveAugmentation(a)
		p.RestorePart(a.Part)

		if !p.PlayerOwned() {
			continue
		}
		if c.opts.Fangs != nil && c.opts.Fangs.IsFangs(a) {
			continue
		}
		c.emit(EventAugmentationShed, "", 0, a.Label)
	}
}

func (c *Controller) resolveMissingParts() {
	for _, part := range c.pawn.MissingParts() {
		c.pawn.RestorePart(part)
		c.emit(EventLimbRegrown, "", 0, part.Label)
	}
}

// applyPartPackages puts the jaw package on the first jaw-capable part and
// the claw package on the first hand.
func (c *Controller) applyPartPackages(def *data.FormDefinition) {
	var jawDone, clawDone bool
	for _, part := range c.pawn.Parts() {
		switch {
		case !jawDone && part.CanBeJaw():
			c.applyPackage(def.Packages.Jaw, &part)
			jawDone = true
		case !clawDone && part.CanBeClaw():
			c.applyPackage(def.Packages.Claw, &part)
			clawDone = true
		}
		if jawDone && clawDone {
			return
		}
	}
}

func (c *Controller) applyPackage(id string, part *model.BodyPart) {
	if id == "" {
		return
	}
	c.sink.Apply(id, part)
}

func (c *Controller) removePackages(def *data.FormDefinition) {
	for _, id := range def.Packages.IDs() {
		if id != "" {
			c.sink.Remove(id)
		}
	}
}

// resolveFury handles the blooding, fury and leveling of an involuntary
// transformation.
func (c *Controller) resolveFury(fp *FormProgress) {
	fury := false
	if !c.state.blooded {
		c.state.blooded = true
		fury = true
	}
	if c.state.fury {
		fury = true
	}

	fp.LevelUp()
	c.emit(EventLevelUp, fp.Def().ID, fp.Level(), "")

	if fury && c.mind.ForceHostileState("full moon") {
		c.emit(EventFuryStarted, fp.Def().ID, fp.Level(), "")
	}
}

func (c *Controller) healInjuries() {
	for _, in := range c.pawn.Injuries() {
		if in == nil || !in.HealsNaturally || in.Permanent {
			continue
		}
		in.Severity -= in.Severity * c.opts.RevertHealFraction
	}
}

// allowed reports whether the lineage may ever take form def.
func (c *Controller) allowed(def *data.FormDefinition) bool {
	switch c.state.lineage {
	case model.LineageRestricted:
		return def.Restricted
	case model.LineageUnblooded, model.LineageGeneral, model.LineagePack:
		return !def.Restricted
	}
	return true
}

func (c *Controller) highestLevel() int {
	best := 0
	for _, f := range c.state.forms {
		best = max(best, f.Level())
	}
	return best
}

func (c *Controller) emit(kind EventKind, form string, level int, detail string) {
	c.events.Emit(Event{
		Tick:     c.clock.CurrentTick(),
		EntityID: c.pawn.ObjectID(),
		Entity:   c.pawn.Label(),
		Kind:     kind,
		Form:     form,
		Level:    level,
		Detail:   detail,
	})
}

func (c *Controller) advise(msg string) {
	c.emit(EventAdvisory, "", 0, msg)
}

type noModifiers struct{}

func (noModifiers) Apply(string, *model.BodyPart) {}
func (noModifiers) Remove(string)                 {}

type stoppedClock struct{}

func (stoppedClock) CurrentTick() int64 { return 0 }

type globalRNG struct{}

func (globalRNG) Float64() float64 { return rand.Float64() }
