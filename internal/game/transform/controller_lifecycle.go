package transform

import (
	"log/slog"

	"github.com/udisondev/wolfkin/internal/model"
)

// CombatPointsPerLevel is the threat weight of one level in the best form.
const CombatPointsPerLevel = 400

// Grant makes the entity a werewolf of lineage, with every catalog form at
// level zero. Refused with an advisory when the entity was purged or is
// already a werewolf.
func (c *Controller) Grant(lineage model.Lineage) bool {
	if c.pawn == nil || lineage == model.LineageNone {
		return false
	}
	if c.state.forbidden {
		c.advise(AdviceForbidden)
		return false
	}
	if c.state.Eligible() {
		c.advise(AdviceAlreadyWerewolf)
		return false
	}

	c.state.lineage = lineage
	c.state.forms = c.newForms()
	c.state.blooded = lineage.StartsBlooded()
	c.state.cooldown = 0

	c.emit(EventGranted, "", 0, lineage.String())
	slog.Debug("lycanthropy granted", "entity", c.pawn.ObjectID(), "lineage", lineage)
	return true
}

// Revoke purges lycanthropy. The entity reverts first if transformed, loses
// all progress, and can never be granted again.
func (c *Controller) Revoke() bool {
	if c.pawn == nil {
		return false
	}
	if !c.state.Eligible() {
		c.advise(AdviceNotWerewolf)
		return false
	}
	if c.state.Transformed() {
		c.TransformBack(false)
	}

	c.state.forms = nil
	c.state.active = nil
	c.state.lineage = model.LineageNone
	c.state.blooded = false
	c.state.fury = false
	c.state.cooldown = 0
	c.state.rage.Reset()
	c.state.forbidden = true

	c.emit(EventRevoked, "", 0, "")
	slog.Debug("lycanthropy revoked", "entity", c.pawn.ObjectID())
	return true
}

func (c *Controller) newForms() []*FormProgress {
	if c.catalog == nil {
		return []*FormProgress{}
	}
	defs := c.catalog.Forms()
	forms := make([]*FormProgress, 0, len(defs))
	for _, def := range defs {
		forms = append(forms, newFormProgress(def, c.pawn))
	}
	return forms
}

// SetLevel is the admin reset for one form.
func (c *Controller) SetLevel(formID string, level int) bool {
	fp := c.state.Form(formID)
	if fp == nil {
		return false
	}
	fp.SetLevel(level)
	return true
}

// HighestLevelForm returns the allowed form with the highest level, the
// first in catalog order on ties. Nil when not eligible.
func (c *Controller) HighestLevelForm() *FormProgress {
	var best *FormProgress
	for _, f := range c.state.forms {
		if !c.allowed(f.Def()) {
			continue
		}
		if best == nil || f.Level() > best.Level() {
			best = f
		}
	}
	return best
}

// CombatPoints weights the entity for encounter budgeting.
func (c *Controller) CombatPoints() int {
	if c.state.forbidden {
		return 0
	}
	if len(c.state.forms) == 0 {
		return CombatPointsPerLevel
	}
	return c.highestLevel() * CombatPointsPerLevel
}

// CanTransformNow reports whether a voluntary transformation could start.
func (c *Controller) CanTransformNow() bool {
	return c.pawn != nil &&
		c.state.Eligible() &&
		!c.state.Transformed() &&
		c.state.cooldown <= 0
}

// TransformVoluntary is the at-will transformation into a learned form.
// Failures emit an advisory. Success starts the cooldown.
func (c *Controller) TransformVoluntary(formID string) bool {
	if c.pawn == nil {
		return false
	}

	switch {
	case !c.state.Eligible():
		c.advise(AdviceNotWerewolf)
		return false
	case c.state.Transformed():
		c.advise(AdviceAlreadyTransformed)
		return false
	case !c.state.blooded:
		c.advise(AdviceNotBlooded)
		return false
	}

	fp := c.state.Form(formID)
	switch {
	case fp == nil || !c.allowed(fp.Def()):
		c.advise(AdviceFormUnavailable)
		return false
	case fp.Level() <= 0:
		c.advise(AdviceFormNotLearned)
		return false
	case c.state.cooldown > 0:
		c.advise(AdviceNeedsRest)
		return false
	}

	if !c.transformIn(fp, false) {
		return false
	}
	c.state.cooldown = c.opts.CooldownTicks
	return true
}

// Tick is the per-tick update. The rage session is checked first so an
// entity that left the simulation still expires it.
func (c *Controller) Tick() {
	if c.pawn == nil {
		return
	}

	c.tickRage()

	if !c.pawn.Spawned() || !c.state.Eligible() {
		return
	}
	if c.state.cooldown > 0 {
		c.state.cooldown--
	}
	c.ResolveHostileReaction()
}

func (c *Controller) tickRage() {
	rage := &c.state.rage
	if !rage.Active() {
		return
	}

	form := ""
	if fp, ok := c.state.ActiveForm(); ok {
		form = fp.Def().ID
	}
	if !rage.Tick(c.clock.CurrentTick(), c.opts.RageCadenceTicks, c.pawn.Spawned(), c.state.Transformed()) {
		return
	}

	c.mind.RecoverHostileState()
	if c.state.Transformed() {
		c.TransformBack(false)
	}
	rage.Reset()
	c.emit(EventRageExpired, form, 0, "")
}

// ResolveHostileReaction lets a non-player werewolf with an enemy target
// take its strongest form. Checked every HostileCheckInterval ticks.
func (c *Controller) ResolveHostileReaction() bool {
	if c.pawn == nil || c.clock.CurrentTick()%c.opts.HostileCheckInterval != 0 {
		return false
	}
	if c.pawn.PlayerOwned() || !c.pawn.HasEnemyTarget() || !c.CanTransformNow() {
		return false
	}
	fp := c.HighestLevelForm()
	if fp == nil {
		return false
	}
	return c.transformIn(fp, false)
}

// OnKilled reverts a transformed entity with a death howl.
func (c *Controller) OnKilled() {
	if c.pawn != nil && c.state.Transformed() && !c.state.reverting {
		c.TransformBack(true)
	}
}

// OnDowned reverts a transformed entity that was incapacitated.
func (c *Controller) OnDowned() {
	if c.pawn != nil && c.state.Transformed() && !c.state.reverting {
		c.TransformBack(false)
	}
}

// OnDestroyed reverts a transformed entity that is leaving the world.
func (c *Controller) OnDestroyed() {
	c.OnKilled()
}

// Progression returns the durable state for storage.
func (c *Controller) Progression() Progression {
	return c.state.progression()
}

// RestoreProgression loads stored state. Only allowed in baseline form.
// Levels for forms missing from the catalog are ignored.
func (c *Controller) RestoreProgression(p Progression) bool {
	if c.pawn == nil || c.state.Transformed() {
		return false
	}

	c.state.lineage = p.Lineage
	c.state.blooded = p.Blooded
	c.state.fury = p.FuryToggled
	c.state.forbidden = p.Forbidden
	c.state.cooldown = max(p.CooldownRemaining, 0)
	c.state.forms = nil

	if p.Lineage != model.LineageNone && !p.Forbidden {
		c.state.forms = c.newForms()
		for _, f := range c.state.forms {
			f.SetLevel(p.Levels[f.Def().ID])
		}
	}
	return true
}
