package transform

import "github.com/udisondev/wolfkin/internal/data"

// BaseStats is the owner's race baseline used for derived form stats.
type BaseStats interface {
	BaseBodySize() float64
	BaseHealthScale() float64
}

// FormProgress is the level one entity has reached in one form.
//
// Derived stats are memoized and invalidated only by LevelUp and SetLevel.
type FormProgress struct {
	def   *data.FormDefinition
	level int
	owner BaseStats // weak: read for base stats only

	cached      bool
	bodySize    float64
	healthScale float64
	immunity    float64
}

func newFormProgress(def *data.FormDefinition, owner BaseStats) *FormProgress {
	return &FormProgress{def: def, owner: owner}
}

// Def returns the form definition.
func (f *FormProgress) Def() *data.FormDefinition { return f.def }

// Level returns the current level.
func (f *FormProgress) Level() int { return f.level }

// LevelUp raises the level by one and drops cached stats.
func (f *FormProgress) LevelUp() {
	f.level++
	f.cached = false
}

// SetLevel is the admin reset. Negative levels clamp to zero.
func (f *FormProgress) SetLevel(level int) {
	f.level = max(level, 0)
	f.cached = false
}

// BodySize returns the body-size multiplier at the current level.
func (f *FormProgress) BodySize() float64 {
	f.ensure()
	return f.bodySize
}

// HealthScale returns the health-scale multiplier at the current level.
func (f *FormProgress) HealthScale() float64 {
	f.ensure()
	return f.healthScale
}

// DamageImmunity returns the fraction of incoming damage ignored.
func (f *FormProgress) DamageImmunity() float64 {
	f.ensure()
	return f.immunity
}

// BodySizeNext previews BodySize at the next level.
func (f *FormProgress) BodySizeNext() float64 {
	return scaleAt(f.baseBodySize(), f.def.SizeFactor, f.def.SizePerLevel, f.level+1)
}

// HealthScaleNext previews HealthScale at the next level.
func (f *FormProgress) HealthScaleNext() float64 {
	return scaleAt(f.baseHealthScale(), f.def.HealthFactor, f.def.HealthPerLevel, f.level+1)
}

// DamageImmunityNext previews DamageImmunity at the next level.
func (f *FormProgress) DamageImmunityNext() float64 {
	return immunityAt(f.def, f.level+1)
}

func (f *FormProgress) ensure() {
	if f.cached {
		return
	}
	f.bodySize = scaleAt(f.baseBodySize(), f.def.SizeFactor, f.def.SizePerLevel, f.level)
	f.healthScale = scaleAt(f.baseHealthScale(), f.def.HealthFactor, f.def.HealthPerLevel, f.level)
	f.immunity = immunityAt(f.def, f.level)
	f.cached = true
}

func (f *FormProgress) baseBodySize() float64 {
	if f.owner == nil {
		return 1
	}
	return f.owner.BaseBodySize()
}

func (f *FormProgress) baseHealthScale() float64 {
	if f.owner == nil {
		return 1
	}
	return f.owner.BaseHealthScale()
}

// scaleAt grows base*factor by perLevel each level, bounded to
// [base, base*factor*2].
func scaleAt(base, factor, perLevel float64, level int) float64 {
	return clamp(base*factor+float64(level)*perLevel, base, base*factor*2)
}

func immunityAt(def *data.FormDefinition, level int) float64 {
	return clamp(def.ImmunityBase+float64(level)*def.ImmunityPerLevel, def.ImmunityBase, def.ImmunityMax)
}

// clamp bounds v to [lo, hi]. The lower bound is checked first.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
