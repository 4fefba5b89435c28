package transform

// RageTimer bounds an involuntary transformation. Inactive until Arm; the
// budget drops by one every cadence window and the session expires once it
// goes negative.
type RageTimer struct {
	active    bool
	remaining int
	base      float64
	cached    bool
}

// rageDuration is base + clamp(perLevelFactor*level*base, 0, perLevelMax).
func rageDuration(baseSeconds, perLevelFactor, perLevelMax float64, level int) float64 {
	bonus := clamp(perLevelFactor*float64(level)*baseSeconds, 0, perLevelMax)
	return baseSeconds + bonus
}

// Arm starts a session for progress. The base duration is computed here
// once and kept for the whole session.
func (r *RageTimer) Arm(progress *FormProgress, baseSeconds float64) {
	r.active = true
	r.cached = false
	r.baseDuration(progress, baseSeconds)
	r.remaining = int(r.base)
}

func (r *RageTimer) baseDuration(progress *FormProgress, baseSeconds float64) float64 {
	if r.cached {
		return r.base
	}
	def := progress.Def()
	r.base = rageDuration(baseSeconds, def.RageFactorPerLevel, def.RageFactorPerLevelMax, progress.Level())
	r.cached = true
	return r.base
}

// Active reports whether a session is running.
func (r RageTimer) Active() bool { return r.active }

// Remaining returns the budget left, in cadence windows.
func (r RageTimer) Remaining() int { return r.remaining }

// BaseDuration returns the cached duration of the running session.
func (r RageTimer) BaseDuration() float64 { return r.base }

// Progress returns the share of the budget left, in [0,1].
func (r RageTimer) Progress() float64 {
	if !r.active || r.base <= 0 {
		return 0
	}
	return clamp(1-(r.base-float64(r.remaining))/r.base, 0, 1)
}

// Tick runs one cadence check. It returns true when the session must
// expire: the budget is exhausted, the entity left the simulation, or the
// form was already cleared. Ticks off the cadence do nothing.
func (r *RageTimer) Tick(now, cadence int64, spawned, transformed bool) bool {
	if !r.active {
		return false
	}
	if cadence > 0 && now%cadence != 0 {
		return false
	}
	if r.remaining < 0 || !spawned || !transformed {
		return true
	}
	r.remaining--
	return false
}

// Reset returns the timer to inactive.
func (r *RageTimer) Reset() {
	*r = RageTimer{}
}
