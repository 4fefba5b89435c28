package model

// Mind is the reference host's mental-state handler. Only the forced
// hostile state used by werewolf fury is modelled.
type Mind struct {
	hostile bool
	reason  string
	forced  int
}

// ForceHostileState starts the forced hostile state. Returns false if the
// creature is already in it.
func (m *Mind) ForceHostileState(reason string) bool {
	if m.hostile {
		return false
	}
	m.hostile = true
	m.reason = reason
	m.forced++
	return true
}

// RecoverHostileState ends the forced hostile state, if any.
func (m *Mind) RecoverHostileState() {
	m.hostile = false
	m.reason = ""
}

// Hostile reports whether the forced hostile state is active.
func (m *Mind) Hostile() bool { return m.hostile }

// Reason returns the reason the hostile state was forced.
func (m *Mind) Reason() string { return m.reason }

// TimesForced counts how often the hostile state was started.
func (m *Mind) TimesForced() int { return m.forced }
