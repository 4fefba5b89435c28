package model

import (
	"log/slog"
	"sync"
)

// StatModType defines how a stat modifier is applied.
type StatModType int8

const (
	StatModAdd StatModType = iota // Additive bonus (e.g. +4 meleeDamage)
	StatModMul                    // Multiplicative bonus (e.g. x1.2 moveSpeed)
)

// StatModifier represents a single stat modification from a package.
// Multiple modifiers can stack on the same stat.
type StatModifier struct {
	Stat  string      // "meleeDamage", "moveSpeed", "armorBlunt", ...
	Type  StatModType // ADD or MUL
	Value float64
}

// PackageResolver maps a stat-package ID to the modifiers it grants.
// Unknown IDs resolve to nil.
type PackageResolver func(id string) []StatModifier

// AppliedPackage is one package instance on a creature.
// PartID is zero for whole-body packages.
type AppliedPackage struct {
	ID     string
	PartID int32
}

// ModifierSet tracks stat packages applied to one creature.
// It is the reference host's stat-modifier sink.
//
// Thread-safe: render and stats readers may query it off the simulation goroutine.
type ModifierSet struct {
	mu       sync.RWMutex
	resolve  PackageResolver
	packages []AppliedPackage

	// Stat modifiers from all applied packages
	modifiers []StatModifier
}

// NewModifierSet creates an empty set. resolve may be nil, in which case
// packages are tracked but grant no stats.
func NewModifierSet(resolve PackageResolver) *ModifierSet {
	return &ModifierSet{
		resolve:   resolve,
		packages:  make([]AppliedPackage, 0, 8),
		modifiers: make([]StatModifier, 0, 16),
	}
}

// Apply adds package id, optionally bound to part.
// Re-applying the same package to the same part replaces it.
func (s *ModifierSet) Apply(id string, part *BodyPart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap := AppliedPackage{ID: id}
	if part != nil {
		ap.PartID = part.ID
	}

	for _, existing := range s.packages {
		if existing == ap {
			return
		}
	}

	s.packages = append(s.packages, ap)
	s.rebuildModifiers()
	slog.Debug("stat package applied", "package", id, "part", ap.PartID)
}

// Remove removes every instance of package id.
func (s *ModifierSet) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, ap := range s.packages {
		if ap.ID != id {
			s.packages[n] = ap
			n++
		}
	}
	if n == len(s.packages) {
		return
	}
	s.packages = s.packages[:n]
	s.rebuildModifiers()
}

// Has reports whether package id is applied anywhere.
func (s *ModifierSet) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ap := range s.packages {
		if ap.ID == id {
			return true
		}
	}
	return false
}

// Count returns the number of applied package instances.
func (s *ModifierSet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.packages)
}

// Applied returns a copy of applied packages.
func (s *ModifierSet) Applied() []AppliedPackage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]AppliedPackage, len(s.packages))
	copy(result, s.packages)
	return result
}

// GetStatBonus returns the total bonus for stat from all applied packages.
//
// Additive bonuses are summed first, then multiplicative bonuses are applied.
// Returns 0.0 if no modifiers affect the stat.
func (s *ModifierSet) GetStatBonus(stat string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addBonus := 0.0
	mulBonus := 1.0
	hasMul := false

	for _, mod := range s.modifiers {
		if mod.Stat == stat {
			switch mod.Type {
			case StatModAdd:
				addBonus += mod.Value
			case StatModMul:
				mulBonus *= mod.Value
				hasMul = true
			}
		}
	}

	if hasMul {
		return addBonus * mulBonus
	}
	return addBonus
}

// rebuildModifiers recalculates stat modifiers from all applied packages.
// Must be called with mu held.
func (s *ModifierSet) rebuildModifiers() {
	s.modifiers = s.modifiers[:0]
	if s.resolve == nil {
		return
	}
	for _, ap := range s.packages {
		s.modifiers = append(s.modifiers, s.resolve(ap.ID)...)
	}
}
