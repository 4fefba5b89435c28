package transform

import (
	"log/slog"
	"slices"

	"github.com/udisondev/wolfkin/internal/model"
)

// EquipmentPolicy decides what happens to gear when an entity transforms.
// It is resolved once at startup from the host's installed features.
type EquipmentPolicy uint8

const (
	// PolicyVault stows gear and re-equips it on revert.
	PolicyVault EquipmentPolicy = iota
	// PolicyDropOnGround drops gear at the entity's feet. Used when an
	// alternate equipment-slot feature owns weapon handling.
	PolicyDropOnGround
)

func (p EquipmentPolicy) String() string {
	if p == PolicyDropOnGround {
		return "drop"
	}
	return "vault"
}

// Snapshot is the gear stashed at transform-in time, in unequip order.
type Snapshot struct {
	Weapons []*model.Item
	Apparel []*model.Item
}

// Empty reports whether nothing is stashed.
func (s Snapshot) Empty() bool {
	return len(s.Weapons) == 0 && len(s.Apparel) == 0
}

// Len returns the number of stashed items.
func (s Snapshot) Len() int {
	return len(s.Weapons) + len(s.Apparel)
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Weapons: slices.Clone(s.Weapons), Apparel: slices.Clone(s.Apparel)}
}

func (s *Snapshot) clear() {
	s.Weapons = nil
	s.Apparel = nil
}

// Vault moves gear in and out of a snapshot.
type Vault struct {
	policy EquipmentPolicy
}

// NewVault creates a vault with the given policy.
func NewVault(policy EquipmentPolicy) Vault {
	return Vault{policy: policy}
}

// Policy returns the configured policy.
func (v Vault) Policy() EquipmentPolicy { return v.policy }

// Stash unequips weapons and upper-body apparel into snap. Items already in
// snap are kept, so stashing again while transformed appends.
//
// Under PolicyDropOnGround, weapons and all worn apparel are dropped and
// snap is left untouched.
func (v Vault) Stash(p Equipment, snap *Snapshot) {
	if v.policy == PolicyDropOnGround {
		for _, a := range p.Apparel() {
			if p.Unequip(a) {
				p.DropOnGround(a)
			}
		}
		for _, w := range p.Weapons() {
			if p.Unequip(w) {
				p.DropOnGround(w)
			}
		}
		return
	}

	for _, w := range p.Weapons() {
		if !p.Unequip(w) {
			continue
		}
		p.Stow(w)
		snap.Weapons = append(snap.Weapons, w)
	}

	for _, a := range p.Apparel() {
		if !a.IsUpperBody() || !p.Unequip(a) {
			continue
		}
		p.Stow(a)
		snap.Apparel = append(snap.Apparel, a)
	}
}

// Restore re-equips and re-wears everything in snap, then clears it.
// Skipped entirely when the entity is dead or downed.
func (v Vault) Restore(p Pawn, snap *Snapshot) {
	if p.Dead() || p.Downed() {
		return
	}

	for _, w := range snap.Weapons {
		if w == nil || !p.Unstow(w) {
			continue
		}
		p.Equip(w)
	}
	for _, a := range snap.Apparel {
		if a == nil || !p.Unstow(a) {
			continue
		}
		p.Wear(a)
	}
	snap.clear()
}

// Release drops everything in snap on the ground and clears it. Used when
// the entity reverts dead or downed and cannot be re-equipped.
func (v Vault) Release(p Equipment, snap *Snapshot) {
	if snap.Empty() {
		return
	}
	for _, it := range slices.Concat(snap.Weapons, snap.Apparel) {
		if it != nil && p.Unstow(it) {
			p.DropOnGround(it)
		}
	}
	slog.Debug("stashed gear released", "items", snap.Len())
	snap.clear()
}
