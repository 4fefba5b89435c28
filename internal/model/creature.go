package model

import (
	"fmt"
	"slices"
)

// Creature is the reference host entity: an in-memory pawn with equipment,
// a body and a mind. The simulator and tests drive the transformation engine
// against it.
//
// Not safe for concurrent use; a creature is owned by the simulation goroutine.
type Creature struct {
	objectID    uint32
	name        string
	playerOwned bool
	adult       bool

	dead    bool
	downed  bool
	spawned bool

	baseBodySize    float64
	baseHealthScale float64

	weapons []*Item
	apparel []*Item
	stowed  []*Item
	ground  []*Item

	parts         []BodyPart
	missing       []BodyPart
	injuries      []*Injury
	augmentations []Augmentation
	bloodLoss     float64
	spawnedThings []string

	container   string
	enemyTarget uint32

	mods *ModifierSet
	mind *Mind
}

// NewCreature creates a spawned adult humanlike with a default body.
func NewCreature(objectID uint32, name string, playerOwned bool, resolve PackageResolver) *Creature {
	return &Creature{
		objectID:        objectID,
		name:            name,
		playerOwned:     playerOwned,
		adult:           true,
		spawned:         true,
		baseBodySize:    1.0,
		baseHealthScale: 1.0,
		parts:           DefaultHumanlikeBody(),
		mods:            NewModifierSet(resolve),
		mind:            &Mind{},
	}
}

func (c *Creature) ObjectID() uint32         { return c.objectID }
func (c *Creature) Label() string            { return c.name }
func (c *Creature) Dead() bool               { return c.dead }
func (c *Creature) Downed() bool             { return c.downed }
func (c *Creature) Spawned() bool            { return c.spawned }
func (c *Creature) Adult() bool              { return c.adult }
func (c *Creature) PlayerOwned() bool        { return c.playerOwned }
func (c *Creature) BaseBodySize() float64    { return c.baseBodySize }
func (c *Creature) BaseHealthScale() float64 { return c.baseHealthScale }
func (c *Creature) Modifiers() *ModifierSet  { return c.mods }
func (c *Creature) Mind() *Mind              { return c.mind }
func (c *Creature) BloodLoss() float64       { return c.bloodLoss }
func (c *Creature) Container() string        { return c.container }
func (c *Creature) EnemyTarget() uint32      { return c.enemyTarget }

// SpawnedThings returns labels of items the creature dropped from its body.
func (c *Creature) SpawnedThings() []string { return slices.Clone(c.spawnedThings) }

func (c *Creature) SetDead(dead bool)        { c.dead = dead }
func (c *Creature) SetDowned(downed bool)    { c.downed = downed }
func (c *Creature) SetSpawned(spawned bool)  { c.spawned = spawned }
func (c *Creature) SetAdult(adult bool)      { c.adult = adult }
func (c *Creature) SetBloodLoss(v float64)   { c.bloodLoss = v }
func (c *Creature) SetEnemyTarget(id uint32) { c.enemyTarget = id }
func (c *Creature) SetPlayerOwned(v bool)    { c.playerOwned = v }

// SetBaseStats overrides the race base body size and health scale.
func (c *Creature) SetBaseStats(bodySize, healthScale float64) {
	c.baseBodySize = bodySize
	c.baseHealthScale = healthScale
}

// HasEnemyTarget reports whether the creature remembers a hostile target.
func (c *Creature) HasEnemyTarget() bool { return c.enemyTarget != 0 }

// ClearMind forgets the hostile target and any queued orders.
func (c *Creature) ClearMind() { c.enemyTarget = 0 }

// EnterContainer places the creature in a container (cryptosleep pod, hopper).
func (c *Creature) EnterContainer(label string) {
	c.container = label
	c.spawned = false
}

// EjectFromContainer releases the creature from its container, if any.
// Returns the container label and whether an ejection happened.
func (c *Creature) EjectFromContainer() (string, bool) {
	if c.container == "" {
		return "", false
	}
	label := c.container
	c.container = ""
	c.spawned = true
	return label, true
}

// --- equipment ---

// Weapons returns a copy of the equipped weapons.
func (c *Creature) Weapons() []*Item { return slices.Clone(c.weapons) }

// Apparel returns a copy of the worn apparel.
func (c *Creature) Apparel() []*Item { return slices.Clone(c.apparel) }

// Stowed returns a copy of the items held out of the world.
func (c *Creature) Stowed() []*Item { return slices.Clone(c.stowed) }

// Ground returns a copy of the items the creature dropped on the ground.
func (c *Creature) Ground() []*Item { return slices.Clone(c.ground) }

// Equip puts a weapon into the weapon slot.
func (c *Creature) Equip(it *Item) {
	if it == nil || slices.Contains(c.weapons, it) {
		return
	}
	it.setLocation(ItemLocationEquipped)
	c.weapons = append(c.weapons, it)
}

// Wear puts on an apparel item.
func (c *Creature) Wear(it *Item) {
	if it == nil || slices.Contains(c.apparel, it) {
		return
	}
	it.setLocation(ItemLocationWorn)
	c.apparel = append(c.apparel, it)
}

// Unequip removes the item from its weapon or apparel slot.
// Returns false if the item was not equipped or worn.
func (c *Creature) Unequip(it *Item) bool {
	if i := slices.Index(c.weapons, it); i >= 0 {
		c.weapons = slices.Delete(c.weapons, i, i+1)
		return true
	}
	if i := slices.Index(c.apparel, it); i >= 0 {
		c.apparel = slices.Delete(c.apparel, i, i+1)
		return true
	}
	return false
}

// Stow holds the item out of the world until Unstow.
func (c *Creature) Stow(it *Item) {
	if it == nil || slices.Contains(c.stowed, it) {
		return
	}
	it.setLocation(ItemLocationStowed)
	c.stowed = append(c.stowed, it)
}

// Unstow releases a stowed item. Returns false if it was not stowed.
func (c *Creature) Unstow(it *Item) bool {
	i := slices.Index(c.stowed, it)
	if i < 0 {
		return false
	}
	c.stowed = slices.Delete(c.stowed, i, i+1)
	return true
}

// DropOnGround places the item at the creature's feet.
func (c *Creature) DropOnGround(it *Item) {
	if it == nil {
		return
	}
	it.setLocation(ItemLocationGround)
	c.ground = append(c.ground, it)
}

// --- body ---

// Parts returns the body parts that are not missing.
func (c *Creature) Parts() []BodyPart { return slices.Clone(c.parts) }

// MissingParts returns the body parts that are missing.
func (c *Creature) MissingParts() []BodyPart { return slices.Clone(c.missing) }

// LosePart marks a part as missing and drops its injuries and augmentations.
func (c *Creature) LosePart(id int32) error {
	i := slices.IndexFunc(c.parts, func(p BodyPart) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("creature %d has no part %d", c.objectID, id)
	}
	c.missing = append(c.missing, c.parts[i])
	c.parts = slices.Delete(c.parts, i, i+1)
	c.injuries = slices.DeleteFunc(c.injuries, func(in *Injury) bool { return in.PartID == id })
	c.augmentations = slices.DeleteFunc(c.augmentations, func(a Augmentation) bool { return a.Part.ID == id })
	return nil
}

// RestorePart regrows a missing part. Restoring a present part is a no-op.
func (c *Creature) RestorePart(p BodyPart) {
	i := slices.IndexFunc(c.missing, func(m BodyPart) bool { return m.ID == p.ID })
	if i < 0 {
		return
	}
	c.parts = append(c.parts, c.missing[i])
	c.missing = slices.Delete(c.missing, i, i+1)
	slices.SortFunc(c.parts, func(a, b BodyPart) int { return int(a.ID - b.ID) })
}

// AddInjury records an injury.
func (c *Creature) AddInjury(in *Injury) {
	c.injuries = append(c.injuries, in)
}

// Injuries returns the injury records; severities may be mutated in place.
func (c *Creature) Injuries() []*Injury { return slices.Clone(c.injuries) }

// AddAugmentation installs an added part.
func (c *Creature) AddAugmentation(a Augmentation) {
	c.augmentations = append(c.augmentations, a)
}

// Augmentations returns the installed added parts.
func (c *Creature) Augmentations() []Augmentation { return slices.Clone(c.augmentations) }

// RemoveAugmentation uninstalls the added part on a.Part.
func (c *Creature) RemoveAugmentation(a Augmentation) {
	c.augmentations = slices.DeleteFunc(c.augmentations, func(x Augmentation) bool {
		return x.Part.ID == a.Part.ID && x.Label == a.Label
	})
}

// SpawnNaturalPart drops the natural item for p if the part is clean.
func (c *Creature) SpawnNaturalPart(p BodyPart) {
	if c.dead || p.NaturalItem == "" {
		return
	}
	for _, in := range c.injuries {
		if in.PartID == p.ID {
			return
		}
	}
	c.spawnedThings = append(c.spawnedThings, p.NaturalItem)
}

// SpawnHeldItems drops the items held by augmentations on p.
func (c *Creature) SpawnHeldItems(p BodyPart) {
	for _, a := range c.augmentations {
		if a.Part.ID == p.ID {
			c.spawnedThings = append(c.spawnedThings, a.HeldItems...)
		}
	}
}

// ClearBloodLoss zeroes the blood-loss condition.
func (c *Creature) ClearBloodLoss() { c.bloodLoss = 0 }
