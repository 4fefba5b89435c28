package transform

import "github.com/udisondev/wolfkin/internal/model"

// Status is the host's view of an entity's identity and condition.
type Status interface {
	ObjectID() uint32
	Label() string
	Dead() bool
	Downed() bool
	Spawned() bool
	Adult() bool
	PlayerOwned() bool
	HasEnemyTarget() bool
	// ClearMind forgets hostile targets and queued orders.
	ClearMind()
	// EjectFromContainer frees the entity from a pod or storage building.
	// Returns the container label and whether anything happened.
	EjectFromContainer() (string, bool)
	BaseBodySize() float64
	BaseHealthScale() float64
}

// Equipment is the host's equipment and apparel tracker.
type Equipment interface {
	Weapons() []*model.Item
	Apparel() []*model.Item
	// Unequip removes the item from its weapon or apparel slot.
	Unequip(it *model.Item) bool
	Equip(it *model.Item)
	Wear(it *model.Item)
	// Stow holds an item outside the world until Unstow.
	Stow(it *model.Item)
	Unstow(it *model.Item) bool
	DropOnGround(it *model.Item)
}

// Body is the host's health tracker.
type Body interface {
	Parts() []model.BodyPart
	MissingParts() []model.BodyPart
	RestorePart(p model.BodyPart)
	Injuries() []*model.Injury
	Augmentations() []model.Augmentation
	RemoveAugmentation(a model.Augmentation)
	SpawnNaturalPart(p model.BodyPart)
	SpawnHeldItems(p model.BodyPart)
	ClearBloodLoss()
}

// Pawn is the entity being transformed. Owned by the host.
type Pawn interface {
	Status
	Equipment
	Body
}

// StatModifierSink is the host's effect system.
type StatModifierSink interface {
	Apply(id string, part *model.BodyPart)
	Remove(id string)
}

// MentalStateTrigger is the host's AI override hook.
type MentalStateTrigger interface {
	ForceHostileState(reason string) bool
	RecoverHostileState()
}

// Clock returns the monotonic simulation tick.
type Clock interface {
	CurrentTick() int64
}

// RNG returns uniform floats in [0,1).
type RNG interface {
	Float64() float64
}

// EventSink receives user-visible notifications. Emit must not block.
type EventSink interface {
	Emit(Event)
}

// FangsCompat is the optional co-installed vampire feature. Its fangs
// augmentation is suppressed while a jaw package is applied.
type FangsCompat interface {
	IsFangs(a model.Augmentation) bool
	IsVampire(p Pawn) bool
	RestoreFangs(p Pawn)
}

type discardEvents struct{}

func (discardEvents) Emit(Event) {}

type noMind struct{}

func (noMind) ForceHostileState(string) bool { return false }
func (noMind) RecoverHostileState()          {}
