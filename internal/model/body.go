package model

// PartKind is the anatomical kind of a body part.
type PartKind int8

const (
	PartTorso PartKind = iota
	PartHead
	PartBrain
	PartEye
	PartJaw
	PartArm
	PartHand
	PartLeg
	PartFoot
)

// PartTag is a bitmask of functional tags on a body part.
type PartTag uint8

const (
	TagConsciousnessSource PartTag = 1 << iota
	TagEatingSource
	TagBreathingSource
)

// BodyPart is one body-part record of a creature.
type BodyPart struct {
	ID    int32
	Kind  PartKind
	Label string
	Tags  PartTag
	// NaturalItem is the item label spawned when a clean natural part is
	// removed. Empty means the part drops nothing.
	NaturalItem string
}

// Has reports whether the part carries tag.
func (p BodyPart) Has(tag PartTag) bool {
	return p.Tags&tag != 0
}

// CanBeJaw reports whether a werewolf jaw package may attach to the part.
func (p BodyPart) CanBeJaw() bool {
	return p.Kind == PartJaw || p.Has(TagEatingSource)
}

// CanBeClaw reports whether a werewolf claw package may attach to the part.
func (p BodyPart) CanBeClaw() bool {
	return p.Kind == PartHand
}

// CanBeWerewolfPart reports whether the part can take a jaw or claw package.
func (p BodyPart) CanBeWerewolfPart() bool {
	return p.CanBeJaw() || p.CanBeClaw()
}

// Injury is a damage record on a body part. Severity is mutated in place.
type Injury struct {
	PartID    int32
	Label     string
	Severity  float64
	Permanent bool // scars and old wounds
	// HealsNaturally is false for injuries that only heal with treatment.
	HealsNaturally bool
}

// Augmentation is an added (bionic or prosthetic) part.
type Augmentation struct {
	Part       BodyPart
	Label      string
	Efficiency float64 // 1.0 matches a natural part
	Fangs      bool    // vampire fangs from a co-installed feature
	// HeldItems are item labels the augmentation drops when removed.
	HeldItems []string
}

// Inferior reports whether the augmentation is worse than a natural part.
func (a Augmentation) Inferior() bool {
	return a.Efficiency < 1
}

// DefaultHumanlikeBody returns the body-part records of a standard humanlike.
func DefaultHumanlikeBody() []BodyPart {
	return []BodyPart{
		{ID: 1, Kind: PartTorso, Label: "torso", Tags: TagBreathingSource},
		{ID: 2, Kind: PartHead, Label: "head"},
		{ID: 3, Kind: PartBrain, Label: "brain", Tags: TagConsciousnessSource},
		{ID: 4, Kind: PartEye, Label: "left eye", NaturalItem: "eye"},
		{ID: 5, Kind: PartEye, Label: "right eye", NaturalItem: "eye"},
		{ID: 6, Kind: PartJaw, Label: "jaw", Tags: TagEatingSource},
		{ID: 7, Kind: PartArm, Label: "left arm", NaturalItem: "arm"},
		{ID: 8, Kind: PartHand, Label: "left hand"},
		{ID: 9, Kind: PartArm, Label: "right arm", NaturalItem: "arm"},
		{ID: 10, Kind: PartHand, Label: "right hand"},
		{ID: 11, Kind: PartLeg, Label: "left leg", NaturalItem: "leg"},
		{ID: 12, Kind: PartFoot, Label: "left foot"},
		{ID: 13, Kind: PartLeg, Label: "right leg", NaturalItem: "leg"},
		{ID: 14, Kind: PartFoot, Label: "right foot"},
	}
}
