package model

import "fmt"

// ItemKind distinguishes weapon-slot items from worn apparel.
type ItemKind int8

const (
	ItemWeapon ItemKind = iota
	ItemApparel
)

// BodyGroup is a bitmask of the body groups an apparel item covers.
type BodyGroup uint16

const (
	GroupTorso BodyGroup = 1 << iota
	GroupFullHead
	GroupUpperHead
	GroupLeftHand
	GroupRightHand
	GroupLegs
	GroupFeet
	GroupNeck
)

// UpperBody is the set of groups that cannot be worn in a combat form.
const UpperBody = GroupTorso | GroupFullHead | GroupLeftHand | GroupRightHand

// ItemLocation tells where an item currently is relative to its owner.
type ItemLocation int8

const (
	ItemLocationEquipped ItemLocation = iota // weapon slot
	ItemLocationWorn                         // apparel slot
	ItemLocationStowed                       // held out of the world (vault)
	ItemLocationGround
)

// String returns human-readable item location name.
func (il ItemLocation) String() string {
	switch il {
	case ItemLocationEquipped:
		return "Equipped"
	case ItemLocationWorn:
		return "Worn"
	case ItemLocationStowed:
		return "Stowed"
	case ItemLocationGround:
		return "Ground"
	default:
		return "Unknown"
	}
}

// Item is a concrete thing a creature can equip or wear.
// Identity is the object ID; two items with the same ID are the same item.
type Item struct {
	objectID uint32
	label    string
	kind     ItemKind
	groups   BodyGroup
	silver   bool
	location ItemLocation
}

// NewWeapon creates a weapon item.
func NewWeapon(objectID uint32, label string) *Item {
	return &Item{objectID: objectID, label: label, kind: ItemWeapon, location: ItemLocationGround}
}

// NewSilverWeapon creates a silver-treated weapon item.
func NewSilverWeapon(objectID uint32, label string) *Item {
	it := NewWeapon(objectID, label)
	it.silver = true
	return it
}

// NewApparel creates an apparel item covering groups.
func NewApparel(objectID uint32, label string, groups BodyGroup) *Item {
	return &Item{objectID: objectID, label: label, kind: ItemApparel, groups: groups, location: ItemLocationGround}
}

func (it *Item) ObjectID() uint32       { return it.objectID }
func (it *Item) Label() string          { return it.label }
func (it *Item) Kind() ItemKind         { return it.kind }
func (it *Item) Groups() BodyGroup      { return it.groups }
func (it *Item) SilverTreated() bool    { return it.silver }
func (it *Item) Location() ItemLocation { return it.location }

// Covers reports whether the item covers any of groups.
func (it *Item) Covers(groups BodyGroup) bool {
	return it.groups&groups != 0
}

// IsUpperBody reports whether the item is apparel covering torso, head or hands.
func (it *Item) IsUpperBody() bool {
	return it.kind == ItemApparel && it.Covers(UpperBody)
}

func (it *Item) setLocation(loc ItemLocation) {
	it.location = loc
}

func (it *Item) String() string {
	return fmt.Sprintf("%s#%d", it.label, it.objectID)
}
