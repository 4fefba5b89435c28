package model

// Lineage is the werewolf category of a creature. It constrains which forms
// the creature may ever receive. Values match the trait degrees the host
// stores, so Undetermined is negative.
type Lineage int8

const (
	LineageNone         Lineage = -2 // not a werewolf
	LineageUndetermined Lineage = -1 // may still turn out restricted (metis)
	LineageUnblooded    Lineage = 0  // general lineage, never transformed yet
	LineageGeneral      Lineage = 1
	LineagePack         Lineage = 2 // clan-affiliated general lineage
	LineageRestricted   Lineage = 3 // metis: limited to the restricted form
)

// String returns the lineage name used in logs and the progression store.
func (l Lineage) String() string {
	switch l {
	case LineageNone:
		return "none"
	case LineageUndetermined:
		return "undetermined"
	case LineageUnblooded:
		return "unblooded"
	case LineageGeneral:
		return "general"
	case LineagePack:
		return "pack"
	case LineageRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// ParseLineage is the inverse of String. Unknown names map to LineageNone.
func ParseLineage(s string) Lineage {
	for l := LineageNone; l <= LineageRestricted; l++ {
		if l.String() == s {
			return l
		}
	}
	return LineageNone
}

// StartsBlooded reports whether a freshly granted creature of this lineage
// counts as already blooded.
func (l Lineage) StartsBlooded() bool {
	return l > LineageGeneral
}
