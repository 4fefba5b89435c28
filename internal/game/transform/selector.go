package transform

import "github.com/udisondev/wolfkin/internal/model"

// Selection is the outcome of a random form pick. The caller applies
// Lineage and ResetBlooded before transforming into Form.
type Selection struct {
	Form         *FormProgress // nil when nothing can be picked
	Lineage      model.Lineage
	ResetBlooded bool
}

// Selector picks the form for an involuntary transformation.
type Selector struct {
	MetisChance float64
	RNG         RNG
}

// Select applies the lineage policy to forms:
//
//   - undetermined: a roll below MetisChance makes the entity restricted and
//     picks the restricted form; otherwise it becomes general and picks any
//     other form. Blooded is reset either way.
//   - restricted: always the restricted form.
//   - unblooded: becomes general, picks a non-restricted form, resets blooded.
//   - general and pack: picks a non-restricted form.
func (s Selector) Select(lineage model.Lineage, forms []*FormProgress) Selection {
	var restricted *FormProgress
	open := make([]*FormProgress, 0, len(forms))
	for _, f := range forms {
		if f.Def().Restricted {
			restricted = f
			continue
		}
		open = append(open, f)
	}

	switch lineage {
	case model.LineageUndetermined:
		if restricted != nil && s.RNG.Float64() < s.MetisChance {
			return Selection{Form: restricted, Lineage: model.LineageRestricted, ResetBlooded: true}
		}
		return Selection{Form: s.pick(open), Lineage: model.LineageGeneral, ResetBlooded: true}

	case model.LineageRestricted:
		return Selection{Form: restricted, Lineage: lineage}

	case model.LineageUnblooded:
		return Selection{Form: s.pick(open), Lineage: model.LineageGeneral, ResetBlooded: true}

	case model.LineageGeneral, model.LineagePack:
		return Selection{Form: s.pick(open), Lineage: lineage}
	}

	return Selection{Lineage: lineage}
}

func (s Selector) pick(forms []*FormProgress) *FormProgress {
	if len(forms) == 0 {
		return nil
	}
	i := int(s.RNG.Float64() * float64(len(forms)))
	return forms[min(i, len(forms)-1)]
}
