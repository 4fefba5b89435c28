package transform

import (
	"maps"

	"github.com/udisondev/wolfkin/internal/model"
)

// State is the per-entity transformation record.
//
// The entity is in baseline form iff ActiveForm reports false.
type State struct {
	lineage   model.Lineage
	forms     []*FormProgress // nil while not eligible
	active    *FormProgress
	blooded   bool
	fury      bool
	cooldown  int
	reverting bool
	forbidden bool

	// needsGraphicRefresh tells the host renderer to rebuild cached graphics.
	needsGraphicRefresh bool

	snapshot Snapshot
	rage     RageTimer
}

// ActiveForm returns the current form, or false in baseline form.
func (s *State) ActiveForm() (*FormProgress, bool) {
	return s.active, s.active != nil
}

// Transformed reports whether a combat form is active.
func (s *State) Transformed() bool { return s.active != nil }

// Eligible reports whether the entity can transform at all.
func (s *State) Eligible() bool { return s.lineage != model.LineageNone && s.forms != nil }

func (s *State) Lineage() model.Lineage    { return s.lineage }
func (s *State) Blooded() bool             { return s.blooded }
func (s *State) FuryToggled() bool         { return s.fury }
func (s *State) CooldownRemaining() int    { return s.cooldown }
func (s *State) Reverting() bool           { return s.reverting }
func (s *State) Forbidden() bool           { return s.forbidden }
func (s *State) Rage() RageTimer           { return s.rage }
func (s *State) NeedsGraphicRefresh() bool { return s.needsGraphicRefresh }

// AckGraphicRefresh is called by the renderer after rebuilding graphics.
func (s *State) AckGraphicRefresh() { s.needsGraphicRefresh = false }

// SetFury sets the opt-in flag for fury on every full moon.
func (s *State) SetFury(on bool) { s.fury = on }

// Snapshot returns a copy of the stashed equipment.
func (s *State) Snapshot() Snapshot { return s.snapshot.clone() }

// Forms returns the progress records in catalog order.
func (s *State) Forms() []*FormProgress {
	out := make([]*FormProgress, len(s.forms))
	copy(out, s.forms)
	return out
}

// Form returns the progress record for form id, or nil.
func (s *State) Form(id string) *FormProgress {
	for _, f := range s.forms {
		if f.def.ID == id {
			return f
		}
	}
	return nil
}

// Progression is the durable part of State: everything except the active
// form, the stashed equipment and the rage session.
type Progression struct {
	Lineage           model.Lineage
	Blooded           bool
	FuryToggled       bool
	Forbidden         bool
	CooldownRemaining int
	Levels            map[string]int // form ID -> level
}

func (s *State) progression() Progression {
	p := Progression{
		Lineage:           s.lineage,
		Blooded:           s.blooded,
		FuryToggled:       s.fury,
		Forbidden:         s.forbidden,
		CooldownRemaining: s.cooldown,
		Levels:            make(map[string]int, len(s.forms)),
	}
	for _, f := range s.forms {
		p.Levels[f.def.ID] = f.level
	}
	return p
}

// Equal reports whether two progressions hold the same values.
func (p Progression) Equal(o Progression) bool {
	return p.Lineage == o.Lineage &&
		p.Blooded == o.Blooded &&
		p.FuryToggled == o.FuryToggled &&
		p.Forbidden == o.Forbidden &&
		p.CooldownRemaining == o.CooldownRemaining &&
		maps.Equal(p.Levels, o.Levels)
}
