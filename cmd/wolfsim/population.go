package main

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/wolfkin/internal/data"
	"github.com/udisondev/wolfkin/internal/game/transform"
	"github.com/udisondev/wolfkin/internal/model"
	"github.com/udisondev/wolfkin/internal/random"
	"github.com/udisondev/wolfkin/internal/world"
)

// Colonist lineages rotate through the ones a freshly bitten colonist can have.
var colonistLineages = []model.Lineage{
	model.LineageUndetermined,
	model.LineageUnblooded,
	model.LineageGeneral,
	model.LineagePack,
}

type population struct {
	catalog *data.Catalog
	opts    transform.Options
	ids     *world.ObjectIDGenerator
	pack    *world.Pack
	rng     *random.Source
	events  transform.EventSink
}

// spawn registers colonists with gear and wild werewolves hunting them.
func (p *population) spawn(colonists, wild int) {
	var prey []uint32
	for i := range colonists {
		cr := p.creature(true, fmt.Sprintf("colonist-%d", i+1))
		p.outfit(cr)

		ctl := p.controller(cr)
		ctl.Grant(colonistLineages[i%len(colonistLineages)])
		// Every other colonist keeps answering the moon after blooding.
		ctl.State().SetFury(i%2 == 1)
		p.pack.Register(ctl)
		prey = append(prey, cr.ObjectID())
	}

	for i := range wild {
		cr := p.creature(false, fmt.Sprintf("wild-%d", i+1))
		if len(prey) > 0 {
			cr.SetEnemyTarget(prey[p.rng.IntN(len(prey))])
		}

		ctl := p.controller(cr)
		ctl.Grant(model.LineageGeneral)
		for _, f := range ctl.State().Forms() {
			ctl.SetLevel(f.Def().ID, p.rng.IntN(4))
		}
		p.pack.Register(ctl)
	}

	slog.Info("population spawned", "colonists", colonists, "wild", wild)
}

func (p *population) creature(playerOwned bool, name string) *model.Creature {
	return model.NewCreature(p.ids.NextCreatureID(playerOwned), name, playerOwned, p.catalog.Package)
}

func (p *population) controller(cr *model.Creature) *transform.Controller {
	return transform.NewController(p.catalog, transform.Deps{
		Pawn:   cr,
		Sink:   cr.Modifiers(),
		Mind:   cr.Mind(),
		Clock:  p.pack.Clock(),
		RNG:    p.rng,
		Events: p.events,
	}, p.opts)
}

func (p *population) outfit(cr *model.Creature) {
	cr.Equip(model.NewWeapon(p.ids.NextItemID(), "longsword"))
	cr.Wear(model.NewApparel(p.ids.NextItemID(), "duster", model.GroupTorso|model.GroupLeftHand|model.GroupRightHand))
	cr.Wear(model.NewApparel(p.ids.NextItemID(), "cowboy hat", model.GroupUpperHead))
	cr.Wear(model.NewApparel(p.ids.NextItemID(), "pants", model.GroupLegs))
}
