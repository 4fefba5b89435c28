package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wolfkin/internal/model"
)

func newVaultCreature() (*model.Creature, []*model.Item) {
	cr := model.NewCreature(7, "Mara", true, nil)
	items := []*model.Item{
		model.NewWeapon(1, "spear"),
		model.NewApparel(2, "parka", model.GroupTorso),
		model.NewApparel(3, "helmet", model.GroupFullHead|model.GroupUpperHead),
		model.NewApparel(4, "gloves", model.GroupLeftHand|model.GroupRightHand),
		model.NewApparel(5, "pants", model.GroupLegs),
		model.NewApparel(6, "boots", model.GroupFeet),
	}
	cr.Equip(items[0])
	for _, it := range items[1:] {
		cr.Wear(it)
	}
	return cr, items
}

func TestVault_StashUpperBodyOnly(t *testing.T) {
	cr, items := newVaultCreature()
	var snap Snapshot

	NewVault(PolicyVault).Stash(cr, &snap)

	assert.Equal(t, []*model.Item{items[0]}, snap.Weapons)
	assert.Equal(t, []*model.Item{items[1], items[2], items[3]}, snap.Apparel)
	assert.Empty(t, cr.Weapons())
	assert.ElementsMatch(t, []*model.Item{items[4], items[5]}, cr.Apparel())
	assert.Len(t, cr.Stowed(), 4)
	for _, it := range snap.Apparel {
		assert.Equal(t, model.ItemLocationStowed, it.Location(), it.Label())
	}
}

func TestVault_RestoreConservesEquipment(t *testing.T) {
	cr, items := newVaultCreature()
	var snap Snapshot
	v := NewVault(PolicyVault)

	v.Stash(cr, &snap)
	v.Restore(cr, &snap)

	assert.True(t, snap.Empty())
	assert.Empty(t, cr.Stowed())
	assert.ElementsMatch(t, []*model.Item{items[0]}, cr.Weapons())
	assert.ElementsMatch(t, items[1:], cr.Apparel())
}

func TestVault_RestoreSkipsItemsNoLongerStowed(t *testing.T) {
	cr, items := newVaultCreature()
	var snap Snapshot
	v := NewVault(PolicyVault)
	v.Stash(cr, &snap)

	// Parka and spear leave the stash before the revert.
	require.True(t, cr.Unstow(items[1]))
	require.True(t, cr.Unstow(items[0]))
	cr.DropOnGround(items[1])
	cr.DropOnGround(items[0])

	v.Restore(cr, &snap)

	assert.True(t, snap.Empty())
	assert.Empty(t, cr.Weapons())
	assert.NotContains(t, cr.Apparel(), items[1])
	assert.ElementsMatch(t, items[2:], cr.Apparel())
	assert.Equal(t, model.ItemLocationGround, items[1].Location())
}

func TestVault_RestoreSkippedWhenDeadOrDowned(t *testing.T) {
	for _, tc := range []struct {
		name string
		set  func(*model.Creature)
	}{
		{name: "dead", set: func(c *model.Creature) { c.SetDead(true) }},
		{name: "downed", set: func(c *model.Creature) { c.SetDowned(true) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cr, _ := newVaultCreature()
			var snap Snapshot
			v := NewVault(PolicyVault)
			v.Stash(cr, &snap)
			tc.set(cr)

			v.Restore(cr, &snap)

			assert.Equal(t, 4, snap.Len(), "snapshot left untouched")
			assert.Empty(t, cr.Weapons())
		})
	}
}

func TestVault_ReleaseDropsStashedGear(t *testing.T) {
	cr, _ := newVaultCreature()
	var snap Snapshot
	v := NewVault(PolicyVault)
	v.Stash(cr, &snap)

	v.Release(cr, &snap)

	assert.True(t, snap.Empty())
	assert.Empty(t, cr.Stowed())
	require.Len(t, cr.Ground(), 4)
	for _, it := range cr.Ground() {
		assert.Equal(t, model.ItemLocationGround, it.Location())
	}
}

func TestVault_DropOnGroundPolicy(t *testing.T) {
	cr, items := newVaultCreature()
	var snap Snapshot
	v := NewVault(PolicyDropOnGround)

	v.Stash(cr, &snap)

	assert.True(t, snap.Empty())
	assert.Empty(t, cr.Weapons())
	assert.Empty(t, cr.Apparel())
	assert.ElementsMatch(t, items, cr.Ground())

	v.Restore(cr, &snap)
	assert.Empty(t, cr.Weapons(), "nothing comes back under drop policy")
}

func TestVault_StashAppends(t *testing.T) {
	cr := model.NewCreature(7, "Mara", true, nil)
	first := model.NewWeapon(1, "knife")
	second := model.NewWeapon(2, "club")
	var snap Snapshot
	v := NewVault(PolicyVault)

	cr.Equip(first)
	v.Stash(cr, &snap)
	cr.Equip(second)
	v.Stash(cr, &snap)

	assert.Equal(t, []*model.Item{first, second}, snap.Weapons)
}
