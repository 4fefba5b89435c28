package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreature_Defaults(t *testing.T) {
	c := NewCreature(1, "Ulric", true, nil)

	assert.Equal(t, uint32(1), c.ObjectID())
	assert.Equal(t, "Ulric", c.Label())
	assert.True(t, c.Spawned())
	assert.True(t, c.Adult())
	assert.True(t, c.PlayerOwned())
	assert.Equal(t, 1.0, c.BaseBodySize())
	assert.Len(t, c.Parts(), len(DefaultHumanlikeBody()))
	assert.Empty(t, c.MissingParts())
}

func TestCreature_EquipmentLifecycle(t *testing.T) {
	c := NewCreature(1, "Ulric", true, nil)
	sword := NewWeapon(100, "longsword")
	coat := NewApparel(101, "duster", GroupTorso)

	c.Equip(sword)
	c.Equip(sword)
	c.Wear(coat)
	require.Len(t, c.Weapons(), 1, "equipping twice is a no-op")
	assert.Equal(t, ItemLocationEquipped, sword.Location())
	assert.Equal(t, ItemLocationWorn, coat.Location())

	require.True(t, c.Unequip(sword))
	assert.False(t, c.Unequip(sword))
	c.Stow(sword)
	assert.Equal(t, ItemLocationStowed, sword.Location())
	assert.Equal(t, []*Item{sword}, c.Stowed())

	require.True(t, c.Unstow(sword))
	assert.False(t, c.Unstow(sword))
	c.DropOnGround(sword)
	assert.Equal(t, ItemLocationGround, sword.Location())
	assert.Equal(t, []*Item{sword}, c.Ground())
	assert.Empty(t, c.Weapons())
	assert.Equal(t, []*Item{coat}, c.Apparel())
}

func TestItem_IsUpperBody(t *testing.T) {
	tests := []struct {
		name string
		item *Item
		want bool
	}{
		{name: "duster", item: NewApparel(1, "duster", GroupTorso|GroupLeftHand), want: true},
		{name: "helmet", item: NewApparel(2, "helmet", GroupFullHead), want: true},
		{name: "gloves", item: NewApparel(3, "gloves", GroupRightHand), want: true},
		{name: "cowboy hat", item: NewApparel(4, "hat", GroupUpperHead), want: false},
		{name: "pants", item: NewApparel(5, "pants", GroupLegs), want: false},
		{name: "weapon", item: NewWeapon(6, "club"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.IsUpperBody())
		})
	}
}

func TestItem_Silver(t *testing.T) {
	assert.True(t, NewSilverWeapon(1, "silver knife").SilverTreated())
	assert.False(t, NewWeapon(2, "knife").SilverTreated())
	assert.Equal(t, "knife#2", NewWeapon(2, "knife").String())
}

func TestCreature_LoseAndRestorePart(t *testing.T) {
	c := NewCreature(1, "Ulric", true, nil)
	c.AddInjury(&Injury{PartID: 7, Label: "cut", Severity: 5, HealsNaturally: true})
	c.AddInjury(&Injury{PartID: 1, Label: "bruise", Severity: 2, HealsNaturally: true})
	c.AddAugmentation(Augmentation{Part: BodyPart{ID: 7}, Label: "peg arm", Efficiency: 0.5})

	require.NoError(t, c.LosePart(7))
	assert.Error(t, c.LosePart(7), "part already missing")

	require.Len(t, c.MissingParts(), 1)
	assert.Equal(t, "left arm", c.MissingParts()[0].Label)
	assert.Len(t, c.Injuries(), 1, "injuries on the lost part go with it")
	assert.Empty(t, c.Augmentations())

	c.RestorePart(c.MissingParts()[0])
	assert.Empty(t, c.MissingParts())
	parts := c.Parts()
	for i := 1; i < len(parts); i++ {
		assert.Less(t, parts[i-1].ID, parts[i].ID, "parts stay sorted by ID")
	}
}

func TestCreature_SpawnNaturalPart(t *testing.T) {
	c := NewCreature(1, "Ulric", true, nil)
	parts := DefaultHumanlikeBody()
	leftArm, rightArm, hand := parts[6], parts[8], parts[7]

	c.AddInjury(&Injury{PartID: rightArm.ID, Severity: 1})
	c.SpawnNaturalPart(leftArm)
	c.SpawnNaturalPart(rightArm)
	c.SpawnNaturalPart(hand)
	assert.Equal(t, []string{"arm"}, c.SpawnedThings(), "injured parts and parts without items drop nothing")

	c.SetDead(true)
	c.SpawnNaturalPart(leftArm)
	assert.Len(t, c.SpawnedThings(), 1)
}

func TestCreature_SpawnHeldItems(t *testing.T) {
	c := NewCreature(1, "Ulric", true, nil)
	hand := DefaultHumanlikeBody()[7]
	aug := Augmentation{Part: hand, Label: "power claw", Efficiency: 1.2, HeldItems: []string{"claw blade"}}
	c.AddAugmentation(aug)

	c.SpawnHeldItems(hand)
	c.RemoveAugmentation(aug)

	assert.Equal(t, []string{"claw blade"}, c.SpawnedThings())
	assert.Empty(t, c.Augmentations())
	assert.False(t, aug.Inferior())
}

func TestCreature_Container(t *testing.T) {
	c := NewCreature(1, "Ulric", true, nil)

	_, ok := c.EjectFromContainer()
	assert.False(t, ok)

	c.EnterContainer("cryptosleep casket")
	assert.False(t, c.Spawned())

	label, ok := c.EjectFromContainer()
	assert.True(t, ok)
	assert.Equal(t, "cryptosleep casket", label)
	assert.True(t, c.Spawned())
}

func TestCreature_MindAndBloodLoss(t *testing.T) {
	c := NewCreature(1, "Ulric", false, nil)
	c.SetEnemyTarget(9)
	c.SetBloodLoss(0.4)
	assert.True(t, c.HasEnemyTarget())

	c.ClearMind()
	c.ClearBloodLoss()
	assert.False(t, c.HasEnemyTarget())
	assert.Zero(t, c.BloodLoss())
}

func TestBodyPart_Capabilities(t *testing.T) {
	body := DefaultHumanlikeBody()
	jaw, hand, brain := body[5], body[7], body[2]

	assert.True(t, jaw.CanBeJaw())
	assert.False(t, jaw.CanBeClaw())
	assert.True(t, hand.CanBeClaw())
	assert.True(t, hand.CanBeWerewolfPart())
	assert.False(t, brain.CanBeWerewolfPart())
	assert.True(t, brain.Has(TagConsciousnessSource))
}

func TestMind_ForcedHostileState(t *testing.T) {
	m := &Mind{}

	require.True(t, m.ForceHostileState("full moon"))
	assert.False(t, m.ForceHostileState("again"), "already hostile")
	assert.True(t, m.Hostile())
	assert.Equal(t, "full moon", m.Reason())

	m.RecoverHostileState()
	assert.False(t, m.Hostile())
	assert.Equal(t, 1, m.TimesForced())
}
