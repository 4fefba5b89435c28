package transform

import "github.com/udisondev/wolfkin/internal/model"

// Attacker describes the source of incoming damage.
type Attacker struct {
	Transformed bool        // attacker is itself in a combat form
	Weapon      *model.Item // nil when unarmed
}

// MitigateDamage returns the damage a transformed entity actually takes.
// The form's immunity applies only against a baseline attacker wielding a
// weapon that is not silver-treated.
func (c *Controller) MitigateDamage(amount float64, attacker Attacker) float64 {
	fp, ok := c.state.ActiveForm()
	if !ok || amount <= 0 {
		return amount
	}
	if attacker.Transformed || attacker.Weapon == nil || attacker.Weapon.SilverTreated() {
		return amount
	}
	return amount - float64(int(amount*fp.DamageImmunity()))
}
