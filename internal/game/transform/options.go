package transform

// Options tunes the controller. Start from DefaultOptions. In NewController
// non-positive counts and durations are replaced by defaults, and
// probabilities outside [0,1] too; a zero probability is kept.
type Options struct {
	// MetisChance is the probability an undetermined entity joins the
	// restricted lineage on its first involuntary transformation.
	MetisChance float64
	// RevertHealFraction of each naturally healing injury is healed on revert.
	RevertHealFraction float64
	// RageCadenceTicks is the rage budget decrement period.
	RageCadenceTicks int64
	// BaseRageSeconds is B in the rage duration formula.
	BaseRageSeconds float64
	// CooldownTicks gates voluntary transformations.
	CooldownTicks int
	// HostileCheckInterval is how often a non-player entity considers
	// transforming to fight its enemy target.
	HostileCheckInterval int64
	// BionicKeepLevel is the form level at which compatible augmentations
	// survive a transformation.
	BionicKeepLevel int

	Policy EquipmentPolicy
	Fangs  FangsCompat
}

// DefaultOptions returns the reference tunables.
func DefaultOptions() Options {
	return Options{
		MetisChance:          0.4,
		RevertHealFraction:   0.8,
		RageCadenceTicks:     60,
		BaseRageSeconds:      60,
		CooldownTicks:        15000,
		HostileCheckInterval: 250,
		BionicKeepLevel:      5,
		Policy:               PolicyVault,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MetisChance < 0 || o.MetisChance > 1 {
		o.MetisChance = d.MetisChance
	}
	if o.RevertHealFraction < 0 || o.RevertHealFraction > 1 {
		o.RevertHealFraction = d.RevertHealFraction
	}
	if o.RageCadenceTicks <= 0 {
		o.RageCadenceTicks = d.RageCadenceTicks
	}
	if o.BaseRageSeconds <= 0 {
		o.BaseRageSeconds = d.BaseRageSeconds
	}
	if o.CooldownTicks <= 0 {
		o.CooldownTicks = d.CooldownTicks
	}
	if o.HostileCheckInterval <= 0 {
		o.HostileCheckInterval = d.HostileCheckInterval
	}
	if o.BionicKeepLevel <= 0 {
		o.BionicKeepLevel = d.BionicKeepLevel
	}
	return o
}
