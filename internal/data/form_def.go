package data

// FormDefinition is an immutable werewolf form loaded from the catalog.
type FormDefinition struct {
	ID          string
	Label       string
	Description string

	// Restricted marks the single form of the restricted (metis) lineage.
	Restricted bool

	SizeFactor     float64
	HealthFactor   float64
	SizePerLevel   float64
	HealthPerLevel float64

	ImmunityBase     float64
	ImmunityPerLevel float64
	ImmunityMax      float64

	RageFactorPerLevel    float64
	RageFactorPerLevelMax float64

	TransformSound string

	Packages StatPackages
}

// StatPackages names the three stat-modifier packages a form applies.
type StatPackages struct {
	Body string // whole-body package
	Jaw  string // first jaw-capable part
	Claw string // every hand
}

// IDs returns the package IDs in body, jaw, claw order.
func (p StatPackages) IDs() [3]string {
	return [3]string{p.Body, p.Jaw, p.Claw}
}
