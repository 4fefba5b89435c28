package data

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/wolfkin/internal/model"
)

// ErrUnknownForm is returned when a form ID is not in the catalog.
var ErrUnknownForm = errors.New("unknown werewolf form")

//go:embed catalog/forms.yaml
var defaultCatalog []byte

//go:embed catalog/forms.schema.json
var catalogSchema string

// Catalog is the ordered set of werewolf forms and the stat packages they
// reference. Read-only after load; safe to share between goroutines.
type Catalog struct {
	forms    []*FormDefinition
	byID     map[string]*FormDefinition
	packages map[string][]model.StatModifier
	digest   string
}

type catalogFile struct {
	Forms    []formEntry             `yaml:"forms"`
	Packages map[string][]statEntry `yaml:"packages"`
}

type formEntry struct {
	ID             string  `yaml:"id"`
	Label          string  `yaml:"label"`
	Description    string  `yaml:"description"`
	Restricted     bool    `yaml:"restricted"`
	SizeFactor     float64 `yaml:"size_factor"`
	HealthFactor   float64 `yaml:"health_factor"`
	SizePerLevel   float64 `yaml:"size_per_level"`
	HealthPerLevel float64 `yaml:"health_per_level"`
	Immunity       struct {
		Base     float64 `yaml:"base"`
		PerLevel float64 `yaml:"per_level"`
		Max      float64 `yaml:"max"`
	} `yaml:"immunity"`
	Rage struct {
		FactorPerLevel    float64 `yaml:"factor_per_level"`
		FactorPerLevelMax float64 `yaml:"factor_per_level_max"`
	} `yaml:"rage"`
	TransformSound string `yaml:"transform_sound"`
	Packages       struct {
		Body string `yaml:"body"`
		Jaw  string `yaml:"jaw"`
		Claw string `yaml:"claw"`
	} `yaml:"packages"`
}

type statEntry struct {
	Stat  string  `yaml:"stat"`
	Type  string  `yaml:"type"`
	Value float64 `yaml:"value"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file. An empty path loads the embedded default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog validates raw yaml against the catalog schema and builds a Catalog.
func ParseCatalog(raw []byte) (*Catalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		forms:    make([]*FormDefinition, 0, len(file.Forms)),
		byID:     make(map[string]*FormDefinition, len(file.Forms)),
		packages: make(map[string][]model.StatModifier, len(file.Packages)),
	}

	restricted := 0
	for _, e := range file.Forms {
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate form %q", e.ID)
		}
		if e.Restricted {
			restricted++
		}
		def := &FormDefinition{
			ID:                    e.ID,
			Label:                 e.Label,
			Description:           e.Description,
			Restricted:            e.Restricted,
			SizeFactor:            e.SizeFactor,
			HealthFactor:          e.HealthFactor,
			SizePerLevel:          e.SizePerLevel,
			HealthPerLevel:        e.HealthPerLevel,
			ImmunityBase:          e.Immunity.Base,
			ImmunityPerLevel:      e.Immunity.PerLevel,
			ImmunityMax:           e.Immunity.Max,
			RageFactorPerLevel:    e.Rage.FactorPerLevel,
			RageFactorPerLevelMax: e.Rage.FactorPerLevelMax,
			TransformSound:        e.TransformSound,
			Packages: StatPackages{
				Body: e.Packages.Body,
				Jaw:  e.Packages.Jaw,
				Claw: e.Packages.Claw,
			},
		}
		c.forms = append(c.forms, def)
		c.byID[def.ID] = def
	}
	if restricted > 1 {
		return nil, fmt.Errorf("catalog has %d restricted forms, at most one allowed", restricted)
	}

	for id, stats := range file.Packages {
		mods := make([]model.StatModifier, 0, len(stats))
		for _, s := range stats {
			mod := model.StatModifier{Stat: s.Stat, Type: model.StatModAdd, Value: s.Value}
			if s.Type == "mul" {
				mod.Type = model.StatModMul
			}
			mods = append(mods, mod)
		}
		c.packages[id] = mods
	}

	sum := blake2b.Sum256(raw)
	c.digest = hex.EncodeToString(sum[:])

	slog.Info("loaded werewolf forms", "forms", len(c.forms), "packages", len(c.packages), "digest", c.digest[:12])
	return c, nil
}

func validateCatalog(raw []byte) error {
	schema, err := jsonschema.CompileString("forms.schema.json", catalogSchema)
	if err != nil {
		return fmt.Errorf("compiling catalog schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing catalog: %w", err)
	}
	// Round-trip through JSON so the validator sees JSON-native types.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting catalog: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(asJSON))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return fmt.Errorf("converting catalog: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}
	return nil
}

// Forms returns the forms in catalog order.
func (c *Catalog) Forms() []*FormDefinition {
	out := make([]*FormDefinition, len(c.forms))
	copy(out, c.forms)
	return out
}

// Len returns the number of forms.
func (c *Catalog) Len() int { return len(c.forms) }

// Form returns the form with id.
func (c *Catalog) Form(id string) (*FormDefinition, error) {
	def, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, id)
	}
	return def, nil
}

// Restricted returns the restricted-lineage form, or nil if the catalog has none.
func (c *Catalog) Restricted() *FormDefinition {
	for _, def := range c.forms {
		if def.Restricted {
			return def
		}
	}
	return nil
}

// Package returns the stat modifiers of package id. It satisfies
// model.PackageResolver.
func (c *Catalog) Package(id string) []model.StatModifier {
	return c.packages[id]
}

// Digest is the blake2b-256 hex digest of the catalog source.
func (c *Catalog) Digest() string { return c.digest }
