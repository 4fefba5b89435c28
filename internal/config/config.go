package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/wolfkin/internal/game/moon"
	"github.com/udisondev/wolfkin/internal/game/transform"
)

// DefaultPath is used when WOLFKIN_CONFIG is not set.
const DefaultPath = "config/wolfsim.yaml"

// Engine holds all configuration for the simulator and the engine tunables.
type Engine struct {
	LogLevel    string `yaml:"log_level" env:"WOLFKIN_LOG_LEVEL"`
	CatalogPath string `yaml:"catalog_path" env:"WOLFKIN_CATALOG"` // empty = embedded catalog
	Seed        int64  `yaml:"seed" env:"WOLFKIN_SEED"`            // 0 = random

	Transform  TransformConfig  `yaml:"transform"`
	Moon       MoonConfig       `yaml:"moon"`
	Simulation SimulationConfig `yaml:"simulation"`
	Journal    JournalConfig    `yaml:"journal"`
	Database   DatabaseConfig   `yaml:"database"`
}

// TransformConfig holds the transformation engine tunables.
type TransformConfig struct {
	MetisChance          float64 `yaml:"metis_chance"`
	RevertHealFraction   float64 `yaml:"revert_heal_fraction"`
	RageCadenceTicks     int64   `yaml:"rage_cadence_ticks"`
	BaseRageSeconds      float64 `yaml:"base_rage_seconds"`
	CooldownTicks        int     `yaml:"cooldown_ticks"` // 6 in-game hours
	HostileCheckInterval int64   `yaml:"hostile_check_interval"`
	BionicKeepLevel      int     `yaml:"bionic_keep_level"`
	// EquipmentPolicy is "vault" or "drop".
	EquipmentPolicy string `yaml:"equipment_policy" env:"WOLFKIN_EQUIPMENT_POLICY"`
}

// Options converts the tunables to engine options.
func (t TransformConfig) Options() transform.Options {
	policy := transform.PolicyVault
	if t.EquipmentPolicy == transform.PolicyDropOnGround.String() {
		policy = transform.PolicyDropOnGround
	}
	return transform.Options{
		MetisChance:          t.MetisChance,
		RevertHealFraction:   t.RevertHealFraction,
		RageCadenceTicks:     t.RageCadenceTicks,
		BaseRageSeconds:      t.BaseRageSeconds,
		CooldownTicks:        t.CooldownTicks,
		HostileCheckInterval: t.HostileCheckInterval,
		BionicKeepLevel:      t.BionicKeepLevel,
		Policy:               policy,
	}
}

// MoonConfig holds the lunar calendar tunables.
type MoonConfig struct {
	NonPlayerChance float64 `yaml:"non_player_chance"`
}

// Options converts the tunables to calendar options.
func (m MoonConfig) Options() moon.Options {
	return moon.Options{NonPlayerChance: m.NonPlayerChance}
}

// SimulationConfig sizes the headless simulator run.
type SimulationConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"` // 0 = as fast as possible
	Ticks        int64         `yaml:"ticks" env:"WOLFKIN_TICKS"`
	Colonists    int           `yaml:"colonists"`
	Wild         int           `yaml:"wild"`
	// SaveEvery is how often progression is written to the store, in ticks.
	SaveEvery int64 `yaml:"save_every"`
}

// JournalConfig controls the compressed event journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir" env:"WOLFKIN_JOURNAL_DIR"`
	Prefix  string `yaml:"prefix"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"WOLFKIN_DATABASE_ENABLED"`
	URL      string `yaml:"url" env:"WOLFKIN_DATABASE_DSN"` // overrides the fields below
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultEngine returns Engine config with the reference tunables.
func DefaultEngine() Engine {
	return Engine{
		LogLevel: "info",
		Transform: TransformConfig{
			MetisChance:          0.4,
			RevertHealFraction:   0.8,
			RageCadenceTicks:     60,
			BaseRageSeconds:      60,
			CooldownTicks:        15000,
			HostileCheckInterval: 250,
			BionicKeepLevel:      5,
			EquipmentPolicy:      "vault",
		},
		Moon: MoonConfig{
			NonPlayerChance: 0.02,
		},
		Simulation: SimulationConfig{
			Ticks:     240000, // four in-game days
			Colonists: 4,
			Wild:      4,
			SaveEvery: 60000,
		},
		Journal: JournalConfig{
			Dir:    "data/journal",
			Prefix: "events",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "wolfkin",
			Password: "wolfkin",
			DBName:   "wolfkin",
			SSLMode:  "disable",
		},
	}
}

// LoadEngine loads config from a YAML file, then applies environment
// overrides. If the file doesn't exist, defaults are used.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (e Engine) Validate() error {
	t := e.Transform
	if t.MetisChance < 0 || t.MetisChance > 1 {
		return fmt.Errorf("transform.metis_chance %v out of [0,1]", t.MetisChance)
	}
	if t.RevertHealFraction < 0 || t.RevertHealFraction > 1 {
		return fmt.Errorf("transform.revert_heal_fraction %v out of [0,1]", t.RevertHealFraction)
	}
	if e.Moon.NonPlayerChance < 0 || e.Moon.NonPlayerChance > 1 {
		return fmt.Errorf("moon.non_player_chance %v out of [0,1]", e.Moon.NonPlayerChance)
	}
	switch t.EquipmentPolicy {
	case "", "vault", "drop":
	default:
		return fmt.Errorf("transform.equipment_policy %q: want vault or drop", t.EquipmentPolicy)
	}
	if e.Simulation.Colonists < 0 || e.Simulation.Wild < 0 {
		return fmt.Errorf("simulation population must not be negative")
	}
	return nil
}

// Path returns the config path from WOLFKIN_CONFIG, or DefaultPath.
func Path() string {
	var boot struct {
		Path string `env:"WOLFKIN_CONFIG" envDefault:"config/wolfsim.yaml"`
	}
	if err := env.Parse(&boot); err != nil || boot.Path == "" {
		return DefaultPath
	}
	return boot.Path
}

// ParseLogLevel maps a config level name to slog. Unknown names mean info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
