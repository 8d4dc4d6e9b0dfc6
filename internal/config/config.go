// Package config loads the immutable definition records and simulation
// tuning that drive the colony: needs, skills, actions, items, buildings,
// roles and the commune ownership policy. Definitions are read-only value
// records keyed by name.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// CombinationMode selects how per-skill multipliers combine into one factor.
type CombinationMode string

const (
	CombineAdditive       CombinationMode = "additive"
	CombineMultiplicative CombinationMode = "multiplicative"
	CombineWeightedAvg    CombinationMode = "weighted_average"
	CombineDominant       CombinationMode = "dominant"
)

// ItemCategory drives the commune ownership rules.
type ItemCategory string

const (
	CategoryCommunal   ItemCategory = "communal"
	CategoryPersonal   ItemCategory = "personal"
	CategoryTool       ItemCategory = "tool"
	CategoryContraband ItemCategory = "contraband"
)

// NeedDefinition tunes one decaying need scalar.
type NeedDefinition struct {
	Name               string  `yaml:"name"`
	DecayRatePerHour   float64 `yaml:"decay_rate_per_hour"`
	CriticalThreshold  float64 `yaml:"critical_threshold"`
	EmergencyThreshold float64 `yaml:"emergency_threshold"`
	ActivitySensitive  bool    `yaml:"activity_sensitive"`
	WorkingMultiplier  float64 `yaml:"working_multiplier"`
	RestingMultiplier  float64 `yaml:"resting_multiplier"`
	// FallbackState names the decision state used when no structure can
	// satisfy this need ("seeking_food", "resting", "socializing", "idle").
	FallbackState string `yaml:"fallback_state"`
}

// SkillDefinition tunes one levelable skill.
type SkillDefinition struct {
	Name                 string  `yaml:"name"`
	MaxLevel             int     `yaml:"max_level"`
	ExperienceCurve      float64 `yaml:"experience_curve"`
	LearningRate         float64 `yaml:"learning_rate"`
	SpeedBonusPerLevel   float64 `yaml:"speed_bonus_per_level"`
	QualityBonusPerLevel float64 `yaml:"quality_bonus_per_level"`
}

// SkillContribution is one weighted skill requirement of an action.
type SkillContribution struct {
	Skill          string  `yaml:"skill"`
	Weight         float64 `yaml:"weight"`
	AffectsSpeed   bool    `yaml:"affects_speed"`
	AffectsQuality bool    `yaml:"affects_quality"`
	MinimumLevel   int     `yaml:"minimum_level"`
}

// ActionDefinition is a multi-skill action (used by production buildings).
type ActionDefinition struct {
	Name   string              `yaml:"name"`
	Mode   CombinationMode     `yaml:"mode"`
	Skills []SkillContribution `yaml:"skills"`
}

// ItemDefinition tunes one item type.
type ItemDefinition struct {
	Name             string       `yaml:"name"`
	Category         ItemCategory `yaml:"category"`
	Stackable        bool         `yaml:"stackable"`
	MaxStackSize     int          `yaml:"max_stack_size"`
	DecayRatePerHour float64      `yaml:"decay_rate_per_hour"` // condition loss
	SatisfiesNeed    string       `yaml:"satisfies_need"`      // consumables
	RestoreAmount    float64      `yaml:"restore_amount"`
}

// BuildingDefinition tunes one placeable structure type.
type BuildingDefinition struct {
	Name           string `yaml:"name"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Capacity       int    `yaml:"capacity"`
	WorkerCapacity int    `yaml:"worker_capacity"`

	// Need satisfaction.
	SatisfiesNeed string  `yaml:"satisfies_need"`
	Consumable    bool    `yaml:"consumable"`     // satisfy by consuming an item
	RestoreAmount float64 `yaml:"restore_amount"` // gradual-restore total
	UseDuration   float64 `yaml:"use_duration"`   // seconds

	// Production.
	ProductionRate float64 `yaml:"production_rate"` // units per hour
	OutputItem     string  `yaml:"output_item"`
	WorkAction     string  `yaml:"work_action"` // ActionDefinition name
	WorkSession    float64 `yaml:"work_session"` // seconds before a break

	Interiors []InteriorDefinition `yaml:"interiors"`
}

// InteriorDefinition is a fixture composed into a building (bed, seat).
type InteriorDefinition struct {
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

// IsProduction reports whether the building converts worker time into items.
func (b BuildingDefinition) IsProduction() bool {
	return b.ProductionRate > 0 && b.OutputItem != ""
}

// RoleDefinition maps a commune role to its workplace building type.
type RoleDefinition struct {
	Name     string `yaml:"name"`
	Worksite string `yaml:"worksite"` // BuildingDefinition name
}

// OwnershipPolicy is the commune's sharing/contraband enforcement policy.
type OwnershipPolicy struct {
	EnforceSharing      bool    `yaml:"enforce_sharing"`
	AllowPersonalTools  bool    `yaml:"allow_personal_tools"`
	EnforceContraband   bool    `yaml:"enforce_contraband"`
	AlignmentPenalty    float64 `yaml:"alignment_penalty"`    // per confiscation
	EnforcementInterval float64 `yaml:"enforcement_interval"` // seconds
}

// Tuning holds behavior constants shared across the simulation.
type Tuning struct {
	DecisionInterval    float64 `yaml:"decision_interval"`     // seconds between decisions
	NeedUrgencyCeiling  float64 `yaml:"need_urgency_ceiling"`  // consider needs below this
	WorkEnergyThreshold float64 `yaml:"work_energy_threshold"` // commute only above this
	MoveSpeed           float64 `yaml:"move_speed"`            // cells per second
	StuckTimeout        float64 `yaml:"stuck_timeout"`         // seconds without progress
	StuckDistance       float64 `yaml:"stuck_distance"`        // minimum meaningful progress
	TargetCooldown      float64 `yaml:"target_cooldown"`       // unreachable blacklist seconds
	NotifyCooldown      float64 `yaml:"notify_cooldown"`       // no-structure alert suppression
	SchedulerInterval   float64 `yaml:"scheduler_interval"`    // work rebalance seconds
	SpeedFactor         float64 `yaml:"speed_factor"`          // global time scale
}

// Config is the full immutable configuration set.
type Config struct {
	Needs     []NeedDefinition     `yaml:"needs"`
	Skills    []SkillDefinition    `yaml:"skills"`
	Actions   []ActionDefinition   `yaml:"actions"`
	Items     []ItemDefinition     `yaml:"items"`
	Buildings []BuildingDefinition `yaml:"buildings"`
	Roles     []RoleDefinition     `yaml:"roles"`
	Ownership OwnershipPolicy      `yaml:"ownership"`
	Tuning    Tuning               `yaml:"tuning"`

	// Name lookups, built after load.
	needsByName     map[string]NeedDefinition
	skillsByName    map[string]SkillDefinition
	actionsByName   map[string]ActionDefinition
	itemsByName     map[string]ItemDefinition
	buildingsByName map[string]BuildingDefinition
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	return parse(defaultsYAML)
}

// Load reads a YAML configuration file, falling back to embedded defaults
// for an empty path.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.index(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) index() error {
	c.needsByName = make(map[string]NeedDefinition, len(c.Needs))
	for _, d := range c.Needs {
		c.needsByName[d.Name] = d
	}
	c.skillsByName = make(map[string]SkillDefinition, len(c.Skills))
	for _, d := range c.Skills {
		c.skillsByName[d.Name] = d
	}
	c.actionsByName = make(map[string]ActionDefinition, len(c.Actions))
	for _, d := range c.Actions {
		c.actionsByName[d.Name] = d
	}
	c.itemsByName = make(map[string]ItemDefinition, len(c.Items))
	for _, d := range c.Items {
		c.itemsByName[d.Name] = d
	}
	c.buildingsByName = make(map[string]BuildingDefinition, len(c.Buildings))
	for _, d := range c.Buildings {
		c.buildingsByName[d.Name] = d
	}
	return nil
}

func (c *Config) validate() error {
	for _, a := range c.Actions {
		for _, s := range a.Skills {
			if _, ok := c.skillsByName[s.Skill]; !ok {
				return fmt.Errorf("action %q references unknown skill %q", a.Name, s.Skill)
			}
		}
	}
	for _, b := range c.Buildings {
		if b.WorkAction != "" {
			if _, ok := c.actionsByName[b.WorkAction]; !ok {
				return fmt.Errorf("building %q references unknown action %q", b.Name, b.WorkAction)
			}
		}
		if b.OutputItem != "" {
			if _, ok := c.itemsByName[b.OutputItem]; !ok {
				return fmt.Errorf("building %q references unknown item %q", b.Name, b.OutputItem)
			}
		}
	}
	for _, r := range c.Roles {
		if _, ok := c.buildingsByName[r.Worksite]; !ok {
			return fmt.Errorf("role %q references unknown building %q", r.Name, r.Worksite)
		}
	}
	if c.Tuning.DecisionInterval <= 0 {
		return fmt.Errorf("tuning: decision_interval must be positive")
	}
	return nil
}

// Need returns a need definition by name.
func (c *Config) Need(name string) (NeedDefinition, bool) {
	d, ok := c.needsByName[name]
	return d, ok
}

// Skill returns a skill definition by name.
func (c *Config) Skill(name string) (SkillDefinition, bool) {
	d, ok := c.skillsByName[name]
	return d, ok
}

// Action returns an action definition by name.
func (c *Config) Action(name string) (ActionDefinition, bool) {
	d, ok := c.actionsByName[name]
	return d, ok
}

// Item returns an item definition by name.
func (c *Config) Item(name string) (ItemDefinition, bool) {
	d, ok := c.itemsByName[name]
	return d, ok
}

// Building returns a building definition by name.
func (c *Config) Building(name string) (BuildingDefinition, bool) {
	d, ok := c.buildingsByName[name]
	return d, ok
}
