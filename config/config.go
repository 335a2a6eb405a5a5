// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Environment  EnvironmentConfig  `yaml:"environment"`
	Needs        NeedsConfig        `yaml:"needs"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Movement     MovementConfig     `yaml:"movement"`
	Feeding      FeedingConfig      `yaml:"feeding"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Evolution    EvolutionConfig    `yaml:"evolution"`
	Population   PopulationConfig   `yaml:"population"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Species      []SpeciesConfig    `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions and tick pacing.
type WorldConfig struct {
	Size       int     `yaml:"size"`        // Tiles per side
	IslandSize float64 `yaml:"island_size"` // 0-1 fraction of the map covered by land
	Climate    string  `yaml:"climate"`     // temperate, tropical, arid, cold
	TickMillis int     `yaml:"tick_millis"` // Wall-clock interval between ticks
	DTScale    float64 `yaml:"dt_scale"`    // Milliseconds per dt unit (dt = elapsed / scale)
}

// EnvironmentConfig holds season, weather and tile regeneration parameters.
type EnvironmentConfig struct {
	YearLength       float64 `yaml:"year_length"`        // dt units per full seasonal cycle
	SeasonTempSwing  float64 `yaml:"season_temp_swing"`  // ± degrees at season extremes
	SeasonMoistSwing float64 `yaml:"season_moist_swing"` // ± moisture at season extremes
	WeatherChance    float64 `yaml:"weather_chance"`     // Spawn probability per dt unit
	LandRegenRate    float64 `yaml:"land_regen_rate"`    // Food per dt, scaled by (0.5 + moisture)
	WaterRegenRate   float64 `yaml:"water_regen_rate"`   // Plankton per dt
	WaterFoodCap     float64 `yaml:"water_food_cap"`     // Max food on water tiles
	RainFoodCap      float64 `yaml:"rain_food_cap"`      // Rain cannot push food above this
	OxygenRegenRate  float64 `yaml:"oxygen_regen_rate"`  // Water oxygen per dt before depth factor
	VegetationDieoff float64 `yaml:"vegetation_dieoff"`  // Dieoff probability per dt in extreme conditions
}

// NeedsConfig holds need accrual rates.
type NeedsConfig struct {
	HungerRate           float64 `yaml:"hunger_rate"`            // Hunger gained per dt
	EnergyDrain          float64 `yaml:"energy_drain"`           // Base energy drain per dt
	ReproDriveGain       float64 `yaml:"repro_drive_gain"`       // Drive gained per dt (× socialness)
	ReproDriveDecay      float64 `yaml:"repro_drive_decay"`      // Drive lost per dt when not fertile
	DeepDiverDepth       float64 `yaml:"deep_diver_depth"`       // Preferred depth above which oxygen drains slower
	DeepOxygenDrain      float64 `yaml:"deep_oxygen_drain"`      // Oxygen drain per dt for deep divers
	ShallowOxygenDrain   float64 `yaml:"shallow_oxygen_drain"`   // Oxygen drain per dt otherwise
	AirThreshold         float64 `yaml:"air_threshold"`          // Oxygen below which air is urgent
	ThreatSizeRatio      float64 `yaml:"threat_size_ratio"`      // Predator must exceed this × own size
	CarnivoreTileFeeding bool    `yaml:"carnivore_tile_feeding"` // Let carnivores eat tile food
}

// BehaviorConfig holds state-selection thresholds.
type BehaviorConfig struct {
	FearThreshold         float64 `yaml:"fear_threshold"`
	OxygenThreshold       float64 `yaml:"oxygen_threshold"`
	HungerThreshold       float64 `yaml:"hunger_threshold"`
	DepthThreshold        float64 `yaml:"depth_threshold"`
	WaterTempThreshold    float64 `yaml:"water_temp_threshold"`
	TemperatureThreshold  float64 `yaml:"temperature_threshold"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"`
	FatigueThreshold      float64 `yaml:"fatigue_threshold"`
	ReproductionWeight    float64 `yaml:"reproduction_weight"`
	FatigueWeight         float64 `yaml:"fatigue_weight"`
	IdleCutoff            float64 `yaml:"idle_cutoff"`   // Below this max urgency the creature idles or wanders
	WanderEnergy          float64 `yaml:"wander_energy"` // Wander when energy > this × activity
	SurfaceComplete       float64 `yaml:"surface_complete"`
}

// MovementConfig holds inertia-based motion parameters.
type MovementConfig struct {
	SpeedScale          float64 `yaml:"speed_scale"`           // type.speed × this = base speed
	ArrivalDistance     float64 `yaml:"arrival_distance"`      // Target cleared below this distance
	MaxSpeedFactor      float64 `yaml:"max_speed_factor"`      // Speed cap = base × this
	SurfaceSearchRadius int     `yaml:"surface_search_radius"` // Tiles searched for shallow water
	ShallowDepth        float64 `yaml:"shallow_depth"`         // Depth counted as surface
	CurveStrength       float64 `yaml:"curve_strength"`        // Aquatic path curvature (× curiosity)
	CurveFrequency      float64 `yaml:"curve_frequency"`       // Radians per dt of the curve oscillation
	WanderChance        float64 `yaml:"wander_chance"`         // Impulse probability per dt (× activity)
	WanderStrength      float64 `yaml:"wander_strength"`       // Impulse size (× curiosity)
	FleeDistance        float64 `yaml:"flee_distance"`         // How far past the creature a flee target lies
}

// FeedingConfig holds tile grazing parameters.
type FeedingConfig struct {
	EatRate       float64 `yaml:"eat_rate"`        // Food eaten per dt
	HungerPerFood float64 `yaml:"hunger_per_food"` // Hunger removed per unit of food
	MinTileFood   float64 `yaml:"min_tile_food"`   // Tiles below this are not food targets
	BushGrazing   float64 `yaml:"bush_grazing"`    // Probability per dt of damaging a bush
}

// LifecycleConfig holds ageing and death parameters.
type LifecycleConfig struct {
	AgingRate        float64 `yaml:"aging_rate"`        // Age gained per dt
	MaxHunger        float64 `yaml:"max_hunger"`        // Starvation above this
	ColdDeathTemp    float64 `yaml:"cold_death_temp"`   // Tile temperature below which exposure can kill
	HeatDeathTemp    float64 `yaml:"heat_death_temp"`   // Tile temperature above which exposure can kill
	ExposureChance   float64 `yaml:"exposure_chance"`   // Per-check death probability in extreme temperature
	JuvenileFraction float64 `yaml:"juvenile_fraction"` // Juvenile below this × maturity age
	ElderlyFraction  float64 `yaml:"elderly_fraction"`  // Elderly above this × max age
}

// ReproductionConfig holds mating parameters.
type ReproductionConfig struct {
	MateRange           float64 `yaml:"mate_range"`
	MaxHunger           float64 `yaml:"max_hunger"`
	MinEnergy           float64 `yaml:"min_energy"`
	HungerCost          float64 `yaml:"hunger_cost"`
	EnergyCost          float64 `yaml:"energy_cost"`
	Cooldown            float64 `yaml:"cooldown"`
	PersonalityVariance float64 `yaml:"personality_variance"`
	SpawnJitter         float64 `yaml:"spawn_jitter"`
	DedupeHybrids       bool    `yaml:"dedupe_hybrids"` // Reuse the hybrid type of an already-crossed type pair
}

// EvolutionConfig holds auto-evolution parameters.
type EvolutionConfig struct {
	Enabled        bool    `yaml:"enabled"`
	BirthWeight    float64 `yaml:"birth_weight"`
	PresenceWeight float64 `yaml:"presence_weight"` // Score per live member per dt
	Threshold      float64 `yaml:"threshold"`
	Founders       int     `yaml:"founders"`
	MinTrait       float64 `yaml:"min_trait"`
	MaxTrait       float64 `yaml:"max_trait"`
}

// PopulationConfig holds initial population settings.
type PopulationConfig struct {
	PerSpecies int `yaml:"per_species"` // Founders spawned per configured species
	SpawnLimit int `yaml:"spawn_limit"` // Default manual spawn cap per type
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
}

// SpeciesConfig defines a founder creature type.
type SpeciesConfig struct {
	Name               string  `yaml:"name"`
	Diet               string  `yaml:"diet"`    // herbivore, carnivore, omnivore
	Habitat            string  `yaml:"habitat"` // land, water
	Predator           bool    `yaml:"predator"`
	Size               float64 `yaml:"size"`
	Speed              float64 `yaml:"speed"`
	SenseRange         float64 `yaml:"sense_range"`
	PreferredTemp      float64 `yaml:"preferred_temp"`
	PreferredWaterTemp float64 `yaml:"preferred_water_temp"`
	PreferredDepth     float64 `yaml:"preferred_depth"`
	NeedsAir           bool    `yaml:"needs_air"`
	MaturityAge        float64 `yaml:"maturity_age"`
	MaxAge             float64 `yaml:"max_age"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldSize    float64        // World.Size as float64
	DT           float64        // dt per tick: TickMillis / DTScale
	SpeciesIndex map[string]int // name -> index into Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration. Intended for tests that tweak values.
func Set(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.Size <= 0 {
		return fmt.Errorf("world.size must be positive, got %d", c.World.Size)
	}
	if c.Environment.YearLength <= 0 {
		return fmt.Errorf("environment.year_length must be positive, got %v", c.Environment.YearLength)
	}
	if c.World.TickMillis <= 0 {
		return fmt.Errorf("world.tick_millis must be positive, got %d", c.World.TickMillis)
	}
	if c.World.DTScale <= 0 {
		return fmt.Errorf("world.dt_scale must be positive, got %v", c.World.DTScale)
	}
	for i, s := range c.Species {
		if s.Name == "" {
			return fmt.Errorf("species[%d]: name is required", i)
		}
		if s.MaxAge <= s.MaturityAge {
			return fmt.Errorf("species %q: max_age must exceed maturity_age", s.Name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldSize = float64(c.World.Size)
	c.Derived.DT = float64(c.World.TickMillis) / c.World.DTScale

	if c.Population.SpawnLimit == 0 {
		c.Population.SpawnLimit = 10
	}

	for i := range c.Species {
		s := &c.Species[i]
		if s.Size == 0 {
			s.Size = 1
		}
		if s.Speed == 0 {
			s.Speed = 1
		}
		if s.SenseRange == 0 {
			s.SenseRange = 6
		}
		if s.Habitat == "" {
			s.Habitat = "land"
		}
	}

	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	for i, s := range c.Species {
		c.Derived.SpeciesIndex[s.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
