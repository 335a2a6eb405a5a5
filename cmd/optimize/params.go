package main

import (
	"github.com/pthm-cable/critters/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	field func(cfg *config.Config) *float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food supply
			{Name: "land_regen_rate", Path: "environment.land_regen_rate", Min: 0.002, Max: 0.05, Default: 0.01,
				field: func(c *config.Config) *float64 { return &c.Environment.LandRegenRate }},
			{Name: "water_regen_rate", Path: "environment.water_regen_rate", Min: 0.002, Max: 0.04, Default: 0.008,
				field: func(c *config.Config) *float64 { return &c.Environment.WaterRegenRate }},
			// Needs
			{Name: "hunger_rate", Path: "needs.hunger_rate", Min: 0.0003, Max: 0.003, Default: 0.001,
				field: func(c *config.Config) *float64 { return &c.Needs.HungerRate }},
			{Name: "energy_drain", Path: "needs.energy_drain", Min: 0.0001, Max: 0.002, Default: 0.0005,
				field: func(c *config.Config) *float64 { return &c.Needs.EnergyDrain }},
			{Name: "repro_drive_gain", Path: "needs.repro_drive_gain", Min: 0.0001, Max: 0.002, Default: 0.0005,
				field: func(c *config.Config) *float64 { return &c.Needs.ReproDriveGain }},
			// Feeding
			{Name: "eat_rate", Path: "feeding.eat_rate", Min: 0.05, Max: 0.4, Default: 0.15,
				field: func(c *config.Config) *float64 { return &c.Feeding.EatRate }},
			{Name: "hunger_per_food", Path: "feeding.hunger_per_food", Min: 1, Max: 6, Default: 3,
				field: func(c *config.Config) *float64 { return &c.Feeding.HungerPerFood }},
			{Name: "min_tile_food", Path: "feeding.min_tile_food", Min: 0.5, Max: 5, Default: 2,
				field: func(c *config.Config) *float64 { return &c.Feeding.MinTileFood }},
			// Reproduction
			{Name: "repro_max_hunger", Path: "reproduction.max_hunger", Min: 0.2, Max: 1.5, Default: 0.5,
				field: func(c *config.Config) *float64 { return &c.Reproduction.MaxHunger }},
			{Name: "repro_min_energy", Path: "reproduction.min_energy", Min: 0.1, Max: 0.6, Default: 0.3,
				field: func(c *config.Config) *float64 { return &c.Reproduction.MinEnergy }},
			{Name: "repro_hunger_cost", Path: "reproduction.hunger_cost", Min: 0.1, Max: 0.8, Default: 0.3,
				field: func(c *config.Config) *float64 { return &c.Reproduction.HungerCost }},
			{Name: "repro_energy_cost", Path: "reproduction.energy_cost", Min: 0.1, Max: 0.6, Default: 0.3,
				field: func(c *config.Config) *float64 { return &c.Reproduction.EnergyCost }},
			{Name: "repro_cooldown", Path: "reproduction.cooldown", Min: 50, Max: 500, Default: 200,
				field: func(c *config.Config) *float64 { return &c.Reproduction.Cooldown }},
			{Name: "mate_range", Path: "reproduction.mate_range", Min: 0.3, Max: 2, Default: 0.5,
				field: func(c *config.Config) *float64 { return &c.Reproduction.MateRange }},
			// Lifecycle and evolution
			{Name: "aging_rate", Path: "lifecycle.aging_rate", Min: 0.05, Max: 0.5, Default: 0.2,
				field: func(c *config.Config) *float64 { return &c.Lifecycle.AgingRate }},
			{Name: "evolution_threshold", Path: "evolution.threshold", Min: 50, Max: 1000, Default: 200,
				field: func(c *config.Config) *float64 { return &c.Evolution.Threshold }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
}

// ExtractFromConfig reads current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = *spec.field(cfg)
	}
	return out
}
