// Package worldgen builds island tile grids from layered simplex noise.
package worldgen

import (
	"fmt"
	"maps"
	"math"
	"math/rand"
	"slices"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/critters/world"
)

// Climate shifts the baseline temperature and moisture of every tile.
type Climate struct {
	Name         string
	TempMod      float64
	MoistMod     float64
	ForestChance float64 // Chance a forest tile starts with a tree
}

var climates = map[string]Climate{
	"tropical":  {Name: "tropical", TempMod: 10, MoistMod: 0.3, ForestChance: 0.7},
	"temperate": {Name: "temperate", TempMod: 0, MoistMod: 0, ForestChance: 0.5},
	"arid":      {Name: "arid", TempMod: 15, MoistMod: -0.4, ForestChance: 0.2},
	"cold":      {Name: "cold", TempMod: -10, MoistMod: -0.2, ForestChance: 0.3},
}

// ClimateNames lists the climate presets in alphabetical order.
func ClimateNames() []string {
	return slices.Sorted(maps.Keys(climates))
}

// ClimateByName looks up a climate preset.
func ClimateByName(name string) (Climate, error) {
	c, ok := climates[name]
	if !ok {
		return Climate{}, fmt.Errorf("unknown climate %q", name)
	}
	return c, nil
}

// Params controls island generation.
type Params struct {
	Seed       int64
	Size       int
	IslandSize float64 // 0-1, radius of the land mass relative to the half-diagonal
	Climate    Climate
}

// Generate builds a size×size grid. Height comes from three octaves of
// normalized simplex noise shaped by a squared radial falloff, so the edges
// are open water.
func Generate(p Params) *world.Grid {
	g := world.NewGrid(p.Size)
	rng := rand.New(rand.NewSource(p.Seed))

	octaves := []struct {
		noise  opensimplex.Noise
		scale  float64
		weight float64
	}{
		{opensimplex.NewNormalized(p.Seed), 1.0 / 8, 0.5},
		{opensimplex.NewNormalized(p.Seed + 1), 1.0 / 16, 0.25},
		{opensimplex.NewNormalized(p.Seed + 2), 1.0 / 4, 0.125},
	}
	var total float64
	for _, o := range octaves {
		total += o.weight
	}

	centre := float64(g.Size) / 2
	maxDist := math.Hypot(centre, centre) * math.Max(p.IslandSize, 0.05)

	g.Each(func(x, y int, t *world.Tile) {
		var h float64
		for _, o := range octaves {
			h += o.noise.Eval2(float64(x)*o.scale, float64(y)*o.scale) * o.weight
		}
		h /= total

		dist := math.Hypot(float64(x)-centre, float64(y)-centre)
		falloff := 1 - math.Min(1, dist/maxDist)
		h *= falloff * falloff

		initTile(t, h, p.Climate, rng)
	})
	return g
}

// initTile derives biome, vegetation, food and climate baselines from height.
func initTile(t *world.Tile, h float64, c Climate, rng *rand.Rand) {
	*t = world.Tile{Height: h, Biome: world.BiomeForHeight(h)}

	switch t.Biome {
	case world.BiomeGrass:
		if rng.Float64() < 0.15 {
			t.Vegetation = world.VegetationBush
		}
		if rng.Float64() < 0.05 {
			t.Vegetation = world.VegetationTree
		}
		t.Food = float64(2 + rng.Intn(3))
	case world.BiomeForest:
		if rng.Float64() < c.ForestChance {
			t.Vegetation = world.VegetationTree
		} else if rng.Float64() < 0.3 {
			t.Vegetation = world.VegetationBush
		}
		t.Food = float64(3 + rng.Intn(5))
	case world.BiomeMountain:
		if rng.Float64() < 0.1 {
			t.Vegetation = world.VegetationRock
		}
	}
	switch t.Vegetation {
	case world.VegetationBush:
		t.Food += 3
	case world.VegetationTree:
		t.Food += 2
	}

	t.TempBase = 20 + (1-h)*10 + c.TempMod
	t.MoistBase = clamp01(baseMoisture(t.Biome) + c.MoistMod)
	t.Temp = t.TempBase
	t.Moist = t.MoistBase

	if t.IsWater() {
		// Depth grows toward open sea: 0 at the shoreline height, 10 at h=0.
		t.Depth = (0.3 - h) / 0.3 * 10
		t.Oxygen = 1
		t.WaterTemp = t.Temp * 0.9
		t.Food = float64(rng.Intn(4))
	}
}

func baseMoisture(b world.Biome) float64 {
	switch b {
	case world.BiomeWater:
		return 1
	case world.BiomeBeach:
		return 0.4
	case world.BiomeGrass:
		return 0.6
	case world.BiomeForest:
		return 0.8
	default:
		return 0.3
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
