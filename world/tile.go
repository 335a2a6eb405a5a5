// Package world holds the tile grid, creature type registry and weather state.
package world

// Biome classifies a tile's terrain.
type Biome uint8

const (
	BiomeWater Biome = iota
	BiomeBeach
	BiomeGrass
	BiomeForest
	BiomeMountain
)

var biomeNames = [...]string{"water", "beach", "grass", "forest", "mountain"}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// Vegetation is the plant cover on a tile.
type Vegetation uint8

const (
	VegetationNone Vegetation = iota
	VegetationBush
	VegetationTree
	VegetationRock
)

var vegetationNames = [...]string{"none", "bush", "tree", "rock"}

func (v Vegetation) String() string {
	if int(v) < len(vegetationNames) {
		return vegetationNames[v]
	}
	return "unknown"
}

// Tile is one cell of the world grid.
// TempBase and MoistBase are fixed at generation; Temp and Moist are
// recomputed every tick from the season and active weather.
type Tile struct {
	Biome      Biome
	Height     float64
	TempBase   float64
	MoistBase  float64
	Temp       float64
	Moist      float64
	Food       float64
	Vegetation Vegetation

	// Water only
	Depth     float64
	Oxygen    float64
	WaterTemp float64
}

// IsWater reports whether the tile is open water.
func (t *Tile) IsWater() bool {
	return t.Biome == BiomeWater
}

// BiomeForHeight maps a normalized height (0-1) to a biome.
func BiomeForHeight(h float64) Biome {
	switch {
	case h <= 0.3:
		return BiomeWater
	case h <= 0.35:
		return BiomeBeach
	case h <= 0.65:
		return BiomeGrass
	case h <= 0.85:
		return BiomeForest
	default:
		return BiomeMountain
	}
}

// MaxFood returns the regeneration cap for a land biome.
// Water tiles are capped separately; mountains do not regrow.
func (b Biome) MaxFood() float64 {
	switch b {
	case BiomeForest:
		return 40
	case BiomeGrass:
		return 30
	case BiomeBeach:
		return 20
	default:
		return 0
	}
}
