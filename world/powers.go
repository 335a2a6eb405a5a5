package world

import "math"

// Power is an external tile mutation, such as a player ability.
// The simulation only consumes the resulting tile state.
type Power uint8

const (
	PowerTerraform Power = iota
	PowerFertility
	PowerRainstorm
	PowerHeatwave
)

var powerNames = [...]string{"terraform", "fertility", "rainstorm", "heatwave"}

func (p Power) String() string {
	if int(p) < len(powerNames) {
		return powerNames[p]
	}
	return "unknown"
}

// Terraform raises (or lowers, for negative delta) a single tile and
// reclassifies its biome.
func (g *Grid) Terraform(x, y int, delta float64) {
	t := g.At(x, y)
	t.Height = math.Max(0, math.Min(1, t.Height+delta))
	t.Biome = BiomeForHeight(t.Height)
	if t.IsWater() {
		t.Depth = (0.3 - t.Height) / 0.3 * 10
		if t.Oxygen == 0 {
			t.Oxygen = 1
		}
		t.Vegetation = VegetationNone
	} else {
		t.Depth = 0
	}
}

// FertilityBoost adds food and moisture to land tiles within a square radius.
func (g *Grid) FertilityBoost(x, y, radius int) {
	g.eachInSquare(x, y, radius, func(t *Tile) {
		if t.IsWater() || t.Biome == BiomeMountain {
			return
		}
		t.Food = math.Min(t.Food+3, 25)
		t.MoistBase = math.Min(t.MoistBase+0.02, 1)
	})
}

// Rainstorm adds food and moisture to every non-mountain tile within radius.
func (g *Grid) Rainstorm(x, y, radius int) {
	g.eachInSquare(x, y, radius, func(t *Tile) {
		if t.Biome == BiomeMountain {
			return
		}
		t.Food = math.Min(t.Food+5, 30)
		t.MoistBase = math.Min(t.MoistBase+0.05, 1)
	})
}

// Heatwave strips food and moisture from every tile within radius.
func (g *Grid) Heatwave(x, y, radius int) {
	g.eachInSquare(x, y, radius, func(t *Tile) {
		t.Food = math.Max(0, t.Food-5)
		t.MoistBase = math.Max(0.1, t.MoistBase-0.05)
	})
}

// Apply dispatches a power at tile (x, y). For terraform, amount is the
// height delta; for the area powers it is the radius (0 picks the default).
func (g *Grid) Apply(p Power, x, y int, amount float64) {
	radius := int(amount)
	switch p {
	case PowerTerraform:
		g.Terraform(x, y, amount)
	case PowerFertility:
		if radius <= 0 {
			radius = 2
		}
		g.FertilityBoost(x, y, radius)
	case PowerRainstorm:
		if radius <= 0 {
			radius = 4
		}
		g.Rainstorm(x, y, radius)
	case PowerHeatwave:
		if radius <= 0 {
			radius = 4
		}
		g.Heatwave(x, y, radius)
	}
}

// eachInSquare visits in-bounds tiles of the square centred on (x, y).
func (g *Grid) eachInSquare(x, y, radius int, fn func(t *Tile)) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			tx, ty := x+dx, y+dy
			if !g.InBounds(tx, ty) {
				continue
			}
			fn(&g.Tiles[ty*g.Size+tx])
		}
	}
}
