package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// Graze lets a creature in EAT consume food from the tile it stands on.
// It returns the amount of food removed from the tile.
// Carnivores only gain from tiles when carnivore tile feeding is enabled.
func Graze(c *components.Creature, ct *world.CreatureType, tile *world.Tile, dt float64, rng *rand.Rand) float64 {
	if c == nil || ct == nil || tile == nil || !c.Alive() || c.Beh.State != components.StateEat {
		return 0
	}
	cfg := config.Cfg().Feeding
	vit := c.Vit

	if tile.Food <= 0 {
		c.Beh.AtFood = false
		return 0
	}
	if !ct.GrazesTiles() && !config.Cfg().Needs.CarnivoreTileFeeding {
		return 0
	}
	if vit.Hunger <= 0.1 {
		return 0
	}

	eaten := math.Min(tile.Food, cfg.EatRate*dt)
	tile.Food -= eaten
	vit.Hunger = math.Max(0, vit.Hunger-eaten*cfg.HungerPerFood)

	// Grazing slowly strips bushes.
	if tile.Vegetation == world.VegetationBush && chance(rng, cfg.BushGrazing, dt) {
		tile.Food = math.Max(0, tile.Food-1)
		if tile.Food < 1 {
			tile.Vegetation = world.VegetationNone
		}
	}

	if tile.Food <= 0 {
		c.Beh.AtFood = false
	}
	return eaten
}
