package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

func init() {
	config.MustInit("")
}

// withConfig applies fn to a copy of the current config for the duration of t.
func withConfig(t *testing.T, fn func(c *config.Config)) {
	t.Helper()
	prev := config.Cfg()
	cfg := *prev
	fn(&cfg)
	config.Set(&cfg)
	t.Cleanup(func() { config.Set(prev) })
}

// flatWorld builds a size×size world of one biome at 20°, moisture 0.5, no food.
func flatWorld(size int, biome world.Biome) *world.World {
	g := world.NewGrid(size)
	g.Each(func(_, _ int, t *world.Tile) {
		t.Biome = biome
		t.Height = 0.5
		t.TempBase, t.Temp = 20, 20
		t.MoistBase, t.Moist = 0.5, 0.5
		if biome == world.BiomeWater {
			t.Height = 0.1
			t.Depth = 3
			t.Oxygen = 1
			t.WaterTemp = 18
		}
	})
	return world.New(g)
}

func grazerType(rng *rand.Rand) *world.CreatureType {
	return &world.CreatureType{
		ID:            world.NewTypeID(rng),
		Name:          "grazer",
		Diet:          world.DietHerbivore,
		Habitat:       world.HabitatLand,
		Size:          1,
		Speed:         1,
		SenseRange:    6,
		PreferredTemp: 20,
		MaturityAge:   50,
		MaxAge:        2000,
	}
}

func stalkerType(rng *rand.Rand) *world.CreatureType {
	return &world.CreatureType{
		ID:            world.NewTypeID(rng),
		Name:          "stalker",
		Diet:          world.DietCarnivore,
		Habitat:       world.HabitatLand,
		Size:          1.6,
		Speed:         1.4,
		SenseRange:    8,
		PreferredTemp: 20,
		MaturityAge:   80,
		MaxAge:        1800,
	}
}

func sealType(rng *rand.Rand) *world.CreatureType {
	return &world.CreatureType{
		ID:                 world.NewTypeID(rng),
		Name:               "seal",
		Diet:               world.DietOmnivore,
		Habitat:            world.HabitatWater,
		Size:               1.4,
		Speed:              1.1,
		SenseRange:         7,
		PreferredTemp:      18,
		PreferredWaterTemp: 18,
		PreferredDepth:     3,
		NeedsAir:           true,
		MaturityAge:        70,
		MaxAge:             2200,
	}
}

// newCreature returns a well-fed newborn of ct at (x, y) with middling personality.
func newCreature(ct *world.CreatureType, x, y float64, rng *rand.Rand) *components.Creature {
	return &components.Creature{
		Pos: &components.Position{X: x, Y: y},
		Vel: &components.Velocity{},
		Org: &components.Organism{
			ID:     components.NewCreatureID(rng),
			TypeID: ct.ID,
			Personality: components.Personality{
				Boldness: 0.5, Activity: 0.5, Curiosity: 0.5, Socialness: 0.5,
			},
		},
		Vit: &components.Vitals{Energy: 1, Oxygen: 1, Health: 100},
		Beh: &components.Behavior{State: components.StateIdle, SizeMultiplier: 1, SpeedMultiplier: 1},
	}
}

// adult makes c a fertile adult of ct.
func adult(c *components.Creature, ct *world.CreatureType) *components.Creature {
	c.Vit.Age = ct.MaturityAge + 10
	c.Vit.Hunger = 0.1
	c.Vit.Energy = 1
	c.Beh.LifeStage = components.StageAdult
	return c
}

// neighborOf builds the Neighbor entry for other as seen from c.
func neighborOf(c, other *components.Creature) Neighbor {
	dx := other.Pos.X - c.Pos.X
	dy := other.Pos.Y - c.Pos.Y
	return Neighbor{C: other, DX: dx, DY: dy, DistSq: dx*dx + dy*dy}
}

func registry(types ...*world.CreatureType) *world.TypeRegistry {
	r := world.NewTypeRegistry()
	for _, ct := range types {
		if err := r.Register(ct); err != nil {
			panic(err)
		}
	}
	return r
}
