package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

func TestGraze(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	grazer := grazerType(rng)
	stalker := stalkerType(rng)

	tests := []struct {
		name       string
		ct         *world.CreatureType
		state      components.State
		hunger     float64
		food       float64
		wantEaten  float64
		wantHunger float64
	}{
		{"eats at the configured rate", grazer, components.StateEat, 1, 10, 0.15, 0.55},
		{"hunger floors at zero", grazer, components.StateEat, 0.2, 10, 0.15, 0},
		{"eats what is left", grazer, components.StateEat, 1, 0.05, 0.05, 0.85},
		{"only while eating", grazer, components.StateSeekFood, 1, 10, 0, 1},
		{"sated creatures stop", grazer, components.StateEat, 0.1, 10, 0, 0.1},
		{"carnivores do not graze", stalker, components.StateEat, 1, 10, 0, 1},
		{"empty tile", grazer, components.StateEat, 1, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCreature(tt.ct, 1, 1, rng)
			c.Beh.State = tt.state
			c.Vit.Hunger = tt.hunger
			tile := &world.Tile{Biome: world.BiomeGrass, Food: tt.food}

			eaten := Graze(c, tt.ct, tile, 1, rng)

			if math.Abs(eaten-tt.wantEaten) > 1e-9 {
				t.Errorf("expected %f eaten, got %f", tt.wantEaten, eaten)
			}
			if math.Abs(tile.Food-(tt.food-eaten)) > 1e-9 {
				t.Errorf("tile food %f should drop by the amount eaten", tile.Food)
			}
			if math.Abs(c.Vit.Hunger-tt.wantHunger) > 1e-9 {
				t.Errorf("expected hunger %f, got %f", tt.wantHunger, c.Vit.Hunger)
			}
		})
	}
}

func TestGraze_EmptiedTileClearsAtFood(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ct := grazerType(rng)
	c := newCreature(ct, 1, 1, rng)
	c.Beh.State = components.StateEat
	c.Beh.AtFood = true
	c.Vit.Hunger = 2
	tile := &world.Tile{Biome: world.BiomeGrass, Food: 0.1}

	Graze(c, ct, tile, 1, rng)

	if tile.Food != 0 {
		t.Errorf("expected tile emptied, got %f", tile.Food)
	}
	if c.Beh.AtFood {
		t.Error("AtFood should clear once the tile is empty")
	}
}

func TestGraze_CarnivoreTileFeeding(t *testing.T) {
	withConfig(t, func(c *config.Config) { c.Needs.CarnivoreTileFeeding = true })
	rng := rand.New(rand.NewSource(3))
	ct := stalkerType(rng)
	c := newCreature(ct, 1, 1, rng)
	c.Beh.State = components.StateEat
	c.Vit.Hunger = 1
	tile := &world.Tile{Biome: world.BiomeGrass, Food: 10}

	if eaten := Graze(c, ct, tile, 1, rng); eaten == 0 {
		t.Error("carnivores should graze when tile feeding is enabled")
	}
}

// Hunger only goes down while eating from a tile with food.
func TestHungerNonDecreasingWithoutFood(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	w := flatWorld(10, world.BiomeGrass)
	ct := grazerType(rng)
	c := newCreature(ct, 5.5, 5.5, rng)
	c.Vit.Hunger = 0.4

	prev := c.Vit.Hunger
	for range 200 {
		tile := w.Grid.TileAt(c.Pos.X, c.Pos.Y)
		n := EvaluateNeeds(c, ct, tile, nil, w.Types, 1)
		SelectState(c, n.Urgencies, nil)
		ResolveTarget(c, ct, w, n, nil)
		ApplyStateEffects(c, ct, 1, nil)
		UpdateMovement(c, ct, w, 1, rng)
		Graze(c, ct, w.Grid.TileAt(c.Pos.X, c.Pos.Y), 1, rng)

		if c.Vit.Hunger < prev {
			t.Fatalf("hunger dropped from %f to %f with no food", prev, c.Vit.Hunger)
		}
		prev = c.Vit.Hunger
	}
}
