package telemetry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

// testWorld builds an 8x8 grass world with a land type, an aquatic hybrid
// type and three creatures (two of the first type, one of the second).
func testWorld() (*world.World, []components.Creature) {
	rng := rand.New(rand.NewSource(7))
	g := world.NewGrid(8)
	g.Each(func(_, _ int, t *world.Tile) {
		t.Biome = world.BiomeGrass
		t.Food = 2
		t.Temp = 20
	})
	w := world.New(g)

	grazer := &world.CreatureType{ID: world.NewTypeID(rng), Name: "grazer", Size: 1, MaxAge: 100}
	seal := &world.CreatureType{ID: world.NewTypeID(rng), Name: "seal", Habitat: world.HabitatWater, IsHybrid: true, Size: 1.5, MaxAge: 100}
	w.Types.Register(grazer)
	w.Types.Register(seal)

	mk := func(ct *world.CreatureType, hunger, energy float64, gen int) components.Creature {
		return components.Creature{
			Pos: &components.Position{X: 1, Y: 1},
			Vel: &components.Velocity{},
			Org: &components.Organism{ID: components.NewCreatureID(rng), TypeID: ct.ID, Generation: gen},
			Vit: &components.Vitals{Hunger: hunger, Energy: energy, Age: 10, Health: 100},
			Beh: &components.Behavior{},
		}
	}
	return w, []components.Creature{
		mk(grazer, 0.2, 0.8, 0),
		mk(grazer, 0.4, 0.6, 2),
		mk(seal, 0.6, 0.4, 1),
	}
}

func TestCollector_ShouldFlush(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("should not flush before window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush when window ends")
	}

	c.Flush(10, nil, nil)
	if c.ShouldFlush(15) {
		t.Error("window should restart at the flush tick")
	}
	if !c.ShouldFlush(20) {
		t.Error("should flush at the end of the second window")
	}
}

func TestCollector_ZeroWindowClamped(t *testing.T) {
	c := NewCollector(0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window = %d, want 1", c.WindowDurationTicks())
	}
}

func TestCollector_Flush(t *testing.T) {
	w, creatures := testWorld()
	c := NewCollector(100)

	c.RecordBirths(3)
	c.RecordBirths(2)
	c.RecordDeath(components.CauseStarvation)
	c.RecordDeath(components.CauseStarvation)
	c.RecordDeath(components.CauseStranded)

	stats := c.Flush(100, creatures, w)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 100 {
		t.Errorf("window = [%d, %d], want [0, 100]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Births != 5 {
		t.Errorf("births = %d, want 5", stats.Births)
	}
	if stats.Deaths != 3 || stats.DeathsStarvation != 2 || stats.DeathsStranded != 1 {
		t.Errorf("deaths = %d (starvation %d, stranded %d), want 3 (2, 1)",
			stats.Deaths, stats.DeathsStarvation, stats.DeathsStranded)
	}
	if stats.Population != 3 {
		t.Errorf("population = %d, want 3", stats.Population)
	}
	if stats.Species != 2 {
		t.Errorf("species = %d, want 2", stats.Species)
	}
	if stats.Hybrids != 1 || stats.Aquatic != 1 {
		t.Errorf("hybrids = %d, aquatic = %d, want 1 and 1", stats.Hybrids, stats.Aquatic)
	}
	if stats.MaxGeneration != 2 {
		t.Errorf("max generation = %d, want 2", stats.MaxGeneration)
	}
	if math.Abs(stats.HungerMean-0.4) > 1e-9 {
		t.Errorf("hunger mean = %v, want 0.4", stats.HungerMean)
	}
	if math.Abs(stats.EnergyMean-0.6) > 1e-9 {
		t.Errorf("energy mean = %v, want 0.6", stats.EnergyMean)
	}
	if math.Abs(stats.TotalFood-128) > 1e-9 {
		t.Errorf("total food = %v, want 128", stats.TotalFood)
	}
	if math.Abs(stats.MeanTemp-20) > 1e-9 {
		t.Errorf("mean temp = %v, want 20", stats.MeanTemp)
	}

	// Counters reset for the next window.
	next := c.Flush(200, nil, nil)
	if next.Births != 0 || next.Deaths != 0 {
		t.Errorf("counters not reset: births %d deaths %d", next.Births, next.Deaths)
	}
	if next.WindowStartTick != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStartTick)
	}
}

func TestCollector_FlushSkipsDead(t *testing.T) {
	w, creatures := testWorld()
	creatures[2].Vit.Dead = true

	stats := NewCollector(1).Flush(1, creatures, w)
	if stats.Population != 2 {
		t.Errorf("population = %d, want 2", stats.Population)
	}
	if stats.Aquatic != 0 {
		t.Errorf("aquatic = %d, want 0 once the seal is dead", stats.Aquatic)
	}
}
