package sim

import (
	"fmt"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
	"github.com/pthm-cable/critters/worldgen"
)

// maxPlacementTries bounds the random search for a habitat tile per founder.
const maxPlacementTries = 200

// TypeFromSpecies converts a configured species into a creature type.
func TypeFromSpecies(sc config.SpeciesConfig) (*world.CreatureType, error) {
	diet, err := world.ParseDiet(sc.Diet)
	if err != nil {
		return nil, fmt.Errorf("species %q: %w", sc.Name, err)
	}
	habitat, err := world.ParseHabitat(sc.Habitat)
	if err != nil {
		return nil, fmt.Errorf("species %q: %w", sc.Name, err)
	}
	return &world.CreatureType{
		Name:               sc.Name,
		Diet:               diet,
		Habitat:            habitat,
		IsPredator:         sc.Predator,
		Size:               sc.Size,
		Speed:              sc.Speed,
		SenseRange:         sc.SenseRange,
		PreferredTemp:      sc.PreferredTemp,
		PreferredWaterTemp: sc.PreferredWaterTemp,
		PreferredDepth:     sc.PreferredDepth,
		NeedsAir:           sc.NeedsAir,
		MaturityAge:        sc.MaturityAge,
		MaxAge:             sc.MaxAge,
	}, nil
}

// NewFromConfig generates an island from the world settings, registers the
// configured species and spawns founders of each.
func NewFromConfig(seed int64) (*Simulation, error) {
	cfg := config.Cfg()
	climate, err := worldgen.ClimateByName(cfg.World.Climate)
	if err != nil {
		return nil, fmt.Errorf("world.climate: %w", err)
	}
	grid := worldgen.Generate(worldgen.Params{
		Seed:       seed,
		Size:       cfg.World.Size,
		IslandSize: cfg.World.IslandSize,
		Climate:    climate,
	})

	s := New(world.New(grid), seed)
	if err := s.Populate(cfg.Species, cfg.Population.PerSpecies); err != nil {
		return nil, err
	}
	return s, nil
}

// Populate registers every species and places perSpecies founders of each
// on random tiles of the matching habitat. Founders do not count against
// spawn limits. A species with no suitable tile gets no founders.
func (s *Simulation) Populate(species []config.SpeciesConfig, perSpecies int) error {
	for _, sc := range species {
		ct, err := TypeFromSpecies(sc)
		if err != nil {
			return err
		}
		if _, err := s.RegisterType(ct); err != nil {
			return fmt.Errorf("populate %s: %w", sc.Name, err)
		}

		placed := 0
		for try := 0; try < maxPlacementTries && placed < perSpecies; try++ {
			x := s.rng.Intn(s.World.Grid.Size)
			y := s.rng.Intn(s.World.Grid.Size)
			t := s.World.Grid.At(x, y)
			if t.IsWater() != ct.Aquatic() || t.Biome == world.BiomeMountain {
				continue
			}
			s.place(ct, float64(x), float64(y), 0.1)
			placed++
		}
		s.log.Info("founders placed", "species", ct.Name, "count", placed)
	}
	return nil
}
