package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

// Mutation ranges for hybrid trait inheritance (full width, centred on the parents' mean).
const (
	sizeRange      float64 = 0.15
	speedRange     float64 = 0.15
	senseRange     float64 = 1
	prefTempRange  float64 = 3
	maturityRange  float64 = 10
	maxAgeRange    float64 = 200
	depthRange     float64 = 1
	waterTempRange float64 = 2
)

// inheritTrait averages two parent values and applies a uniform mutation
// of the given width, floored at 0.1.
func inheritTrait(a, b, width float64, rng *rand.Rand) float64 {
	avg := (a + b) / 2
	return math.Max(0.1, avg+(rng.Float64()-0.5)*width)
}

// CreateHybrid synthesizes a new type from two different parent types.
// Diet and habitat follow the first parent; air breathing is kept if either needs it.
// The returned type is not registered.
func CreateHybrid(a, b *world.CreatureType, rng *rand.Rand) *world.CreatureType {
	h := &world.CreatureType{
		ID:            world.NewTypeID(rng),
		Name:          a.Name + "-" + b.Name + " Hybrid",
		Diet:          a.Diet,
		Habitat:       a.Habitat,
		IsPredator:    a.IsPredator,
		Size:          inheritTrait(a.Size, b.Size, sizeRange, rng),
		Speed:         inheritTrait(a.Speed, b.Speed, speedRange, rng),
		SenseRange:    inheritTrait(a.SenseRange, b.SenseRange, senseRange, rng),
		PreferredTemp: inheritTrait(a.PreferredTemp, b.PreferredTemp, prefTempRange, rng),
		MaturityAge:   math.Floor(inheritTrait(a.MaturityAge, b.MaturityAge, maturityRange, rng)),
		MaxAge:        math.Floor(inheritTrait(a.MaxAge, b.MaxAge, maxAgeRange, rng)),
		NeedsAir:      a.NeedsAir || b.NeedsAir,
		Generation:    max(a.Generation, b.Generation) + 1,
		ParentTypeID:  a.ID,
		Parent2TypeID: b.ID,
		IsHybrid:      true,
		SpawnLimit:    a.SpawnLimit,
	}

	// Aquatic preferences only carry over from an aquatic first parent.
	if a.Aquatic() {
		bDepth, bWater := b.PreferredDepth, b.PreferredWaterTemp
		if !b.Aquatic() {
			bDepth, bWater = a.PreferredDepth, a.PreferredWaterTemp
		}
		h.PreferredDepth = inheritTrait(a.PreferredDepth, bDepth, depthRange, rng)
		h.PreferredWaterTemp = inheritTrait(a.PreferredWaterTemp, bWater, waterTempRange, rng)
	}

	// Keep the fertile window well formed.
	if h.MaxAge <= h.MaturityAge {
		h.MaxAge = h.MaturityAge + 1
	}
	return h
}

// RandomPersonality draws fresh traits in [0.3, 1].
func RandomPersonality(rng *rand.Rand) components.Personality {
	return components.Personality{
		Boldness:   0.3 + rng.Float64()*0.7,
		Activity:   0.3 + rng.Float64()*0.7,
		Curiosity:  0.3 + rng.Float64()*0.7,
		Socialness: 0.3 + rng.Float64()*0.7,
	}
}

// InheritPersonality averages the parents' traits with a uniform mutation
// of the given width, clamped to [0.1, 1].
func InheritPersonality(a, b components.Personality, variance float64, rng *rand.Rand) components.Personality {
	mix := func(x, y float64) float64 {
		return clampFloat((x+y)/2+(rng.Float64()-0.5)*variance, 0.1, 1)
	}
	return components.Personality{
		Boldness:   mix(a.Boldness, b.Boldness),
		Activity:   mix(a.Activity, b.Activity),
		Curiosity:  mix(a.Curiosity, b.Curiosity),
		Socialness: mix(a.Socialness, b.Socialness),
	}
}
