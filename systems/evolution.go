package systems

import (
	"math/rand"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// TypeTally counts a type's members and births during one tick.
type TypeTally struct {
	Count  int
	Births int
}

// Evolution pairs a source type with the clone it produced.
type Evolution struct {
	Source  *world.CreatureType
	Evolved *world.CreatureType
}

// EvolveTypes accrues evolution score for every tallied type and clones
// those crossing the threshold. Clones are registered; founders are left
// to the caller. Types are visited in registration order.
func EvolveTypes(types *world.TypeRegistry, tallies map[world.TypeID]TypeTally, dt float64, rng *rand.Rand) []Evolution {
	cfg := config.Cfg().Evolution
	if !cfg.Enabled || types == nil {
		return nil
	}

	var out []Evolution
	for _, ct := range types.All() {
		tally, ok := tallies[ct.ID]
		if !ok {
			continue
		}
		ct.EvoScore += float64(tally.Births)*cfg.BirthWeight + float64(tally.Count)*cfg.PresenceWeight*dt
		if ct.EvoScore <= cfg.Threshold {
			continue
		}
		clone := CloneType(ct, rng)
		if err := types.Register(clone); err != nil {
			continue
		}
		ct.EvoScore = 0
		out = append(out, Evolution{Source: ct, Evolved: clone})
	}
	return out
}

// CloneType copies ct with a new id and size/speed scaled by U(0.8, 1.2).
func CloneType(ct *world.CreatureType, rng *rand.Rand) *world.CreatureType {
	cfg := config.Cfg().Evolution
	clone := *ct
	clone.ID = world.NewTypeID(rng)
	clone.ParentTypeID = ct.ID
	clone.Parent2TypeID = world.NilTypeID
	clone.Generation = ct.Generation + 1
	clone.EvoScore = 0
	clone.Spawned = 0
	clone.Size = clampFloat(ct.Size*(0.8+rng.Float64()*0.4), cfg.MinTrait, cfg.MaxTrait)
	clone.Speed = clampFloat(ct.Speed*(0.8+rng.Float64()*0.4), cfg.MinTrait, cfg.MaxTrait)
	clone.Name = ct.Name + " β"
	return &clone
}
