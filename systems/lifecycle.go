package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/events"
	"github.com/pthm-cable/critters/world"
)

// StageInfo is the derived life stage with its multipliers.
type StageInfo struct {
	Stage    components.LifeStage
	SizeMul  float64
	SpeedMul float64
	Health   float64 // Health ceiling; only below 100 for the elderly
}

// StageFor derives the life stage purely from age and type thresholds.
func StageFor(age float64, ct *world.CreatureType) StageInfo {
	cfg := config.Cfg().Lifecycle
	juvenileAge := ct.MaturityAge * cfg.JuvenileFraction
	oldAge := ct.MaxAge * cfg.ElderlyFraction

	switch {
	case age < juvenileAge:
		ratio := age / juvenileAge
		return StageInfo{
			Stage:    components.StageJuvenile,
			SizeMul:  0.5 + ratio*0.5,
			SpeedMul: 0.7 + ratio*0.3,
			Health:   100,
		}
	case age < ct.MaturityAge:
		return StageInfo{Stage: components.StageYoungAdult, SizeMul: 1, SpeedMul: 1, Health: 100}
	case age < oldAge:
		return StageInfo{Stage: components.StageAdult, SizeMul: 1, SpeedMul: 1, Health: 100}
	default:
		ratio := (age - oldAge) / (ct.MaxAge - oldAge)
		return StageInfo{
			Stage:    components.StageElderly,
			SizeMul:  1,
			SpeedMul: math.Max(0.5, 1-ratio*0.5),
			Health:   math.Max(0, 100-ratio*50),
		}
	}
}

// UpdateLifecycle ages the creature, counts down its reproduction
// cooldown and recomputes its life stage.
func UpdateLifecycle(c *components.Creature, ct *world.CreatureType, dt float64) {
	if c == nil || ct == nil || !c.Alive() {
		return
	}
	vit := c.Vit
	vit.Age += dt * config.Cfg().Lifecycle.AgingRate
	vit.ReproCooldown = math.Max(0, vit.ReproCooldown-dt)

	info := StageFor(vit.Age, ct)
	c.Beh.LifeStage = info.Stage
	c.Beh.SizeMultiplier = info.SizeMul
	c.Beh.SpeedMultiplier = info.SpeedMul
	if info.Stage == components.StageElderly {
		vit.Health = info.Health
	}
}

// IsFertile reports whether a creature may reproduce this tick.
func IsFertile(c *components.Creature, ct *world.CreatureType) bool {
	if c == nil || ct == nil || !c.Alive() {
		return false
	}
	cfg := config.Cfg().Reproduction
	vit := c.Vit
	return vit.Hunger < cfg.MaxHunger &&
		vit.Energy >= cfg.MinEnergy &&
		vit.Age >= ct.MaturityAge &&
		vit.Age <= ct.MaxAge*config.Cfg().Lifecycle.ElderlyFraction &&
		vit.ReproCooldown <= 0
}

// Offspring holds the component values for a creature that is not yet
// in the ECS world. Births are materialized after the creature pass.
type Offspring struct {
	Pos components.Position
	Org components.Organism
	Vit components.Vitals
	Beh components.Behavior
}

// NewCreature builds a fresh, generation-0 creature of ct at (x, y)
// with random personality.
func NewCreature(ct *world.CreatureType, x, y, hunger float64, rng *rand.Rand) Offspring {
	return Offspring{
		Pos: components.Position{X: x, Y: y},
		Org: components.Organism{
			ID:          components.NewCreatureID(rng),
			TypeID:      ct.ID,
			Personality: RandomPersonality(rng),
			Phase:       rng.Float64() * 2 * math.Pi,
		},
		Vit: components.Vitals{
			Hunger: hunger,
			Energy: 1,
			Oxygen: 1,
			Health: 100,
		},
		Beh: newbornBehavior(),
	}
}

func newbornBehavior() components.Behavior {
	return components.Behavior{
		State:           components.StateIdle,
		LifeStage:       components.StageJuvenile,
		SizeMultiplier:  0.5,
		SpeedMultiplier: 0.7,
	}
}

// AttemptReproduction pairs c with mate, producing one offspring.
// If the parents' types differ, a hybrid type is synthesized and registered
// (or reused, when hybrid deduplication is enabled). Both parents pay the
// reproduction cost. Returns false if either parent is not fertile.
func AttemptReproduction(c *components.Creature, ct *world.CreatureType, mate *components.Creature, mateType *world.CreatureType, w *world.World, rng *rand.Rand, q *events.Queue) (Offspring, bool) {
	if c == nil || mate == nil || ct == nil || mateType == nil || w == nil || c == mate {
		return Offspring{}, false
	}
	if !IsFertile(c, ct) || !IsFertile(mate, mateType) {
		return Offspring{}, false
	}
	cfg := config.Cfg().Reproduction

	babyType := ct
	if ct.ID != mateType.ID {
		babyType = hybridFor(ct, mateType, w.Types, rng, q, cfg.DedupeHybrids)
	}

	size := w.Size()
	jitter := cfg.SpawnJitter
	baby := Offspring{
		Pos: components.Position{
			X: clampFloat(c.Pos.X+(rng.Float64()-0.5)*jitter, 0, size-0.001),
			Y: clampFloat(c.Pos.Y+(rng.Float64()-0.5)*jitter, 0, size-0.001),
		},
		Org: components.Organism{
			ID:          components.NewCreatureID(rng),
			TypeID:      babyType.ID,
			Generation:  max(c.Org.Generation, mate.Org.Generation) + 1,
			Parent1:     c.Org.ID,
			Parent2:     mate.Org.ID,
			Personality: InheritPersonality(c.Org.Personality, mate.Org.Personality, cfg.PersonalityVariance, rng),
			Phase:       rng.Float64() * 2 * math.Pi,
		},
		Vit: components.Vitals{
			Hunger:        0.2,
			Energy:        1,
			Oxygen:        1,
			Health:        100,
			ReproCooldown: cfg.Cooldown,
		},
		Beh: newbornBehavior(),
	}

	for _, p := range [2]*components.Creature{c, mate} {
		p.Vit.Hunger += cfg.HungerCost
		p.Vit.Energy = math.Max(0, p.Vit.Energy-cfg.EnergyCost)
		p.Vit.ReproCooldown = cfg.Cooldown
		p.Vit.ReproDrive = 0
	}

	q.Push(events.Birth{
		Creature: baby.Org.ID,
		Type:     babyType.ID,
		Parent1:  c.Org.ID,
		Parent2:  mate.Org.ID,
		X:        baby.Pos.X,
		Y:        baby.Pos.Y,
	})
	return baby, true
}

// hybridFor returns the offspring type for two different parent types.
func hybridFor(a, b *world.CreatureType, types *world.TypeRegistry, rng *rand.Rand, q *events.Queue, dedupe bool) *world.CreatureType {
	if dedupe {
		if h, ok := types.HybridFor(a.ID, b.ID); ok {
			return h
		}
	}
	h := CreateHybrid(a, b, rng)
	if err := types.Register(h); err != nil {
		// Fresh uuids do not collide; fall back to the first parent's type.
		return a
	}
	types.RecordHybrid(a.ID, b.ID, h.ID)
	q.Push(events.HybridCreated{
		Type:        h.ID,
		Name:        h.Name,
		ParentType1: a.ID,
		ParentType2: b.ID,
		Generation:  h.Generation,
	})
	return h
}

// CheckDeath flags the creature dead if a death condition holds.
// Conditions are checked in order: old age, starvation, health,
// stranding (aquatic on land), then extreme temperature.
func CheckDeath(c *components.Creature, ct *world.CreatureType, tile *world.Tile, rng *rand.Rand) (components.DeathCause, bool) {
	if c == nil || ct == nil || c.Vit == nil {
		return components.CauseNone, false
	}
	if c.Vit.Dead {
		return c.Vit.DeathCause, true
	}
	cfg := config.Cfg().Lifecycle
	vit := c.Vit

	cause := components.CauseNone
	switch {
	case vit.Age > ct.MaxAge:
		cause = components.CauseOldAge
	case vit.Hunger > cfg.MaxHunger:
		cause = components.CauseStarvation
	case vit.Health <= 0:
		cause = components.CauseHealth
	case tile != nil && ct.Aquatic() && !tile.IsWater():
		cause = components.CauseStranded
	case tile != nil && (tile.Temp < cfg.ColdDeathTemp || tile.Temp > cfg.HeatDeathTemp) && rng.Float64() < cfg.ExposureChance:
		cause = components.CauseTemperature
	}
	if cause == components.CauseNone {
		return cause, false
	}
	vit.Dead = true
	vit.DeathCause = cause
	return cause, true
}
