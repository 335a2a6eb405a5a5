package systems

import (
	"math"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// Urgencies are per-need pressures, each in [0, 1].
type Urgencies struct {
	Hunger       float64
	Fatigue      float64
	Temperature  float64
	Fear         float64
	Reproduction float64
	Oxygen       float64
	Depth        float64
	WaterTemp    float64
}

// Needs is the result of one needs evaluation.
type Needs struct {
	Urgencies

	// Position of the strongest threat, for flee targeting.
	ThreatX, ThreatY float64
	HasThreat        bool
}

// SenseRange returns how far a creature perceives food and mates.
func SenseRange(c *components.Creature, ct *world.CreatureType) float64 {
	return ct.SenseRange * traitOr(c.Org.Personality.Curiosity)
}

// DetectionRadius returns how far away a threat is noticed. Timid creatures notice earlier.
func DetectionRadius(c *components.Creature, ct *world.CreatureType) float64 {
	return SenseRange(c, ct) / traitOr(c.Org.Personality.Boldness)
}

// traitOr guards against unset personality values.
func traitOr(v float64) float64 {
	if v <= 0 {
		return 0.5
	}
	return v
}

// EvaluateNeeds accrues hunger, drains energy and oxygen, updates the
// reproductive drive, and returns the creature's urgencies.
// neighbors may be a superset of the detection radius; dead neighbors
// and those of unknown type are ignored.
func EvaluateNeeds(c *components.Creature, ct *world.CreatureType, tile *world.Tile, neighbors []Neighbor, types *world.TypeRegistry, dt float64) Needs {
	if c == nil || ct == nil || tile == nil || !c.Alive() {
		return Needs{}
	}
	cfg := config.Cfg().Needs
	vit := c.Vit
	p := &c.Org.Personality

	vit.Hunger += cfg.HungerRate * dt

	drain := cfg.EnergyDrain * (0.5 + traitOr(p.Activity))
	vit.Energy = clamp01(vit.Energy - drain*dt)

	var n Needs
	n.Temperature = math.Min(1, math.Abs(tile.Temp-ct.PreferredTemp)/20)

	// Fear is the strongest single threat, not a sum.
	detect := DetectionRadius(c, ct)
	for _, nb := range neighbors {
		if !nb.C.Alive() {
			continue
		}
		ot, ok := types.Lookup(nb.C.Org.TypeID)
		if !ok || !ot.IsThreatTo(ot.Size, ct.Size, cfg.ThreatSizeRatio) {
			continue
		}
		d := nb.Dist()
		if d >= detect {
			continue
		}
		fear := (detect - d) / detect
		if fear > n.Fear {
			n.Fear = fear
			n.ThreatX, n.ThreatY = nb.C.Pos.X, nb.C.Pos.Y
			n.HasThreat = true
		}
	}

	oldAge := ct.MaxAge * config.Cfg().Lifecycle.ElderlyFraction
	if vit.Age > ct.MaturityAge && vit.Age < oldAge && vit.ReproCooldown <= 0 {
		vit.ReproDrive = math.Min(1, vit.ReproDrive+cfg.ReproDriveGain*dt*traitOr(p.Socialness))
	} else {
		vit.ReproDrive = math.Max(0, vit.ReproDrive-cfg.ReproDriveDecay*dt)
	}

	if ct.Aquatic() {
		rate := cfg.ShallowOxygenDrain
		if ct.PreferredDepth > cfg.DeepDiverDepth {
			rate = cfg.DeepOxygenDrain
		}
		vit.Oxygen = clamp01(vit.Oxygen - rate*dt)
		if ct.NeedsAir && vit.Oxygen < cfg.AirThreshold {
			n.Oxygen = 1
		}
		n.Depth = math.Min(1, math.Abs(tile.Depth-ct.PreferredDepth)/10)
		n.WaterTemp = math.Min(1, math.Abs(tile.WaterTemp-ct.PreferredWaterTemp)/15)
	}

	n.Hunger = clamp01(vit.Hunger)
	n.Fatigue = 1 - vit.Energy
	n.Reproduction = vit.ReproDrive
	return n
}
