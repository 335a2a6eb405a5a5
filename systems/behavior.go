package systems

import (
	"math"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/events"
	"github.com/pthm-cable/critters/world"
)

// candidate is one need competing for control of the state machine.
type candidate struct {
	urgency   float64
	threshold float64
	state     components.State
}

// candidates lists needs in priority order. Earlier entries win ties.
func candidates(u Urgencies, cfg *config.BehaviorConfig) [8]candidate {
	return [8]candidate{
		{u.Fear, cfg.FearThreshold, components.StateFlee},
		{u.Oxygen, cfg.OxygenThreshold, components.StateSurfaceForAir},
		{u.Hunger, cfg.HungerThreshold, components.StateSeekFood},
		{u.Depth, cfg.DepthThreshold, components.StateSeekDepth},
		{u.WaterTemp, cfg.WaterTempThreshold, components.StateSeekShelter},
		{u.Temperature, cfg.TemperatureThreshold, components.StateSeekShelter},
		{u.Reproduction * cfg.ReproductionWeight, cfg.ReproductionThreshold, components.StateSeekMate},
		{u.Fatigue * cfg.FatigueWeight, cfg.FatigueThreshold, components.StateRest},
	}
}

// SelectState picks the creature's next state from its urgencies and
// records the change. A stateChange event is pushed only when the state
// differs from the previous one, followed by a sound event for FLEE,
// COURTSHIP, EAT and SURFACE_FOR_AIR.
func SelectState(c *components.Creature, u Urgencies, q *events.Queue) components.State {
	if c == nil || c.Beh == nil {
		return components.StateIdle
	}
	cfg := config.Cfg().Behavior
	beh := c.Beh
	prev := beh.State

	next := prev
	best := 0.0
	for _, cand := range candidates(u, &cfg) {
		if cand.urgency > cand.threshold && cand.urgency > best {
			best = cand.urgency
			next = cand.state
		}
	}

	if best < cfg.IdleCutoff {
		if c.Vit.Energy > cfg.WanderEnergy*traitOr(c.Org.Personality.Activity) {
			next = components.StateWander
		} else {
			next = components.StateIdle
		}
	}

	// Arrival overrides keep a creature eating or courting while the need persists.
	if next == components.StateSeekFood && beh.AtFood &&
		(prev == components.StateSeekFood || prev == components.StateEat) {
		next = components.StateEat
	}
	if next == components.StateSeekMate && beh.NearMate &&
		(prev == components.StateSeekMate || prev == components.StateCourtship) {
		next = components.StateCourtship
	}

	if next != components.StateSeekFood && next != components.StateEat {
		beh.AtFood = false
	}

	if next != prev {
		q.Push(events.StateChange{Creature: c.Org.ID, From: prev, To: next})
		if snd, ok := events.SoundFor(next); ok {
			q.Push(events.SoundEmitted{Creature: c.Org.ID, Sound: snd, X: c.Pos.X, Y: c.Pos.Y})
		}
	}

	beh.State = next
	return next
}

// ApplyStateEffects applies the passive effects of the current state.
func ApplyStateEffects(c *components.Creature, ct *world.CreatureType, dt float64, q *events.Queue) {
	if c == nil || ct == nil || !c.Alive() {
		return
	}
	vit := c.Vit

	switch c.Beh.State {
	case components.StateRest:
		vit.Energy = clamp01(vit.Energy + 0.002*dt)

	case components.StateFlee:
		vit.Energy = clamp01(vit.Energy - 0.001*dt)
		// Fleeing alone never pushes hunger past the starvation line.
		if maxHunger := config.Cfg().Lifecycle.MaxHunger; vit.Hunger < maxHunger {
			vit.Hunger = math.Min(maxHunger, vit.Hunger+0.001*dt)
		}

	case components.StateEat:
		vit.Energy = clamp01(vit.Energy + 0.0005*dt)

	case components.StateSurfaceForAir:
		if vit.Oxygen < 1 {
			before := vit.Oxygen
			vit.Oxygen = clamp01(vit.Oxygen + 0.005*dt)
			if before <= config.Cfg().Behavior.SurfaceComplete && vit.Oxygen > config.Cfg().Behavior.SurfaceComplete {
				q.Push(events.SurfaceComplete{Creature: c.Org.ID, Oxygen: vit.Oxygen})
			}
		}

	case components.StateWander:
		vit.Energy = clamp01(vit.Energy - 0.0003*dt)

	case components.StateCourtship:
		vit.Energy = clamp01(vit.Energy - 0.0007*dt)
	}
}
