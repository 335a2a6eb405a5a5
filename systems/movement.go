package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// MotionParams are the per-state movement modifiers.
type MotionParams struct {
	SpeedMul float64
	Accel    float64
	Friction float64
}

// MotionFor returns the movement modifiers for a state.
func MotionFor(state components.State, curiosity float64) MotionParams {
	p := MotionParams{SpeedMul: 1, Accel: 0.3, Friction: 0.95}
	switch state {
	case components.StateFlee:
		p = MotionParams{SpeedMul: 2.5, Accel: 0.8, Friction: 0.88}
	case components.StateSeekFood, components.StateSeekMate, components.StateSeekShelter, components.StateSeekDepth:
		p.SpeedMul, p.Accel = 1.3, 0.5
	case components.StateCourtship:
		p.SpeedMul, p.Accel = 0.7, 0.4
	case components.StateRest, components.StateIdle:
		p = MotionParams{SpeedMul: 0.2, Accel: 0.1, Friction: 0.98}
	case components.StateSurfaceForAir:
		p.SpeedMul, p.Accel = 1.5, 0.6
	case components.StateWander:
		p.SpeedMul = 0.5 + curiosity*0.5
	}
	return p
}

// BaseSpeed returns the creature's unmodified cruising speed.
func BaseSpeed(c *components.Creature, ct *world.CreatureType) float64 {
	stage := c.Beh.SpeedMultiplier
	if stage == 0 {
		stage = 1
	}
	return ct.Speed * config.Cfg().Movement.SpeedScale * (0.8 + traitOr(c.Org.Personality.Activity)*0.4) * stage
}

// UpdateMovement accelerates the creature toward its target (or wanders),
// applies friction and the speed cap, then integrates position inside the world.
// Aquatic creatures never move onto land; such a step is cancelled.
func UpdateMovement(c *components.Creature, ct *world.CreatureType, w *world.World, dt float64, rng *rand.Rand) {
	if c == nil || ct == nil || w == nil || w.Grid == nil || !c.Alive() {
		return
	}
	cfg := config.Cfg().Movement
	beh := c.Beh
	vel := c.Vel
	pos := c.Pos
	pers := &c.Org.Personality

	motion := MotionFor(beh.State, traitOr(pers.Curiosity))
	base := BaseSpeed(c, ct) * motion.SpeedMul

	if beh.State == components.StateSurfaceForAir && ct.Aquatic() {
		if x, y, ok := FindSurfaceTile(w.Grid, pos.X, pos.Y); ok {
			beh.Target.Set(x, y)
		}
	}

	if beh.Target.Valid {
		dirX := beh.Target.X - pos.X
		dirY := beh.Target.Y - pos.Y
		dist := math.Hypot(dirX, dirY)

		if dist > cfg.ArrivalDistance {
			ndx, ndy := dirX/dist, dirY/dist
			ax := ndx * base * dt * motion.Accel
			ay := ndy * base * dt * motion.Accel

			// Swimmers arc toward their target instead of moving straight.
			if ct.Aquatic() && beh.State != components.StateFlee {
				amount := cfg.CurveStrength * traitOr(pers.Curiosity)
				curve := math.Sin(c.Org.Phase+w.Time*cfg.CurveFrequency) * base * dt
				ax += -ndy * amount * curve
				ay += ndx * amount * curve
			}

			vel.X += ax
			vel.Y += ay
		} else {
			beh.Target.Clear()
			if beh.State == components.StateSeekFood {
				beh.AtFood = true
			}
		}
	} else if chance(rng, cfg.WanderChance*traitOr(pers.Activity), dt) {
		strength := cfg.WanderStrength * traitOr(pers.Curiosity)
		vel.X += (rng.Float64() - 0.5) * base * dt * strength
		vel.Y += (rng.Float64() - 0.5) * base * dt * strength
	}

	decay := math.Pow(motion.Friction, dt)
	vel.X *= decay
	vel.Y *= decay

	maxSpeed := base * cfg.MaxSpeedFactor
	speed := velocityMagnitude(vel.X, vel.Y)
	if speed > maxSpeed {
		vel.X = vel.X / speed * maxSpeed
		vel.Y = vel.Y / speed * maxSpeed
		speed = maxSpeed
	}

	size := w.Size()
	nx := clampFloat(pos.X+vel.X*dt, 0, size-0.001)
	ny := clampFloat(pos.Y+vel.Y*dt, 0, size-0.001)

	if ct.Aquatic() && w.Grid.TileAt(pos.X, pos.Y).IsWater() && !w.Grid.TileAt(nx, ny).IsWater() {
		vel.X, vel.Y = 0, 0
		speed = 0
		nx, ny = pos.X, pos.Y
	}

	pos.X, pos.Y = nx, ny
	beh.Speed = speed
	beh.Moving = speed > 0.0001
}
