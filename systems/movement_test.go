package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

func TestMotionFor(t *testing.T) {
	tests := []struct {
		state    components.State
		speedMul float64
		friction float64
	}{
		{components.StateFlee, 2.5, 0.88},
		{components.StateSeekFood, 1.3, 0.95},
		{components.StateSeekMate, 1.3, 0.95},
		{components.StateCourtship, 0.7, 0.95},
		{components.StateRest, 0.2, 0.98},
		{components.StateIdle, 0.2, 0.98},
		{components.StateWander, 0.75, 0.95},
		{components.StateEat, 1, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			p := MotionFor(tt.state, 0.5)
			if math.Abs(p.SpeedMul-tt.speedMul) > 1e-9 {
				t.Errorf("expected speed multiplier %v, got %v", tt.speedMul, p.SpeedMul)
			}
			if p.Friction != tt.friction {
				t.Errorf("expected friction %v, got %v", tt.friction, p.Friction)
			}
		})
	}

	if MotionFor(components.StateFlee, 0.5).Accel <= MotionFor(components.StateSeekFood, 0.5).Accel {
		t.Error("fleeing should accelerate harder than seeking")
	}
}

func TestBaseSpeed_ActivityScaling(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ct := grazerType(rng)
	scale := config.Cfg().Movement.SpeedScale

	tests := []struct {
		activity float64
		want     float64
	}{
		{0.1, scale * 0.84},
		{0.5, scale * 1.0},
		{1.0, scale * 1.2},
	}
	for _, tt := range tests {
		c := newCreature(ct, 1, 1, rng)
		c.Org.Personality.Activity = tt.activity
		if got := BaseSpeed(c, ct); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("activity %.1f: expected %g, got %g", tt.activity, tt.want, got)
		}
	}
}

func TestUpdateMovement_TowardTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	w := flatWorld(16, world.BiomeGrass)
	ct := grazerType(rng)
	c := newCreature(ct, 5, 5, rng)
	c.Beh.State = components.StateSeekFood
	c.Beh.Target.Set(8, 5)

	dt := config.Cfg().Derived.DT
	maxSpeed := BaseSpeed(c, ct) * MotionFor(components.StateSeekFood, 0.5).SpeedMul * config.Cfg().Movement.MaxSpeedFactor

	for range 5 {
		prevX := c.Pos.X
		UpdateMovement(c, ct, w, dt, rng)
		if c.Pos.X <= prevX {
			t.Fatalf("expected progress toward target, x went %f -> %f", prevX, c.Pos.X)
		}
		if step := c.Pos.X - prevX; step > maxSpeed*dt+1e-9 {
			t.Fatalf("step %f exceeds speed cap %f", step, maxSpeed*dt)
		}
	}
	if c.Pos.Y != 5 {
		t.Errorf("land creature should move straight, y=%f", c.Pos.Y)
	}
	if !c.Beh.Moving || c.Beh.Speed <= 0 || c.Beh.Speed > maxSpeed+1e-12 {
		t.Errorf("unexpected speed bookkeeping: moving=%v speed=%f", c.Beh.Moving, c.Beh.Speed)
	}
}

func TestUpdateMovement_ArrivalSetsAtFood(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := flatWorld(16, world.BiomeGrass)
	ct := grazerType(rng)
	c := newCreature(ct, 5, 5, rng)
	c.Beh.State = components.StateSeekFood
	c.Beh.Target.Set(5.05, 5)

	UpdateMovement(c, ct, w, 1, rng)

	if c.Beh.Target.Valid {
		t.Error("target should be cleared on arrival")
	}
	if !c.Beh.AtFood {
		t.Error("arriving while seeking food should set AtFood")
	}
}

func TestUpdateMovement_ClampsToWorld(t *testing.T) {
	withConfig(t, func(c *config.Config) { c.Movement.WanderChance = 0 })
	rng := rand.New(rand.NewSource(4))
	w := flatWorld(10, world.BiomeGrass)
	ct := grazerType(rng)

	low := newCreature(ct, 0.01, 5, rng)
	low.Vel.X = -5
	UpdateMovement(low, ct, w, 12.5, rng)
	if low.Pos.X < 0 {
		t.Errorf("x should stay >= 0, got %f", low.Pos.X)
	}

	high := newCreature(ct, 9.99, 5, rng)
	high.Vel.Y = 5
	high.Pos.Y = 9.99
	UpdateMovement(high, ct, w, 12.5, rng)
	if high.Pos.Y >= 10 {
		t.Errorf("y should stay < 10, got %f", high.Pos.Y)
	}
}

func TestUpdateMovement_FrictionWithoutTarget(t *testing.T) {
	withConfig(t, func(c *config.Config) { c.Movement.WanderChance = 0 })
	rng := rand.New(rand.NewSource(5))
	w := flatWorld(10, world.BiomeGrass)
	ct := grazerType(rng)
	c := newCreature(ct, 5, 5, rng)
	c.Beh.State = components.StateIdle
	c.Vel.X = 0.0005

	UpdateMovement(c, ct, w, 10, rng)

	want := 0.0005 * math.Pow(0.98, 10)
	if math.Abs(c.Vel.X-want) > 1e-12 {
		t.Errorf("expected velocity %g after friction, got %g", want, c.Vel.X)
	}
}

func TestUpdateMovement_AquaticStaysInWater(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	w := flatWorld(16, world.BiomeWater)
	w.Grid.Each(func(x, _ int, t *world.Tile) {
		if x >= 6 {
			t.Biome = world.BiomeGrass
			t.Depth = 0
		}
	})
	ct := sealType(rng)
	c := newCreature(ct, 5.9, 5.5, rng)
	c.Beh.State = components.StateSeekFood
	c.Beh.Target.Set(8.5, 5.5)

	UpdateMovement(c, ct, w, 12.5, rng)

	if !w.Grid.TileAt(c.Pos.X, c.Pos.Y).IsWater() {
		t.Fatalf("swimmer left the water at (%f, %f)", c.Pos.X, c.Pos.Y)
	}
	if c.Pos.X != 5.9 || c.Vel.X != 0 || c.Beh.Moving {
		t.Errorf("blocked step should be cancelled, pos=%f vel=%f", c.Pos.X, c.Vel.X)
	}
}

func TestUpdateMovement_SurfaceTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := flatWorld(16, world.BiomeWater)
	w.Grid.Each(func(_, _ int, t *world.Tile) { t.Depth = 6 })
	w.Grid.At(8, 5).Depth = 1

	ct := sealType(rng)
	c := newCreature(ct, 5.5, 5.5, rng)
	c.Beh.State = components.StateSurfaceForAir

	UpdateMovement(c, ct, w, 1, rng)

	if !c.Beh.Target.Valid || c.Beh.Target.X != 8.5 || c.Beh.Target.Y != 5.5 {
		t.Errorf("expected surface target (8.5, 5.5), got %+v", c.Beh.Target)
	}
}

func TestUpdateMovement_AquaticCurvesTowardTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	w := flatWorld(32, world.BiomeWater)
	w.Time = 10
	ct := sealType(rng)
	c := newCreature(ct, 5.5, 10.5, rng)
	c.Org.Phase = math.Pi / 4
	c.Beh.State = components.StateSeekFood
	c.Beh.Target.Set(20.5, 10.5)

	UpdateMovement(c, ct, w, 1, rng)

	if c.Vel.Y == 0 {
		t.Error("swimmer should pick up a perpendicular component")
	}

	c.Beh.State = components.StateFlee
	c.Vel.X, c.Vel.Y = 0, 0
	c.Pos.Y = 10.5
	UpdateMovement(c, ct, w, 1, rng)
	if c.Vel.Y != 0 {
		t.Errorf("fleeing swimmer should move straight, vy=%g", c.Vel.Y)
	}
}

func TestUpdateMovement_DeadDoesNotMove(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	w := flatWorld(10, world.BiomeGrass)
	ct := grazerType(rng)
	c := newCreature(ct, 5, 5, rng)
	c.Vit.Dead = true
	c.Vel.X = 0.1

	UpdateMovement(c, ct, w, 10, rng)
	if c.Pos.X != 5 {
		t.Errorf("dead creature moved to %f", c.Pos.X)
	}
}
