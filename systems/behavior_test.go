package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/events"
)

func TestSelectState_Priority(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ct := grazerType(rng)

	tests := []struct {
		name   string
		u      Urgencies
		energy float64
		want   components.State
	}{
		{"calm and rested wanders", Urgencies{}, 1, components.StateWander},
		{"calm and tired idles", Urgencies{}, 0.2, components.StateIdle},
		{"hungry seeks food", Urgencies{Hunger: 0.35}, 1, components.StateSeekFood},
		{"below hunger threshold wanders", Urgencies{Hunger: 0.25}, 1, components.StateWander},
		{"below fear threshold wanders", Urgencies{Fear: 0.22}, 1, components.StateWander},
		{"strongest urgency wins", Urgencies{Fear: 0.3, Hunger: 0.9}, 1, components.StateSeekFood},
		{"fear wins ties", Urgencies{Fear: 0.9, Hunger: 0.9}, 1, components.StateFlee},
		{"air beats hunger", Urgencies{Oxygen: 1, Hunger: 0.9}, 1, components.StateSurfaceForAir},
		{"depth", Urgencies{Depth: 0.6}, 1, components.StateSeekDepth},
		{"water temperature", Urgencies{WaterTemp: 0.7}, 1, components.StateSeekShelter},
		{"temperature", Urgencies{Temperature: 0.7}, 1, components.StateSeekShelter},
		{"weighted reproduction", Urgencies{Reproduction: 0.8}, 1, components.StateSeekMate},
		{"weak reproduction", Urgencies{Reproduction: 0.5}, 1, components.StateWander},
		{"weighted fatigue", Urgencies{Fatigue: 0.9}, 0.1, components.StateRest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCreature(ct, 1, 1, rng)
			c.Vit.Energy = tt.energy
			got := SelectState(c, tt.u, nil)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if c.Beh.State != got {
				t.Errorf("state not stored: %s vs %s", c.Beh.State, got)
			}
		})
	}
}

func TestSelectState_EventsOnlyOnChange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ct := grazerType(rng)
	c := newCreature(ct, 3, 4, rng)
	q := events.NewQueue()

	SelectState(c, Urgencies{}, q)
	evs := q.Drain()
	if len(evs) != 1 || evs[0].Kind != events.KindStateChange {
		t.Fatalf("expected one stateChange, got %+v", evs)
	}
	sc := evs[0].Payload.(events.StateChange)
	if sc.From != components.StateIdle || sc.To != components.StateWander || sc.Creature != c.Org.ID {
		t.Errorf("unexpected payload %+v", sc)
	}

	SelectState(c, Urgencies{}, q)
	if q.Len() != 0 {
		t.Errorf("unchanged state should emit nothing, got %d events", q.Len())
	}

	SelectState(c, Urgencies{Fear: 0.9}, q)
	evs = q.Drain()
	if len(evs) != 2 || evs[0].Kind != events.KindStateChange || evs[1].Kind != events.KindSound {
		t.Fatalf("expected stateChange then sound, got %+v", evs)
	}
	snd := evs[1].Payload.(events.SoundEmitted)
	if snd.Sound != events.SoundAlarm || snd.X != 3 || snd.Y != 4 {
		t.Errorf("unexpected sound %+v", snd)
	}
}

func TestSelectState_Sounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ct := sealType(rng)

	tests := []struct {
		name  string
		prev  components.State
		u     Urgencies
		setup func(b *components.Behavior)
		want  components.State
		sound events.Sound
		has   bool
	}{
		{"flee alarms", components.StateWander, Urgencies{Fear: 0.8}, nil, components.StateFlee, events.SoundAlarm, true},
		{"surfacing", components.StateWander, Urgencies{Oxygen: 1}, nil, components.StateSurfaceForAir, events.SoundSurfacing, true},
		{"arrival at food feeds", components.StateSeekFood, Urgencies{Hunger: 0.5},
			func(b *components.Behavior) { b.AtFood = true }, components.StateEat, events.SoundFeeding, true},
		{"mate in range courts", components.StateSeekMate, Urgencies{Reproduction: 0.8},
			func(b *components.Behavior) { b.NearMate = true }, components.StateCourtship, events.SoundMating, true},
		{"seeking is silent", components.StateWander, Urgencies{Hunger: 0.5}, nil, components.StateSeekFood, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCreature(ct, 1, 1, rng)
			c.Beh.State = tt.prev
			if tt.setup != nil {
				tt.setup(c.Beh)
			}
			q := events.NewQueue()

			if got := SelectState(c, tt.u, q); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			evs := q.Drain()
			sounds := events.OfKind(evs, events.KindSound)
			if !tt.has {
				if len(sounds) != 0 {
					t.Errorf("expected no sound, got %+v", sounds)
				}
				return
			}
			if len(sounds) != 1 || sounds[0].Payload.(events.SoundEmitted).Sound != tt.sound {
				t.Errorf("expected %s sound, got %+v", tt.sound, sounds)
			}
		})
	}
}

func TestSelectState_Overrides(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ct := grazerType(rng)

	t.Run("keeps eating while hungry", func(t *testing.T) {
		c := newCreature(ct, 1, 1, rng)
		c.Beh.State = components.StateEat
		c.Beh.AtFood = true
		q := events.NewQueue()
		if got := SelectState(c, Urgencies{Hunger: 0.5}, q); got != components.StateEat {
			t.Errorf("expected EAT, got %s", got)
		}
		if q.Len() != 0 {
			t.Errorf("expected no events, got %d", q.Len())
		}
	})

	t.Run("arrival flag needs a food-seeking predecessor", func(t *testing.T) {
		c := newCreature(ct, 1, 1, rng)
		c.Beh.State = components.StateWander
		c.Beh.AtFood = true
		if got := SelectState(c, Urgencies{Hunger: 0.5}, nil); got != components.StateSeekFood {
			t.Errorf("expected SEEK_FOOD, got %s", got)
		}
	})

	t.Run("leaving food clears the arrival flag", func(t *testing.T) {
		c := newCreature(ct, 1, 1, rng)
		c.Beh.State = components.StateEat
		c.Beh.AtFood = true
		if got := SelectState(c, Urgencies{Fear: 0.9, Hunger: 0.5}, nil); got != components.StateFlee {
			t.Fatalf("expected FLEE, got %s", got)
		}
		if c.Beh.AtFood {
			t.Error("AtFood should be cleared outside SEEK_FOOD/EAT")
		}
	})
}

func TestApplyStateEffects(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ct := sealType(rng)

	tests := []struct {
		state      components.State
		energy     float64
		wantEnergy float64
		wantHunger float64
	}{
		{components.StateRest, 0.5, 0.52, 0},
		{components.StateRest, 0.999, 1, 0},
		{components.StateFlee, 0.5, 0.49, 0.01},
		{components.StateFlee, 0.001, 0, 0.01},
		{components.StateEat, 0.5, 0.505, 0},
		{components.StateWander, 0.5, 0.497, 0},
		{components.StateCourtship, 0.5, 0.493, 0},
		{components.StateIdle, 0.5, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			c := newCreature(ct, 1, 1, rng)
			c.Beh.State = tt.state
			c.Vit.Energy = tt.energy
			ApplyStateEffects(c, ct, 10, nil)
			if math.Abs(c.Vit.Energy-tt.wantEnergy) > 1e-9 {
				t.Errorf("expected energy %f, got %f", tt.wantEnergy, c.Vit.Energy)
			}
			if math.Abs(c.Vit.Hunger-tt.wantHunger) > 1e-9 {
				t.Errorf("expected hunger %f, got %f", tt.wantHunger, c.Vit.Hunger)
			}
		})
	}
}

func TestApplyStateEffects_FleeHungerCapped(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ct := sealType(rng)
	maxHunger := config.Cfg().Lifecycle.MaxHunger

	tests := []struct {
		name   string
		hunger float64
		want   float64
	}{
		{"below cap", maxHunger - 0.05, maxHunger - 0.04},
		{"stops at cap", maxHunger - 0.005, maxHunger},
		{"already over", maxHunger + 0.2, maxHunger + 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCreature(ct, 1, 1, rng)
			c.Beh.State = components.StateFlee
			c.Vit.Hunger = tt.hunger
			ApplyStateEffects(c, ct, 10, nil)
			if math.Abs(c.Vit.Hunger-tt.want) > 1e-9 {
				t.Errorf("expected hunger %f, got %f", tt.want, c.Vit.Hunger)
			}
		})
	}
}

func TestApplyStateEffects_SurfaceComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	ct := sealType(rng)
	c := newCreature(ct, 1, 1, rng)
	c.Beh.State = components.StateSurfaceForAir
	c.Vit.Oxygen = 0.78
	q := events.NewQueue()

	ApplyStateEffects(c, ct, 10, q)
	if math.Abs(c.Vit.Oxygen-0.83) > 1e-9 {
		t.Errorf("expected oxygen 0.83, got %f", c.Vit.Oxygen)
	}
	if n := events.Count(q.Drain(), events.KindSurfaceComplete); n != 1 {
		t.Errorf("expected one surfaceComplete when crossing the threshold, got %d", n)
	}

	ApplyStateEffects(c, ct, 10, q)
	if q.Len() != 0 {
		t.Error("surfaceComplete should fire only on crossing")
	}

	for range 100 {
		ApplyStateEffects(c, ct, 10, q)
	}
	if c.Vit.Oxygen != 1 {
		t.Errorf("oxygen should saturate at 1, got %f", c.Vit.Oxygen)
	}
}

func TestSelectState_NilSafe(t *testing.T) {
	if got := SelectState(nil, Urgencies{Fear: 1}, events.NewQueue()); got != components.StateIdle {
		t.Errorf("nil creature should yield IDLE, got %s", got)
	}
	ApplyStateEffects(nil, nil, 1, nil)

	rng := rand.New(rand.NewSource(7))
	ct := grazerType(rng)
	c := newCreature(ct, 1, 1, rng)
	c.Vit.Dead = true
	c.Beh.State = components.StateRest
	c.Vit.Energy = 0.5
	ApplyStateEffects(c, ct, 10, nil)
	if c.Vit.Energy != 0.5 {
		t.Error("dead creature should not recover energy")
	}
}
