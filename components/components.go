// Package components defines ECS components for the simulation.
package components

import (
	"io"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/critters/world"
)

// CreatureID is a creature's stable identifier, independent of ECS storage.
type CreatureID uuid.UUID

// NilCreatureID marks an absent parent or target.
var NilCreatureID CreatureID

// NewCreatureID draws a random id from r.
func NewCreatureID(r io.Reader) CreatureID {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return CreatureID(uuid.New())
	}
	return CreatureID(id)
}

func (id CreatureID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is unset.
func (id CreatureID) IsNil() bool { return id == NilCreatureID }

// MarshalText encodes the id in canonical uuid form.
func (id CreatureID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical uuid.
func (id *CreatureID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = CreatureID(u)
	return nil
}

// Personality holds birth-fixed behavioural traits, each in [0.1, 1].
type Personality struct {
	Boldness   float64 `inspect:"bar"`
	Activity   float64 `inspect:"bar"`
	Curiosity  float64 `inspect:"bar"`
	Socialness float64 `inspect:"bar"`
}

// Organism bundles identity, lineage and personality.
type Organism struct {
	ID          CreatureID   `inspect:"label"`
	TypeID      world.TypeID `inspect:"label"`
	Generation  int          `inspect:"label"`
	Parent1     CreatureID   `inspect:"skip"`
	Parent2     CreatureID   `inspect:"skip"`
	Personality Personality  `inspect:"skip"`
	Phase       float64      `inspect:"skip"` // Curved-path phase offset drawn at birth
}

// Vitals tracks needs and health.
type Vitals struct {
	Hunger        float64 `inspect:"bar,max:5"` // Unbounded above; starvation past the configured ceiling
	Energy        float64 `inspect:"bar"`       // 0..1
	Oxygen        float64 `inspect:"bar"`       // 0..1, meaningful for aquatic types
	Age           float64 `inspect:"label,fmt:%.1f"`
	Health        float64 `inspect:"bar,max:100"`
	ReproCooldown float64 `inspect:"label,fmt:%.0f"`
	ReproDrive    float64 `inspect:"bar"`
	Dead          bool    `inspect:"bool"`
	DeathCause    DeathCause
}

// Target is an optional movement destination.
type Target struct {
	X, Y  float64
	Valid bool
}

// Set points the target at (x, y).
func (t *Target) Set(x, y float64) {
	t.X, t.Y, t.Valid = x, y, true
}

// Clear removes the target.
func (t *Target) Clear() {
	*t = Target{}
}

// Behavior holds the state machine and movement bookkeeping.
type Behavior struct {
	State           State     `inspect:"label"`
	LifeStage       LifeStage `inspect:"label"`
	SizeMultiplier  float64   `inspect:"label,fmt:%.2f"`
	SpeedMultiplier float64   `inspect:"label,fmt:%.2f"`
	Target          Target    `inspect:"skip"`
	AtFood          bool      `inspect:"bool"` // Arrived at a food tile; consumed by the next state selection
	NearMate        bool      `inspect:"bool"` // An eligible mate is within range
	Speed           float64   `inspect:"label,fmt:%.3f"`
	Moving          bool      `inspect:"bool"`
}

// Creature is a transient view over one entity's components, built per tick.
// Pointers refer to ECS storage and are only valid until the next structural change.
type Creature struct {
	Entity ecs.Entity
	Pos    *Position
	Vel    *Velocity
	Org    *Organism
	Vit    *Vitals
	Beh    *Behavior
}

// Alive reports whether the view refers to a live creature.
func (c *Creature) Alive() bool {
	return c != nil && c.Vit != nil && !c.Vit.Dead
}

// EffectiveSize returns the type size scaled by the life stage multiplier.
func (c *Creature) EffectiveSize(ct *world.CreatureType) float64 {
	m := c.Beh.SizeMultiplier
	if m == 0 {
		m = 1
	}
	return ct.Size * m
}
