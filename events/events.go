// Package events defines the outbound event stream a tick produces.
package events

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

// Kind identifies an event's payload type.
type Kind uint8

const (
	KindStateChange Kind = iota
	KindSound
	KindBirth
	KindHybridCreated
	KindSurfaceComplete
	KindDeath
	KindSpeciesEvolved
)

var kindNames = [...]string{
	"stateChange", "sound", "birth", "hybridCreated", "surfaceComplete", "death", "speciesEvolved",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by its wire name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Sound tags the context of a sound event.
type Sound uint8

const (
	SoundAlarm Sound = iota
	SoundMating
	SoundFeeding
	SoundSurfacing
)

var soundNames = [...]string{"alarm", "mating", "feeding", "surfacing"}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// MarshalText encodes the sound by name.
func (s Sound) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// SoundFor returns the sound that accompanies entering state, if any.
func SoundFor(state components.State) (Sound, bool) {
	switch state {
	case components.StateFlee:
		return SoundAlarm, true
	case components.StateCourtship:
		return SoundMating, true
	case components.StateEat:
		return SoundFeeding, true
	case components.StateSurfaceForAir:
		return SoundSurfacing, true
	}
	return 0, false
}

// Payload is implemented by every event body.
type Payload interface {
	Kind() Kind
}

// StateChange reports a behaviour transition.
type StateChange struct {
	Creature components.CreatureID `json:"creatureId"`
	From     components.State      `json:"from"`
	To       components.State      `json:"to"`
}

func (StateChange) Kind() Kind { return KindStateChange }

// SoundEmitted accompanies selected state changes.
type SoundEmitted struct {
	Creature components.CreatureID `json:"creatureId"`
	Sound    Sound                 `json:"sound"`
	X        float64               `json:"x"`
	Y        float64               `json:"y"`
}

func (SoundEmitted) Kind() Kind { return KindSound }

// Birth reports a new creature from reproduction.
type Birth struct {
	Creature components.CreatureID `json:"creatureId"`
	Type     world.TypeID          `json:"typeId"`
	Parent1  components.CreatureID `json:"parent1"`
	Parent2  components.CreatureID `json:"parent2"`
	X        float64               `json:"x"`
	Y        float64               `json:"y"`
}

func (Birth) Kind() Kind { return KindBirth }

// HybridCreated reports a newly registered hybrid type.
type HybridCreated struct {
	Type        world.TypeID `json:"typeId"`
	Name        string       `json:"name"`
	ParentType1 world.TypeID `json:"parentType1"`
	ParentType2 world.TypeID `json:"parentType2"`
	Generation  int          `json:"generation"`
}

func (HybridCreated) Kind() Kind { return KindHybridCreated }

// SurfaceComplete reports an air-breather that has refilled its oxygen.
type SurfaceComplete struct {
	Creature components.CreatureID `json:"creatureId"`
	Oxygen   float64               `json:"oxygen"`
}

func (SurfaceComplete) Kind() Kind { return KindSurfaceComplete }

// Death reports a creature flagged dead this tick.
type Death struct {
	Creature components.CreatureID `json:"creatureId"`
	Type     world.TypeID          `json:"typeId"`
	Cause    components.DeathCause `json:"cause"`
}

func (Death) Kind() Kind { return KindDeath }

// SpeciesEvolved reports a type cloned by auto-evolution.
type SpeciesEvolved struct {
	Type       world.TypeID `json:"typeId"`
	Name       string       `json:"name"`
	ParentType world.TypeID `json:"parentType"`
	Generation int          `json:"generation"`
	Founders   int          `json:"founders"`
}

func (SpeciesEvolved) Kind() Kind { return KindSpeciesEvolved }

// Event is one entry of a tick's outbound batch.
type Event struct {
	Tick    int32   `json:"tick"`
	Kind    Kind    `json:"type"`
	Payload Payload `json:"payload"`
}
