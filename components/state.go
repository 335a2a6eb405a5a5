package components

import (
	"fmt"
	"slices"
)

// State is a creature's behavioural mode.
type State uint8

const (
	StateIdle State = iota
	StateWander
	StateSeekFood
	StateEat
	StateFlee
	StateSeekMate
	StateCourtship
	StateReproduce
	StateRest
	StateSeekShelter
	StateSurfaceForAir
	StateSeekDepth
	StateSchool
	// Reserved for non-creature agents.
	StateGuard
	StateGather
	StateReturnHome
)

var stateNames = [...]string{
	"IDLE", "WANDER", "SEEK_FOOD", "EAT", "FLEE", "SEEK_MATE", "COURTSHIP",
	"REPRODUCE", "REST", "SEEK_SHELTER", "SURFACE_FOR_AIR", "SEEK_DEPTH",
	"SCHOOL", "GUARD", "GATHER", "RETURN_HOME",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	i := slices.Index(stateNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown state %q", b)
	}
	*s = State(i)
	return nil
}

// Seeking reports whether the state moves toward a searched target.
func (s State) Seeking() bool {
	switch s {
	case StateSeekFood, StateSeekMate, StateSeekShelter, StateSeekDepth:
		return true
	}
	return false
}

// LifeStage is derived from age every tick.
type LifeStage uint8

const (
	StageJuvenile LifeStage = iota
	StageYoungAdult
	StageAdult
	StageElderly
)

var stageNames = [...]string{"juvenile", "young_adult", "adult", "elderly"}

func (l LifeStage) String() string {
	if int(l) < len(stageNames) {
		return stageNames[l]
	}
	return "unknown"
}

// MarshalText encodes the stage by name.
func (l LifeStage) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText decodes a stage name.
func (l *LifeStage) UnmarshalText(b []byte) error {
	i := slices.Index(stageNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown life stage %q", b)
	}
	*l = LifeStage(i)
	return nil
}

// DeathCause records why a creature died.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseOldAge
	CauseStarvation
	CauseHealth
	CauseStranded
	CauseTemperature
)

var causeNames = [...]string{"", "old_age", "starvation", "health", "stranded", "temperature"}

func (d DeathCause) String() string {
	if int(d) < len(causeNames) {
		return causeNames[d]
	}
	return "unknown"
}

// MarshalText encodes the cause by name.
func (d DeathCause) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
