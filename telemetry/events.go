// Package telemetry provides population health tracking, bookmarking, and snapshots.
package telemetry

import (
	"strconv"

	"github.com/pthm-cable/critters/events"
)

// EventRecord is the flat CSV form of one outbound event.
type EventRecord struct {
	Tick     int32   `csv:"tick"`
	Kind     string  `csv:"kind"`
	Creature string  `csv:"creature"`
	Type     string  `csv:"type"`
	Other    string  `csv:"other"` // second party: mate, parent type or cause
	Detail   string  `csv:"detail"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
}

// Lineage reports whether an event kind belongs in the lineage log.
// State changes and sounds are too frequent to record.
func Lineage(k events.Kind) bool {
	switch k {
	case events.KindBirth, events.KindDeath, events.KindHybridCreated, events.KindSpeciesEvolved:
		return true
	}
	return false
}

// NewEventRecord flattens an event.
func NewEventRecord(ev events.Event) EventRecord {
	r := EventRecord{Tick: ev.Tick, Kind: ev.Kind.String()}

	switch p := ev.Payload.(type) {
	case events.StateChange:
		r.Creature = p.Creature.String()
		r.Other = p.From.String()
		r.Detail = p.To.String()
	case events.SoundEmitted:
		r.Creature = p.Creature.String()
		r.Detail = p.Sound.String()
		r.X, r.Y = p.X, p.Y
	case events.Birth:
		r.Creature = p.Creature.String()
		r.Type = p.Type.String()
		r.Other = p.Parent2.String()
		r.Detail = p.Parent1.String()
		r.X, r.Y = p.X, p.Y
	case events.HybridCreated:
		r.Type = p.Type.String()
		r.Other = p.ParentType1.String() + "+" + p.ParentType2.String()
		r.Detail = p.Name + " gen " + strconv.Itoa(p.Generation)
	case events.SurfaceComplete:
		r.Creature = p.Creature.String()
		r.Detail = strconv.FormatFloat(p.Oxygen, 'f', 3, 64)
	case events.Death:
		r.Creature = p.Creature.String()
		r.Type = p.Type.String()
		r.Other = p.Cause.String()
	case events.SpeciesEvolved:
		r.Type = p.Type.String()
		r.Other = p.ParentType.String()
		r.Detail = p.Name + " gen " + strconv.Itoa(p.Generation) + " founders " + strconv.Itoa(p.Founders)
	}
	return r
}
