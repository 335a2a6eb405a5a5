package world

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

var (
	// ErrTypeNotFound is returned when a creature type id is not registered.
	ErrTypeNotFound = errors.New("creature type not found")
	// ErrDuplicateType is returned when registering an id twice.
	ErrDuplicateType = errors.New("creature type already registered")
)

// TypeID identifies a creature type.
type TypeID uuid.UUID

// NilTypeID is the zero type id.
var NilTypeID TypeID

// NewTypeID draws a random type id from r.
func NewTypeID(r io.Reader) TypeID {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		// Only fails if r is exhausted; fall back to the global source.
		return TypeID(uuid.New())
	}
	return TypeID(id)
}

func (id TypeID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is unset.
func (id TypeID) IsNil() bool { return id == NilTypeID }

// MarshalText encodes the id in canonical uuid form.
func (id TypeID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical uuid.
func (id *TypeID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// Diet is what a creature type eats.
type Diet uint8

const (
	DietHerbivore Diet = iota
	DietCarnivore
	DietOmnivore
)

func (d Diet) String() string {
	switch d {
	case DietHerbivore:
		return "herbivore"
	case DietCarnivore:
		return "carnivore"
	case DietOmnivore:
		return "omnivore"
	}
	return "unknown"
}

// ParseDiet converts a config string to a Diet.
func ParseDiet(s string) (Diet, error) {
	switch s {
	case "herbivore", "":
		return DietHerbivore, nil
	case "carnivore":
		return DietCarnivore, nil
	case "omnivore":
		return DietOmnivore, nil
	}
	return 0, fmt.Errorf("unknown diet %q", s)
}

// Habitat is where a creature type lives.
type Habitat uint8

const (
	HabitatLand Habitat = iota
	HabitatWater
)

func (h Habitat) String() string {
	if h == HabitatWater {
		return "water"
	}
	return "land"
}

// ParseHabitat converts a config string to a Habitat.
func ParseHabitat(s string) (Habitat, error) {
	switch s {
	case "land", "":
		return HabitatLand, nil
	case "water":
		return HabitatWater, nil
	}
	return 0, fmt.Errorf("unknown habitat %q", s)
}

// CreatureType is a species template shared by all its members.
type CreatureType struct {
	ID         TypeID
	Name       string
	Diet       Diet
	Habitat    Habitat
	IsPredator bool

	Size               float64
	Speed              float64
	SenseRange         float64
	PreferredTemp      float64
	PreferredWaterTemp float64
	PreferredDepth     float64
	NeedsAir           bool
	MaturityAge        float64
	MaxAge             float64

	// Lineage
	Generation    int
	ParentTypeID  TypeID
	Parent2TypeID TypeID
	IsHybrid      bool

	// Evolution and spawning bookkeeping
	EvoScore   float64
	SpawnLimit int
	Spawned    int
}

// Aquatic reports whether members live in water.
func (ct *CreatureType) Aquatic() bool {
	return ct.Habitat == HabitatWater
}

// GrazesTiles reports whether members gain food from tiles.
func (ct *CreatureType) GrazesTiles() bool {
	return ct.Diet != DietCarnivore
}

// IsThreatTo reports whether a member of ct with effective size threatSize
// frightens a creature of victimSize. Threats must be carnivores or
// predators larger than ratio × the victim's size.
func (ct *CreatureType) IsThreatTo(threatSize, victimSize, ratio float64) bool {
	if ct.Diet != DietCarnivore && !ct.IsPredator {
		return false
	}
	return threatSize > victimSize*ratio
}

// pairKey is an unordered pair of parent types.
type pairKey struct{ a, b TypeID }

func makePairKey(a, b TypeID) pairKey {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pairKey{a, b}
}

// TypeRegistry stores creature types in registration order.
type TypeRegistry struct {
	byID    map[TypeID]*CreatureType
	order   []TypeID
	hybrids map[pairKey]TypeID
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byID:    make(map[TypeID]*CreatureType),
		hybrids: make(map[pairKey]TypeID),
	}
}

// Register adds a type. The type must carry a non-nil id.
func (r *TypeRegistry) Register(ct *CreatureType) error {
	if ct == nil {
		return fmt.Errorf("register: %w", ErrTypeNotFound)
	}
	if _, ok := r.byID[ct.ID]; ok {
		return fmt.Errorf("register %s: %w", ct.Name, ErrDuplicateType)
	}
	r.byID[ct.ID] = ct
	r.order = append(r.order, ct.ID)
	return nil
}

// Lookup returns the type for id, if registered.
func (r *TypeRegistry) Lookup(id TypeID) (*CreatureType, bool) {
	if r == nil {
		return nil, false
	}
	ct, ok := r.byID[id]
	return ct, ok
}

// Get is Lookup with an error for API callers.
func (r *TypeRegistry) Get(id TypeID) (*CreatureType, error) {
	ct, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("type %s: %w", id, ErrTypeNotFound)
	}
	return ct, nil
}

// All returns the registered types in registration order.
func (r *TypeRegistry) All() []*CreatureType {
	out := make([]*CreatureType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int { return len(r.order) }

// HybridFor returns the hybrid type already registered for a parent pair.
func (r *TypeRegistry) HybridFor(a, b TypeID) (*CreatureType, bool) {
	id, ok := r.hybrids[makePairKey(a, b)]
	if !ok {
		return nil, false
	}
	return r.Lookup(id)
}

// RecordHybrid remembers hybrid as the offspring type of the pair (a, b).
func (r *TypeRegistry) RecordHybrid(a, b TypeID, hybrid TypeID) {
	r.hybrids[makePairKey(a, b)] = hybrid
}
