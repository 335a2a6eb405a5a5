package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the world state at one tick for offline inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldSize int     `json:"world_size"`
	WorldTime float64 `json:"world_time"`
	Tick      int32   `json:"tick"`

	Types     []TypeState          `json:"types"`
	Creatures []CreatureState      `json:"creatures"`
	Weather   []world.WeatherEvent `json:"weather"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// TypeState is the serialized form of a creature type.
type TypeState struct {
	ID          world.TypeID `json:"id"`
	Name        string       `json:"name"`
	Diet        string       `json:"diet"`
	Habitat     string       `json:"habitat"`
	Size        float64      `json:"size"`
	Speed       float64      `json:"speed"`
	MaturityAge float64      `json:"maturity_age"`
	MaxAge      float64      `json:"max_age"`
	Generation  int          `json:"generation"`
	Parent1     world.TypeID `json:"parent1"`
	Parent2     world.TypeID `json:"parent2"`
	IsHybrid    bool         `json:"is_hybrid"`
	EvoScore    float64      `json:"evo_score"`
}

// CreatureState holds one creature's state.
type CreatureState struct {
	ID   components.CreatureID `json:"id"`
	Type world.TypeID          `json:"type"`

	// Position and movement
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VelX float64 `json:"vel_x"`
	VelY float64 `json:"vel_y"`

	// Needs
	Hunger float64 `json:"hunger"`
	Energy float64 `json:"energy"`
	Oxygen float64 `json:"oxygen"`
	Age    float64 `json:"age"`
	Health float64 `json:"health"`

	State       components.State       `json:"state"`
	Stage       components.LifeStage   `json:"stage"`
	Generation  int                    `json:"generation"`
	Personality components.Personality `json:"personality"`
}

// BuildSnapshot captures the types, live creatures and weather of w.
func BuildSnapshot(seed int64, tick int32, w *world.World, creatures []components.Creature) *Snapshot {
	snap := &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: seed,
		Tick:    tick,
	}
	if w != nil {
		snap.WorldSize = int(w.Size())
		snap.WorldTime = w.Time
		snap.Weather = append(snap.Weather, w.Weather...)
		for _, ct := range w.Types.All() {
			snap.Types = append(snap.Types, TypeState{
				ID:          ct.ID,
				Name:        ct.Name,
				Diet:        ct.Diet.String(),
				Habitat:     ct.Habitat.String(),
				Size:        ct.Size,
				Speed:       ct.Speed,
				MaturityAge: ct.MaturityAge,
				MaxAge:      ct.MaxAge,
				Generation:  ct.Generation,
				Parent1:     ct.ParentTypeID,
				Parent2:     ct.Parent2TypeID,
				IsHybrid:    ct.IsHybrid,
				EvoScore:    ct.EvoScore,
			})
		}
	}

	for i := range creatures {
		c := &creatures[i]
		if !c.Alive() {
			continue
		}
		snap.Creatures = append(snap.Creatures, CreatureState{
			ID:          c.Org.ID,
			Type:        c.Org.TypeID,
			X:           c.Pos.X,
			Y:           c.Pos.Y,
			VelX:        c.Vel.X,
			VelY:        c.Vel.Y,
			Hunger:      c.Vit.Hunger,
			Energy:      c.Vit.Energy,
			Oxygen:      c.Vit.Oxygen,
			Age:         c.Vit.Age,
			Health:      c.Vit.Health,
			State:       c.Beh.State,
			Stage:       c.Beh.LifeStage,
			Generation:  c.Org.Generation,
			Personality: c.Org.Personality,
		})
	}
	return snap
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
