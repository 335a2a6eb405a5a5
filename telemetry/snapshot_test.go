package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	w, creatures := testWorld()
	w.Weather = []world.WeatherEvent{{Kind: world.WeatherRain, CenterX: 3, CenterY: 4, Radius: 5, Intensity: 0.5, Duration: 40}}
	creatures[1].Beh.State = components.StateSurfaceForAir

	snapshot := BuildSnapshot(42, 1000, w, creatures)
	snapshot.Bookmark = &Bookmark{
		Type:        BookmarkSpeciesBoom,
		Tick:        1000,
		Description: "Test bookmark",
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Version != SnapshotVersion {
		t.Errorf("Version mismatch: got %d, want %d", loaded.Version, SnapshotVersion)
	}
	if loaded.RNGSeed != 42 {
		t.Errorf("RNGSeed mismatch: got %d, want 42", loaded.RNGSeed)
	}
	if loaded.Tick != 1000 {
		t.Errorf("Tick mismatch: got %d, want 1000", loaded.Tick)
	}
	if loaded.WorldSize != 8 {
		t.Errorf("WorldSize mismatch: got %d, want 8", loaded.WorldSize)
	}
	if len(loaded.Types) != 2 {
		t.Errorf("Types count mismatch: got %d, want 2", len(loaded.Types))
	}
	if len(loaded.Creatures) != 3 {
		t.Fatalf("Creatures count mismatch: got %d, want 3", len(loaded.Creatures))
	}
	got := loaded.Creatures[1]
	if got.ID != creatures[1].Org.ID {
		t.Errorf("creature id mismatch: got %s, want %s", got.ID, creatures[1].Org.ID)
	}
	if got.State != components.StateSurfaceForAir {
		t.Errorf("state mismatch: got %s", got.State)
	}
	if got.Type != creatures[1].Org.TypeID {
		t.Errorf("type mismatch: got %s", got.Type)
	}
	if len(loaded.Weather) != 1 || loaded.Weather[0].Kind != world.WeatherRain {
		t.Errorf("weather not restored: %+v", loaded.Weather)
	}
	if loaded.Bookmark == nil {
		t.Error("Bookmark not loaded")
	} else if loaded.Bookmark.Type != BookmarkSpeciesBoom {
		t.Errorf("Bookmark type mismatch: got %s", loaded.Bookmark.Type)
	}
}

func TestBuildSnapshotSkipsDead(t *testing.T) {
	w, creatures := testWorld()
	creatures[0].Vit.Dead = true

	snap := BuildSnapshot(1, 10, w, creatures)
	if len(snap.Creatures) != 2 {
		t.Fatalf("got %d creatures, want 2 live ones", len(snap.Creatures))
	}
	for _, c := range snap.Creatures {
		if c.ID == creatures[0].Org.ID {
			t.Error("dead creature included in snapshot")
		}
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Bookmark: &Bookmark{
			Type: BookmarkPopulationCrash,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_5000_population_crash.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	snapshotNoBookmark := &Snapshot{
		Version: SnapshotVersion,
		Tick:    3000,
	}

	path, err = SaveSnapshot(snapshotNoBookmark, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected = filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}
