package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/telemetry"
)

func TestRecorder_WritesWindows(t *testing.T) {
	withConfig(t, func(c *config.Config) { c.Telemetry.StatsWindow = 10 })
	s, ct := newTestSim(t, 5)
	mustSpawn(t, s, ct, 5, 5)
	mustSpawn(t, s, ct, 9, 9)

	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(s, out, "", false)
	var windows []telemetry.WindowStats
	rec.OnStats = func(w telemetry.WindowStats) { windows = append(windows, w) }

	for i := 0; i < 25; i++ {
		if err := rec.Record(s.Step(config.Cfg().Derived.DT)); err != nil {
			t.Fatal(err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	if len(windows) != 2 {
		t.Fatalf("expected 2 flushed windows, got %d", len(windows))
	}
	if windows[0].WindowEndTick != 10 || windows[1].WindowEndTick != 20 {
		t.Errorf("unexpected window ends %d, %d", windows[0].WindowEndTick, windows[1].WindowEndTick)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("missing header: %q", lines[0])
	}
}

func TestRecorder_NilOutput(t *testing.T) {
	s, _ := newTestSim(t, 5)
	rec := NewRecorder(s, nil, "", false)
	for i := 0; i < 3; i++ {
		if err := rec.Record(s.Step(1)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRecorder_SaveSnapshot(t *testing.T) {
	s, ct := newTestSim(t, 5)
	mustSpawn(t, s, ct, 5, 5)
	s.Step(1)

	rec := NewRecorder(s, nil, t.TempDir(), false)
	bm := &telemetry.Bookmark{Type: telemetry.BookmarkStableEcosystem}
	path, err := rec.SaveSnapshot(bm)
	if err != nil {
		t.Fatal(err)
	}

	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 1 || len(snap.Creatures) != 1 {
		t.Errorf("unexpected snapshot: tick %d, %d creatures", snap.Tick, len(snap.Creatures))
	}
	if snap.Bookmark == nil || snap.Bookmark.Type != telemetry.BookmarkStableEcosystem {
		t.Error("bookmark should be carried into the snapshot")
	}
}
