package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/events"
	"github.com/pthm-cable/critters/world"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	// Nil manager is a no-op.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_TelemetryHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 600), Population: i}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}
}

func TestOutputManager_WriteEventsFiltersLineage(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	evs := []events.Event{
		{Tick: 1, Kind: events.KindStateChange, Payload: events.StateChange{From: components.StateIdle, To: components.StateWander}},
		{Tick: 1, Kind: events.KindDeath, Payload: events.Death{Cause: components.CauseOldAge}},
		{Tick: 1, Kind: events.KindHybridCreated, Payload: events.HybridCreated{Name: "a-b Hybrid", Generation: 1, Type: world.NilTypeID}},
	}
	if err := om.WriteEvents(evs); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "lineage.csv"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "stateChange") {
		t.Error("state changes should not be written to the lineage log")
	}
	if !strings.Contains(out, "old_age") {
		t.Error("death cause missing from lineage log")
	}
	if !strings.Contains(out, "a-b Hybrid gen 1") {
		t.Error("hybrid record missing from lineage log")
	}
}
