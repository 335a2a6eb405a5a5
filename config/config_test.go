package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.World.Size != 64 || cfg.Derived.WorldSize != 64 {
		t.Errorf("expected a 64 tile world, got %d", cfg.World.Size)
	}
	// 200ms ticks at 16ms per dt unit
	if cfg.Derived.DT != 12.5 {
		t.Errorf("expected dt 12.5, got %f", cfg.Derived.DT)
	}
	if len(cfg.Species) != 5 {
		t.Errorf("expected 5 default species, got %d", len(cfg.Species))
	}
	if i, ok := cfg.Derived.SpeciesIndex["seal"]; !ok || cfg.Species[i].Name != "seal" {
		t.Error("species index should resolve names")
	}
	if cfg.Lifecycle.MaxHunger != 5 || cfg.Reproduction.MateRange != 0.5 {
		t.Error("death and mating thresholds changed from their defaults")
	}
}

func TestLoad_OverridesMergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  size: 32
needs:
  hunger_rate: 0.002
species:
  - name: beetle
    maturity_age: 10
    max_age: 100
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.World.Size != 32 || cfg.World.TickMillis != 200 {
		t.Errorf("expected size override with default tick, got %d/%d", cfg.World.Size, cfg.World.TickMillis)
	}
	if cfg.Needs.HungerRate != 0.002 || cfg.Needs.EnergyDrain != 0.0005 {
		t.Error("partial sections should keep unset defaults")
	}
	if len(cfg.Species) != 1 {
		t.Fatalf("species list should be replaced, got %d entries", len(cfg.Species))
	}
	s := cfg.Species[0]
	if s.Size != 1 || s.Speed != 1 || s.SenseRange != 6 || s.Habitat != "land" {
		t.Errorf("missing species fields should get defaults, got %+v", s)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero size", "world:\n  size: 0\n", "world.size"},
		{"zero tick", "world:\n  tick_millis: 0\n", "world.tick_millis"},
		{"zero dt scale", "world:\n  dt_scale: 0\n", "world.dt_scale"},
		{"no year", "environment:\n  year_length: 0\n", "environment.year_length"},
		{"unnamed species", "species:\n  - max_age: 10\n", "name is required"},
		{"no fertile window", "species:\n  - name: x\n    maturity_age: 10\n    max_age: 10\n", "max_age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteYAML_Roundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Feeding.EatRate = 0.42
	cfg.Reproduction.DedupeHybrids = true

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Feeding.EatRate != 0.42 || !back.Reproduction.DedupeHybrids {
		t.Error("written values should load back")
	}
	if len(back.Species) != len(cfg.Species) || back.Derived.DT != cfg.Derived.DT {
		t.Error("roundtrip lost species or derived values")
	}
}

func TestInitAndSet(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	MustInit("")
	cfg := Cfg()
	if cfg == nil || cfg.World.Size != 64 {
		t.Fatal("MustInit should install defaults")
	}

	custom := *cfg
	custom.World.Size = 8
	Set(&custom)
	if Cfg().World.Size != 8 {
		t.Error("Set should replace the global config")
	}
}
