package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/critters/config"
)

func TestParamVector_NormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))

	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-9 {
			t.Errorf("%s: %f -> %f", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVector_DefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-9 {
			t.Errorf("%s: config has %f, spec default %f", spec.Path, got[i], spec.Default)
		}
	}
}

func TestParamVector_ApplyClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	values := pv.DefaultVector()
	values[0] = -1 // below land_regen_rate minimum
	pv.ApplyToConfig(cfg, values)

	if cfg.Environment.LandRegenRate != pv.Specs[0].Min {
		t.Errorf("LandRegenRate = %f, want clamped to %f", cfg.Environment.LandRegenRate, pv.Specs[0].Min)
	}
	if cfg.Feeding.EatRate != 0.15 {
		t.Errorf("EatRate = %f, want default 0.15", cfg.Feeding.EatRate)
	}
}
