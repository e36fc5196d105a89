package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NX <= 0 || cfg.NY <= 0 || cfg.DX <= 0 {
		t.Error("default grid geometry must be positive")
	}
	if cfg.Dt <= 0 || cfg.TStop <= cfg.T {
		t.Error("default timing must be runnable")
	}
	if cfg.Bed.Profile == "" {
		t.Error("default bed profile missing")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NX = 33
	cfg.MassBalance.ELA = 2100
	cfg.FlowLaw.CFL = 0.1

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.NX != 33 {
		t.Errorf("nx: want 33, got %d", loaded.NX)
	}
	if loaded.MassBalance.ELA != 2100 {
		t.Errorf("ela: want 2100, got %f", loaded.MassBalance.ELA)
	}
	if loaded.FlowLaw.CFL != 0.1 {
		t.Errorf("cfl: want 0.1, got %f", loaded.FlowLaw.CFL)
	}
}

func TestLoadAppliesDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("nx: 10\nny: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.NX != 10 || cfg.NY != 12 {
		t.Errorf("explicit keys lost: %dx%d", cfg.NX, cfg.NY)
	}
	if cfg.DX != DefaultDX {
		t.Errorf("missing dx should default to %f, got %f", DefaultDX, cfg.DX)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	for scenario, group := range Presets {
		for name, cfg := range group {
			if cfg.NX <= 0 || cfg.NY <= 0 || cfg.DX <= 0 || cfg.Dt <= 0 || cfg.TStop <= cfg.T {
				t.Errorf("preset %s/%s is not runnable", scenario, name)
			}
		}
	}

	if GetPreset("valley", "spinup") == nil {
		t.Error("valley/spinup preset missing")
	}
	if GetPreset("valley", "nope") != nil {
		t.Error("unknown preset should be nil")
	}
	if GetPreset("nope", "spinup") != nil {
		t.Error("unknown scenario should be nil")
	}
	if len(ListPresets("icecap")) == 0 {
		t.Error("icecap presets missing")
	}
}
