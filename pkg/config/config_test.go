package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	data := []byte(`
floors: 12
cars:
  - id: 1
    startFloor: 0
  - id: 2
    startFloor: 5
`)
	b, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if b.Floors != 12 || len(b.Cars) != 2 {
		t.Fatalf("Unexpected building %+v", b)
	}
	if b.Cars[1].ID != 2 || b.Cars[1].StartFloor != 5 {
		t.Errorf("Unexpected second car %+v", b.Cars[1])
	}

	cfg := b.ElevatorConfig()
	if cfg.Floors != 12 || len(cfg.Cars) != 2 || cfg.Cars[1].StartFloor != 5 {
		t.Errorf("Unexpected engine config %+v", cfg)
	}
}

func TestParse_UnknownField(t *testing.T) {
	if _, err := Parse([]byte("floors: 3\nlobby: 1\n")); err == nil {
		t.Error("Expected error for unknown field, got nil")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "building.yaml")
	if err := os.WriteFile(path, []byte("floors: 4\ncars:\n  - id: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Floors != 4 || b.Cars[0].ID != 7 {
		t.Errorf("Unexpected building %+v", b)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoadApp_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BUILDING_CONFIG", "")
	t.Setenv("TICK_INTERVAL", "")

	cfg, err := LoadApp(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadApp failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.TickInterval != time.Second {
		t.Errorf("Unexpected defaults %+v", cfg)
	}

	b, err := cfg.LoadBuilding()
	if err != nil || b.Floors != DefaultBuilding().Floors {
		t.Errorf("Expected default building, got %+v (%v)", b, err)
	}
}

func TestLoadApp_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TICK_INTERVAL", "250ms")

	cfg, err := LoadApp(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadApp failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestLoadApp_InvalidTick(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "soon")
	if _, err := LoadApp(filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Error("Expected error for bad TICK_INTERVAL, got nil")
	}
}
