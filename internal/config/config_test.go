package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	want := Default()
	if got.GameDurationSeconds != want.GameDurationSeconds || got.MovementTickHz != want.MovementTickHz {
		t.Fatalf("Load(\"\") = %+v, want defaults", got)
	}
	if len(got.SpawnZones) == 0 {
		t.Fatal("defaults must include spawn zones")
	}
}

func TestLoadBackfillsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("preparation_seconds: 5\nbase_speed: 120\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.PreparationSeconds != 5 {
		t.Errorf("preparation = %d, want 5 from the file", got.PreparationSeconds)
	}
	if got.BaseSpeed != 120 {
		t.Errorf("base_speed = %v, want 120 from the file", got.BaseSpeed)
	}
	if got.GameDurationSeconds != Default().GameDurationSeconds {
		t.Errorf("game_duration = %d, want backfilled default", got.GameDurationSeconds)
	}
	if len(got.SpawnZones) == 0 {
		t.Error("spawn zones should be backfilled when absent")
	}
}

func TestLoadRejectsInvalidBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("resource_min: 50\nresource_max: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("resource_min above resource_max must be rejected")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing explicit tuning path must be an error")
	}
}

func TestZonesConversion(t *testing.T) {
	tn := Default()
	zones := tn.Zones()
	if len(zones) != len(tn.SpawnZones) {
		t.Fatalf("zones = %d, want %d", len(zones), len(tn.SpawnZones))
	}
	if zones[0].Name != tn.SpawnZones[0].Name || zones[0].Radius != tn.SpawnZones[0].Radius {
		t.Fatalf("zone conversion mismatch: %+v vs %+v", zones[0], tn.SpawnZones[0])
	}
}

func TestLoadEnvDefaultsPort(t *testing.T) {
	t.Setenv("PORT", "")
	if e := LoadEnv(); e.Port != "8080" {
		t.Fatalf("port = %s, want default 8080", e.Port)
	}
	t.Setenv("PORT", "9999")
	if e := LoadEnv(); e.Port != "9999" {
		t.Fatalf("port = %s, want 9999", e.Port)
	}
}
