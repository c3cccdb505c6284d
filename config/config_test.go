package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/warp/presence-engine/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
area:
  center:
    lat: 18.7883
    lng: 98.9853
  radius_km: 1.5
late_cutoff:
  hour: 9
  minute: 0
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.DBPath != "presence.db" {
		t.Errorf("db_path should keep default, got %q", cfg.Server.DBPath)
	}
	if cfg.Area.RadiusKm != 1.5 || cfg.Area.Center.Lat != 18.7883 {
		t.Errorf("area = %+v", cfg.Area)
	}
	if cfg.LateCutoff.Minutes() != 9*60 {
		t.Errorf("cutoff = %+v, want 09:00", cfg.LateCutoff)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad port":   "server:\n  port: -1\n",
		"bad radius": "area:\n  radius_km: 0\n",
		"bad cutoff": "late_cutoff:\n  hour: 25\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, content)); err == nil {
				t.Error("Load() accepted invalid config")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() should fail on a missing file")
	}
}
