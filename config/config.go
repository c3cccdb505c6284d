/*
Package config loads process configuration from a YAML file.

PURPOSE:
  The authorized work area and the late cutoff are policy, not code:
  operations can move the geofence or shift the threshold without a
  rebuild. Config is loaded once at startup and read-only afterwards.

FILE FORMAT:
  server:
    port: 8080
    db_path: presence.db
  area:
    center:
      lat: 13.7563
      lng: 100.5018
    radius_km: 0.5
  late_cutoff:
    hour: 8
    minute: 30

  Every field has a sensible default; an absent file yields the full
  default configuration.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/geo"
)

// Config is the complete process configuration.
type Config struct {
	Server     Server                `yaml:"server"`
	Area       geo.AreaConfig        `yaml:"area"`
	LateCutoff attendance.LateCutoff `yaml:"late_cutoff"`
}

// Server holds HTTP and storage settings.
type Server struct {
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: Server{Port: 8080, DBPath: "presence.db"},
		Area: geo.AreaConfig{
			Center:   geo.Coordinate{Lat: 13.7563, Lng: 100.5018},
			RadiusKm: 0.5,
		},
		LateCutoff: attendance.DefaultLateCutoff,
	}
}

// Load reads a YAML config file, filling omitted fields from Default.
// An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Area.RadiusKm <= 0 {
		return fmt.Errorf("area radius must be positive, got %v", c.Area.RadiusKm)
	}
	if c.LateCutoff.Hour < 0 || c.LateCutoff.Hour > 23 || c.LateCutoff.Minute < 0 || c.LateCutoff.Minute > 59 {
		return fmt.Errorf("invalid late cutoff %02d:%02d", c.LateCutoff.Hour, c.LateCutoff.Minute)
	}
	return nil
}
