package engine

import (
	"fmt"
	"os"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/bounds"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "GLYCOSTATS"

// LoadConfig reads the yaml file at path, when given, then applies the
// GLYCOSTATS_* environment overrides and fills in defaults.
func LoadConfig(path string) (defs.Config, error) {
	var cfg defs.Config

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("unable to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to parse config file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to process environment: %w", err)
	}

	if cfg.Glucose.Unit == "" {
		cfg.Glucose.Unit = defs.MgdL
	}
	if cfg.Glucose.DiabeticType == "" {
		cfg.Glucose.DiabeticType = defs.DT1DT2
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defs.DefaultDB
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = defs.DefaultAddress
	}

	if !cfg.Glucose.Unit.Valid() {
		return cfg, fmt.Errorf("unknown glucose unit: %s", cfg.Glucose.Unit)
	}
	if _, err := GlucoseBounds(cfg.Glucose); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// GlucoseBounds is the configured bounds override, or the defaults of the
// configured profile.
func GlucoseBounds(gc defs.GlucoseConfig) (defs.BgBounds, error) {
	if gc.Bounds != nil {
		if err := bounds.Validate(*gc.Bounds); err != nil {
			return defs.BgBounds{}, err
		}
		return *gc.Bounds, nil
	}
	return bounds.Get(gc.DiabeticType, gc.Unit)
}
