// Package config holds the simulation core's YAML-backed tunables: tick
// quantum, check statistics, advancement thresholds, and default
// containment caps.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulation holds every tunable the action lifecycle and its supporting
// packages read at runtime. Nothing here configures transport, storage,
// or world content — those are outside this module's scope.
type Simulation struct {
	// TickQuantumSeconds is how far one tick advances the world clock.
	TickQuantumSeconds int `yaml:"tick_quantum_seconds"`

	// CheckStandardDeviation is the standard deviation used when sampling
	// a stat/skill check's normal distribution.
	CheckStandardDeviation float64 `yaml:"check_standard_deviation"`

	// AdvancementThresholdRatio is the ratio by which each XP threshold
	// grows over the previous one.
	AdvancementThresholdRatio float64 `yaml:"advancement_threshold_ratio"`
	// FirstAdvancementThreshold is the XP required to earn the first
	// advancement point.
	FirstAdvancementThreshold int64 `yaml:"first_advancement_threshold"`

	// DefaultHands is how many hands a character has available for
	// equipping, absent an explicit EquippedItems override.
	DefaultHands int `yaml:"default_hands"`
	// DefaultBodyPartThickness is the per-body-part thickness cap used
	// when a character has no explicit WornItems override.
	DefaultBodyPartThickness float64 `yaml:"default_body_part_thickness"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Simulation config with the documented defaults (tick
// quantum, check standard deviation) plus sane defaults for everything
// left otherwise unconstrained.
func Default() Simulation {
	return Simulation{
		TickQuantumSeconds:        15,
		CheckStandardDeviation:    4.0,
		AdvancementThresholdRatio: 1.5,
		FirstAdvancementThreshold: 100,
		DefaultHands:              2,
		DefaultBodyPartThickness:  1.0,
		LogLevel:                  "info",
	}
}

// Load reads a Simulation config from a YAML file, starting from
// Default() so fields omitted in the file keep their default value. A
// missing file is not an error — it just yields the defaults.
func Load(path string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
