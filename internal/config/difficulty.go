package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return "", nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// BaseIntervalForPreset returns the starting tick interval for a preset.
// Fixed keeps whatever the configuration already has.
func BaseIntervalForPreset(preset DifficultyPreset) time.Duration {
	switch preset {
	case DifficultyEasy:
		return 260 * time.Millisecond
	case DifficultyHard:
		return 150 * time.Millisecond
	default:
		return 200 * time.Millisecond
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Speed.IntervalStep = 0
		return
	}

	cfg.Speed.BaseInterval = BaseIntervalForPreset(preset)
	if cfg.Speed.MinInterval > cfg.Speed.BaseInterval {
		cfg.Speed.MinInterval = cfg.Speed.BaseInterval
	}
	if cfg.Speed.IntervalStep == 0 {
		cfg.Speed.IntervalStep = 22 * time.Millisecond
	}
}
