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

// ParsePreset converts a flag value into a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset modifies the tick interval and speed policy for a preset.
// Normal keeps the file's timing and only turns speed scaling on.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Speed.Enabled = false
		return
	}

	cfg.Speed.Enabled = true
	switch preset {
	case DifficultyEasy:
		cfg.Timing.TickInterval = Duration(150 * time.Millisecond)
		cfg.Speed.Every = 5
		cfg.Speed.Step = Duration(5 * time.Millisecond)
		cfg.Speed.Floor = Duration(90 * time.Millisecond)
	case DifficultyHard:
		cfg.Timing.TickInterval = Duration(80 * time.Millisecond)
		cfg.Speed.Every = 3
		cfg.Speed.Step = Duration(10 * time.Millisecond)
		cfg.Speed.Floor = Duration(40 * time.Millisecond)
	}

	// Keep the floor reachable when the file set a short interval.
	if cfg.Speed.Floor > cfg.Timing.TickInterval {
		cfg.Speed.Floor = cfg.Timing.TickInterval
	}
}

// ValidatePresets checks the configuration as each preset would leave it.
// With no presets it checks every preset the difficulty picker offers.
func (c SnakeConfig) ValidatePresets(presets ...DifficultyPreset) error {
	if len(presets) == 0 {
		presets = Presets
	}
	for _, p := range presets {
		cfg := c
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			if p == "" {
				return err
			}
			return fmt.Errorf("difficulty %s: %w", p, err)
		}
	}
	return nil
}
