package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset is a named adjustment applied on top of the loaded config.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty accepts a preset name, case-insensitively. An empty name
// means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyTetrisPreset adjusts lock delay, gravity and preview length.
// Normal keeps the loaded values.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.LockDelayMs = 800
		cfg.Timing.BaseDropMs = 1000
		cfg.Timing.DropStepMs = 50
		cfg.Queue.LookAhead = max(cfg.Queue.LookAhead, 5)
	case DifficultyHard:
		cfg.Timing.LockDelayMs = 300
		cfg.Timing.BaseDropMs = 500
		cfg.Timing.DropStepMs = 40
		cfg.Queue.LookAhead = min(cfg.Queue.LookAhead, 3)
		cfg.Display.Ghost = false
	case DifficultyFixed:
		cfg.Timing.FixedGravity = true
	}
	cfg.Validate()
}
