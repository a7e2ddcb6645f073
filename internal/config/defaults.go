package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It mirrors
// defaults/tetris.yaml and is used when the embedded file cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:     20,
			MinRows:  16,
			MaxRows:  30,
			Adaptive: true,
		},
		Timing: TimingConfig{
			LockDelayMs: 500,
			BaseDropMs:  800,
			DropStepMs:  60,
			MinDropMs:   80,
			MaxCatchUp:  20,
		},
		Queue: QueueConfig{
			LookAhead: 5,
		},
		Display: DisplayConfig{
			Ghost:       true,
			BannerTicks: 90,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
