// Package config loads the Tetris configuration from YAML and applies
// difficulty presets on top of it.
package config

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// TetrisConfig is the full game configuration.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Queue   QueueConfig   `yaml:"queue"`
	Display DisplayConfig `yaml:"display"`
}

// BoardConfig sizes the well.
type BoardConfig struct {
	Rows     int  `yaml:"rows"`
	MinRows  int  `yaml:"min_rows"`
	MaxRows  int  `yaml:"max_rows"`
	Adaptive bool `yaml:"adaptive"` // follow the terminal height
}

// TimingConfig controls gravity and lock delay, in milliseconds.
type TimingConfig struct {
	LockDelayMs  int  `yaml:"lock_delay_ms"`
	BaseDropMs   int  `yaml:"base_drop_ms"`
	DropStepMs   int  `yaml:"drop_step_ms"`
	MinDropMs    int  `yaml:"min_drop_ms"`
	MaxCatchUp   int  `yaml:"max_catch_up"`
	FixedGravity bool `yaml:"fixed_gravity"`
}

// QueueConfig controls the next-piece preview.
type QueueConfig struct {
	LookAhead int `yaml:"look_ahead"`
}

// DisplayConfig holds presentation options.
type DisplayConfig struct {
	Ghost       bool `yaml:"ghost"`
	BannerTicks int  `yaml:"banner_ticks"`
}

const (
	minRowsFloor = 4
	maxLookAhead = 7
)

// Validate clamps out-of-range values to the nearest legal value.
// A malformed config is never rejected.
func (c *TetrisConfig) Validate() {
	d := DefaultTetrisConfig()

	c.Board.MinRows = max(c.Board.MinRows, minRowsFloor)
	if c.Board.MaxRows < c.Board.MinRows {
		c.Board.MaxRows = max(d.Board.MaxRows, c.Board.MinRows)
	}
	if c.Board.Rows <= 0 {
		c.Board.Rows = d.Board.Rows
	}
	c.Board.Rows = max(c.Board.MinRows, min(c.Board.Rows, c.Board.MaxRows))

	minLock, maxLock := int(tetris.MinLockDelay/time.Millisecond), int(tetris.MaxLockDelay/time.Millisecond)
	if c.Timing.LockDelayMs <= 0 {
		c.Timing.LockDelayMs = d.Timing.LockDelayMs
	}
	c.Timing.LockDelayMs = max(minLock, min(c.Timing.LockDelayMs, maxLock))
	minDrop := int(tetris.MinGravity / time.Millisecond)
	if c.Timing.BaseDropMs <= 0 {
		c.Timing.BaseDropMs = d.Timing.BaseDropMs
	}
	c.Timing.BaseDropMs = max(c.Timing.BaseDropMs, minDrop)
	c.Timing.DropStepMs = max(c.Timing.DropStepMs, 0)
	if c.Timing.MinDropMs <= 0 {
		c.Timing.MinDropMs = d.Timing.MinDropMs
	}
	c.Timing.MinDropMs = min(max(c.Timing.MinDropMs, minDrop), c.Timing.BaseDropMs)
	if c.Timing.MaxCatchUp <= 0 {
		c.Timing.MaxCatchUp = d.Timing.MaxCatchUp
	}

	c.Queue.LookAhead = max(1, min(c.Queue.LookAhead, maxLookAhead))
	c.Display.BannerTicks = max(c.Display.BannerTicks, 0)
}

// EngineOptions converts the config into engine options for the given seed.
func (c TetrisConfig) EngineOptions(seed int64) tetris.Options {
	opts := tetris.Options{
		Rows:         c.Board.Rows,
		Seed:         seed,
		LookAhead:    c.Queue.LookAhead,
		LockDelay:    ms(c.Timing.LockDelayMs),
		BaseDrop:     ms(c.Timing.BaseDropMs),
		DropStep:     ms(c.Timing.DropStepMs),
		MinDrop:      ms(c.Timing.MinDropMs),
		MaxCatchUp:   c.Timing.MaxCatchUp,
		FixedGravity: c.Timing.FixedGravity,
	}
	if c.Timing.DropStepMs == 0 {
		// zero means no speed-up, which the engine spells as fixed gravity
		opts.FixedGravity = true
	}
	return opts
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
