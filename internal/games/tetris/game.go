// Package tetris adapts the Tetris engine to the registry.Game interface:
// it maps input frames to engine commands, drives gravity from the tick
// rate and draws the well into a core.Screen.
package tetris

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Mode selects the win condition.
type Mode string

const (
	ModeMarathon Mode = "marathon" // play until top-out
	ModeSprint   Mode = "sprint"   // clear SprintLines as fast as possible
)

// SprintLines is the line goal of sprint mode.
const SprintLines = 40

// Timed reports whether runs of mode id are ranked by time to reach the
// goal rather than by score.
func Timed(id string) bool {
	return Mode(id) == ModeSprint
}

// Layout, in screen cells.
const (
	cellW     = 2
	panelW    = 12
	titleRows = 1
)

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultTetrisConfig()
)

// Configure sets the configuration used by games created afterwards.
func Configure(cfg config.TetrisConfig) {
	cfg.Validate()
	settingsMu.Lock()
	settings = cfg
	settingsMu.Unlock()
}

func currentSettings() config.TetrisConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(string(ModeMarathon), func() registry.Game { return New(ModeMarathon) })
	registry.Register(string(ModeSprint), func() registry.Game { return New(ModeSprint) })
}

// Game is one Tetris session in a given mode.
type Game struct {
	mode Mode
	cfg  config.TetrisConfig
	eng  *engine.Engine

	tickRate int
	tick     uint64
	elapsed  time.Duration

	screenW, screenH int
	tooSmall         bool
	finished         bool // sprint goal reached
	goal             int  // sprint line goal

	banner      string
	bannerColor core.Color
	bannerTicks int

	onEvent engine.Listener
}

// New creates a game in the given mode using the configured settings.
func New(mode Mode) *Game {
	return NewWithConfig(mode, currentSettings())
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(mode Mode, cfg config.TetrisConfig) *Game {
	cfg.Validate()
	return &Game{mode: mode, cfg: cfg, goal: SprintLines}
}

// SetConfig replaces the configuration. It takes effect on the next Reset.
func (g *Game) SetConfig(cfg config.TetrisConfig) {
	cfg.Validate()
	g.cfg = cfg
}

// Config returns the configuration in use.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// ID returns the mode name.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return fmt.Sprintf("Tetris Sprint (%d lines)", g.goal)
	}
	return "Tetris Marathon"
}

// OnEvent forwards engine events to fn, in addition to the game's own handling.
func (g *Game) OnEvent(fn engine.Listener) {
	g.onEvent = fn
}

// Reset starts a new game sized for the screen in cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.elapsed = 0
	g.finished = false
	g.banner = ""
	g.bannerTicks = 0
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH

	opts := g.cfg.EngineOptions(cfg.Seed)
	opts.Rows = g.rowsFor(cfg.ScreenH)
	g.eng = engine.New(opts)
	g.eng.SetListener(g.handleEvent)
	g.checkScreenSize()
}

// Resize follows a terminal resize without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW, g.screenH = width, height
	if g.eng != nil && g.cfg.Board.Adaptive {
		g.eng.ResizeRows(g.rowsFor(height))
	}
	g.checkScreenSize()
}

// rowsFor returns the board height for a screen height.
func (g *Game) rowsFor(screenH int) int {
	if !g.cfg.Board.Adaptive || screenH <= 0 {
		return g.cfg.Board.Rows
	}
	return core.Clamp(screenH-titleRows-2, g.cfg.Board.MinRows, g.cfg.Board.MaxRows)
}

func (g *Game) minWidth() int {
	return 2*panelW + engine.Columns*cellW + 2
}

func (g *Game) checkScreenSize() {
	rows := g.cfg.Board.Rows
	if g.eng != nil {
		rows = g.eng.Rows()
	}
	g.tooSmall = g.screenW < g.minWidth() || g.screenH < rows+titleRows+2
}

// handleEvent turns clear feedback into a banner.
func (g *Game) handleEvent(ev engine.Event) {
	if ev.Type == engine.EventClear && ev.Feedback != nil {
		fb := ev.Feedback
		g.banner = fb.Label()
		g.bannerColor = core.ColorBrightWhite
		switch {
		case fb.AllClear:
			g.bannerColor = core.ColorBrightYellow
		case fb.Kind.TSpin():
			g.bannerColor = core.ColorBrightMagenta
		case fb.Kind == engine.ClearTetris:
			g.bannerColor = core.ColorBrightCyan
		}
		if fb.BackToBack {
			g.banner = "B2B " + g.banner
		}
		if fb.Combo > 0 {
			g.banner += fmt.Sprintf(" x%d", fb.Combo+1)
		}
		g.bannerTicks = g.cfg.Display.BannerTicks
	}
	if g.onEvent != nil {
		g.onEvent(ev)
	}
}

// Step applies one frame of input and advances the clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.bannerTicks > 0 {
		g.bannerTicks--
	}
	if g.tooSmall || g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished {
		g.eng.TogglePause()
	}
	if g.eng.Paused() || g.eng.GameOver() || g.finished {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(in)

	dt := time.Second / time.Duration(g.tickRate)
	g.eng.Advance(dt)
	g.elapsed += dt
	// consumed through the listener already
	g.eng.TakeFeedback()

	if g.mode == ModeSprint && g.eng.Lines() >= g.goal {
		g.finished = true
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) applyInput(in core.InputFrame) {
	if in.Has(core.ActionHold) {
		g.eng.Hold()
	}
	if in.Has(core.ActionLeft) {
		g.eng.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.eng.MoveRight()
	}
	if in.Has(core.ActionRotateCW) || in.Has(core.ActionUp) {
		g.eng.RotateClockwise()
	}
	if in.Has(core.ActionRotateCCW) {
		g.eng.RotateCounterClockwise()
	}
	if in.Has(core.ActionDown) {
		g.eng.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		g.eng.HardDrop()
	}
}

// State returns the summary the platform needs.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{Level: 1}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		Level:    g.eng.Level(),
		GameOver: g.eng.GameOver() || g.finished,
		Paused:   g.eng.Paused() || g.tooSmall,
	}
}

// Stats describes a run for the score table.
type Stats struct {
	Score    int
	Lines    int
	Level    int
	Duration time.Duration
	Cleared  bool // sprint goal reached
}

// Stats returns the run summary so far.
func (g *Game) Stats() Stats {
	st := g.State()
	return Stats{
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    st.Level,
		Duration: g.elapsed,
		Cleared:  g.finished,
	}
}
