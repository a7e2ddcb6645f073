package tetris

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

func newTestGame(t *testing.T, mode Mode, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	require.False(t, g.tooSmall)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegisteredModes(t *testing.T) {
	for _, mode := range []Mode{ModeMarathon, ModeSprint} {
		require.True(t, registry.Exists(string(mode)), "mode %s not registered", mode)
		g, err := registry.Create(string(mode))
		require.NoError(t, err)
		assert.Equal(t, string(mode), g.ID())
		_, ok := g.(registry.Resizer)
		assert.True(t, ok, "games should follow terminal resizes")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, ModeMarathon, 12345)
	g2 := newTestGame(t, ModeMarathon, 12345)

	script := map[int]core.Action{
		10: core.ActionLeft, 20: core.ActionRotateCW, 30: core.ActionHardDrop,
		45: core.ActionHold, 60: core.ActionRight, 70: core.ActionDown,
		90: core.ActionHardDrop, 120: core.ActionRotateCCW,
	}
	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		if a, ok := script[i]; ok {
			in.Set(a)
		}
		g1.Step(in)
		g2.Step(in)
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestInputMapping(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 1)
	start, ok := g.eng.Active()
	require.True(t, ok)

	g.Step(frame(core.ActionLeft))
	p, _ := g.eng.Active()
	assert.Equal(t, start.Origin.X-1, p.Origin.X)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	p, _ = g.eng.Active()
	assert.Equal(t, start.Origin.X+1, p.Origin.X)

	g.Step(frame(core.ActionUp))
	p, _ = g.eng.Active()
	assert.Equal(t, 1, p.Rotation)
	g.Step(frame(core.ActionRotateCCW))
	p, _ = g.eng.Active()
	assert.Equal(t, 0, p.Rotation)

	g.Step(frame(core.ActionDown))
	p, _ = g.eng.Active()
	assert.Equal(t, start.Origin.Y+1, p.Origin.Y)
	assert.Equal(t, engine.SoftDropPoints, g.State().Score)

	g.Step(frame(core.ActionHold))
	held, ok := g.eng.Held()
	require.True(t, ok)
	assert.Equal(t, start.Kind, held)

	g.Step(frame(core.ActionHardDrop))
	assert.False(t, g.eng.Board().IsEmpty())
	assert.Greater(t, g.State().Score, engine.SoftDropPoints)
}

func TestPauseStopsTheClock(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 2)
	g.Step(frame())
	elapsed := g.elapsed

	g.Step(frame(core.ActionPause))
	require.True(t, g.State().Paused)
	before, _ := g.eng.Active()
	for i := 0; i < 120; i++ {
		g.Step(frame(core.ActionLeft))
	}
	after, _ := g.eng.Active()
	assert.Equal(t, before, after)
	assert.Equal(t, elapsed, g.elapsed)

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestGravityFollowsTickRate(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 3)
	start, _ := g.eng.Active()

	// just over 0.8s at 60 tps, one gravity interval at level 1
	for i := 0; i < 49; i++ {
		g.Step(frame())
	}
	p, _ := g.eng.Active()
	assert.Equal(t, start.Origin.Y+1, p.Origin.Y)
}

func TestAdaptiveRowsFollowScreen(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 4)
	assert.Equal(t, 21, g.eng.Rows())

	g.Resize(80, 33)
	assert.Equal(t, 30, g.eng.Rows())
	assert.False(t, g.tooSmall)

	g.Resize(80, 10)
	assert.Equal(t, 16, g.eng.Rows())
	assert.True(t, g.tooSmall)
	assert.True(t, g.State().Paused)

	g.Resize(30, 24)
	assert.True(t, g.tooSmall, "narrow screens cannot fit the panels")
}

func TestFixedRowsIgnoreScreen(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Adaptive = false
	g := NewWithConfig(ModeMarathon, cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, Seed: 1})
	assert.Equal(t, cfg.Board.Rows, g.eng.Rows())

	g.Resize(80, 30)
	assert.Equal(t, cfg.Board.Rows, g.eng.Rows())
}

func TestClearBanner(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 5)
	var seen []engine.EventType
	g.OnEvent(func(ev engine.Event) { seen = append(seen, ev.Type) })

	g.handleEvent(engine.Event{
		Type:     engine.EventClear,
		Feedback: &engine.Feedback{Kind: engine.ClearTetris, Lines: 4, Combo: 1, BackToBack: true},
	})
	assert.Equal(t, "B2B Tetris x2", g.banner)
	assert.Equal(t, core.ColorBrightCyan, g.bannerColor)
	assert.Equal(t, g.cfg.Display.BannerTicks, g.bannerTicks)
	assert.Equal(t, []engine.EventType{engine.EventClear}, seen)

	g.handleEvent(engine.Event{
		Type:     engine.EventClear,
		Feedback: &engine.Feedback{Kind: engine.ClearSingle, Lines: 1, AllClear: true},
	})
	assert.Equal(t, "All Clear", g.banner)
	assert.Equal(t, core.ColorBrightYellow, g.bannerColor)

	g.Step(frame())
	assert.Equal(t, g.cfg.Display.BannerTicks-1, g.bannerTicks)
}

func TestSprintFinishes(t *testing.T) {
	g := newTestGame(t, ModeSprint, 6)
	g.goal = 4

	for pieces := 0; pieces < 300 && !g.finished; pieces++ {
		require.False(t, g.eng.GameOver(), "bot topped out after %d pieces", pieces)
		playBestPlacement(g)
		g.Step(frame())
	}

	require.True(t, g.finished)
	st := g.Stats()
	assert.True(t, st.Cleared)
	assert.GreaterOrEqual(t, st.Lines, 4)
	assert.True(t, g.State().GameOver)

	// a finished sprint ignores further input
	snap := g.Snapshot()
	g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, snap.Engine, g.Snapshot().Engine)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 7)
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()
	assert.Contains(t, scr.Row(0), "TETRIS MARATHON")
	for _, label := range []string{"HOLD", "NEXT", "SCORE", "LINES", "LEVEL"} {
		assert.Contains(t, out, label)
	}

	// well interior starts one cell inside the box, right of the left panel
	wellX := (80-g.minWidth())/2 + panelW + 1
	wellY := titleRows + 1
	p, ok := g.eng.Active()
	require.True(t, ok)
	for _, c := range p.Cells() {
		cell := scr.GetCell(wellX+c.X*cellW, wellY+c.Y)
		assert.Equal(t, blockRune, cell.Rune)
		assert.Equal(t, p.Kind.Color(), cell.Color)
	}
	assert.Equal(t, emptyRune, scr.GetCell(wellX+1, wellY+g.eng.Rows()-1).Rune)

	g.Step(frame(core.ActionPause))
	g.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")

	g.Resize(20, 10)
	g.Render(scr)
	assert.Contains(t, scr.String(), "Window too small")
}

// playBestPlacement drops the active piece where a simple heuristic likes it.
func playBestPlacement(g *Game) {
	p, ok := g.eng.Active()
	if !ok {
		return
	}
	board := g.eng.Board()

	bestScore := math.Inf(-1)
	bestRot, bestX := 0, p.Origin.X
	for rot := 0; rot < 4; rot++ {
		cand := p
		for range rot {
			cand = cand.Rotated(1)
		}
		for dx := -engine.Columns; dx <= engine.Columns; dx++ {
			q := cand.Translated(dx, 0)
			if board.Collides(q.Cells()) {
				continue
			}
			for !board.Collides(q.Translated(0, 1).Cells()) {
				q = q.Translated(0, 1)
			}
			sim := board.Clone()
			sim.Lock(q)
			lines := sim.ClearFullRows()
			if s := evaluate(sim, lines); s > bestScore {
				bestScore, bestRot, bestX = s, rot, q.Origin.X
			}
		}
	}

	for range bestRot {
		g.eng.RotateClockwise()
	}
	p, _ = g.eng.Active()
	for dx := bestX - p.Origin.X; dx > 0 && g.eng.MoveRight(); dx-- {
	}
	for dx := bestX - p.Origin.X; dx < 0 && g.eng.MoveLeft(); dx++ {
	}
	g.eng.HardDrop()
}

func evaluate(b *engine.Board, lines int) float64 {
	heights := make([]int, engine.Columns)
	holes := 0
	for x := 0; x < engine.Columns; x++ {
		seen := false
		for y := 0; y < b.Rows(); y++ {
			filled := b.At(x, y).Filled()
			if filled && !seen {
				seen = true
				heights[x] = b.Rows() - y
			}
			if seen && !filled {
				holes++
			}
		}
	}
	agg, bump := 0, 0
	for x, h := range heights {
		agg += h
		if x > 0 {
			bump += abs(h - heights[x-1])
		}
	}
	return -0.51*float64(agg) + 0.76*float64(lines) - 0.36*float64(holes) - 0.18*float64(bump)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestSetConfigAppliesOnReset(t *testing.T) {
	g := newTestGame(t, ModeMarathon, 8)
	cfg := config.DefaultTetrisConfig()
	config.ApplyTetrisPreset(&cfg, config.DifficultyHard)
	g.SetConfig(cfg)
	assert.Equal(t, engine.DefaultLockDelay, g.eng.LockDelay())

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 8})
	assert.Equal(t, 300*time.Millisecond, g.eng.LockDelay())
	assert.Len(t, g.eng.Queue(), 3)
}
