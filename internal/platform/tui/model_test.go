package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	gametetris "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fakeGame ends after a fixed number of steps.
type fakeGame struct {
	resets  int
	steps   int
	endAt   int
	resized [2]int
	last    core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = core.NewInputFrame()
	for a := range in.Actions {
		g.last.Set(a)
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: 10 * g.steps, Lines: g.steps, Level: 1, GameOver: g.steps >= g.endAt}
}

func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *fakeGame) Stats() gametetris.Stats {
	return gametetris.Stats{
		Score:    10 * g.steps,
		Duration: time.Duration(g.steps) * time.Second,
		Cleared:  g.steps >= g.endAt,
	}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}
}

func TestGameModelFirstTickResets(t *testing.T) {
	g := &fakeGame{endAt: 100}
	m := NewGameModel(g, nil, nil, testConfig(), Player{Name: "ann"})
	assert.Equal(t, 24, m.config.ScreenH, "one row is kept for help")

	m = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 1, g.resets)
	assert.Equal(t, 0, g.steps)

	m = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 1, g.steps)
	assert.Contains(t, m.View(), "fake")
}

func TestGameModelKeysReachTheGame(t *testing.T) {
	g := &fakeGame{endAt: 100}
	m := NewGameModel(g, nil, nil, testConfig(), Player{})
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, runeKey('c'))
	m = update(t, m, TickMsg(time.Now()))
	assert.True(t, g.last.Has(core.ActionLeft))
	assert.True(t, g.last.Has(core.ActionHold))

	// the frame is cleared after every step
	update(t, m, TickMsg(time.Now()))
	assert.True(t, g.last.Empty())
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{endAt: 100}, nil, nil, testConfig(), Player{})
	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.(GameModel).IsQuitting())
	assert.Empty(t, next.(GameModel).View())
}

func TestGameModelResizeFollowsScreen(t *testing.T) {
	g := &fakeGame{endAt: 100}
	m := NewGameModel(g, nil, nil, testConfig(), Player{})
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, [2]int{100, 39}, g.resized)
	assert.Equal(t, 1, g.resets, "a resizable game is not restarted")
	assert.Equal(t, 100, m.screen.Width())
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &fakeGame{endAt: 3}
	m := NewGameModel(g, store, nil, testConfig(), Player{Name: "ann", Difficulty: "hard"})
	for range 6 {
		m = update(t, m, TickMsg(time.Now()))
	}
	require.NotEmpty(t, m.LastRunID())

	runs, err := store.TopRuns("fake", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ann", runs[0].Player)
	assert.Equal(t, "hard", runs[0].Difficulty)
	assert.Equal(t, 30, runs[0].Score)
	assert.Equal(t, 3*time.Second, runs[0].Duration)
	assert.True(t, runs[0].Cleared)
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{endAt: 1}
	m := NewGameModel(g, nil, nil, testConfig(), Player{})
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	require.True(t, m.gameState.GameOver)

	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 2, g.resets)
}

func TestGameModelBackToMenu(t *testing.T) {
	g := &fakeGame{endAt: 1}
	m := NewGameModel(g, nil, nil, testConfig(), Player{})

	m = update(t, m, runeKey('b'))
	assert.False(t, m.BackToMenu(), "back only works when paused or over")

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, runeKey('b'))
	assert.True(t, m.BackToMenu())
}
