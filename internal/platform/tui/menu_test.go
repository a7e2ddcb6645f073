package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyNormal)
	ids := make([]string, 0, len(m.items))
	for _, it := range m.items {
		ids = append(ids, it.GameID)
	}
	assert.Contains(t, ids, "marathon")
	assert.Contains(t, ids, "sprint")
	assert.Contains(t, m.View(), "Difficulty: < normal >")
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyNormal)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, len(m.items)-1, m.cursor, "cursor stops at the last item")

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res := m.Result()
	assert.False(t, res.Quit)
	assert.Equal(t, m.items[len(m.items)-1].GameID, res.GameID)
}

func TestMenuCyclesDifficulty(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyEasy)
	assert.Equal(t, config.DifficultyEasy, m.Difficulty())

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, config.DifficultyFixed, m.Difficulty(), "left wraps around")

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, config.DifficultyNormal, m.Difficulty())

	m = NewMenuModel(core.DefaultConfig(), "")
	assert.Equal(t, config.DifficultyNormal, m.Difficulty(), "unknown presets fall back to normal")
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(core.DefaultConfig(), ""), tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Result().WantsScoreboard)

	m = menuUpdate(t, NewMenuModel(core.DefaultConfig(), ""), runeKey('q'))
	assert.True(t, m.Result().Quit)
	assert.Empty(t, m.View())
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(core.DefaultConfig(), ""), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Config().ScreenW)
	assert.Equal(t, 40, m.Config().ScreenH)
}
