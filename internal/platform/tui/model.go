package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	gametetris "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// helpRows is the space kept below the game for the key help.
const helpRows = 1

// Player identifies who is playing and how, for the score table.
type Player struct {
	Name       string
	Difficulty string
}

// statsReporter is implemented by games that can describe a run in detail.
type statsReporter interface {
	Stats() gametetris.Stats
}

type configurable interface {
	SetConfig(cfg config.TetrisConfig)
}

type eventSource interface {
	OnEvent(fn tetris.Listener)
}

// NewGame creates the registered mode id, configured with base adjusted
// by preset.
func NewGame(id string, base config.TetrisConfig, preset config.DifficultyPreset) (registry.Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := g.(configurable); ok {
		cfg := base
		config.ApplyTetrisPreset(&cfg, preset)
		c.SetConfig(cfg)
	}
	return g, nil
}

// GameModel runs one game inside Bubble Tea.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     Player
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	width      int
	height     int
	started    bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
	lastRunID  string
}

// NewGameModel creates a model for game. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, player Player) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		store:      store,
		logger:     logger,
		config:     cfg,
		player:     player,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.config.ScreenH = m.gameHeight()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	if src, ok := game.(eventSource); ok {
		src.OnEvent(logEvents(logger, game.ID()))
	}
	return m
}

// logEvents returns a listener that logs clears and top-outs.
func logEvents(logger *log.Logger, gameID string) tetris.Listener {
	return func(ev tetris.Event) {
		switch ev.Type {
		case tetris.EventClear:
			if ev.Feedback != nil {
				logger.Debug("clear", "game", gameID, "kind", ev.Feedback.Label(),
					"lines", ev.Feedback.Lines, "points", ev.Feedback.Points, "combo", ev.Feedback.Combo)
			}
		case tetris.EventGameOver:
			logger.Debug("topped out", "game", gameID)
		}
	}
}

func (m GameModel) gameHeight() int {
	return max(m.height-helpRows, 1)
}

// Init starts the tick loop. The game itself is reset on the first tick.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.config.ScreenW = msg.Width
	m.config.ScreenH = m.gameHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if !m.started {
		return m, nil
	}
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.started || (m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver) {
		if m.started {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.started = true
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed, "rows", m.config.ScreenH)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished game once.
func (m *GameModel) saveRun() {
	m.scoreSaved = true
	run := storage.Run{
		GameID:     m.game.ID(),
		Player:     m.player.Name,
		Difficulty: m.player.Difficulty,
		Score:      m.gameState.Score,
		Lines:      m.gameState.Lines,
		Level:      m.gameState.Level,
	}
	if sr, ok := m.game.(statsReporter); ok {
		st := sr.Stats()
		run.Duration, run.Cleared = st.Duration, st.Cleared
	}
	m.logger.Info("game over", "game", run.GameID, "player", run.Player,
		"score", run.Score, "lines", run.Lines, "level", run.Level, "cleared", run.Cleared)

	if m.store == nil || run.Score == 0 {
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.lastRunID = id
}

// saveScreenshot writes the current frame to ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: cannot create directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: cannot write", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the game and the key help below it.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	if m.started {
		m.game.Render(m.screen)
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the storage ID of the last saved run, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// Run plays game in the current terminal until the player quits.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, player Player) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewGameModel(game, store, logger, cfg, player),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
